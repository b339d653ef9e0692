package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/router"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the catalogue seed
	seed, err := loadSeed(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalogue seed: %w", err)
	}

	// Initialize catalogue store
	store, closeStore, err := newCatalogStore(ctx, cfg, seed, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalogue: %w", err)
	}
	defer closeStore()

	// Initialize the cart engine
	engine := cart.NewEngine(store, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(store, logger)
	cartHandler := handler.NewCartHandler(engine, logger)
	checkoutHandler := handler.NewCheckoutHandler(engine, logger)

	// Initialize router
	mux := router.New(productHandler, cartHandler, checkoutHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadSeed resolves the product seed: a configured JSON file (from S3
// with local fallback, or local only), or the built-in demo catalogue.
func loadSeed(ctx context.Context, cfg *config.Config, logger zerolog.Logger) ([]model.Product, error) {
	if cfg.Catalog.SeedFile == "" {
		logger.Info().Msg("no seed file configured, using built-in catalogue")
		return catalog.DefaultSeed(), nil
	}

	fileLoader := catalog.NewFileLoader(logger)
	var loader catalog.Loader = fileLoader

	if cfg.S3.Enabled {
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
		}
	}

	return loader.Load(ctx, cfg.Catalog.SeedFile)
}

// newCatalogStore builds the configured catalogue backend. The
// returned close function releases the backend's resources.
func newCatalogStore(ctx context.Context, cfg *config.Config, seed []model.Product, logger zerolog.Logger) (catalog.Store, func(), error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		if err := catalog.EnsureSchema(ctx, pool, seed, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}

		return catalog.NewPostgresStore(pool, logger), pool.Close, nil

	default:
		return catalog.NewMemoryStore(seed), func() {}, nil
	}
}
