package catalog

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// postgresStore implements Store using PostgreSQL. The catalogue is
// still read-only at runtime; the table is created and seeded once at
// startup.
type postgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore creates a new PostgreSQL-backed catalogue store.
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) Store {
	return &postgresStore{
		pool:   pool,
		logger: logger.With().Str("store", "catalog-postgres").Logger(),
	}
}

// EnsureSchema creates the products table if it does not exist and
// seeds it with the given products when it is empty. Safe to call on
// every startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, seed []model.Product, logger zerolog.Logger) error {
	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id       INTEGER PRIMARY KEY,
			name     TEXT NOT NULL,
			price    NUMERIC(10, 2) NOT NULL,
			image    TEXT NOT NULL,
			category TEXT NOT NULL
		)
	`

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if count > 0 {
		logger.Debug().Int("count", count).Msg("products table already seeded")
		return nil
	}

	for _, p := range seed {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, price, image, category) VALUES ($1, $2, $3, $4, $5)`,
			p.ID, p.Name, p.Price.StringFixed(2), p.Image, p.Category,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %d: %w", p.ID, err)
		}
	}

	logger.Info().Int("count", len(seed)).Msg("products table seeded")
	return nil
}

// List returns all products in ascending id order.
func (s *postgresStore) List(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, price::text, image, category
		FROM products
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Get returns the product with the given id, or nil when absent.
func (s *postgresStore) Get(ctx context.Context, id int) (*model.Product, error) {
	query := `
		SELECT id, name, price::text, image, category
		FROM products
		WHERE id = $1
	`

	p, err := scanProduct(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			s.logger.Debug().Int("product_id", id).Msg("product not found")
			return nil, nil
		}
		s.logger.Error().Err(err).Int("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// scanProduct scans one product row. The price column is selected as
// text and parsed to keep exact decimal precision.
func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p        model.Product
		priceStr string
	)
	if err := row.Scan(&p.ID, &p.Name, &priceStr, &p.Image, &p.Category); err != nil {
		return model.Product{}, err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid price %q for product %d: %w", priceStr, p.ID, err)
	}
	p.Price = price

	return p, nil
}
