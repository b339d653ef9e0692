package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading JSON seed files from the
// local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a JSON seed file containing an array of products.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.Product, error) {
	l.logger.Info().Str("file", path).Msg("loading catalogue seed file")

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read seed file")
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	products, err := decodeSeed(data)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode seed file")
		return nil, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("products_loaded", len(products)).
		Msg("catalogue seed loaded successfully")

	return products, nil
}

// decodeSeed parses a JSON product array and validates the entries.
func decodeSeed(data []byte) ([]model.Product, error) {
	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("seed contains no products")
	}

	seen := make(map[int]struct{}, len(products))
	for i, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %d: id must be positive", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Name == "" {
			return nil, fmt.Errorf("product %d: name is required", p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d: price cannot be negative", p.ID)
		}
	}

	return products, nil
}
