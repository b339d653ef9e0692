package catalog

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) ([]model.Product, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]model.Product, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

func seedProducts(name string) []model.Product {
	return []model.Product{
		{ID: 1, Name: name, Price: decimal.RequireFromString("9.99"), Category: "Test"},
	}
}

func TestFallbackLoader_S3Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	// Create mock S3 loader that succeeds
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			assert.Equal(t, "catalog/seed.json", path, "S3 key should have prefix")
			return seedProducts("From S3"), nil
		},
	}

	// Create mock file loader (should not be called)
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", true, logger)

	products, err := fallback.Load(ctx, "seed.json")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "From S3", products[0].Name)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	// Create mock S3 loader that fails
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			return nil, errors.New("S3 connection failed")
		},
	}

	// Create mock file loader that succeeds
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			assert.Equal(t, "seed.json", path, "local file path should not have prefix")
			return seedProducts("From disk"), nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", true, logger)

	products, err := fallback.Load(ctx, "seed.json")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "From disk", products[0].Name)
}

func TestFallbackLoader_S3Disabled(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	// Create mock S3 loader (should not be called)
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			t.Error("S3 loader should not be called when S3 is disabled")
			return nil, errors.New("should not be called")
		},
	}

	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			return seedProducts("From disk"), nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", false, logger)

	products, err := fallback.Load(ctx, "seed.json")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "From disk", products[0].Name)
}

func TestFallbackLoader_NilS3Loader(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			return seedProducts("From disk"), nil
		},
	}

	fallback := NewFallbackLoader(nil, fileLoader, "catalog/", true, logger)

	products, err := fallback.Load(ctx, "seed.json")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestFallbackLoader_BothFail(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.Product, error) {
			return nil, errors.New("file not found")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", true, logger)

	products, err := fallback.Load(ctx, "seed.json")
	assert.Error(t, err)
	assert.Nil(t, products)
}
