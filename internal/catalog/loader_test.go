package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSeedFile writes a seed file into a temp directory and returns
// its path.
func writeSeedFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileLoader_Load(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	loader := NewFileLoader(logger)

	path := writeSeedFile(t, `[
		{"id": 1, "name": "Wireless Headphones", "price": "89.99", "image": "/api/products/1/image", "category": "Electronics"},
		{"id": 2, "name": "Leather Backpack", "price": "129.99", "image": "/api/products/2/image", "category": "Accessories"}
	]`)

	products, err := loader.Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Wireless Headphones", products[0].Name)
	assert.True(t, decimal.RequireFromString("89.99").Equal(products[0].Price))
	assert.Equal(t, "Accessories", products[1].Category)
}

func TestFileLoader_FileNotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	loader := NewFileLoader(logger)

	products, err := loader.Load(ctx, "/nonexistent/seed.json")
	assert.Error(t, err)
	assert.Nil(t, products)
}

func TestFileLoader_InvalidSeed(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	loader := NewFileLoader(logger)

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "Malformed JSON",
			content: `{"not": "an array"`,
		},
		{
			name:    "Empty array",
			content: `[]`,
		},
		{
			name:    "Non-positive id",
			content: `[{"id": 0, "name": "X", "price": "1.00"}]`,
		},
		{
			name: "Duplicate id",
			content: `[
				{"id": 1, "name": "X", "price": "1.00"},
				{"id": 1, "name": "Y", "price": "2.00"}
			]`,
		},
		{
			name:    "Missing name",
			content: `[{"id": 1, "name": "", "price": "1.00"}]`,
		},
		{
			name:    "Negative price",
			content: `[{"id": 1, "name": "X", "price": "-1.00"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSeedFile(t, tt.content)

			products, err := loader.Load(ctx, path)
			assert.Error(t, err)
			assert.Nil(t, products)
		})
	}
}
