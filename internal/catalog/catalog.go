package catalog

import (
	"context"

	"storefront/internal/model"
)

// Store defines read access to the product catalogue. The catalogue is
// fixed for the lifetime of the process, so implementations carry no
// mutation operations.
type Store interface {
	// List returns all products in ascending id order.
	List(ctx context.Context) ([]model.Product, error)

	// Get returns the product with the given id, or nil when no such
	// product exists. Absence is not an error; callers decide whether
	// it is fatal.
	Get(ctx context.Context, id int) (*model.Product, error)
}

// Loader defines the interface for loading a product seed file.
type Loader interface {
	// Load reads a JSON product seed and returns the products it
	// contains.
	Load(ctx context.Context, path string) ([]model.Product, error)
}
