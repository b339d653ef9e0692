package catalog

import (
	"context"
	"sort"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// memoryStore implements Store with an in-process map. It is the
// default catalogue backend for the demo.
type memoryStore struct {
	products map[int]model.Product
}

// NewMemoryStore creates an in-memory catalogue holding the given
// products.
func NewMemoryStore(products []model.Product) Store {
	m := make(map[int]model.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &memoryStore{products: m}
}

// List returns all products in ascending id order.
func (s *memoryStore) List(ctx context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products, nil
}

// Get returns the product with the given id, or nil when absent.
func (s *memoryStore) Get(ctx context.Context, id int) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// DefaultSeed returns the built-in demo catalogue, used when no seed
// file is configured.
func DefaultSeed() []model.Product {
	price := decimal.RequireFromString
	return []model.Product{
		{ID: 1, Name: "Wireless Headphones", Price: price("89.99"), Image: "/api/products/1/image", Category: "Electronics"},
		{ID: 2, Name: "Leather Backpack", Price: price("129.99"), Image: "/api/products/2/image", Category: "Accessories"},
		{ID: 3, Name: "Steel Water Bottle", Price: price("34.99"), Image: "/api/products/3/image", Category: "Lifestyle"},
		{ID: 4, Name: "Classic Watch", Price: price("299.99"), Image: "/api/products/4/image", Category: "Accessories"},
		{ID: 5, Name: "Smartphone Pro", Price: price("899.99"), Image: "/api/products/5/image", Category: "Electronics"},
		{ID: 6, Name: "Vintage Camera", Price: price("179.99"), Image: "/api/products/6/image", Category: "Electronics"},
		{ID: 7, Name: "Premium Yoga Mat", Price: price("49.99"), Image: "/api/products/7/image", Category: "Lifestyle"},
		{ID: 8, Name: "Modern Desk Lamp", Price: price("64.99"), Image: "/api/products/8/image", Category: "Home"},
	}
}
