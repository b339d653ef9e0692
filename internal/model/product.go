package model

import "github.com/shopspring/decimal"

// Product represents an entry in the storefront catalogue.
// Products are seeded once at startup and never mutated.
type Product struct {
	ID       int             `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Image    string          `json:"image" db:"image"`
	Category string          `json:"category" db:"category"`
}
