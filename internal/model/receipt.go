package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the immutable record of a completed checkout. It is built
// from a snapshot of the cart and stays valid after the cart is cleared.
type Receipt struct {
	OrderID       string             `json:"orderId"`
	Timestamp     time.Time          `json:"timestamp"`
	Total         decimal.Decimal    `json:"total"`
	Items         []EnrichedCartItem `json:"items"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
}
