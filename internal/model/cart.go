package model

import "time"

// CartItem represents a line item in the shared cart.
type CartItem struct {
	ID        int       `json:"id"`
	ProductID int       `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// EnrichedCartItem is a cart item with its product resolved from the
// catalogue. Product is nil when the referenced product is no longer
// resolvable, which callers must treat as a data anomaly rather than
// dropping the field silently.
type EnrichedCartItem struct {
	CartItem
	Product *Product `json:"product"`
}

// AddToCartRequest represents the request payload for adding a product
// to the cart. Quantity is optional and defaults to 1.
type AddToCartRequest struct {
	ProductID int  `json:"productId"`
	Quantity  *int `json:"quantity,omitempty"`
}

// UpdateQuantityRequest represents the request payload for overwriting
// a line item's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest represents the request payload for checkout.
type CheckoutRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
