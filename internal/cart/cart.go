package cart

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Engine owns all cart mutation and the checkout transition. It is the
// only component with write access to cart state.
type Engine interface {
	// Items returns every line item with its product resolved from the
	// catalogue, in ascending line-item id order.
	Items(ctx context.Context) ([]model.EnrichedCartItem, error)

	// Add puts quantity units of the given product into the cart. When
	// a line item for the product already exists its quantity is
	// increased instead of creating a duplicate.
	Add(ctx context.Context, productID, quantity int) (*model.EnrichedCartItem, error)

	// UpdateQuantity overwrites the quantity of an existing line item.
	// A quantity below 1 is rejected; removal stays a separate
	// operation.
	UpdateQuantity(ctx context.Context, itemID, quantity int) (*model.EnrichedCartItem, error)

	// Remove deletes the line item with the given id and reports
	// whether a deletion occurred. Removing an absent id is not an
	// error.
	Remove(ctx context.Context, itemID int) (bool, error)

	// Checkout snapshots the cart into a receipt and clears the cart.
	// The cart is only cleared after the receipt is fully built.
	Checkout(ctx context.Context, customerName, customerEmail string) (*model.Receipt, error)

	// Len returns the number of line items currently in the cart.
	Len() int
}

// engine implements Engine. A single mutex serialises every cart
// operation; the catalogue is immutable and needs no guarding.
type engine struct {
	mu      sync.Mutex
	items   map[int]model.CartItem
	nextID  int
	catalog catalog.Store
	logger  zerolog.Logger
}

// NewEngine creates a cart engine backed by the given catalogue.
func NewEngine(store catalog.Store, logger zerolog.Logger) Engine {
	return &engine{
		items:   make(map[int]model.CartItem),
		nextID:  1,
		catalog: store,
		logger:  logger.With().Str("service", "cart").Logger(),
	}
}

// Items returns every line item enriched with its product.
func (e *engine) Items(ctx context.Context) ([]model.EnrichedCartItem, error) {
	e.mu.Lock()
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	return e.enrich(ctx, snapshot)
}

// Add puts quantity units of a product into the cart, merging with an
// existing line item for the same product.
func (e *engine) Add(ctx context.Context, productID, quantity int) (*model.EnrichedCartItem, error) {
	if quantity < 1 {
		e.logger.Warn().
			Int("product_id", productID).
			Int("quantity", quantity).
			Msg("rejected add with invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	product, err := e.catalog.Get(ctx, productID)
	if err != nil {
		e.logger.Error().Err(err).Int("product_id", productID).Msg("failed to resolve product")
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}
	if product == nil {
		e.logger.Debug().Int("product_id", productID).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// At most one line item per product: merge quantities on repeat adds.
	for id, item := range e.items {
		if item.ProductID == productID {
			item.Quantity += quantity
			e.items[id] = item

			e.logger.Debug().
				Int("item_id", id).
				Int("product_id", productID).
				Int("quantity", item.Quantity).
				Msg("merged quantity into existing line item")

			return &model.EnrichedCartItem{CartItem: item, Product: product}, nil
		}
	}

	item := model.CartItem{
		ID:        e.nextID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	e.nextID++
	e.items[item.ID] = item

	e.logger.Info().
		Int("item_id", item.ID).
		Int("product_id", productID).
		Int("quantity", quantity).
		Msg("line item added to cart")

	return &model.EnrichedCartItem{CartItem: item, Product: product}, nil
}

// UpdateQuantity overwrites the quantity of an existing line item.
func (e *engine) UpdateQuantity(ctx context.Context, itemID, quantity int) (*model.EnrichedCartItem, error) {
	if quantity < 1 {
		e.logger.Warn().
			Int("item_id", itemID).
			Int("quantity", quantity).
			Msg("rejected quantity update")
		return nil, model.ErrInvalidQuantity
	}

	e.mu.Lock()
	item, ok := e.items[itemID]
	if !ok {
		e.mu.Unlock()
		e.logger.Debug().Int("item_id", itemID).Msg("cart item not found")
		return nil, model.ErrCartItemNotFound
	}
	item.Quantity = quantity
	e.items[itemID] = item
	e.mu.Unlock()

	product, err := e.resolveProduct(ctx, item)
	if err != nil {
		return nil, err
	}

	e.logger.Debug().
		Int("item_id", itemID).
		Int("quantity", quantity).
		Msg("line item quantity updated")

	return &model.EnrichedCartItem{CartItem: item, Product: product}, nil
}

// Remove deletes a line item and reports whether a deletion occurred.
func (e *engine) Remove(ctx context.Context, itemID int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.items[itemID]; !ok {
		e.logger.Debug().Int("item_id", itemID).Msg("cart item not found, nothing to remove")
		return false, nil
	}

	delete(e.items, itemID)
	e.logger.Info().Int("item_id", itemID).Msg("line item removed from cart")
	return true, nil
}

// Checkout snapshots the cart into a receipt, then clears the cart. A
// failure while building the receipt leaves the cart untouched.
func (e *engine) Checkout(ctx context.Context, customerName, customerEmail string) (*model.Receipt, error) {
	if customerName == "" {
		return nil, model.ErrMissingCustomerName
	}
	if customerEmail == "" {
		return nil, model.ErrMissingCustomerEmail
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.items) == 0 {
		e.logger.Warn().Msg("checkout rejected: cart is empty")
		return nil, model.ErrEmptyCart
	}

	items, err := e.enrich(ctx, e.snapshotLocked())
	if err != nil {
		return nil, fmt.Errorf("failed to build receipt: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			// Unresolvable products contribute zero to the total
			// rather than aborting the checkout.
			continue
		}
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}

	receipt := &model.Receipt{
		OrderID:       fmt.Sprintf("ORD-%s", uuid.New()),
		Timestamp:     time.Now(),
		Total:         total,
		Items:         items,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
	}

	// The receipt is complete; clearing the cart is now safe.
	e.items = make(map[int]model.CartItem)

	e.logger.Info().
		Str("order_id", receipt.OrderID).
		Str("total", total.StringFixed(2)).
		Int("item_count", len(items)).
		Msg("checkout completed")

	return receipt, nil
}

// Len returns the number of line items currently in the cart.
func (e *engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}

// snapshotLocked copies the current line items in ascending id order.
// Callers must hold e.mu.
func (e *engine) snapshotLocked() []model.CartItem {
	items := make([]model.CartItem, 0, len(e.items))
	for _, item := range e.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items
}

// enrich resolves each line item's product from the catalogue. A
// missing product yields a nil Product on the enriched item; it is
// logged as an anomaly since the catalogue never shrinks.
func (e *engine) enrich(ctx context.Context, items []model.CartItem) ([]model.EnrichedCartItem, error) {
	enriched := make([]model.EnrichedCartItem, 0, len(items))
	for _, item := range items {
		product, err := e.resolveProduct(ctx, item)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, model.EnrichedCartItem{CartItem: item, Product: product})
	}
	return enriched, nil
}

// resolveProduct looks up a line item's product, logging the anomaly
// when the product no longer exists.
func (e *engine) resolveProduct(ctx context.Context, item model.CartItem) (*model.Product, error) {
	product, err := e.catalog.Get(ctx, item.ProductID)
	if err != nil {
		e.logger.Error().
			Err(err).
			Int("item_id", item.ID).
			Int("product_id", item.ProductID).
			Msg("failed to resolve product for line item")
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}

	if product == nil {
		e.logger.Warn().
			Str("code", model.ErrCodeDataAnomaly).
			Int("item_id", item.ID).
			Int("product_id", item.ProductID).
			Msg("line item references a product missing from the catalogue")
	}

	return product, nil
}
