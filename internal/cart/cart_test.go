package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore is a catalogue stub whose lookups always fail, for
// exercising infrastructure error paths.
type brokenStore struct{}

func (brokenStore) List(ctx context.Context) ([]model.Product, error) {
	return nil, errors.New("catalogue unavailable")
}

func (brokenStore) Get(ctx context.Context, id int) (*model.Product, error) {
	return nil, errors.New("catalogue unavailable")
}

func testStore() catalog.Store {
	return catalog.NewMemoryStore([]model.Product{
		{ID: 1, Name: "Wireless Headphones", Price: decimal.RequireFromString("89.99"), Category: "Electronics"},
		{ID: 2, Name: "Leather Backpack", Price: decimal.RequireFromString("129.99"), Category: "Accessories"},
		{ID: 3, Name: "Steel Water Bottle", Price: decimal.RequireFromString("34.99"), Category: "Lifestyle"},
	})
}

func newTestEngine() Engine {
	return NewEngine(testStore(), zerolog.Nop())
}

func TestEngine_AddDistinctProducts(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	first, err := engine.Add(ctx, 1, 1)
	require.NoError(t, err)
	second, err := engine.Add(ctx, 2, 1)
	require.NoError(t, err)

	items, err := engine.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.NotEqual(t, items[0].ProductID, items[1].ProductID)
}

func TestEngine_AddSameProductMergesQuantity(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	first, err := engine.Add(ctx, 1, 1)
	require.NoError(t, err)
	second, err := engine.Add(ctx, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "repeat add must reuse the existing line item")
	assert.Equal(t, 2, second.Quantity)

	items, err := engine.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestEngine_AddUnknownProduct(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	item, err := engine.Add(ctx, 999, 1)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
	assert.Nil(t, item)
	assert.Equal(t, 0, engine.Len(), "cart must be unchanged after a failed add")
}

func TestEngine_AddInvalidQuantity(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	tests := []struct {
		name     string
		quantity int
	}{
		{name: "Zero quantity", quantity: 0},
		{name: "Negative quantity", quantity: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := engine.Add(ctx, 1, tt.quantity)
			assert.ErrorIs(t, err, model.ErrInvalidQuantity)
			assert.Nil(t, item)
			assert.Equal(t, 0, engine.Len())
		})
	}
}

func TestEngine_MonotonicLineItemIDs(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	first, err := engine.Add(ctx, 1, 1)
	require.NoError(t, err)
	second, err := engine.Add(ctx, 2, 1)
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)

	// Removing and re-adding must not reuse ids.
	removed, err := engine.Remove(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, removed)

	third, err := engine.Add(ctx, 2, 1)
	require.NoError(t, err)
	assert.Greater(t, third.ID, second.ID)
}

func TestEngine_UpdateQuantity(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	added, err := engine.Add(ctx, 1, 1)
	require.NoError(t, err)

	updated, err := engine.UpdateQuantity(ctx, added.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, added.ID, updated.ID)
	require.NotNil(t, updated.Product)
	assert.Equal(t, "Wireless Headphones", updated.Product.Name)
}

func TestEngine_UpdateQuantityRejectsNonPositive(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	added, err := engine.Add(ctx, 1, 2)
	require.NoError(t, err)

	tests := []struct {
		name     string
		quantity int
	}{
		{name: "Zero quantity", quantity: 0},
		{name: "Negative quantity", quantity: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := engine.UpdateQuantity(ctx, added.ID, tt.quantity)
			assert.ErrorIs(t, err, model.ErrInvalidQuantity)
			assert.Nil(t, item)

			// The rejection must leave the cart unchanged.
			items, err := engine.Items(ctx)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, 2, items[0].Quantity)
		})
	}
}

func TestEngine_UpdateQuantityUnknownItem(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	item, err := engine.UpdateQuantity(ctx, 42, 3)
	assert.ErrorIs(t, err, model.ErrCartItemNotFound)
	assert.Nil(t, item)
}

func TestEngine_RemoveUnknownItem(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	added, err := engine.Add(ctx, 1, 1)
	require.NoError(t, err)

	removed, err := engine.Remove(ctx, 999)
	require.NoError(t, err)
	assert.False(t, removed)

	items, err := engine.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, added.ID, items[0].ID)
}

func TestEngine_AddRemoveRoundTrip(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	existing, err := engine.Add(ctx, 2, 1)
	require.NoError(t, err)

	added, err := engine.Add(ctx, 1, 1)
	require.NoError(t, err)

	removed, err := engine.Remove(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	items, err := engine.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, existing.ID, items[0].ID)
	assert.Equal(t, existing.Quantity, items[0].Quantity)
}

func TestEngine_CheckoutEmptyCart(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	receipt, err := engine.Checkout(ctx, "John Doe", "john@example.com")
	assert.ErrorIs(t, err, model.ErrEmptyCart)
	assert.Nil(t, receipt)
	assert.Equal(t, 0, engine.Len())
}

func TestEngine_CheckoutMissingCustomerDetails(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	_, err := engine.Add(ctx, 1, 1)
	require.NoError(t, err)

	tests := []struct {
		name        string
		customer    string
		email       string
		expectedErr error
	}{
		{name: "Missing name", customer: "", email: "john@example.com", expectedErr: model.ErrMissingCustomerName},
		{name: "Missing email", customer: "John Doe", email: "", expectedErr: model.ErrMissingCustomerEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receipt, err := engine.Checkout(ctx, tt.customer, tt.email)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, receipt)

			// The failed checkout must leave the cart untouched.
			assert.Equal(t, 1, engine.Len())
		})
	}
}

func TestEngine_CheckoutTotalsAndClears(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	// Wireless Headphones 89.99 x 2, Leather Backpack 129.99 x 1.
	_, err := engine.Add(ctx, 1, 2)
	require.NoError(t, err)
	_, err = engine.Add(ctx, 2, 1)
	require.NoError(t, err)

	receipt, err := engine.Checkout(ctx, "John Doe", "john@example.com")
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.True(t, decimal.RequireFromString("309.97").Equal(receipt.Total),
		"expected total 309.97, got %s", receipt.Total)
	assert.Len(t, receipt.Items, 2)
	assert.Equal(t, "John Doe", receipt.CustomerName)
	assert.Equal(t, "john@example.com", receipt.CustomerEmail)
	assert.NotEmpty(t, receipt.OrderID)
	assert.False(t, receipt.Timestamp.IsZero())

	items, err := engine.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "cart must be empty after checkout")
}

func TestEngine_CheckoutOrderIDsUnique(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		_, err := engine.Add(ctx, 1, 1)
		require.NoError(t, err)

		receipt, err := engine.Checkout(ctx, "John Doe", "john@example.com")
		require.NoError(t, err)

		_, dup := seen[receipt.OrderID]
		assert.False(t, dup, "duplicate order id %s", receipt.OrderID)
		seen[receipt.OrderID] = struct{}{}
	}
}

func TestEngine_CheckoutUnresolvedProductContributesZero(t *testing.T) {
	ctx := context.Background()

	// Seed the catalogue without product 3, then inject a line item
	// referencing it through a store that still knows it at add time.
	fullStore := testStore()
	engine := NewEngine(fullStore, zerolog.Nop()).(*engine)

	_, err := engine.Add(ctx, 1, 2)
	require.NoError(t, err)
	_, err = engine.Add(ctx, 3, 4)
	require.NoError(t, err)

	// Swap in a catalogue missing product 3 to simulate the anomaly.
	engine.catalog = catalog.NewMemoryStore([]model.Product{
		{ID: 1, Name: "Wireless Headphones", Price: decimal.RequireFromString("89.99"), Category: "Electronics"},
	})

	receipt, err := engine.Checkout(ctx, "John Doe", "john@example.com")
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("179.98").Equal(receipt.Total),
		"unresolved product must contribute zero, got %s", receipt.Total)
	require.Len(t, receipt.Items, 2)
	assert.NotNil(t, receipt.Items[0].Product)
	assert.Nil(t, receipt.Items[1].Product)
}

func TestEngine_CheckoutFailureLeavesCartUntouched(t *testing.T) {
	ctx := context.Background()

	engine := NewEngine(testStore(), zerolog.Nop()).(*engine)
	_, err := engine.Add(ctx, 1, 1)
	require.NoError(t, err)

	// A catalogue failure while building the receipt must not clear
	// the cart.
	engine.catalog = brokenStore{}

	receipt, err := engine.Checkout(ctx, "John Doe", "john@example.com")
	assert.Error(t, err)
	assert.Nil(t, receipt)
	assert.Equal(t, 1, engine.Len())
}

func TestEngine_ItemsEnrichedWithProducts(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	_, err := engine.Add(ctx, 2, 3)
	require.NoError(t, err)

	items, err := engine.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Leather Backpack", items[0].Product.Name)
	assert.Equal(t, 2, items[0].Product.ID)
	assert.Equal(t, 3, items[0].Quantity)
}
