package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nikolayk812/cart-service/internal/domain"
	"github.com/nikolayk812/cart-service/internal/result"
	"github.com/nikolayk812/cart-service/internal/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemToCart_Scenario(t *testing.T) {
	ctx := t.Context()

	store := newMemoryStore()
	events := &recordingPublisher{}
	uc := usecase.NewAddItemToCart(store, knownSKUs("A", "B"), events, usecase.NewSessionLocks())

	// first add creates the cart
	r := uc.Execute(ctx, "s1", usecase.AddItemInput{SKU: "A", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")})
	require.True(t, r.IsSuccess(), r.Error())
	assertOutput(t, r.Value(), "s1", 2, "20.00", item("A", 2, "10.00"))

	// zero price keeps the stored price
	r = uc.Execute(ctx, "s1", usecase.AddItemInput{SKU: "A", Quantity: 5})
	require.True(t, r.IsSuccess(), r.Error())
	assertOutput(t, r.Value(), "s1", 5, "50.00", item("A", 5, "10.00"))

	r = uc.Execute(ctx, "s1", usecase.AddItemInput{SKU: "B", Quantity: 1, UnitPrice: decimal.RequireFromString("3.25")})
	require.True(t, r.IsSuccess(), r.Error())
	assertOutput(t, r.Value(), "s1", 6, "53.25", item("A", 5, "10.00"), item("B", 1, "3.25"))

	got := events.published()
	require.Len(t, got, 3)
	for _, e := range got {
		assert.Equal(t, domain.EventItemUpserted, e.Type)
		assert.Equal(t, "s1", e.SessionID)
		assert.False(t, e.OccurredAt.IsZero())
	}
	assert.Equal(t, "A", got[1].SKU)
	assert.True(t, decimal.RequireFromString("10.00").Equal(got[1].UnitPrice))
	assert.Equal(t, 6, got[2].TotalItems)
}

func TestAddItemToCart_Failures(t *testing.T) {
	loadErr := errors.New("connection refused")

	tests := []struct {
		name             string
		sessionID        string
		input            usecase.AddItemInput
		catalog          catalogFunc
		findErr          error
		saveErr          error
		wantErr          string
		wantCode         string
		wantCatalogCalls int
	}{
		{
			name:      "empty session",
			sessionID: "",
			input:     usecase.AddItemInput{SKU: "A", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
			wantErr:   usecase.MsgInvalidSession,
			wantCode:  result.CodeInvalid,
		},
		{
			name:      "zero quantity",
			sessionID: "s1",
			input:     usecase.AddItemInput{SKU: "A", Quantity: 0, UnitPrice: decimal.NewFromInt(1)},
			wantErr:   usecase.MsgInvalidQuantity,
			wantCode:  result.CodeInvalid,
		},
		{
			name:      "quantity above storage range",
			sessionID: "s1",
			input:     usecase.AddItemInput{SKU: "A", Quantity: domain.MaxQuantity + 1, UnitPrice: decimal.NewFromInt(1)},
			wantErr:   usecase.MsgInvalidQuantity,
			wantCode:  result.CodeInvalid,
		},
		{
			name:             "unknown product",
			sessionID:        "s1",
			input:            usecase.AddItemInput{SKU: "X", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
			wantErr:          "product X does not exist",
			wantCode:         result.CodeInvalid,
			wantCatalogCalls: 1,
		},
		{
			name:      "catalog lookup error",
			sessionID: "s1",
			input:     usecase.AddItemInput{SKU: "A", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
			catalog: func(context.Context, string) result.Result[domain.Product] {
				return result.FailWithCode[domain.Product](result.CodeInternal, "connection reset")
			},
			wantErr:          "product A does not exist",
			wantCode:         result.CodeInvalid,
			wantCatalogCalls: 1,
		},
		{
			name:             "new item without price creates no cart",
			sessionID:        "s1",
			input:            usecase.AddItemInput{SKU: "A", Quantity: 1},
			wantErr:          domain.ErrPriceRequired.Error(),
			wantCode:         result.CodeInvalid,
			wantCatalogCalls: 1,
		},
		{
			name:             "load error",
			sessionID:        "s1",
			input:            usecase.AddItemInput{SKU: "A", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
			findErr:          loadErr,
			wantErr:          usecase.MsgLoadCartFailed,
			wantCode:         result.CodeInternal,
			wantCatalogCalls: 1,
		},
		{
			name:             "save error",
			sessionID:        "s1",
			input:            usecase.AddItemInput{SKU: "A", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
			saveErr:          errors.New("deadlock detected"),
			wantErr:          usecase.MsgAddItemFailed,
			wantCode:         result.CodeInternal,
			wantCatalogCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			store.findErr = tt.findErr
			store.saveErr = tt.saveErr
			events := &recordingPublisher{}

			next := tt.catalog
			if next == nil {
				next = knownSKUs("A")
			}
			products := &countingCatalog{next: next}

			uc := usecase.NewAddItemToCart(store, products, events, nil)

			r := uc.Execute(t.Context(), tt.sessionID, tt.input)

			require.True(t, r.IsFailure())
			assert.Equal(t, tt.wantErr, r.Error())
			assert.Equal(t, tt.wantCode, r.Code())
			assert.Equal(t, 0, store.saves)
			assert.False(t, store.has(tt.sessionID))
			assert.Empty(t, events.published())
			assert.Equal(t, tt.wantCatalogCalls, products.count())
		})
	}
}

func TestAddItemToCart_LargestQuantity(t *testing.T) {
	store := newMemoryStore()
	uc := usecase.NewAddItemToCart(store, knownSKUs("A"), nil, nil)

	r := uc.Execute(t.Context(), "s1", usecase.AddItemInput{SKU: "A", Quantity: domain.MaxQuantity, UnitPrice: decimal.NewFromInt(1)})

	require.True(t, r.IsSuccess(), r.Error())
	assert.Equal(t, domain.MaxQuantity, r.Value().TotalItems)

	cart, err := store.FindBySessionID(t.Context(), "s1")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, domain.MaxQuantity, cart.Items()[0].Quantity)
}

func TestAddItemToCart_PublishesOutsideSessionLock(t *testing.T) {
	locks := usecase.NewSessionLocks()

	var lockFree bool
	events := publisherFunc(func(_ context.Context, event domain.CartEvent) error {
		lockFree = sessionLockFree(locks, event.SessionID)
		return nil
	})

	uc := usecase.NewAddItemToCart(newMemoryStore(), knownSKUs("A"), events, locks)
	r := uc.Execute(t.Context(), "s1", usecase.AddItemInput{SKU: "A", Quantity: 1, UnitPrice: decimal.NewFromInt(2)})

	require.True(t, r.IsSuccess(), r.Error())
	assert.True(t, lockFree, "session lock held while publishing")
}

// sessionLockFree reports whether the session lock can be taken right away.
func sessionLockFree(locks *usecase.SessionLocks, sessionID string) bool {
	acquired := make(chan struct{})
	go func() {
		locks.Lock(sessionID)()
		close(acquired)
	}()

	select {
	case <-acquired:
		return true
	case <-time.After(time.Second):
		return false
	}
}

func TestAddItemToCart_PublishErrorIgnored(t *testing.T) {
	store := newMemoryStore()
	events := &recordingPublisher{err: errors.New("broker down")}
	uc := usecase.NewAddItemToCart(store, knownSKUs("A"), events, nil)

	r := uc.Execute(t.Context(), "s1", usecase.AddItemInput{SKU: "A", Quantity: 1, UnitPrice: decimal.NewFromInt(4)})

	require.True(t, r.IsSuccess(), r.Error())
	assert.True(t, store.has("s1"))
	assert.Len(t, events.published(), 1)
}

func TestAddItemToCart_NilPublisher(t *testing.T) {
	uc := usecase.NewAddItemToCart(newMemoryStore(), knownSKUs("A"), nil, nil)

	r := uc.Execute(t.Context(), "s1", usecase.AddItemInput{SKU: "A", Quantity: 1, UnitPrice: decimal.NewFromInt(4)})

	assert.True(t, r.IsSuccess(), r.Error())
}

func item(sku string, qty int, price string) usecase.CartItemOutput {
	return usecase.CartItemOutput{SKU: sku, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func assertOutput(t *testing.T, out usecase.CartOutput, sessionID string, totalItems int, totalValue string, items ...usecase.CartItemOutput) {
	t.Helper()

	assert.Equal(t, sessionID, out.SessionID)
	assert.Equal(t, totalItems, out.TotalItems)
	assert.True(t, decimal.RequireFromString(totalValue).Equal(out.TotalValue), "totalValue: want %s, got %s", totalValue, out.TotalValue)

	require.Len(t, out.Items, len(items))
	for i := range items {
		assert.Equal(t, items[i].SKU, out.Items[i].SKU)
		assert.Equal(t, items[i].Quantity, out.Items[i].Quantity)
		assert.True(t, items[i].UnitPrice.Equal(out.Items[i].UnitPrice), "%s: want %s, got %s", items[i].SKU, items[i].UnitPrice, out.Items[i].UnitPrice)
	}
}
