package domain

import (
	"errors"
	"math"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity a line item can be stored with.
const MaxQuantity = math.MaxInt32

var (
	ErrPriceRequired = errors.New("unit price is required when adding a new item")
	ErrItemNotFound  = errors.New("item not found in cart")
)

// CartItem is one SKU line of a cart. SKU is the identity key within a cart,
// ID is informational only.
type CartItem struct {
	ID        uuid.UUID
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
}

// NewCartItem builds an item with a fresh ID. A zero unitPrice means the
// price was not supplied.
func NewCartItem(sku string, quantity int, unitPrice decimal.Decimal) CartItem {
	return CartItem{
		ID:        uuid.New(),
		SKU:       sku,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
}

// CartItemRecord is the stored shape of a cart item.
type CartItemRecord struct {
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
}

type Total struct {
	Quantity int
	Subtotal decimal.Decimal
}

// Cart is the aggregate for one session. Its items are only reachable through
// copies, so callers cannot bypass AddOrUpdateItem and RemoveItem.
type Cart struct {
	sessionID string
	items     []CartItem
}

func NewCart(sessionID string) *Cart {
	return &Cart{sessionID: sessionID}
}

// CartFromPersistence rebuilds a cart from stored records, keeping their order.
func CartFromPersistence(sessionID string, records []CartItemRecord) *Cart {
	cart := NewCart(sessionID)

	cart.items = make([]CartItem, 0, len(records))
	for _, r := range records {
		cart.items = append(cart.items, NewCartItem(r.SKU, r.Quantity, r.UnitPrice))
	}

	return cart
}

func (c *Cart) SessionID() string {
	return c.sessionID
}

// AddOrUpdateItem appends a new SKU or updates an existing one. For an
// existing SKU the quantity is replaced, not accumulated, and the price is
// replaced only when the new one is positive.
func (c *Cart) AddOrUpdateItem(item CartItem) error {
	i := c.indexOf(item.SKU)
	if i < 0 {
		if !item.UnitPrice.IsPositive() {
			return ErrPriceRequired
		}
		c.items = append(c.items, item)
		return nil
	}

	existing := &c.items[i]
	existing.Quantity = item.Quantity
	if item.UnitPrice.IsPositive() {
		existing.UnitPrice = item.UnitPrice
	}

	return nil
}

func (c *Cart) RemoveItem(sku string) error {
	i := c.indexOf(sku)
	if i < 0 {
		return ErrItemNotFound
	}

	c.items = slices.Delete(c.items, i, i+1)
	return nil
}

// Items returns a snapshot of the cart items.
func (c *Cart) Items() []CartItem {
	return slices.Clone(c.items)
}

// Records returns the items in their stored shape.
func (c *Cart) Records() []CartItemRecord {
	records := make([]CartItemRecord, 0, len(c.items))
	for _, item := range c.items {
		records = append(records, CartItemRecord{
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return records
}

func (c *Cart) Total() Total {
	total := Total{Subtotal: decimal.Zero}
	for _, item := range c.items {
		total.Quantity += item.Quantity
		total.Subtotal = total.Subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (c *Cart) indexOf(sku string) int {
	return slices.IndexFunc(c.items, func(item CartItem) bool {
		return item.SKU == sku
	})
}
