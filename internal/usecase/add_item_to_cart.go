package usecase

import (
	"context"
	"time"

	"github.com/nikolayk812/cart-service/internal/domain"
	"github.com/nikolayk812/cart-service/internal/port"
	"github.com/nikolayk812/cart-service/internal/result"
	"github.com/shopspring/decimal"
)

// AddItemInput is the requested line. A zero UnitPrice keeps the stored price
// of an existing item.
type AddItemInput struct {
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
}

type AddItemToCart struct {
	carts    port.CartStore
	products port.ProductCatalog
	events   port.EventPublisher
	locks    *SessionLocks
	now      func() time.Time
}

func NewAddItemToCart(carts port.CartStore, products port.ProductCatalog, events port.EventPublisher, locks *SessionLocks) *AddItemToCart {
	return &AddItemToCart{
		carts:    carts,
		products: products,
		events:   events,
		locks:    locks,
		now:      time.Now,
	}
}

// Execute adds the item to the session's cart, creating the cart on first use.
func (u *AddItemToCart) Execute(ctx context.Context, sessionID string, in AddItemInput) result.Result[CartOutput] {
	if sessionID == "" {
		return result.Fail[CartOutput](MsgInvalidSession)
	}
	if in.Quantity < 1 || in.Quantity > domain.MaxQuantity {
		return result.Fail[CartOutput](MsgInvalidQuantity)
	}

	if product := u.products.FindByID(ctx, in.SKU); product.IsFailure() {
		return result.Failf[CartOutput]("product %s does not exist", in.SKU)
	}

	saved := u.save(ctx, sessionID, in)
	if saved.IsFailure() {
		return failureAs[CartOutput](saved)
	}
	cart := saved.Value()

	// outside the session lock, a slow broker must not queue the session's writes
	publish(ctx, u.events, newCartEvent(domain.EventItemUpserted, cart, storedItem(cart, in.SKU), u.now()))

	return result.Ok(toCartOutput(cart))
}

// save loads, mutates and saves the cart while holding the session lock.
func (u *AddItemToCart) save(ctx context.Context, sessionID string, in AddItemInput) result.Result[*domain.Cart] {
	unlock := u.locks.Lock(sessionID)
	defer unlock()

	cart, err := u.carts.FindBySessionID(ctx, sessionID)
	if err != nil {
		return internalFailure[*domain.Cart](ctx, "carts.FindBySessionID", err, sessionID, MsgLoadCartFailed)
	}
	if cart == nil {
		cart = domain.NewCart(sessionID)
	}

	item := domain.NewCartItem(in.SKU, in.Quantity, in.UnitPrice)
	if err := cart.AddOrUpdateItem(item); err != nil {
		return mutationFailure[*domain.Cart](err, MsgAddItemFailed)
	}

	if err := u.carts.Save(ctx, cart); err != nil {
		return internalFailure[*domain.Cart](ctx, "carts.Save", err, sessionID, MsgAddItemFailed)
	}

	return result.Ok(cart)
}

// storedItem returns the item as the cart holds it after the update.
func storedItem(cart *domain.Cart, sku string) domain.CartItem {
	for _, item := range cart.Items() {
		if item.SKU == sku {
			return item
		}
	}
	return domain.CartItem{SKU: sku}
}
