package usecase

import (
	"context"
	"time"

	"github.com/nikolayk812/cart-service/internal/domain"
	"github.com/nikolayk812/cart-service/internal/port"
	"github.com/nikolayk812/cart-service/internal/result"
)

type RemoveItemFromCart struct {
	carts  port.CartStore
	events port.EventPublisher
	locks  *SessionLocks
	now    func() time.Time
}

func NewRemoveItemFromCart(carts port.CartStore, events port.EventPublisher, locks *SessionLocks) *RemoveItemFromCart {
	return &RemoveItemFromCart{
		carts:  carts,
		events: events,
		locks:  locks,
		now:    time.Now,
	}
}

type removal struct {
	cart *domain.Cart
	item domain.CartItem
}

func (u *RemoveItemFromCart) Execute(ctx context.Context, sessionID, sku string) result.Result[CartOutput] {
	if sessionID == "" || sku == "" {
		return result.Fail[CartOutput](MsgInvalidSessionOrSKU)
	}

	saved := u.save(ctx, sessionID, sku)
	if saved.IsFailure() {
		return failureAs[CartOutput](saved)
	}
	r := saved.Value()

	publish(ctx, u.events, newCartEvent(domain.EventItemRemoved, r.cart, r.item, u.now()))

	return result.Ok(toCartOutput(r.cart))
}

// save loads the cart, removes the item and saves it while holding the
// session lock.
func (u *RemoveItemFromCart) save(ctx context.Context, sessionID, sku string) result.Result[removal] {
	unlock := u.locks.Lock(sessionID)
	defer unlock()

	cart, err := u.carts.FindBySessionID(ctx, sessionID)
	if err != nil {
		return internalFailure[removal](ctx, "carts.FindBySessionID", err, sessionID, MsgLoadCartFailed)
	}
	if cart == nil {
		return result.FailWithCode[removal](result.CodeNotFound, MsgCartNotFound)
	}

	item := storedItem(cart, sku)
	if err := cart.RemoveItem(sku); err != nil {
		return mutationFailure[removal](err, MsgRemoveItemFailed)
	}

	if err := u.carts.Save(ctx, cart); err != nil {
		return internalFailure[removal](ctx, "carts.Save", err, sessionID, MsgRemoveItemFailed)
	}

	return result.Ok(removal{cart: cart, item: item})
}
