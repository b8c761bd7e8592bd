package usecase

import (
	"context"

	"github.com/nikolayk812/cart-service/internal/port"
	"github.com/nikolayk812/cart-service/internal/result"
)

type GetCart struct {
	carts port.CartStore
}

func NewGetCart(carts port.CartStore) *GetCart {
	return &GetCart{carts: carts}
}

// Execute reads the session's cart. It never creates one.
func (u *GetCart) Execute(ctx context.Context, sessionID string) result.Result[CartOutput] {
	if sessionID == "" {
		return result.Fail[CartOutput](MsgInvalidSession)
	}

	cart, err := u.carts.FindBySessionID(ctx, sessionID)
	if err != nil {
		return internalFailure[CartOutput](ctx, "carts.FindBySessionID", err, sessionID, MsgLoadCartFailed)
	}
	if cart == nil {
		return result.FailWithCode[CartOutput](result.CodeNotFound, MsgCartNotFound)
	}

	return result.Ok(toCartOutput(cart))
}
