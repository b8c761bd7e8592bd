package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nikolayk812/cart-service/internal/domain"
	"github.com/nikolayk812/cart-service/internal/logging"
	"github.com/nikolayk812/cart-service/internal/port"
	"github.com/nikolayk812/cart-service/internal/result"
	"github.com/shopspring/decimal"
)

// Failure messages surfaced to clients.
const (
	MsgInvalidSession      = "invalid or missing session"
	MsgInvalidSessionOrSKU = "invalid session or SKU"
	MsgInvalidQuantity     = "quantity must be between 1 and 2147483647"
	MsgCartNotFound        = "cart not found"
	MsgLoadCartFailed      = "unknown error loading cart"
	MsgAddItemFailed       = "unknown error adding item to cart"
	MsgRemoveItemFailed    = "unknown error removing item from cart"
)

type CartItemOutput struct {
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CartOutput is the flat view of a cart returned by every use case.
type CartOutput struct {
	SessionID  string           `json:"sessionId"`
	Items      []CartItemOutput `json:"items"`
	TotalItems int              `json:"totalItems"`
	TotalValue decimal.Decimal  `json:"totalValue"`
}

func toCartOutput(cart *domain.Cart) CartOutput {
	items := cart.Items()
	total := cart.Total()

	out := CartOutput{
		SessionID:  cart.SessionID(),
		Items:      make([]CartItemOutput, 0, len(items)),
		TotalItems: total.Quantity,
		TotalValue: total.Subtotal,
	}

	for _, item := range items {
		out.Items = append(out.Items, CartItemOutput{
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return out
}

// mutationFailure maps an aggregate rejection to a failed result. Errors the
// aggregate does not define get the fallback message.
func mutationFailure[T any](err error, fallback string) result.Result[T] {
	switch {
	case errors.Is(err, domain.ErrPriceRequired), errors.Is(err, domain.ErrItemNotFound):
		return result.Fail[T](err.Error())
	default:
		return result.FailWithCode[T](result.CodeInternal, fallback)
	}
}

func internalFailure[T any](ctx context.Context, op string, err error, sessionID, msg string) result.Result[T] {
	logging.FromContext(ctx).ErrorContext(ctx, op+" failed",
		slog.String("session_id", sessionID),
		slog.Any("error", err),
	)
	return result.FailWithCode[T](result.CodeInternal, msg)
}

// failureAs carries a failure over to another result type.
func failureAs[T any](o result.Outcome) result.Result[T] {
	return result.FailWithCode[T](o.Code(), o.Error())
}

func publish(ctx context.Context, events port.EventPublisher, event domain.CartEvent) {
	if events == nil {
		return
	}

	if err := events.Publish(ctx, event); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "events.Publish failed",
			slog.String("type", event.Type),
			slog.String("session_id", event.SessionID),
			slog.Any("error", err),
		)
	}
}

func newCartEvent(eventType string, cart *domain.Cart, item domain.CartItem, now time.Time) domain.CartEvent {
	total := cart.Total()

	return domain.CartEvent{
		Type:       eventType,
		SessionID:  cart.SessionID(),
		SKU:        item.SKU,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		TotalItems: total.Quantity,
		TotalValue: total.Subtotal,
		OccurredAt: now.UTC(),
	}
}
