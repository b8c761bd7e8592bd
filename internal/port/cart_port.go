package port

import (
	"context"

	"github.com/nikolayk812/cart-service/internal/domain"
)

// CartStore persists cart aggregates keyed by session ID.
type CartStore interface {
	// FindBySessionID returns nil, nil when the session has no cart.
	FindBySessionID(ctx context.Context, sessionID string) (*domain.Cart, error)
	// Save inserts the cart or replaces the items of the stored one.
	Save(ctx context.Context, cart *domain.Cart) error
	// Delete is a no-op for an unknown session.
	Delete(ctx context.Context, sessionID string) error
}
