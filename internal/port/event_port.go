package port

import (
	"context"

	"github.com/nikolayk812/cart-service/internal/domain"
)

type EventPublisher interface {
	Publish(ctx context.Context, event domain.CartEvent) error
}
