package port

import (
	"context"

	"github.com/nikolayk812/cart-service/internal/domain"
	"github.com/nikolayk812/cart-service/internal/result"
)

// ProductCatalog reports whether a SKU exists. The result fails both for an
// unknown SKU and for a lookup error.
type ProductCatalog interface {
	FindByID(ctx context.Context, sku string) result.Result[domain.Product]
}
