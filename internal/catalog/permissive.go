// Package catalog holds product catalogs that need no storage.
package catalog

import (
	"context"

	"github.com/nikolayk812/cart-service/internal/domain"
	"github.com/nikolayk812/cart-service/internal/result"
)

// Permissive reports every non-empty SKU as an existing product. It stands in
// for an external catalog service during development.
type Permissive struct{}

func (Permissive) FindByID(_ context.Context, sku string) result.Result[domain.Product] {
	if sku == "" {
		return result.Fail[domain.Product]("sku is empty")
	}

	return result.Ok(domain.Product{SKU: sku, Name: sku})
}
