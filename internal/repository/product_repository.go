package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cart-service/internal/db"
	"github.com/nikolayk812/cart-service/internal/domain"
	"github.com/nikolayk812/cart-service/internal/result"
)

// ProductRepository is the Postgres backed product catalog.
type ProductRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) (*ProductRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &ProductRepository{q: db.New(pool)}, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, sku string) result.Result[domain.Product] {
	if sku == "" {
		return result.Fail[domain.Product]("sku is empty")
	}

	row, err := r.q.GetProduct(ctx, sku)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result.FailWithCode[domain.Product](result.CodeNotFound, fmt.Sprintf("product %s not found", sku))
		}
		return result.FailWithCode[domain.Product](result.CodeInternal, fmt.Sprintf("q.GetProduct: %v", err))
	}

	product, err := mapProductRowToDomain(row)
	if err != nil {
		return result.FailWithCode[domain.Product](result.CodeInternal, fmt.Sprintf("mapProductRowToDomain: %v", err))
	}

	return result.Ok(product)
}

func (r *ProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	if product.SKU == "" {
		return fmt.Errorf("sku is empty")
	}

	err := r.q.UpsertProduct(ctx, db.UpsertProductParams{
		Sku:           product.SKU,
		Name:          product.Name,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
	})
	if err != nil {
		return fmt.Errorf("q.UpsertProduct: %w", err)
	}

	return nil
}

func mapProductRowToDomain(row db.Product) (domain.Product, error) {
	price, err := domain.NewMoney(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("domain.NewMoney: %w", err)
	}

	return domain.Product{
		SKU:   row.Sku,
		Name:  row.Name,
		Price: price,
	}, nil
}
