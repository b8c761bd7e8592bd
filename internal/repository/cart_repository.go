package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cart-service/internal/db"
	"github.com/nikolayk812/cart-service/internal/domain"
	"github.com/nikolayk812/cart-service/internal/port"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) (port.CartStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewCartWithTx(tx pgx.Tx) port.CartStore {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID is empty")
	}

	// one statement, so a concurrent Delete can't leave a cart row without its items
	rows, err := r.q.GetCartWithItems(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("q.GetCartWithItems: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return domain.CartFromPersistence(sessionID, mapCartItemRowsToDomain(rows)), nil
}

// Save upserts the cart row and replaces all of its items in one transaction.
// The upsert locks the cart row, so concurrent saves of one session serialize.
func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	if cart == nil {
		return fmt.Errorf("cart is nil")
	}

	sessionID := cart.SessionID()
	if sessionID == "" {
		return fmt.Errorf("sessionID is empty")
	}

	err := execTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		if err := q.UpsertCart(ctx, sessionID); err != nil {
			return fmt.Errorf("q.UpsertCart: %w", err)
		}

		if err := q.DeleteCartItems(ctx, sessionID); err != nil {
			return fmt.Errorf("q.DeleteCartItems: %w", err)
		}

		for i, record := range cart.Records() {
			if record.Quantity < 1 || record.Quantity > domain.MaxQuantity {
				return fmt.Errorf("quantity[%d] of %s is out of range", record.Quantity, record.SKU)
			}

			err := q.AddCartItem(ctx, db.AddCartItemParams{
				SessionID: sessionID,
				Position:  int32(i),
				Sku:       record.SKU,
				Quantity:  int32(record.Quantity),
				UnitPrice: record.UnitPrice,
			})
			if err != nil {
				return fmt.Errorf("q.AddCartItem[%s]: %w", record.SKU, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("execTx: %w", err)
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is empty")
	}

	// items go with the cart row via ON DELETE CASCADE
	if _, err := r.q.DeleteCart(ctx, sessionID); err != nil {
		return fmt.Errorf("q.DeleteCart: %w", err)
	}

	return nil
}

// mapCartItemRowsToDomain skips the all-NULL item row of a cart without items.
func mapCartItemRowsToDomain(rows []db.GetCartWithItemsRow) []domain.CartItemRecord {
	records := make([]domain.CartItemRecord, 0, len(rows))

	for _, row := range rows {
		if !row.Sku.Valid {
			continue
		}
		records = append(records, domain.CartItemRecord{
			SKU:       row.Sku.String,
			Quantity:  int(row.Quantity.Int32),
			UnitPrice: row.UnitPrice.Decimal,
		})
	}

	return records
}
