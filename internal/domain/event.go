package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventItemUpserted = "cart.item_upserted"
	EventItemRemoved  = "cart.item_removed"
)

// CartEvent is published after a cart change has been saved.
type CartEvent struct {
	Type       string          `json:"type"`
	SessionID  string          `json:"session_id"`
	SKU        string          `json:"sku"`
	Quantity   int             `json:"quantity,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalItems int             `json:"total_items"`
	TotalValue decimal.Decimal `json:"total_value"`
	OccurredAt time.Time       `json:"occurred_at"`
}
