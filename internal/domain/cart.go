package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one row of the cart: a product captured at first add, its size and quantity.
type LineItem struct {
	Product
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}

// LineTotal returns price * quantity for the line.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Snapshot is the fully materialized state of a cart at one point in time.
type Snapshot struct {
	Items     []LineItem      `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}

// IsEmpty reports whether the snapshot holds no lines.
func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// Receipt describes what a checkout flushed out of the cart.
type Receipt struct {
	OrderID     string          `json:"order_id"`
	Items       []LineItem      `json:"items"`
	ItemCount   int             `json:"item_count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Shipping    decimal.Decimal `json:"shipping"`
	Total       decimal.Decimal `json:"total"`
	Message     string          `json:"message"`
	ConfirmedAt time.Time       `json:"confirmed_at"`
}
