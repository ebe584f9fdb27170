package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line snapshot taken when the order was created.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is derived from the snapshotted price and quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is immutable once created by the upstream API.
type Order struct {
	ID              string          `json:"id"`
	Items           []OrderItem     `json:"items"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	ShippingAddress Address         `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
}
