package domain

import (
	"github.com/shopspring/decimal"
)

// CartItem is a single cart line. Price is snapshotted at add time and may
// differ from the product's current catalog price.
type CartItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Product   *Product        `json:"product,omitempty"` // nil when the upstream returns a bare reference
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is always derived, never stored.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart mirrors the authoritative cart held by the upstream API.
type Cart struct {
	ID              string           `json:"id"`
	Items           []CartItem       `json:"items"`
	TotalPrice      decimal.Decimal  `json:"total_price"`
	DiscountedTotal *decimal.Decimal `json:"discounted_total,omitempty"`
}

// Discount returns the active discount amount. A discounted total only counts
// as active when it is non-negative and strictly below the undiscounted total.
func (c *Cart) Discount() (decimal.Decimal, bool) {
	if c.DiscountedTotal == nil {
		return decimal.Zero, false
	}
	d := *c.DiscountedTotal
	if d.IsNegative() || d.GreaterThanOrEqual(c.TotalPrice) {
		return decimal.Zero, false
	}
	return c.TotalPrice.Sub(d), true
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Address is the shipping address collected at checkout. All fields are
// required and must be non-blank before either order path proceeds.
type Address struct {
	Street string `json:"street" validate:"required"`
	City   string `json:"city" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
}
