package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"shopgate/internal/domain"
)

// Cart fetches the authenticated user's authoritative cart.
func (c *Client) Cart(ctx context.Context, token string) (*domain.Cart, error) {
	var env struct {
		Cart cartWire `json:"cart"`
	}
	if err := c.do(ctx, http.MethodGet, "/cart/get", token, nil, &env); err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}
	return env.Cart.toDomain(), nil
}

// AddCartItem adds a product line with the price snapshotted at add time.
func (c *Client) AddCartItem(ctx context.Context, token, productID string, price decimal.Decimal, quantity int) error {
	body := map[string]any{
		"product":  productID,
		"price":    price,
		"quantity": quantity,
	}
	if err := c.do(ctx, http.MethodPost, "/cart/add", token, body, nil); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// UpdateCartItem sets a line's quantity. The upstream is the authority on
// stock limits; the gateway only guards the lower bound.
func (c *Client) UpdateCartItem(ctx context.Context, token, itemID string, quantity int) error {
	body := map[string]any{
		"product":  itemID,
		"quantity": quantity,
	}
	if err := c.do(ctx, http.MethodPut, "/cart/update", token, body, nil); err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

// RemoveCartItem deletes a line from the cart.
func (c *Client) RemoveCartItem(ctx context.Context, token, itemID string) error {
	body := map[string]any{"product": itemID}
	if err := c.do(ctx, http.MethodDelete, "/cart/delete", token, body, nil); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// ApplyCoupon submits a coupon code and returns the cart the upstream
// produced, discounted total included when the coupon was accepted.
func (c *Client) ApplyCoupon(ctx context.Context, token, code string) (*domain.Cart, error) {
	body := map[string]any{"code": code}
	var env struct {
		Cart cartWire `json:"cart"`
	}
	if err := c.do(ctx, http.MethodPost, "/cart/applyCoupon", token, body, &env); err != nil {
		return nil, fmt.Errorf("apply coupon: %w", err)
	}
	return env.Cart.toDomain(), nil
}
