package upstream

import (
	"context"
	"fmt"
	"net/http"

	"shopgate/internal/domain"
)

func addressBody(addr domain.Address) map[string]any {
	return map[string]any{
		"street": addr.Street,
		"city":   addr.City,
		"phone":  addr.Phone,
	}
}

// CreateOrder places a cash order for the given cart.
func (c *Client) CreateOrder(ctx context.Context, token, cartID string, addr domain.Address) error {
	path := "/order/create/" + cartID
	if err := c.do(ctx, http.MethodPost, path, token, addressBody(addr), nil); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// CreateCheckoutSession asks the upstream to open a hosted-payment session
// for the cart and returns the session identifier.
func (c *Client) CreateCheckoutSession(ctx context.Context, token, cartID string, addr domain.Address) (string, error) {
	path := "/order/checkout/" + cartID
	var env struct {
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
	}
	if err := c.do(ctx, http.MethodPost, path, token, addressBody(addr), &env); err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	if env.Session.ID == "" {
		return "", fmt.Errorf("create checkout session: upstream returned no session id")
	}
	return env.Session.ID, nil
}

// Orders fetches the authenticated user's order history.
func (c *Client) Orders(ctx context.Context, token string) ([]domain.Order, error) {
	var env struct {
		Orders []orderWire `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/order/history", token, nil, &env); err != nil {
		return nil, fmt.Errorf("fetch order history: %w", err)
	}

	orders := make([]domain.Order, 0, len(env.Orders))
	for _, w := range env.Orders {
		orders = append(orders, w.toDomain())
	}
	return orders, nil
}
