package upstream

import (
	"context"
	"fmt"
	"net/http"

	"shopgate/internal/domain"
)

// Products fetches the full product collection. The upstream does no
// filtering or pagination for this client; the whole catalog arrives at once.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var env struct {
		Products []productWire `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/product/get", "", nil, &env); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	products := make([]domain.Product, 0, len(env.Products))
	for _, w := range env.Products {
		products = append(products, w.toDomain())
	}
	return products, nil
}

// Categories fetches the category reference data.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var env struct {
		Categories []categoryWire `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/category/get", "", nil, &env); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(env.Categories))
	for _, w := range env.Categories {
		categories = append(categories, w.toDomain())
	}
	return categories, nil
}
