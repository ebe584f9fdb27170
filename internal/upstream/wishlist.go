package upstream

import (
	"context"
	"fmt"
	"net/http"

	"shopgate/internal/domain"
)

// Wishlist fetches the authenticated user's wishlist. Depending on the
// upstream endpoint the collection holds bare identifiers or embedded
// products; both decode into WishlistEntry.
func (c *Client) Wishlist(ctx context.Context, token string) ([]domain.WishlistEntry, error) {
	var env struct {
		WishList []productRef `json:"wishList"`
	}
	if err := c.do(ctx, http.MethodGet, "/wishlist/get", token, nil, &env); err != nil {
		return nil, fmt.Errorf("fetch wishlist: %w", err)
	}
	return wishlistToDomain(env.WishList), nil
}

// AddWishlistProduct adds a product and returns the server's resulting list.
func (c *Client) AddWishlistProduct(ctx context.Context, token, productID string) ([]domain.WishlistEntry, error) {
	body := map[string]any{"product": productID}
	var env struct {
		WishList []productRef `json:"wishList"`
	}
	if err := c.do(ctx, http.MethodPatch, "/wishlist/add", token, body, &env); err != nil {
		return nil, fmt.Errorf("add wishlist product: %w", err)
	}
	return wishlistToDomain(env.WishList), nil
}

// RemoveWishlistProduct removes a product and returns the server's resulting list.
func (c *Client) RemoveWishlistProduct(ctx context.Context, token, productID string) ([]domain.WishlistEntry, error) {
	body := map[string]any{"product": productID}
	var env struct {
		WishList []productRef `json:"wishList"`
	}
	if err := c.do(ctx, http.MethodDelete, "/wishlist/delete", token, body, &env); err != nil {
		return nil, fmt.Errorf("remove wishlist product: %w", err)
	}
	return wishlistToDomain(env.WishList), nil
}
