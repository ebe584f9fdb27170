// Package wishlist maintains the wishlist membership view. State is never
// mutated optimistically: every change round-trips to the upstream and the
// local view is replaced with the list the server returned.
package wishlist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shopgate/internal/domain"
)

// API is the slice of the upstream client the service needs.
type API interface {
	Wishlist(ctx context.Context, token string) ([]domain.WishlistEntry, error)
	AddWishlistProduct(ctx context.Context, token, productID string) ([]domain.WishlistEntry, error)
	RemoveWishlistProduct(ctx context.Context, token, productID string) ([]domain.WishlistEntry, error)
}

// List is a wishlist snapshot supporting membership checks over both entry
// shapes the upstream produces: bare identifiers and embedded products.
type List []domain.WishlistEntry

// Contains reports whether the product is in the list.
func (l List) Contains(productID string) bool {
	for _, entry := range l {
		if entry.ProductID == productID {
			return true
		}
		if entry.Product != nil && entry.Product.ID == productID {
			return true
		}
	}
	return false
}

// Service exposes wishlist reads and the toggle operation.
type Service struct {
	api    API
	logger *zap.Logger
}

func NewService(api API, logger *zap.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// List fetches the current wishlist.
func (s *Service) List(ctx context.Context, token string) (List, error) {
	entries, err := s.api.Wishlist(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	return List(entries), nil
}

// Toggle adds the product when absent and removes it when present, then
// returns the list the server confirmed. When the mutation is rejected the
// pre-toggle list is returned unchanged alongside the error, so the caller
// keeps a stale-but-consistent view.
func (s *Service) Toggle(ctx context.Context, token, productID string) (List, error) {
	current, err := s.api.Wishlist(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}

	var updated []domain.WishlistEntry
	if List(current).Contains(productID) {
		updated, err = s.api.RemoveWishlistProduct(ctx, token, productID)
	} else {
		updated, err = s.api.AddWishlistProduct(ctx, token, productID)
	}
	if err != nil {
		s.logger.Warn("Wishlist toggle rejected",
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return List(current), fmt.Errorf("toggle wishlist: %w", err)
	}
	return List(updated), nil
}
