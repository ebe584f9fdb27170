// Package checkout drives the cart and order flow. The upstream cart is
// authoritative: every mutation ends by refetching it, and a rejected coupon
// is resynchronized away so displayed totals never reflect a discount the
// upstream refused.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopgate/internal/domain"
	"shopgate/internal/payments"
)

var (
	// ErrQuantityTooLow rejects quantity updates below 1 before any request
	// is issued.
	ErrQuantityTooLow = errors.New("quantity must be at least 1")

	// ErrAddressIncomplete blocks both order paths when street, city or
	// phone is empty or blank. No request is issued.
	ErrAddressIncomplete = errors.New("please fill all shipping address fields")

	// ErrCheckoutInFlight guards against double submission: one checkout per
	// session at a time, covering both the cash and the card path.
	ErrCheckoutInFlight = errors.New("a checkout is already in progress")
)

// CommerceAPI is the slice of the upstream client the service needs.
type CommerceAPI interface {
	Cart(ctx context.Context, token string) (*domain.Cart, error)
	AddCartItem(ctx context.Context, token, productID string, price decimal.Decimal, quantity int) error
	UpdateCartItem(ctx context.Context, token, itemID string, quantity int) error
	RemoveCartItem(ctx context.Context, token, itemID string) error
	ApplyCoupon(ctx context.Context, token, code string) (*domain.Cart, error)
	CreateOrder(ctx context.Context, token, cartID string, addr domain.Address) error
	CreateCheckoutSession(ctx context.Context, token, cartID string, addr domain.Address) (string, error)
}

// Service implements the cart/checkout flow for one gateway.
type Service struct {
	api      CommerceAPI
	payments payments.Resolver
	logger   *zap.Logger
	inflight *inflightGuard
}

func NewService(api CommerceAPI, resolver payments.Resolver, logger *zap.Logger) *Service {
	return &Service{
		api:      api,
		payments: resolver,
		logger:   logger,
		inflight: newInflightGuard(),
	}
}

// Cart returns the authoritative cart.
func (s *Service) Cart(ctx context.Context, token string) (*domain.Cart, error) {
	return s.api.Cart(ctx, token)
}

// AddItem adds a product line, snapshotting the unit price, then refetches.
func (s *Service) AddItem(ctx context.Context, token, productID string, price decimal.Decimal, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrQuantityTooLow
	}
	if err := s.api.AddCartItem(ctx, token, productID, price, quantity); err != nil {
		return nil, err
	}
	return s.api.Cart(ctx, token)
}

// UpdateQuantity sets a line's quantity and refetches the cart. Values below
// 1 are rejected locally with no request; the upper bound is left to the
// upstream, which owns stock limits.
func (s *Service) UpdateQuantity(ctx context.Context, token, itemID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrQuantityTooLow
	}
	if err := s.api.UpdateCartItem(ctx, token, itemID, quantity); err != nil {
		return nil, err
	}
	return s.api.Cart(ctx, token)
}

// RemoveItem deletes a line and refetches the cart.
func (s *Service) RemoveItem(ctx context.Context, token, itemID string) (*domain.Cart, error) {
	if err := s.api.RemoveCartItem(ctx, token, itemID); err != nil {
		return nil, err
	}
	return s.api.Cart(ctx, token)
}

// ApplyCoupon submits the code and merges the upstream's returned cart. When
// the coupon is rejected the cart is refetched so the caller never holds a
// cart carrying the rejected discount; the resynchronized cart is returned
// together with the rejection.
func (s *Service) ApplyCoupon(ctx context.Context, token, code string) (*domain.Cart, error) {
	cart, err := s.api.ApplyCoupon(ctx, token, code)
	if err == nil {
		return cart, nil
	}

	resynced, refetchErr := s.api.Cart(ctx, token)
	if refetchErr != nil {
		s.logger.Error("Cart resync after rejected coupon failed", zap.Error(refetchErr))
		return nil, fmt.Errorf("resync cart after rejected coupon: %w", refetchErr)
	}
	return resynced, err
}

// PlaceCashOrder submits a cash order for the cart. The shipping address is
// validated before any request leaves the gateway.
func (s *Service) PlaceCashOrder(ctx context.Context, token, sessionID, cartID string, addr domain.Address) error {
	if err := validateAddress(addr); err != nil {
		return err
	}
	if !s.inflight.begin(sessionID) {
		return ErrCheckoutInFlight
	}
	defer s.inflight.end(sessionID)

	if err := s.api.CreateOrder(ctx, token, cartID, addr); err != nil {
		return err
	}
	s.logger.Info("Cash order placed", zap.String("cart_id", cartID))
	return nil
}

// BeginCardCheckout opens a hosted-payment session upstream and resolves the
// redirect URL for it. When the payment integration is not configured the
// flow aborts locally and no redirect is produced.
func (s *Service) BeginCardCheckout(ctx context.Context, token, sessionID, cartID string, addr domain.Address) (string, error) {
	if err := validateAddress(addr); err != nil {
		return "", err
	}
	if !s.inflight.begin(sessionID) {
		return "", ErrCheckoutInFlight
	}
	defer s.inflight.end(sessionID)

	paymentSession, err := s.api.CreateCheckoutSession(ctx, token, cartID, addr)
	if err != nil {
		return "", err
	}

	url, err := s.payments.RedirectURL(ctx, paymentSession)
	if err != nil {
		return "", fmt.Errorf("resolve payment redirect: %w", err)
	}
	s.logger.Info("Card checkout started", zap.String("cart_id", cartID))
	return url, nil
}

func validateAddress(addr domain.Address) error {
	if strings.TrimSpace(addr.Street) == "" ||
		strings.TrimSpace(addr.City) == "" ||
		strings.TrimSpace(addr.Phone) == "" {
		return ErrAddressIncomplete
	}
	return nil
}
