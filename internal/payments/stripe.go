// Package payments resolves upstream-issued payment-session identifiers into
// hosted-checkout redirect URLs. The hosted flow itself is owned by Stripe
// and is a pure pass-through dependency.
package payments

import (
	"context"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
)

// ErrNotConfigured means the Stripe integration is unavailable; callers must
// abort locally and perform no redirect.
var ErrNotConfigured = errors.New("stripe integration is not configured")

// Resolver turns a payment-session identifier into a redirect URL.
type Resolver interface {
	RedirectURL(ctx context.Context, sessionID string) (string, error)
}

// sessionGetter matches the checkout-session surface of the Stripe client.
type sessionGetter interface {
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// Stripe resolves checkout sessions through the Stripe API.
type Stripe struct {
	sessions sessionGetter
}

// NewStripe builds a resolver for the given API key. An empty key yields a
// resolver that fails with ErrNotConfigured on use, keeping the decision at
// call time as the checkout flow expects.
func NewStripe(apiKey string) *Stripe {
	if apiKey == "" {
		return &Stripe{}
	}
	api := &client.API{}
	api.Init(apiKey, nil)
	return &Stripe{sessions: api.CheckoutSessions}
}

// RedirectURL fetches the hosted checkout session and returns its URL.
func (s *Stripe) RedirectURL(_ context.Context, sessionID string) (string, error) {
	if s.sessions == nil {
		return "", ErrNotConfigured
	}
	session, err := s.sessions.Get(sessionID, nil)
	if err != nil {
		return "", fmt.Errorf("fetch checkout session: %w", err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("checkout session %s has no redirect url", sessionID)
	}
	return session.URL, nil
}
