package upstream

import (
	"context"
	"fmt"
	"net/http"

	"shopgate/internal/domain"
)

type authEnvelope struct {
	Token string   `json:"token"`
	User  userWire `json:"user"`
}

// Login exchanges credentials for an opaque upstream token and the user it
// authenticates.
func (c *Client) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	body := map[string]any{"email": email, "password": password}
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, "/user/signin", "", body, &env); err != nil {
		return "", domain.User{}, fmt.Errorf("login: %w", err)
	}
	return env.Token, env.User.toDomain(), nil
}

// Signup registers a new account and returns the freshly issued token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, domain.User, error) {
	body := map[string]any{"name": name, "email": email, "password": password}
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, "/user/signup", "", body, &env); err != nil {
		return "", domain.User{}, fmt.Errorf("signup: %w", err)
	}
	return env.Token, env.User.toDomain(), nil
}
