package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"shopgate/internal/domain"
	"shopgate/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// TokenHeader is the header clients present their gateway session token in,
// mirroring the upstream API's convention.
const TokenHeader = "token"

// SessionResolver resolves a presented token to a live session.
type SessionResolver interface {
	Get(id string) (domain.Session, error)
}

// AuthMiddleware resolves the token header to a session and attaches it to
// the request context. Requests without a valid session are rejected before
// reaching protected handlers.
func AuthMiddleware(sessions SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				logger.Debug("Missing token header")
				RespondWithError(w, http.StatusUnauthorized, "missing token")
				return
			}

			sess, err := sessions.Get(token)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					logger.Debug("Unknown session token")
					RespondWithError(w, http.StatusUnauthorized, "invalid or expired session")
					return
				}
				logger.Error("Session lookup failed", zap.Error(err))
				RespondWithError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithSession attaches a session to the context, as AuthMiddleware
// does for authenticated requests.
func ContextWithSession(ctx context.Context, sess domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext extracts the authenticated session from the context.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(domain.Session)
	return sess, ok
}
