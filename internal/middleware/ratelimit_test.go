package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shopgate/internal/domain"
	"shopgate/internal/session"
)

// tokenSessionResolver maps presented tokens to sessions, standing in for the
// session manager.
type tokenSessionResolver map[string]domain.Session

func (r tokenSessionResolver) Get(id string) (domain.Session, error) {
	sess, ok := r[id]
	if !ok {
		return domain.Session{}, session.ErrNotFound
	}
	return sess, nil
}

func newRateLimitedHandler(t *testing.T, limit int, sessions SessionResolver) (http.Handler, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger, _ := zap.NewDevelopment()
	handler := RateLimitMiddleware(client, RateLimitConfig{
		RequestsPerWindow: limit,
		Window:            time.Second,
		KeyPrefix:         "gateway_rate_limit",
	}, sessions, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return handler, mr, client
}

func TestProperty_RequestsBeyondTheWindowLimitAreBlocked(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("exactly the configured number of requests pass per window", prop.ForAll(
		func(limit int, excess int) bool {
			mr, err := miniredis.Run()
			if err != nil {
				t.Logf("FAIL: could not start miniredis: %v", err)
				return false
			}
			defer mr.Close()

			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			defer client.Close()

			logger, _ := zap.NewDevelopment()
			handler := RateLimitMiddleware(client, RateLimitConfig{
				RequestsPerWindow: limit,
				Window:            time.Second,
				KeyPrefix:         "gateway_rate_limit",
			}, nil, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			allowed, blocked := 0, 0
			for i := 0; i < limit+excess; i++ {
				req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
				req.RemoteAddr = "203.0.113.7:1234"
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, req)

				switch rec.Code {
				case http.StatusOK:
					allowed++
				case http.StatusTooManyRequests:
					blocked++
				}
			}
			if allowed != limit || blocked != excess {
				t.Logf("FAIL: limit=%d excess=%d got allowed=%d blocked=%d", limit, excess, allowed, blocked)
				return false
			}
			return true
		},
		gen.IntRange(1, 20),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRateLimitIsKeyedBySessionWhenAuthenticated(t *testing.T) {
	resolver := tokenSessionResolver{
		"tok-a": {ID: "sess-a"},
		"tok-b": {ID: "sess-b"},
	}
	handler, mr, _ := newRateLimitedHandler(t, 1, resolver)

	send := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		if token != "" {
			req.Header.Set(TokenHeader, token)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// Two sessions from the same address count independently.
	if code := send("tok-a"); code != http.StatusOK {
		t.Errorf("first request for sess-a: expected 200, got %d", code)
	}
	if code := send("tok-b"); code != http.StatusOK {
		t.Errorf("first request for sess-b: expected 200, got %d", code)
	}
	if code := send("tok-a"); code != http.StatusTooManyRequests {
		t.Errorf("second request for sess-a: expected 429, got %d", code)
	}

	if !mr.Exists("gateway_rate_limit:sess-a") {
		t.Error("expected a counter keyed by the session id")
	}
	if mr.Exists("gateway_rate_limit:203.0.113.7:1234") {
		t.Error("authenticated requests must not count against the address key")
	}

	// An unknown token falls back to the address key.
	if code := send("tok-unknown"); code != http.StatusOK {
		t.Errorf("first request for the address: expected 200, got %d", code)
	}
	if !mr.Exists("gateway_rate_limit:203.0.113.7:1234") {
		t.Error("expected an unresolvable token to count against the address key")
	}
}

func TestRateLimitHeadersArePresent(t *testing.T) {
	handler, _, _ := newRateLimitedHandler(t, 5, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.RemoteAddr = "203.0.113.8:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-RateLimit-Limit") != "5" {
		t.Errorf("unexpected limit header %q", rec.Header().Get("X-RateLimit-Limit"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "4" {
		t.Errorf("unexpected remaining header %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimitFailsOpenWhenRedisIsDown(t *testing.T) {
	handler, mr, _ := newRateLimitedHandler(t, 1, nil)
	mr.Close()

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected the limiter to fail open, got %d", i, rec.Code)
		}
	}
}
