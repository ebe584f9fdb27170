package transport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shopgate/internal/domain"
	"shopgate/internal/middleware"
)

// SignupRequest registers a new account upstream.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest exchanges credentials for a gateway session.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returns the gateway session token. Callers present it back in
// the token header on every authenticated request.
type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// AuthAPI is the authentication slice of the upstream client.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	Signup(ctx context.Context, name, email, password string) (string, domain.User, error)
}

// SessionManager owns gateway session lifecycle.
type SessionManager interface {
	Create(token string, user domain.User) (domain.Session, error)
	Destroy(id string) error
}

// AuthHandler proxies signup/login upstream and manages gateway sessions.
type AuthHandler struct {
	api      AuthAPI
	sessions SessionManager
	logger   *zap.Logger
}

func NewAuthHandler(api AuthAPI, sessions SessionManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{api: api, sessions: sessions, logger: logger}
}

// RegisterRoutes registers the auth routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})
	})
}

// Signup registers upstream and opens a gateway session.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.api.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondUpstreamError(w, h.logger, err, "failed to sign up")
		return
	}
	h.openSession(w, token, user, http.StatusCreated)
}

// Login authenticates upstream and opens a gateway session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.api.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondUpstreamError(w, h.logger, err, "invalid email or password")
		return
	}
	h.openSession(w, token, user, http.StatusOK)
}

// Logout destroys the gateway session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	if err := h.sessions.Destroy(sess.ID); err != nil {
		h.logger.Error("Failed to destroy session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to log out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())
	middleware.RespondWithJSON(w, http.StatusOK, sess.User)
}

func (h *AuthHandler) openSession(w http.ResponseWriter, token string, user domain.User, status int) {
	sess, err := h.sessions.Create(token, user)
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	middleware.RespondWithJSON(w, status, AuthResponse{Token: sess.ID, User: sess.User})
}
