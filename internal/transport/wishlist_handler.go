package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shopgate/internal/middleware"
	"shopgate/internal/wishlist"
)

// ToggleWishlistRequest flips a product's wishlist membership.
type ToggleWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// WishlistResponse is the server-confirmed wishlist.
type WishlistResponse struct {
	Items []WishlistItemView `json:"items"`
}

// WishlistHandler serves the wishlist surface.
type WishlistHandler struct {
	service *wishlist.Service
	logger  *zap.Logger
}

func NewWishlistHandler(service *wishlist.Service, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{service: service, logger: logger}
}

// RegisterRoutes registers the wishlist routes behind the auth middleware.
func (h *WishlistHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetWishlist)
		r.Post("/toggle", h.Toggle)
	})
}

// GetWishlist returns the current wishlist.
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	list, err := h.service.List(r.Context(), sess.Token)
	if err != nil {
		respondUpstreamError(w, h.logger, err, "failed to load wishlist")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, WishlistResponse{Items: newWishlistView(list)})
}

// Toggle adds or removes a product and returns the server-confirmed list.
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	var req ToggleWishlistRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	list, err := h.service.Toggle(r.Context(), sess.Token, req.ProductID)
	if err != nil {
		respondUpstreamError(w, h.logger, err, "failed to update wishlist")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, WishlistResponse{Items: newWishlistView(list)})
}
