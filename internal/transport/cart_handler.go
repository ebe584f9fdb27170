package transport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopgate/internal/checkout"
	"shopgate/internal/middleware"
	"shopgate/internal/upstream"
)

// AddItemRequest adds a product line with its price snapshotted now.
type AddItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required"`
}

// UpdateQuantityRequest sets a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ApplyCouponRequest submits a coupon code.
type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// CouponResponse carries the cart that resulted from a coupon submission.
// On rejection the cart is the resynchronized one, so displayed totals never
// hold a rejected discount.
type CouponResponse struct {
	Applied bool     `json:"applied"`
	Message string   `json:"message"`
	Cart    CartView `json:"cart"`
}

// CartHandler serves the cart surface.
type CartHandler struct {
	service *checkout.Service
	logger  *zap.Logger
}

func NewCartHandler(service *checkout.Service, logger *zap.Logger) *CartHandler {
	return &CartHandler{service: service, logger: logger}
}

// RegisterRoutes registers the cart routes behind the auth middleware.
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{itemID}", h.UpdateQuantity)
		r.Delete("/items/{itemID}", h.RemoveItem)
		r.Post("/coupon", h.ApplyCoupon)
	})
}

// GetCart returns the authoritative cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	cart, err := h.service.Cart(r.Context(), sess.Token)
	if err != nil {
		respondUpstreamError(w, h.logger, err, "failed to load cart")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newCartView(cart))
}

// AddItem adds a product line and returns the refetched cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.service.AddItem(r.Context(), sess.Token, req.ProductID, req.Price, req.Quantity)
	if err != nil {
		if errors.Is(err, checkout.ErrQuantityTooLow) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondUpstreamError(w, h.logger, err, "failed to add product to cart")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newCartView(cart))
}

// UpdateQuantity sets a line's quantity. Values below 1 are rejected here
// with no upstream request.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())
	itemID := chi.URLParam(r, "itemID")

	var req UpdateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), sess.Token, itemID, req.Quantity)
	if err != nil {
		if errors.Is(err, checkout.ErrQuantityTooLow) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondUpstreamError(w, h.logger, err, "failed to update quantity")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newCartView(cart))
}

// RemoveItem deletes a line and returns the refetched cart.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())
	itemID := chi.URLParam(r, "itemID")

	cart, err := h.service.RemoveItem(r.Context(), sess.Token, itemID)
	if err != nil {
		respondUpstreamError(w, h.logger, err, "failed to remove item")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newCartView(cart))
}

// ApplyCoupon submits a code. Acceptance returns the discounted cart;
// rejection returns the resynchronized cart with the upstream's message.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	var req ApplyCouponRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.service.ApplyCoupon(r.Context(), sess.Token, req.Code)
	if err != nil {
		if cart == nil {
			respondUpstreamError(w, h.logger, err, "failed to apply coupon")
			return
		}
		middleware.RespondWithJSON(w, http.StatusUnprocessableEntity, CouponResponse{
			Applied: false,
			Message: couponMessage(err),
			Cart:    newCartView(cart),
		})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CouponResponse{
		Applied: true,
		Message: "coupon applied successfully",
		Cart:    newCartView(cart),
	})
}

func couponMessage(err error) string {
	if apiErr, ok := upstream.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return "invalid coupon"
}
