package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shopgate/internal/checkout"
	"shopgate/internal/domain"
	"shopgate/internal/middleware"
	"shopgate/internal/payments"
	"shopgate/internal/upstream"
)

// PlaceOrderRequest starts either checkout path for a cart.
type PlaceOrderRequest struct {
	CartID string `json:"cart_id" validate:"required"`
	Street string `json:"street" validate:"required"`
	City   string `json:"city" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
}

// CheckoutResponse hands the hosted-payment redirect back to the caller.
type CheckoutResponse struct {
	RedirectURL string `json:"redirect_url"`
}

// OrderAPI is the order-history slice of the upstream client.
type OrderAPI interface {
	Orders(ctx context.Context, token string) ([]domain.Order, error)
}

// OrderHandler serves order placement, card checkout and order history.
type OrderHandler struct {
	service *checkout.Service
	api     OrderAPI
	logger  *zap.Logger
}

func NewOrderHandler(service *checkout.Service, api OrderAPI, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{service: service, api: api, logger: logger}
}

// RegisterRoutes registers the order routes behind the auth middleware.
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.History)
		r.Post("/", h.PlaceCashOrder)
		r.Post("/checkout", h.BeginCardCheckout)
	})
}

// PlaceCashOrder submits a cash order.
func (h *OrderHandler) PlaceCashOrder(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	req, addr, ok := h.decodeOrderRequest(w, r)
	if !ok {
		return
	}

	err := h.service.PlaceCashOrder(r.Context(), sess.Token, sess.ID, req.CartID, addr)
	if err != nil {
		h.respondCheckoutError(w, err, "failed to place order")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "order placed successfully",
	})
}

// BeginCardCheckout opens a hosted-payment session and returns its redirect.
func (h *OrderHandler) BeginCardCheckout(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	req, addr, ok := h.decodeOrderRequest(w, r)
	if !ok {
		return
	}

	redirectURL, err := h.service.BeginCardCheckout(r.Context(), sess.Token, sess.ID, req.CartID, addr)
	if err != nil {
		h.respondCheckoutError(w, err, "failed to initiate payment")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, CheckoutResponse{RedirectURL: redirectURL})
}

// History returns the user's order history.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	orders, err := h.api.Orders(r.Context(), sess.Token)
	if err != nil {
		respondUpstreamError(w, h.logger, err, "failed to fetch orders")
		return
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newOrderView(order))
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{"orders": views})
}

func (h *OrderHandler) decodeOrderRequest(w http.ResponseWriter, r *http.Request) (PlaceOrderRequest, domain.Address, bool) {
	var req PlaceOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return req, domain.Address{}, false
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return req, domain.Address{}, false
	}
	return req, domain.Address{Street: req.Street, City: req.City, Phone: req.Phone}, true
}

func (h *OrderHandler) respondCheckoutError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, checkout.ErrAddressIncomplete):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, checkout.ErrCheckoutInFlight):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, payments.ErrNotConfigured):
		middleware.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
	default:
		if apiErr, ok := upstream.AsAPIError(err); ok {
			message := apiErr.Message
			if message == "" {
				message = fallback
			}
			middleware.RespondWithError(w, apiErr.StatusCode, message)
			return
		}
		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, fallback)
	}
}
