package transport

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/order"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutHandler handles quotes and order placement
type CheckoutHandler struct {
	checkout service.CheckoutService
	logger   *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// RegisterRoutes registers the checkout routes. placeOrder wraps the order
// submission route, e.g. with a rate limiter; it may be nil.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router, placeOrder func(http.Handler) http.Handler) {
	r.Route("/api/checkout", func(r chi.Router) {
		r.Get("/quote", h.Quote)
		r.Group(func(r chi.Router) {
			if placeOrder != nil {
				r.Use(placeOrder)
			}
			r.Post("/", h.PlaceOrder)
		})
	})
}

// Quote prices the cart with the selected shipping option
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	optionID := r.URL.Query().Get("shipping_option")
	if optionID == "" {
		optionID = "standard"
	}

	quote, err := h.checkout.Quote(r.Context(), optionID)
	if err != nil {
		if errors.Is(err, repository.ErrShippingOptionNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "shipping option not found")
			return
		}
		h.logger.Error("Failed to quote checkout", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to quote checkout")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, quote)
}

// PlaceOrder validates the delivery data and confirms the order
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var data domain.OrderData
	if err := middleware.DecodeJSON(r, &data); err != nil {
		h.logger.Debug("Checkout decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.checkout.PlaceOrder(r.Context(), data)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			middleware.RespondWithOrderErrors(w, verr.Errors)
		case errors.Is(err, service.ErrEmptyCart):
			middleware.RespondWithError(w, http.StatusConflict, "cart is empty")
		case errors.Is(err, repository.ErrShippingOptionNotFound):
			middleware.RespondWithOrderErrors(w, []string{order.MsgShippingOption})
		default:
			h.logger.Error("Checkout failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return
	}

	h.logger.Info("Order placed", zap.String("order_id", o.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, o)
}
