package transport

import (
	"errors"
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart payload. Quantity defaults to 1.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// UpdateQuantityRequest represents the quantity change payload. Zero or a
// negative value removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartResponse is the cart snapshot with its derived totals
type CartResponse struct {
	Items        domain.Cart     `json:"items"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
	ItemCount    int             `json:"item_count"`
}

func newCartResponse(c domain.Cart) CartResponse {
	if c == nil {
		c = domain.Cart{}
	}
	total := cart.Total(c)
	return CartResponse{
		Items:        c,
		Total:        total,
		TotalDisplay: domain.FormatMoney(total),
		ItemCount:    cart.ItemCount(c),
	}
}

// CartHandler exposes the cart manager over HTTP
type CartHandler struct {
	carts    *cart.Manager
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cart.Manager, products repository.ProductRepository, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{id}", h.UpdateQuantity)
		r.Delete("/items/{id}", h.RemoveItem)
	})
}

// GetCart returns the persisted cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, newCartResponse(h.carts.Load(r.Context())))
}

// AddItem adds a catalog product to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.products.FindByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to find product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	c := h.carts.AddItem(r.Context(), *product, req.Quantity)

	h.logger.Info("AddToCart",
		zap.String("product_id", product.ID),
		zap.Int("quantity", req.Quantity),
	)
	middleware.RespondWithJSON(w, http.StatusOK, newCartResponse(c))
}

// UpdateQuantity sets the quantity of a cart line
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	c := h.carts.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), *req.Quantity)
	middleware.RespondWithJSON(w, http.StatusOK, newCartResponse(c))
}

// RemoveItem drops a cart line
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c := h.carts.RemoveItem(r.Context(), chi.URLParam(r, "id"))
	middleware.RespondWithJSON(w, http.StatusOK, newCartResponse(c))
}

// ClearCart deletes the persisted cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.carts.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// decodeRequest decodes and validates the body, writing the error response
// itself when it returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}, logger *zap.Logger) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		logger.Debug("Request validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
