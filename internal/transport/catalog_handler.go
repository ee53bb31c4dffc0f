package transport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultPageSize = 20

// ProductListResponse is a page of catalog products
type ProductListResponse struct {
	Products []*domain.Product `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// CatalogHandler serves the read-only product catalog and shipping options
type CatalogHandler struct {
	products repository.ProductRepository
	shipping repository.ShippingRepository
	logger   *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products repository.ProductRepository, shipping repository.ShippingRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		products: products,
		shipping: shipping,
		logger:   logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
	})
	r.Get("/api/shipping-options", h.ListShippingOptions)
}

// ListProducts handles catalog listing, sorting and search
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt(q.Get("page"), 1)
	pageSize := queryInt(q.Get("page_size"), defaultPageSize)

	var (
		products []*domain.Product
		total    int
		err      error
	)
	if search := q.Get("q"); search != "" {
		products, total, err = h.products.Search(r.Context(), search, page, pageSize)
	} else {
		sortOrder := repository.SortOrder(strings.ToUpper(q.Get("sort_order")))
		products, total, err = h.products.List(r.Context(), page, pageSize, q.Get("sort_by"), sortOrder)
	}
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetProduct handles a single product lookup
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// ListShippingOptions handles the shipping option list
func (h *CatalogHandler) ListShippingOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.shipping.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list shipping options", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list shipping options")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, options)
}

func queryInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
