package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/order"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testAPI struct {
	router chi.Router
	carts  *cart.Manager
	store  *storage.MemoryStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := zap.NewNop()
	store := storage.NewMemoryStore()
	carts := cart.NewManager(store, logger)
	products := repository.NewProductRepository(repository.DefaultProducts())
	shipping := repository.NewShippingRepository(repository.DefaultShippingOptions())
	checkout := service.NewCheckoutService(carts, shipping, logger, service.WithDelay(0))

	r := chi.NewRouter()
	NewCatalogHandler(products, shipping, logger).RegisterRoutes(r)
	NewCartHandler(carts, products, logger).RegisterRoutes(r)
	NewCheckoutHandler(checkout, logger).RegisterRoutes(r, nil)

	return &testAPI{router: r, carts: carts, store: store}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) CartResponse {
	t.Helper()

	var resp CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestListProducts(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/products?sort_by=price&sort_order=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 3)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, "3", resp.Products[0].ID)
	assert.Equal(t, "1", resp.Products[2].ID)
}

func TestSearchProducts(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/products?q=watch", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Smart Fitness Watch", resp.Products[0].Name)
}

func TestGetProduct(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/products/2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var p domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "199.99", p.Price.StringFixed(2))
	assert.Len(t, p.Features, 5)

	w = api.do(t, http.MethodGet, "/api/products/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListShippingOptions(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/shipping-options", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var options []domain.ShippingOption
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &options))
	assert.Len(t, options, 2)
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(mustField(t, w, "items")))

	w = api.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "1"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Quantity)
	assert.Equal(t, "$299.99", resp.TotalDisplay)

	w = api.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "3", Quantity: 9})
	resp = decodeCart(t, w)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 5, resp.Items[1].Quantity, "clamped to stock")

	w = api.do(t, http.MethodPut, "/api/cart/items/1", map[string]int{"quantity": 12})
	resp = decodeCart(t, w)
	assert.Equal(t, 5, resp.Items[0].Quantity, "clamped to line cap")
	assert.Equal(t, 10, resp.ItemCount)
	assert.Equal(t, "1949.90", resp.Total.StringFixed(2))

	w = api.do(t, http.MethodPut, "/api/cart/items/1", map[string]int{"quantity": 0})
	resp = decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "3", resp.Items[0].ID)

	w = api.do(t, http.MethodDelete, "/api/cart/items/3", nil)
	assert.Empty(t, decodeCart(t, w).Items)

	api.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "2"})
	w = api.do(t, http.MethodDelete, "/api/cart", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	_, err := api.store.Get(context.Background(), cart.DefaultKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAddItemRejectsBadRequests(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "999"}).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{}).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "1", Quantity: -1}).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPost, "/api/cart/items", "{not json").Code)
	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPut, "/api/cart/items/1", map[string]int{}).Code)
}

func TestUpdateUnknownLineIsNoop(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "1", Quantity: 2})

	w := api.do(t, http.MethodPut, "/api/cart/items/77", map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
}

func TestQuote(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "2", Quantity: 2})

	w := api.do(t, http.MethodGet, "/api/checkout/quote?shipping_option=express", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var q service.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, "412.97", q.Total.StringFixed(2))

	w = api.do(t, http.MethodGet, "/api/checkout/quote?shipping_option=drone", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaceOrder(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "1", Quantity: 1})

	w := api.do(t, http.MethodPost, "/api/checkout", domain.OrderData{
		FullName:       "John Doe",
		PhoneNumber:    "123 456 7890",
		City:           "NYC",
		Address:        "123 Main Street Apt 4",
		ShippingOption: "standard",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var o domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &o))
	assert.Regexp(t, `^ORD-\d{8}[0-9A-Z]{6}$`, o.ID)
	assert.Equal(t, "305.98", o.Total.StringFixed(2))
	assert.Empty(t, api.carts.Load(context.Background()))
}

func TestPlaceOrderValidationErrors(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/api/cart/items", AddItemRequest{ProductID: "1"})

	w := api.do(t, http.MethodPost, "/api/checkout", domain.OrderData{FullName: "Jo", PhoneNumber: "123", Address: "short"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Error struct {
			Details struct {
				Errors []string `json:"errors"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{
		order.MsgFullName,
		order.MsgPhoneNumber,
		order.MsgCity,
		order.MsgAddress,
		order.MsgShippingOption,
	}, resp.Error.Details.Errors)
	assert.Len(t, api.carts.Load(context.Background()), 1)
}

func TestPlaceOrderWithEmptyCart(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/checkout", domain.OrderData{
		FullName:       "John Doe",
		PhoneNumber:    "1234567890",
		City:           "NYC",
		Address:        "123 Main Street Apt 4",
		ShippingOption: "standard",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func mustField(t *testing.T, w *httptest.ResponseRecorder, name string) json.RawMessage {
	t.Helper()

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	return fields[name]
}
