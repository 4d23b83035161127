package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shop-admin/internal/auth"
	"github.com/example/shop-admin/internal/authz"
	"github.com/example/shop-admin/internal/dashboard"
	"github.com/example/shop-admin/internal/infrastructure/store/mocks"
	"github.com/example/shop-admin/internal/model"
)

type testServer struct {
	router     http.Handler
	store      *mocks.MockStore
	jwtService *auth.JWTService
}

func newTestServer() *testServer {
	mockStore := mocks.NewMockStore()
	jwtService := auth.NewJWTService("test-secret-key", 15*time.Minute)
	handlers := NewHandlers(mockStore, dashboard.NewService(mockStore))
	authHandlers := NewAuthHandlers(mockStore, jwtService)
	router := NewRouter(RouterConfig{
		Handlers:     handlers,
		AuthHandlers: authHandlers,
		JWTService:   jwtService,
		Policy:       authz.DefaultPolicy(),
	})
	return &testServer{router: router, store: mockStore, jwtService: jwtService}
}

func (s *testServer) request(t *testing.T, method, path, role string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if role != "" {
		token, _, err := s.jwtService.GenerateToken("user-1", "user@example.com", role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func total(v float64) *float64 {
	return &v
}

func TestDeleteCustomer_RefusedWhileReferenced(t *testing.T) {
	srv := newTestServer()
	srv.store.CustomersData = []model.Customer{{ID: "c1", Name: "Alice"}}
	srv.store.ReferencesData["c1"] = []model.Reference{
		{ID: "o1", Type: model.TypeOrder, Name: "1001"},
	}

	rec := srv.request(t, http.MethodDelete, "/admin/customers/c1", model.RoleAdmin, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error      string            `json:"error"`
		References []model.Reference `json:"references"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.References, 1)
	assert.Equal(t, "o1", body.References[0].ID)
	assert.Equal(t, model.TypeOrder, body.References[0].Type)

	// the customer record is untouched
	assert.Len(t, srv.store.CustomersData, 1)
	assert.Empty(t, srv.store.DeletedCustomers)
}

func TestDeleteCustomer_Unreferenced(t *testing.T) {
	srv := newTestServer()
	srv.store.CustomersData = []model.Customer{{ID: "c1", Name: "Alice"}}

	rec := srv.request(t, http.MethodDelete, "/admin/customers/c1", model.RoleAdmin, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, srv.store.CustomersData)
	assert.Equal(t, []string{"c1"}, srv.store.DeletedCustomers)
}

func TestCreateCustomer_AssignsIDAndTimestamp(t *testing.T) {
	srv := newTestServer()

	rec := srv.request(t, http.MethodPost, "/admin/customers", model.RoleAdmin, map[string]string{
		"name":  "Alice",
		"email": "alice@example.com",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var created model.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, "Alice", created.Name)
	assert.Len(t, srv.store.CustomersData, 1)
}

func TestUpdateOrderStatus(t *testing.T) {
	srv := newTestServer()
	srv.store.OrdersData = []model.Order{
		{ID: "o1", OrderID: "1001", Status: model.OrderPending, Total: total(10)},
	}

	rec := srv.request(t, http.MethodPatch, "/orders/o1", model.RoleShipmentManager,
		map[string]string{"status": model.OrderShipped})

	assert.Equal(t, http.StatusOK, rec.Code)
	var updated model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, model.OrderShipped, updated.Status)
	assert.Equal(t, model.OrderShipped, srv.store.OrdersData[0].Status)
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	srv := newTestServer()
	srv.store.OrdersData = []model.Order{{ID: "o1", Status: model.OrderPending}}

	rec := srv.request(t, http.MethodPatch, "/orders/o1", model.RoleAdmin,
		map[string]string{"status": "teleported"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.OrderPending, srv.store.OrdersData[0].Status)
}

func TestUpdateOrderStatus_UnknownOrder(t *testing.T) {
	srv := newTestServer()

	rec := srv.request(t, http.MethodPatch, "/orders/missing", model.RoleAdmin,
		map[string]string{"status": model.OrderShipped})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrders_SearchFilter(t *testing.T) {
	srv := newTestServer()
	srv.store.OrdersData = []model.Order{
		{ID: "o1", Customer: &model.CustomerRef{Name: "Alice", Email: "alice@example.com"}},
		{ID: "o2", Customer: &model.CustomerRef{Name: "Bob", Email: "bob@example.com"}},
	}

	rec := srv.request(t, http.MethodGet, "/orders?search=bob", model.RoleShipmentManager, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var orders []model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "o2", orders[0].ID)
}

func TestProducts_ListEnvelope(t *testing.T) {
	srv := newTestServer()
	srv.store.ProductsData = []model.Product{
		{ID: "p1", Name: "Desk Lamp"},
		{ID: "p2", Name: "Office Chair"},
	}

	rec := srv.request(t, http.MethodGet, "/admin/products?search=lamp", model.RoleProductManager, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool            `json:"success"`
		Data    []model.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "p1", body.Data[0].ID)
}

func TestCreateProduct_AssignsIDAndSlug(t *testing.T) {
	srv := newTestServer()

	rec := srv.request(t, http.MethodPost, "/admin/products", model.RoleProductManager, map[string]any{
		"name":     "Desk Lamp",
		"category": "lighting",
		"price":    49.99,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool          `json:"success"`
		Product model.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Product.ID)
	assert.Equal(t, "desk-lamp", body.Product.Slug)
}

func TestCreateProduct_MissingName(t *testing.T) {
	srv := newTestServer()

	rec := srv.request(t, http.MethodPost, "/admin/products", model.RoleAdmin, map[string]any{
		"category": "lighting",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, srv.store.ProductsData)
}

func TestUpdateProduct_ByNameLookup(t *testing.T) {
	srv := newTestServer()
	srv.store.ProductsData = []model.Product{
		{ID: "p1", Name: "Desk Lamp", Price: 40, Slug: "desk-lamp"},
	}

	rec := srv.request(t, http.MethodPut, "/admin/products", model.RoleProductManager, map[string]any{
		"name":  "Desk Lamp",
		"price": 55.0,
		"slug":  "desk-lamp",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool          `json:"success"`
		Product model.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "p1", body.Product.ID)
	assert.Equal(t, 55.0, body.Product.Price)
	assert.Equal(t, 55.0, srv.store.ProductsData[0].Price)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	srv := newTestServer()

	rec := srv.request(t, http.MethodPut, "/admin/products", model.RoleAdmin, map[string]any{
		"name": "No Such Product",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Product not found", body.Message)
}

func TestDeleteProduct_RequiresID(t *testing.T) {
	srv := newTestServer()

	rec := srv.request(t, http.MethodDelete, "/admin/products", model.RoleAdmin, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Missing product ID", body.Message)
}

func TestDeleteProduct_ByQueryParam(t *testing.T) {
	srv := newTestServer()
	srv.store.ProductsData = []model.Product{{ID: "p1", Name: "Desk Lamp"}}

	rec := srv.request(t, http.MethodDelete, "/admin/products?id=p1", model.RoleProductManager, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"p1"}, srv.store.DeletedProducts)
}

func TestDeleteReview(t *testing.T) {
	srv := newTestServer()
	srv.store.ReviewsData = []model.Review{
		{ID: "r1", Rating: 4, Product: &model.ProductRef{ID: "p1", Name: "Desk Lamp"}},
	}

	rec := srv.request(t, http.MethodDelete, "/admin/reviews/r1", model.RoleAdmin, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"r1"}, srv.store.DeletedReviews)
}

func TestGetDashboard(t *testing.T) {
	srv := newTestServer()
	srv.store.OrdersData = []model.Order{
		{ID: "o1", Total: total(10)},
		{ID: "o2", Total: total(15)},
	}
	srv.store.CustomersData = []model.Customer{{ID: "c1"}}

	rec := srv.request(t, http.MethodGet, "/admin/dashboard", model.RoleAdmin, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var summary dashboard.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 25.0, summary.TotalRevenue)
	assert.Equal(t, int64(2), summary.TotalOrders)
	assert.Equal(t, int64(1), summary.TotalCustomers)
}

func TestGetReviews_GroupedWithSearch(t *testing.T) {
	srv := newTestServer()
	srv.store.ReviewsData = []model.Review{
		{ID: "r1", Email: "alice@example.com", Product: &model.ProductRef{ID: "p1", Name: "Desk Lamp"}},
		{ID: "r2", Email: "bob@example.com", Product: &model.ProductRef{ID: "p2", Name: "Office Chair"}},
	}

	rec := srv.request(t, http.MethodGet, "/admin/reviews?search=chair", model.RoleAdmin, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var groups []dashboard.ReviewGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "p2", groups[0].Product.ID)
}

// The gate runs ahead of routing targets: data routes are unreachable
// without a permitted session.

func TestRouter_GateRunsBeforeHandlers(t *testing.T) {
	srv := newTestServer()
	srv.store.CustomersData = []model.Customer{{ID: "c1"}}

	rec := srv.request(t, http.MethodGet, "/admin/customers", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = srv.request(t, http.MethodDelete, "/admin/customers/c1", model.RoleShipmentManager, nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Len(t, srv.store.CustomersData, 1)
}

func TestRouter_ShipmentManagerCannotReachProducts(t *testing.T) {
	srv := newTestServer()

	rec := srv.request(t, http.MethodGet, "/admin/products", model.RoleShipmentManager, nil)
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = srv.request(t, http.MethodGet, "/orders", model.RoleShipmentManager, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
