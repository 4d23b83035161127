package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/example/shop-admin/internal/api/middleware"
	"github.com/example/shop-admin/internal/auth"
	"github.com/example/shop-admin/internal/authz"
)

// RouterConfig bundles the dependencies of the HTTP surface.
type RouterConfig struct {
	Handlers     *Handlers
	AuthHandlers *AuthHandlers
	JWTService   *auth.JWTService
	Policy       *authz.Policy
}

// NewRouter wires the administrative routes. The role gate is installed as
// router middleware so it runs before every handler, including all data
// fetches.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.RoleGate(cfg.JWTService, cfg.Policy))

	// Sessions
	r.HandleFunc("/login", cfg.AuthHandlers.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", cfg.AuthHandlers.Logout).Methods(http.MethodPost)
	r.HandleFunc("/me", cfg.AuthHandlers.Me).Methods(http.MethodGet)

	h := cfg.Handlers

	// Dashboard aggregates
	r.HandleFunc("/admin/dashboard", h.GetDashboard).Methods(http.MethodGet)
	r.HandleFunc("/admin/dashboard/analytics", h.GetAnalytics).Methods(http.MethodGet)
	r.HandleFunc("/admin/dashboard/notifications", h.GetNotifications).Methods(http.MethodGet)

	// Customers
	r.HandleFunc("/admin/customers", h.ListCustomers).Methods(http.MethodGet)
	r.HandleFunc("/admin/customers", h.CreateCustomer).Methods(http.MethodPost)
	r.HandleFunc("/admin/customers/{id}", h.DeleteCustomer).Methods(http.MethodDelete)

	// Reviews
	r.HandleFunc("/admin/reviews", h.ListReviews).Methods(http.MethodGet)
	r.HandleFunc("/admin/reviews/{id}", h.DeleteReview).Methods(http.MethodDelete)

	// Products
	r.HandleFunc("/admin/products", h.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/admin/products", h.CreateProduct).Methods(http.MethodPost)
	r.HandleFunc("/admin/products", h.UpdateProduct).Methods(http.MethodPut)
	r.HandleFunc("/admin/products", h.DeleteProduct).Methods(http.MethodDelete)

	// Orders
	r.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", h.UpdateOrderStatus).Methods(http.MethodPatch)

	return r
}
