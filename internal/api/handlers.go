package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/example/shop-admin/internal/dashboard"
	"github.com/example/shop-admin/internal/infrastructure/store"
	"github.com/example/shop-admin/internal/model"
)

// Handlers serves the administrative surface: dashboard aggregates plus the
// customer/order/product/review mutations.
type Handlers struct {
	store     store.Store
	dashboard *dashboard.Service
}

// NewHandlers creates the administrative handlers.
func NewHandlers(s store.Store, d *dashboard.Service) *Handlers {
	return &Handlers{store: s, dashboard: d}
}

// Dashboard Handlers

func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		log.Printf("[API] Error building dashboard summary: %v", err)
		respondJSONError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handlers) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.dashboard.Analytics(r.Context())
	if err != nil {
		log.Printf("[API] Error building analytics: %v", err)
		respondJSONError(w, "Failed to load analytics", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, analytics)
}

func (h *Handlers) GetNotifications(w http.ResponseWriter, r *http.Request) {
	feed, err := h.dashboard.Notifications(r.Context())
	if err != nil {
		log.Printf("[API] Error building notification feed: %v", err)
		respondJSONError(w, "Failed to load notifications", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, feed)
}

// Customer Handlers

func (h *Handlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.Customers(r.Context())
	if err != nil {
		log.Printf("[API] Error listing customers: %v", err)
		respondJSONError(w, "Failed to load customers", http.StatusInternalServerError)
		return
	}
	customers = dashboard.FilterCustomers(customers, r.URL.Query().Get("search"))
	respondJSON(w, http.StatusOK, customers)
}

func (h *Handlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer model.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	customer.ID = uuid.New().String()
	customer.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	created, err := h.store.CreateCustomer(r.Context(), customer)
	if err != nil {
		log.Printf("[API] Error creating customer: %v", err)
		respondJSONError(w, "Error adding customer", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// DeleteCustomer refuses the delete with 409 and the list of referencing
// documents while the customer is still referenced anywhere. Deletes are
// never cascaded.
func (h *Handlers) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	refs, err := h.store.References(r.Context(), id)
	if err != nil {
		log.Printf("[API] Error checking references for customer %s: %v", id, err)
		respondJSONError(w, "Failed to delete customer", http.StatusInternalServerError)
		return
	}
	if len(refs) > 0 {
		respondJSON(w, http.StatusConflict, map[string]any{
			"error":      "Cannot delete customer. This customer is referenced by other documents.",
			"references": refs,
		})
		return
	}

	if err := h.store.DeleteCustomer(r.Context(), id); err != nil {
		log.Printf("[API] Error deleting customer %s: %v", id, err)
		respondJSONError(w, "Failed to delete customer", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}

// Order Handlers

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.Orders(r.Context())
	if err != nil {
		log.Printf("[API] Error listing orders: %v", err)
		respondJSONError(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}
	orders = dashboard.FilterOrders(orders, r.URL.Query().Get("search"))
	respondJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus sets only the status field. Any enumerated status may be
// set from any prior one.
func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !validOrderStatus(req.Status) {
		respondJSONError(w, "Invalid order status", http.StatusBadRequest)
		return
	}

	updated, err := h.store.SetOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondJSONError(w, "Order not found", http.StatusNotFound)
			return
		}
		log.Printf("[API] Error updating order %s: %v", id, err)
		respondJSONError(w, "Error updating order", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func validOrderStatus(status string) bool {
	switch status {
	case model.OrderPending, model.OrderProcessing, model.OrderShipped,
		model.OrderDelivered, model.OrderCancelled:
		return true
	}
	return false
}

// Product Handlers
//
// Product responses use the {success, message?, data|product?} envelope the
// storefront's product pages expect.

type productEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Product any    `json:"product,omitempty"`
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.Products(r.Context())
	if err != nil {
		log.Printf("[API] Error listing products: %v", err)
		respondJSON(w, http.StatusInternalServerError, productEnvelope{Success: false, Message: "Failed to load products"})
		return
	}
	products = dashboard.FilterProducts(products, r.URL.Query().Get("search"))
	respondJSON(w, http.StatusOK, productEnvelope{Success: true, Data: products})
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondJSON(w, http.StatusBadRequest, productEnvelope{Success: false, Message: "Missing product data"})
		return
	}
	if product.Name == "" {
		respondJSON(w, http.StatusBadRequest, productEnvelope{Success: false, Message: "Missing product data"})
		return
	}

	product.ID = uuid.New().String()
	if product.Slug == "" {
		product.Slug = slugify(product.Name)
	}

	created, err := h.store.CreateProduct(r.Context(), product)
	if err != nil {
		log.Printf("[API] Error creating product: %v", err)
		respondJSON(w, http.StatusInternalServerError, productEnvelope{Success: false, Message: "Failed to add product"})
		return
	}
	respondJSON(w, http.StatusOK, productEnvelope{Success: true, Product: created})
}

// UpdateProduct locates the product by name and patches it by id.
func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondJSON(w, http.StatusBadRequest, productEnvelope{Success: false, Message: "Missing product data or product name"})
		return
	}
	if product.Name == "" {
		respondJSON(w, http.StatusBadRequest, productEnvelope{Success: false, Message: "Missing product data or product name"})
		return
	}

	existing, found, err := h.store.ProductByName(r.Context(), product.Name)
	if err != nil {
		log.Printf("[API] Error looking up product %q: %v", product.Name, err)
		respondJSON(w, http.StatusInternalServerError, productEnvelope{Success: false, Message: "Failed to update product"})
		return
	}
	if !found {
		respondJSON(w, http.StatusNotFound, productEnvelope{Success: false, Message: "Product not found"})
		return
	}

	updated, err := h.store.UpdateProduct(r.Context(), existing.ID, product)
	if err != nil {
		log.Printf("[API] Error updating product %s: %v", existing.ID, err)
		respondJSON(w, http.StatusInternalServerError, productEnvelope{Success: false, Message: "Failed to update product"})
		return
	}
	respondJSON(w, http.StatusOK, productEnvelope{Success: true, Product: updated})
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondJSON(w, http.StatusBadRequest, productEnvelope{Success: false, Message: "Missing product ID"})
		return
	}

	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, productEnvelope{Success: false, Message: "Product not found"})
			return
		}
		log.Printf("[API] Error deleting product %s: %v", id, err)
		respondJSON(w, http.StatusInternalServerError, productEnvelope{Success: false, Message: "Failed to delete product"})
		return
	}
	respondJSON(w, http.StatusOK, productEnvelope{Success: true, Message: "Product deleted successfully"})
}

// Review Handlers

func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	groups, err := h.dashboard.ReviewGroups(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		log.Printf("[API] Error grouping reviews: %v", err)
		respondJSONError(w, "Failed to load reviews", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, groups)
}

func (h *Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.store.DeleteReview(r.Context(), id); err != nil {
		log.Printf("[API] Error deleting review %s: %v", id, err)
		respondJSONError(w, "Failed to delete review", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// slugify derives a URL-safe slug from a product name.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
