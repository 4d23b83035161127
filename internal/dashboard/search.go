package dashboard

import (
	"strings"

	"github.com/example/shop-admin/internal/model"
)

// Text search over fetched snapshots: case-insensitive substring match on
// the designated fields, recomputed per call against the full collection.

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// FilterCustomers matches on customer name and email.
func FilterCustomers(customers []model.Customer, term string) []model.Customer {
	if term == "" {
		return customers
	}
	matched := make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		if containsFold(c.Name, term) || containsFold(c.Email, term) {
			matched = append(matched, c)
		}
	}
	return matched
}

// FilterOrders matches on the embedded customer's name and email. Orders
// without a customer reference never match.
func FilterOrders(orders []model.Order, term string) []model.Order {
	if term == "" {
		return orders
	}
	matched := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.Customer == nil {
			continue
		}
		if containsFold(o.Customer.Name, term) || containsFold(o.Customer.Email, term) {
			matched = append(matched, o)
		}
	}
	return matched
}

// FilterProducts matches on product name only.
func FilterProducts(products []model.Product, term string) []model.Product {
	if term == "" {
		return products
	}
	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if containsFold(p.Name, term) {
			matched = append(matched, p)
		}
	}
	return matched
}
