package store

import (
	"context"
	"errors"

	"github.com/example/shop-admin/internal/model"
)

// ErrNotFound is returned when a mutation targets a document that does not
// exist.
var ErrNotFound = errors.New("document not found")

// Store is the document store the dashboard reads from and mutates. Every
// mutation is a single atomic document operation; there is no multi-document
// transaction and no optimistic concurrency check. Reads are eventually
// consistent after a write.
type Store interface {
	// Orders returns the full order collection with the embedded customer
	// projection.
	Orders(ctx context.Context) ([]model.Order, error)

	// RecentOrders returns up to limit orders sorted descending by createdAt.
	RecentOrders(ctx context.Context, limit int64) ([]model.Order, error)

	// Customers returns the full customer collection.
	Customers(ctx context.Context) ([]model.Customer, error)

	// Products returns the full product collection.
	Products(ctx context.Context) ([]model.Product, error)

	// Reviews returns the full review collection with the embedded product
	// projection.
	Reviews(ctx context.Context) ([]model.Review, error)

	// RecentReviews returns up to limit reviews sorted descending by createdAt.
	RecentReviews(ctx context.Context, limit int64) ([]model.Review, error)

	// Count returns the number of documents of the given type tag.
	Count(ctx context.Context, docType string) (int64, error)

	// CreateCustomer stores a new customer document.
	CreateCustomer(ctx context.Context, c model.Customer) (model.Customer, error)

	// DeleteCustomer removes a customer document by id.
	DeleteCustomer(ctx context.Context, id string) error

	// References lists documents that hold a reference to the given id.
	// Callers use it to refuse deletes that would leave dangling references.
	References(ctx context.Context, id string) ([]model.Reference, error)

	// SetOrderStatus sets only the status field of an order and returns the
	// updated document.
	SetOrderStatus(ctx context.Context, id, status string) (model.Order, error)

	// CreateProduct stores a new product document.
	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)

	// ProductByName looks up a product by its name.
	ProductByName(ctx context.Context, name string) (model.Product, bool, error)

	// UpdateProduct replaces the mutable fields of the product with the given
	// id and returns the updated document.
	UpdateProduct(ctx context.Context, id string, p model.Product) (model.Product, error)

	// DeleteProduct removes a product document by id.
	DeleteProduct(ctx context.Context, id string) error

	// DeleteReview removes a review document by id.
	DeleteReview(ctx context.Context, id string) error

	// UserByEmail looks up an administrative user by email.
	UserByEmail(ctx context.Context, email string) (model.User, bool, error)
}
