package model

import "time"

// Document type tags used by the content backend.
const (
	TypeOrder    = "order"
	TypeCustomer = "customer"
	TypeProduct  = "product"
	TypeReview   = "review"
	TypeUser     = "user"
)

// Order statuses. Any enumerated value may be set from any prior value;
// there is no enforced transition machine.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Product availability statuses.
const (
	ProductInStock    = "in-stock"
	ProductOutOfStock = "out-of-stock"
	ProductComingSoon = "coming-soon"
)

// User roles.
const (
	RoleAdmin           = "admin"
	RoleProductManager  = "productManager"
	RoleShipmentManager = "shipmentManager"
)

// CustomerRef is the customer projection embedded in orders.
type CustomerRef struct {
	ID    string `json:"id,omitempty" bson:"_id,omitempty"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// OrderItem is a single line item of an order.
type OrderItem struct {
	ProductID string  `json:"product_id,omitempty" bson:"productId,omitempty"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
	Size      string  `json:"size,omitempty" bson:"size,omitempty"`
	Color     string  `json:"color,omitempty" bson:"color,omitempty"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

// Order is an order document as stored in the content backend. CreatedAt is
// kept as the raw ISO 8601 string so that malformed timestamps survive
// decoding and can be skipped during aggregation instead of failing the whole
// fetch. Total is a pointer because backend documents may omit it.
type Order struct {
	ID        string       `json:"id" bson:"_id"`
	OrderID   string       `json:"order_id" bson:"orderId"`
	Customer  *CustomerRef `json:"customer,omitempty" bson:"customer,omitempty"`
	CreatedAt string       `json:"created_at" bson:"createdAt"`
	Total     *float64     `json:"total" bson:"total"`
	Status    string       `json:"status" bson:"status"`
	Items     []OrderItem  `json:"items,omitempty" bson:"items,omitempty"`
}

// Address is a customer's structured postal address.
type Address struct {
	AddressLine1 string `json:"address_line1,omitempty" bson:"addressLine1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty" bson:"addressLine2,omitempty"`
	AddressLine3 string `json:"address_line3,omitempty" bson:"addressLine3,omitempty"`
	PostalCode   string `json:"postal_code,omitempty" bson:"postalCode,omitempty"`
	Locality     string `json:"locality,omitempty" bson:"locality,omitempty"`
	State        string `json:"state,omitempty" bson:"state,omitempty"`
	Country      string `json:"country,omitempty" bson:"country,omitempty"`
}

// Customer is a customer document. TotalOrders is an annotation carried for
// ranking, not a stored counter the backend maintains.
type Customer struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Email       string   `json:"email" bson:"email"`
	Phone       string   `json:"phone,omitempty" bson:"phone,omitempty"`
	TaxID       string   `json:"tax_id,omitempty" bson:"pan,omitempty"`
	CreatedAt   string   `json:"created_at" bson:"createdAt"`
	Address     *Address `json:"address,omitempty" bson:"address,omitempty"`
	TotalOrders int      `json:"total_orders" bson:"totalOrders,omitempty"`
}

// Product is a product document.
type Product struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Category    string   `json:"category" bson:"category"`
	Price       float64  `json:"price" bson:"price"`
	Stock       int      `json:"stock" bson:"stock"`
	Colors      []string `json:"colors,omitempty" bson:"colors,omitempty"`
	Status      string   `json:"status" bson:"status"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Image       string   `json:"image,omitempty" bson:"image,omitempty"`
	Slug        string   `json:"slug" bson:"slug"`
}

// ProductRef is the product projection embedded in reviews.
type ProductRef struct {
	ID       string `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Category string `json:"category,omitempty" bson:"category,omitempty"`
	Image    string `json:"image,omitempty" bson:"image,omitempty"`
}

// Review is a review document.
type Review struct {
	ID        string      `json:"id" bson:"_id"`
	CreatedAt string      `json:"created_at" bson:"createdAt"`
	Rating    int         `json:"rating" bson:"rating"`
	Comment   string      `json:"comment" bson:"comment"`
	Email     string      `json:"email" bson:"email"`
	Phone     string      `json:"phone,omitempty" bson:"phone,omitempty"`
	Product   *ProductRef `json:"product,omitempty" bson:"product,omitempty"`
}

// Reference identifies a document that holds a reference to another
// document. Returned by conflict-checked deletes.
type Reference struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// Notification kinds.
const (
	NotificationOrder  = "order"
	NotificationReview = "review"
)

// Notification is a derived feed entry. It is never persisted; the feed is
// rebuilt from the most recent orders and reviews on every fetch.
type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// User is an administrative user document.
type User struct {
	ID           string `json:"id" bson:"_id"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password"`
	Role         string `json:"role" bson:"role"`
}
