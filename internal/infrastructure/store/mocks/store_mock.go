package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/example/shop-admin/internal/infrastructure/store"
	"github.com/example/shop-admin/internal/model"
)

// MockStore is an in-memory implementation of store.Store for testing.
// Fixture data is assigned directly to the exported slices; setting Err makes
// every call fail with it.
type MockStore struct {
	mu sync.RWMutex

	OrdersData     []model.Order
	CustomersData  []model.Customer
	ProductsData   []model.Product
	ReviewsData    []model.Review
	UsersData      []model.User
	ReferencesData map[string][]model.Reference

	Err error

	// For tracking calls in tests
	DeletedCustomers []string
	DeletedProducts  []string
	DeletedReviews   []string
	StatusCalls      []StatusCall
}

// StatusCall records parameters passed to SetOrderStatus.
type StatusCall struct {
	OrderID string
	Status  string
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		ReferencesData: make(map[string][]model.Reference),
	}
}

func (m *MockStore) Orders(ctx context.Context) ([]model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]model.Order(nil), m.OrdersData...), nil
}

func (m *MockStore) RecentOrders(ctx context.Context, limit int64) ([]model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	orders := append([]model.Order(nil), m.OrdersData...)
	// ISO 8601 strings sort chronologically
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt > orders[j].CreatedAt })
	if int64(len(orders)) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (m *MockStore) Customers(ctx context.Context) ([]model.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]model.Customer(nil), m.CustomersData...), nil
}

func (m *MockStore) Products(ctx context.Context) ([]model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]model.Product(nil), m.ProductsData...), nil
}

func (m *MockStore) Reviews(ctx context.Context) ([]model.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]model.Review(nil), m.ReviewsData...), nil
}

func (m *MockStore) RecentReviews(ctx context.Context, limit int64) ([]model.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	reviews := append([]model.Review(nil), m.ReviewsData...)
	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].CreatedAt > reviews[j].CreatedAt })
	if int64(len(reviews)) > limit {
		reviews = reviews[:limit]
	}
	return reviews, nil
}

func (m *MockStore) Count(ctx context.Context, docType string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return 0, m.Err
	}
	switch docType {
	case model.TypeOrder:
		return int64(len(m.OrdersData)), nil
	case model.TypeCustomer:
		return int64(len(m.CustomersData)), nil
	case model.TypeProduct:
		return int64(len(m.ProductsData)), nil
	case model.TypeReview:
		return int64(len(m.ReviewsData)), nil
	case model.TypeUser:
		return int64(len(m.UsersData)), nil
	}
	return 0, nil
}

func (m *MockStore) CreateCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return model.Customer{}, m.Err
	}
	m.CustomersData = append(m.CustomersData, c)
	return c, nil
}

func (m *MockStore) DeleteCustomer(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i, c := range m.CustomersData {
		if c.ID == id {
			m.CustomersData = append(m.CustomersData[:i], m.CustomersData[i+1:]...)
			m.DeletedCustomers = append(m.DeletedCustomers, id)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *MockStore) References(ctx context.Context, id string) ([]model.Reference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ReferencesData[id], nil
}

func (m *MockStore) SetOrderStatus(ctx context.Context, id, status string) (model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return model.Order{}, m.Err
	}
	m.StatusCalls = append(m.StatusCalls, StatusCall{OrderID: id, Status: status})
	for i, o := range m.OrdersData {
		if o.ID == id {
			m.OrdersData[i].Status = status
			return m.OrdersData[i], nil
		}
	}
	return model.Order{}, store.ErrNotFound
}

func (m *MockStore) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return model.Product{}, m.Err
	}
	m.ProductsData = append(m.ProductsData, p)
	return p, nil
}

func (m *MockStore) ProductByName(ctx context.Context, name string) (model.Product, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return model.Product{}, false, m.Err
	}
	for _, p := range m.ProductsData {
		if p.Name == name {
			return p, true, nil
		}
	}
	return model.Product{}, false, nil
}

func (m *MockStore) UpdateProduct(ctx context.Context, id string, p model.Product) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return model.Product{}, m.Err
	}
	for i, existing := range m.ProductsData {
		if existing.ID == id {
			p.ID = id
			m.ProductsData[i] = p
			return p, nil
		}
	}
	return model.Product{}, store.ErrNotFound
}

func (m *MockStore) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i, p := range m.ProductsData {
		if p.ID == id {
			m.ProductsData = append(m.ProductsData[:i], m.ProductsData[i+1:]...)
			m.DeletedProducts = append(m.DeletedProducts, id)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *MockStore) DeleteReview(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i, r := range m.ReviewsData {
		if r.ID == id {
			m.ReviewsData = append(m.ReviewsData[:i], m.ReviewsData[i+1:]...)
			m.DeletedReviews = append(m.DeletedReviews, id)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *MockStore) UserByEmail(ctx context.Context, email string) (model.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return model.User{}, false, m.Err
	}
	for _, u := range m.UsersData {
		if u.Email == email {
			return u, true, nil
		}
	}
	return model.User{}, false, nil
}
