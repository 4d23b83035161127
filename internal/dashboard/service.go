package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/example/shop-admin/internal/infrastructure/store"
	"github.com/example/shop-admin/internal/model"
)

const (
	// recentFeedLimit caps each side of the notification merge.
	recentFeedLimit = 5
	// topCustomerCount is the length of the top-customers ranking.
	topCustomerCount = 5
)

// Summary is the dashboard overview aggregate: the revenue rollup, the four
// scalar counts and the raw collections the charts are built from. It is
// recomputed from a fresh snapshot on every request.
type Summary struct {
	TotalRevenue   float64          `json:"total_revenue"`
	TotalOrders    int64            `json:"total_orders"`
	TotalCustomers int64            `json:"total_customers"`
	TotalProducts  int64            `json:"total_products"`
	TotalReviews   int64            `json:"total_reviews"`
	Orders         []model.Order    `json:"orders"`
	Customers      []model.Customer `json:"customers"`
	Reviews        []model.Review   `json:"reviews"`
}

// Analytics is the daily time series plus the top-customers ranking.
type Analytics struct {
	Daily        []DailyBucket    `json:"daily"`
	TopCustomers []model.Customer `json:"top_customers"`
}

// Service computes dashboard aggregates from store snapshots.
type Service struct {
	store store.Store
}

// NewService creates a dashboard Service over the given store.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Summary fetches the collections and counts concurrently and derives the
// revenue rollup. Each fetch fills a distinct field, so completion order does
// not matter.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var sum Summary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, err := s.store.Orders(ctx)
		if err != nil {
			return fmt.Errorf("fetch orders: %w", err)
		}
		sum.Orders = orders
		return nil
	})
	g.Go(func() error {
		customers, err := s.store.Customers(ctx)
		if err != nil {
			return fmt.Errorf("fetch customers: %w", err)
		}
		sum.Customers = customers
		return nil
	})
	g.Go(func() error {
		reviews, err := s.store.Reviews(ctx)
		if err != nil {
			return fmt.Errorf("fetch reviews: %w", err)
		}
		sum.Reviews = reviews
		return nil
	})
	for _, c := range []struct {
		docType string
		dst     *int64
	}{
		{model.TypeOrder, &sum.TotalOrders},
		{model.TypeCustomer, &sum.TotalCustomers},
		{model.TypeProduct, &sum.TotalProducts},
		{model.TypeReview, &sum.TotalReviews},
	} {
		c := c
		g.Go(func() error {
			n, err := s.store.Count(ctx, c.docType)
			if err != nil {
				return fmt.Errorf("count %s documents: %w", c.docType, err)
			}
			*c.dst = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sum.TotalRevenue = TotalRevenue(sum.Orders)
	return &sum, nil
}

// Analytics buckets orders by calendar day and ranks the top customers.
func (s *Service) Analytics(ctx context.Context) (*Analytics, error) {
	var (
		orders    []model.Order
		customers []model.Customer
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if orders, err = s.store.Orders(ctx); err != nil {
			return fmt.Errorf("fetch orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if customers, err = s.store.Customers(ctx); err != nil {
			return fmt.Errorf("fetch customers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Analytics{
		Daily:        DailyBuckets(orders),
		TopCustomers: TopCustomers(customers, topCustomerCount),
	}, nil
}

// Notifications merges the most recent orders and reviews into a feed,
// newest first. Each side is limited at the query boundary.
func (s *Service) Notifications(ctx context.Context) ([]model.Notification, error) {
	var (
		orders  []model.Order
		reviews []model.Review
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if orders, err = s.store.RecentOrders(ctx, recentFeedLimit); err != nil {
			return fmt.Errorf("fetch recent orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if reviews, err = s.store.RecentReviews(ctx, recentFeedLimit); err != nil {
			return fmt.Errorf("fetch recent reviews: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildNotifications(orders, reviews), nil
}

// ReviewGroups groups reviews by product and optionally filters the groups
// by a search term. The grouping is recomputed per call.
func (s *Service) ReviewGroups(ctx context.Context, term string) ([]ReviewGroup, error) {
	reviews, err := s.store.Reviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch reviews: %w", err)
	}
	return FilterGroups(GroupReviews(reviews), term), nil
}
