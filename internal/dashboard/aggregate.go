package dashboard

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/example/shop-admin/internal/model"
)

// Placeholders for references that fail to resolve.
const (
	unknownCustomer = "Unknown Customer"
	unknownProduct  = "Unknown Product"
)

// parseTimestamp parses an ISO 8601 timestamp. The bool result is false for
// missing or malformed values.
func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// TotalRevenue sums order totals, treating a missing total as zero.
func TotalRevenue(orders []model.Order) float64 {
	var sum float64
	for _, o := range orders {
		if o.Total != nil {
			sum += *o.Total
		}
	}
	return sum
}

// DailyBucket is one calendar day of revenue and order volume.
type DailyBucket struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// DailyBuckets folds orders into per-day buckets keyed by the local calendar
// date of createdAt, sorted ascending by date. Orders with a missing or
// malformed createdAt are logged and dropped.
func DailyBuckets(orders []model.Order) []DailyBucket {
	type bucket struct {
		day     time.Time
		revenue float64
		orders  int
	}
	byDay := make(map[string]*bucket)
	for _, o := range orders {
		ts, ok := parseTimestamp(o.CreatedAt)
		if !ok {
			log.Printf("[Dashboard] Dropping order %s from daily buckets: bad createdAt %q", o.ID, o.CreatedAt)
			continue
		}
		local := ts.Local()
		key := local.Format("2006-01-02")
		b := byDay[key]
		if b == nil {
			y, m, d := local.Date()
			b = &bucket{day: time.Date(y, m, d, 0, 0, 0, 0, local.Location())}
			byDay[key] = b
		}
		if o.Total != nil {
			b.revenue += *o.Total
		}
		b.orders++
	}

	buckets := make([]*bucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].day.Before(buckets[j].day) })

	out := make([]DailyBucket, len(buckets))
	for i, b := range buckets {
		out[i] = DailyBucket{
			Date:    b.day.Format("2006-01-02"),
			Revenue: b.revenue,
			Orders:  b.orders,
		}
	}
	return out
}

// TopCustomers returns the n customers with the most orders, descending.
// The sort is stable: customers with equal order counts keep their original
// relative order.
func TopCustomers(customers []model.Customer, n int) []model.Customer {
	ranked := append([]model.Customer(nil), customers...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalOrders > ranked[j].TotalOrders
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// BuildNotifications maps recent orders and reviews to feed entries and
// interleaves them by timestamp, newest first. Unresolvable customer or
// product references fall back to a placeholder instead of failing the
// merge; entries with a malformed timestamp sort last.
func BuildNotifications(orders []model.Order, reviews []model.Review) []model.Notification {
	feed := make([]model.Notification, 0, len(orders)+len(reviews))
	for _, o := range orders {
		customer := unknownCustomer
		if o.Customer != nil && o.Customer.Name != "" {
			customer = o.Customer.Name
		}
		ts, _ := parseTimestamp(o.CreatedAt)
		feed = append(feed, model.Notification{
			ID:        o.ID,
			Kind:      model.NotificationOrder,
			Message:   fmt.Sprintf("New order #%s from %s", o.OrderID, customer),
			Timestamp: ts,
		})
	}
	for _, r := range reviews {
		product := unknownProduct
		if r.Product != nil && r.Product.Name != "" {
			product = r.Product.Name
		}
		ts, _ := parseTimestamp(r.CreatedAt)
		feed = append(feed, model.Notification{
			ID:        r.ID,
			Kind:      model.NotificationReview,
			Message:   fmt.Sprintf("New %d-star review for %s", r.Rating, product),
			Timestamp: ts,
		})
	}
	sort.SliceStable(feed, func(i, j int) bool { return feed[i].Timestamp.After(feed[j].Timestamp) })
	return feed
}

// ReviewGroup is the reviews of one product. Reviews inside a group carry no
// product reference of their own.
type ReviewGroup struct {
	Product model.ProductRef `json:"product"`
	Reviews []model.Review   `json:"reviews"`
}

// GroupReviews folds a flat review collection into per-product groups,
// ordered by first occurrence. The first review of a product seeds the
// group's product metadata. Reviews without a resolvable product reference
// are logged and skipped, since the grouping key is undefined for them.
func GroupReviews(reviews []model.Review) []ReviewGroup {
	index := make(map[string]int)
	groups := make([]ReviewGroup, 0)
	for _, r := range reviews {
		if r.Product == nil || r.Product.ID == "" {
			log.Printf("[Dashboard] Skipping review %s: no product reference", r.ID)
			continue
		}
		i, ok := index[r.Product.ID]
		if !ok {
			i = len(groups)
			index[r.Product.ID] = i
			groups = append(groups, ReviewGroup{Product: *r.Product})
		}
		stripped := r
		stripped.Product = nil
		groups[i].Reviews = append(groups[i].Reviews, stripped)
	}
	return groups
}

// FilterGroups retains groups where the product name or a review email
// contains term, case-insensitively. A matching group keeps only its
// matching reviews. An empty term returns the input unchanged.
func FilterGroups(groups []ReviewGroup, term string) []ReviewGroup {
	if term == "" {
		return groups
	}
	filtered := make([]ReviewGroup, 0, len(groups))
	for _, g := range groups {
		kept := make([]model.Review, 0, len(g.Reviews))
		for _, r := range g.Reviews {
			if containsFold(r.Email, term) || containsFold(g.Product.Name, term) {
				kept = append(kept, r)
			}
		}
		if len(kept) > 0 {
			filtered = append(filtered, ReviewGroup{Product: g.Product, Reviews: kept})
		}
	}
	return filtered
}
