package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/example/shop-admin/internal/model"
)

// collections maps document type tags to collection names.
var collections = map[string]string{
	model.TypeOrder:    "orders",
	model.TypeCustomer: "customers",
	model.TypeProduct:  "products",
	model.TypeReview:   "reviews",
	model.TypeUser:     "users",
}

// MongoStore implements Store on top of a MongoDB database with one
// collection per document type.
type MongoStore struct {
	db *mongo.Database
}

// Connect establishes a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// NewMongoStore creates a MongoStore over the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) collection(docType string) *mongo.Collection {
	return s.db.Collection(collections[docType])
}

func (s *MongoStore) Orders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := s.findAll(ctx, model.TypeOrder, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoStore) RecentOrders(ctx context.Context, limit int64) ([]model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	var orders []model.Order
	if err := s.findAll(ctx, model.TypeOrder, opts, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoStore) Customers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := s.findAll(ctx, model.TypeCustomer, nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *MongoStore) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := s.findAll(ctx, model.TypeProduct, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoStore) Reviews(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := s.findAll(ctx, model.TypeReview, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *MongoStore) RecentReviews(ctx context.Context, limit int64) ([]model.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	var reviews []model.Review
	if err := s.findAll(ctx, model.TypeReview, opts, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// findAll runs a Find over the whole collection for docType and decodes the
// cursor into out, which must be a pointer to a slice.
func (s *MongoStore) findAll(ctx context.Context, docType string, opts *options.FindOptions, out any) error {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.collection(docType).Find(ctx, bson.M{}, opts)
	} else {
		cursor, err = s.collection(docType).Find(ctx, bson.M{})
	}
	if err != nil {
		return fmt.Errorf("fetch %s documents: %w", docType, err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s documents: %w", docType, err)
	}
	return nil
}

func (s *MongoStore) Count(ctx context.Context, docType string) (int64, error) {
	n, err := s.collection(docType).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s documents: %w", docType, err)
	}
	return n, nil
}

func (s *MongoStore) CreateCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	if _, err := s.collection(model.TypeCustomer).InsertOne(ctx, c); err != nil {
		return model.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

func (s *MongoStore) DeleteCustomer(ctx context.Context, id string) error {
	return s.deleteByID(ctx, model.TypeCustomer, id)
}

// References scans the collections that can embed a reference to another
// document: orders reference customers and products (through line items),
// reviews reference products.
func (s *MongoStore) References(ctx context.Context, id string) ([]model.Reference, error) {
	refs := make([]model.Reference, 0)

	orderFilter := bson.M{"$or": bson.A{
		bson.M{"customer._id": id},
		bson.M{"items.productId": id},
	}}
	cursor, err := s.collection(model.TypeOrder).Find(ctx, orderFilter)
	if err != nil {
		return nil, fmt.Errorf("find referencing orders: %w", err)
	}
	var orders []model.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode referencing orders: %w", err)
	}
	for _, o := range orders {
		refs = append(refs, model.Reference{ID: o.ID, Type: model.TypeOrder, Name: o.OrderID})
	}

	cursor, err = s.collection(model.TypeReview).Find(ctx, bson.M{"product._id": id})
	if err != nil {
		return nil, fmt.Errorf("find referencing reviews: %w", err)
	}
	var reviews []model.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode referencing reviews: %w", err)
	}
	for _, r := range reviews {
		refs = append(refs, model.Reference{ID: r.ID, Type: model.TypeReview})
	}

	return refs, nil
}

func (s *MongoStore) SetOrderStatus(ctx context.Context, id, status string) (model.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := s.collection(model.TypeOrder).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	)
	var updated model.Order
	if err := res.Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Order{}, ErrNotFound
		}
		return model.Order{}, fmt.Errorf("update order status: %w", err)
	}
	return updated, nil
}

func (s *MongoStore) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if _, err := s.collection(model.TypeProduct).InsertOne(ctx, p); err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *MongoStore) ProductByName(ctx context.Context, name string) (model.Product, bool, error) {
	var p model.Product
	err := s.collection(model.TypeProduct).FindOne(ctx, bson.M{"name": name}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, false, nil
	}
	if err != nil {
		return model.Product{}, false, fmt.Errorf("find product by name: %w", err)
	}
	return p, true, nil
}

func (s *MongoStore) UpdateProduct(ctx context.Context, id string, p model.Product) (model.Product, error) {
	fields := bson.M{
		"name":        p.Name,
		"category":    p.Category,
		"price":       p.Price,
		"stock":       p.Stock,
		"colors":      p.Colors,
		"status":      p.Status,
		"description": p.Description,
		"image":       p.Image,
		"slug":        p.Slug,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := s.collection(model.TypeProduct).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		opts,
	)
	var updated model.Product
	if err := res.Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Product{}, ErrNotFound
		}
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (s *MongoStore) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteByID(ctx, model.TypeProduct, id)
}

func (s *MongoStore) DeleteReview(ctx context.Context, id string) error {
	return s.deleteByID(ctx, model.TypeReview, id)
}

func (s *MongoStore) deleteByID(ctx context.Context, docType, id string) error {
	res, err := s.collection(docType).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", docType, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) UserByEmail(ctx context.Context, email string) (model.User, bool, error) {
	var u model.User
	err := s.collection(model.TypeUser).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("find user by email: %w", err)
	}
	return u, true, nil
}
