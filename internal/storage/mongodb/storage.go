package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	"github.com/polkiloo/bakery/internal/domain/model"
	"github.com/polkiloo/bakery/internal/domain/repository"
)

const (
	defaultDatabase = "bakery"
	indexTimeout    = 10 * time.Second

	ordersCollection   = "orders"
	productsCollection = "products"
)

// Storage keeps orders and products as MongoDB documents.
type Storage struct {
	db     *mongo.Database
	logger *slog.Logger
}

type orderRepository struct {
	coll *mongo.Collection
}

type productRepository struct {
	coll *mongo.Collection
}

// New connects to MongoDB. The database name comes from the URI path and
// defaults to "bakery". Index creation failures are logged, not returned.
func New(ctx context.Context, uri string, logger *slog.Logger) (*Storage, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("parse uri: %w", err)
	}

	name := cs.Database
	if name == "" {
		name = defaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}))
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := newStorage(client.Database(name), logger)

	initCtx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	if err := storage.initIndexes(initCtx); err != nil {
		logger.Error("document store unavailable", slog.String("backend", "mongodb"), slog.String("error", err.Error()))
	} else {
		logger.Info("document store connected", slog.String("backend", "mongodb"), slog.String("database", name))
	}

	return storage, nil
}

func newStorage(db *mongo.Database, logger *slog.Logger) *Storage {
	return &Storage{db: db, logger: logger}
}

func (s *Storage) initIndexes(ctx context.Context) error {
	for _, name := range []string{ordersCollection, productsCollection} {
		index := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
		if _, err := s.db.Collection(name).Indexes().CreateOne(ctx, index); err != nil {
			return fmt.Errorf("create %s index: %w", name, err)
		}
	}
	return nil
}

// Close disconnects the client.
func (s *Storage) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

// HealthCheck pings the primary.
func (s *Storage) HealthCheck(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{coll: s.db.Collection(ordersCollection)}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{coll: s.db.Collection(productsCollection)}
}

// byID builds an _id filter. Ids that are not ObjectIDs cannot exist.
func byID(id string) (bson.D, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domainErrors.ErrNotFound
	}
	return bson.D{{Key: "_id", Value: oid}}, nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domainErrors.ErrNotFound
	}
	return err
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	doc := newOrderDocument(order)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	var doc orderDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.model(), nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, newestFirst())
	if err != nil {
		return nil, err
	}
	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	orders := make([]model.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, *doc.model())
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: string(status)}}}}
	var doc orderDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.model(), nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) (*model.Order, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	var doc orderDocument
	if err := r.coll.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.model(), nil
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	doc := newProductDocument(product)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	var doc productDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.model(), nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, newestFirst())
	if err != nil {
		return nil, err
	}
	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	products := make([]model.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, *doc.model())
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	update := bson.D{{Key: "$set", Value: patchFields(patch)}}
	var doc productDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.model(), nil
}

// ToggleAvailability flips the flag server side. A missing flag counts as available.
func (r *productRepository) ToggleAvailability(ctx context.Context, id string) (*model.Product, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	current := bson.D{{Key: "$ifNull", Value: bson.A{"$available", true}}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "available", Value: bson.D{{Key: "$not", Value: bson.A{current}}}}}}},
	}
	var doc productDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.model(), nil
}

func (r *productRepository) Delete(ctx context.Context, id string) (*model.Product, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	var doc productDocument
	if err := r.coll.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.model(), nil
}
