package mongodb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	"github.com/polkiloo/bakery/internal/domain/model"
)

const (
	ordersNS   = "bakery.orders"
	productsNS = "bakery.products"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func toD(t testing.TB, v any) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var d bson.D
	require.NoError(t, bson.Unmarshal(raw, &d))
	return d
}

func storedOrder(status string) orderDocument {
	return orderDocument{
		ID:         primitive.NewObjectID(),
		FullName:   "Ada",
		Email:      "ada@example.com",
		Phone:      "555",
		Address:    "1 Baker St",
		City:       "London",
		Pincode:    "NW1",
		Cart:       []lineItemDocument{{Name: "Croissant", Quantity: 2, Price: 120}},
		Total:      240,
		Screenshot: &assetDocument{URL: "/uploads/s.png", Handle: "s.png"},
		Status:     status,
		CreatedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func storedProduct(available *bool) productDocument {
	return productDocument{
		ID:        primitive.NewObjectID(),
		Name:      "Croissant",
		Price:     120,
		Category:  "pastry",
		Options:   []string{"butter", "chocolate"},
		Image:     &assetDocument{URL: "u", Handle: "h"},
		Available: available,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func commandError() bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom", Name: "BadValue"})
}

func TestNewRejectsInvalidURI(t *testing.T) {
	_, err := New(context.Background(), "http://localhost:27017", discardLogger())
	require.Error(t, err)
}

func TestStorage(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("init indexes", func(mt *mtest.T) {
		s := newStorage(mt.DB, discardLogger())
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		require.NoError(mt, s.initIndexes(context.Background()))

		mt.AddMockResponses(commandError())
		require.Error(mt, s.initIndexes(context.Background()))
	})

	mt.Run("health check", func(mt *mtest.T) {
		s := newStorage(mt.DB, discardLogger())
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, s.HealthCheck(context.Background()))

		mt.AddMockResponses(commandError())
		assert.Error(mt, s.HealthCheck(context.Background()))
	})

	mt.Run("repository factories", func(mt *mtest.T) {
		s := newStorage(mt.DB, discardLogger())
		assert.IsType(mt, &orderRepository{}, s.Orders())
		assert.IsType(mt, &productRepository{}, s.Products())
	})
}

func TestStorageCloseDisconnectsClient(t *testing.T) {
	// Connect does not dial, so an unreachable address still yields a client.
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:1").SetServerSelectionTimeout(time.Second))
	require.NoError(t, err)

	s := newStorage(client.Database("bakery"), discardLogger())
	require.NoError(t, s.Close(context.Background()))

	err = client.Ping(context.Background(), nil)
	assert.ErrorIs(t, err, mongo.ErrClientDisconnected)
}

func TestOrderRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id and timestamp", func(mt *mtest.T) {
		repo := newStorage(mt.DB, discardLogger()).Orders()
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		input := &model.Order{FullName: "Ada", Cart: model.Cart{{Name: "Bun", Quantity: 1, Price: 2}}, Total: 2, Status: model.OrderStatusPending}
		order, err := repo.Create(context.Background(), input)
		require.NoError(mt, err)
		assert.True(mt, primitive.IsValidObjectID(order.ID))
		assert.False(mt, order.CreatedAt.IsZero())
		assert.Equal(mt, input.Cart, order.Cart)
		assert.Empty(mt, input.ID)

		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))
		_, err = repo.Create(context.Background(), input)
		assert.Error(mt, err)
	})

	mt.Run("get", func(mt *mtest.T) {
		repo := newStorage(mt.DB, discardLogger()).Orders()
		doc := storedOrder("pending")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ordersNS, mtest.FirstBatch, toD(mt, doc)))

		order, err := repo.GetByID(context.Background(), doc.ID.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, doc.ID.Hex(), order.ID)
		assert.Equal(mt, "Ada", order.FullName)
		assert.Equal(mt, model.Cart{{Name: "Croissant", Quantity: 2, Price: 120}}, order.Cart)
		assert.Equal(mt, &model.Asset{URL: "/uploads/s.png", Handle: "s.png"}, order.Screenshot)
		assert.Equal(mt, doc.CreatedAt, order.CreatedAt.UTC())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ordersNS, mtest.FirstBatch))
		_, err = repo.GetByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, domainErrors.ErrNotFound)

		_, err = repo.GetByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, domainErrors.ErrNotFound)

		mt.AddMockResponses(commandError())
		_, err = repo.GetByID(context.Background(), primitive.NewObjectID().Hex())
		assert.Error(mt, err)
		assert.False(mt, errors.Is(err, domainErrors.ErrNotFound))
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := newStorage(mt.DB, discardLogger()).Orders()
		first, second := storedOrder("pending"), storedOrder("ready")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ordersNS, mtest.FirstBatch, toD(mt, first), toD(mt, second)))

		orders, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, orders, 2)
		assert.Equal(mt, first.ID.Hex(), orders[0].ID)
		assert.Equal(mt, model.OrderStatus("ready"), orders[1].Status)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ordersNS, mtest.FirstBatch))
		orders, err = repo.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, orders)
		assert.Empty(mt, orders)

		mt.AddMockResponses(commandError())
		_, err = repo.List(context.Background())
		assert.Error(mt, err)
	})

	mt.Run("update status", func(mt *mtest.T) {
		repo := newStorage(mt.DB, discardLogger()).Orders()
		doc := storedOrder("baking")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toD(mt, doc)}))

		order, err := repo.UpdateStatus(context.Background(), doc.ID.Hex(), "baking")
		require.NoError(mt, err)
		assert.Equal(mt, model.OrderStatusBaking, order.Status)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		_, err = repo.UpdateStatus(context.Background(), doc.ID.Hex(), "ready")
		assert.ErrorIs(mt, err, domainErrors.ErrNotFound)

		_, err = repo.UpdateStatus(context.Background(), "123", "ready")
		assert.ErrorIs(mt, err, domainErrors.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := newStorage(mt.DB, discardLogger()).Orders()
		doc := storedOrder("pending")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toD(mt, doc)}))

		order, err := repo.Delete(context.Background(), doc.ID.Hex())
		require.NoError(mt, err)
		require.NotNil(mt, order.Screenshot)
		assert.Equal(mt, "s.png", order.Screenshot.Handle)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		_, err = repo.Delete(context.Background(), doc.ID.Hex())
		assert.ErrorIs(mt, err, domainErrors.ErrNotFound)
	})
}

func TestProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	yes, no := true, false

	mt.Run("create", func(mt *mtest.T) {
		repo := newStorage(mt.DB, discardLogger()).Products()
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		product, err := repo.Create(context.Background(), &model.Product{Name: "Bun", Price: 2, Available: true})
		require.NoError(mt, err)
		assert.True(mt, primitive.IsValidObjectID(product.ID))
		assert.Equal(mt, []string{}, product.Options)
		assert.True(mt, product.Available)
	})

	mt.Run("get applies defaults", func(mt *mtest.T) {
		repo := newStorage(mt.DB, discardLogger()).Products()
		doc := storedProduct(nil)
		doc.Options = nil
		mt.AddMockResponses(mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch, toD(mt, doc)))

		product, err := repo.GetByID(context.Background(), doc.ID.Hex())
		require.NoError(mt, err)
		assert.True(mt, product.Available)
		assert.Equal(mt, []string{}, product.Options)

		_, err = repo.GetByID(context.Background(), "xyz")
		assert.ErrorIs(mt, err, domainErrors.ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := newStorage(mt.DB, discardLogger()).Products()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch,
			toD(mt, storedProduct(&yes)), toD(mt, storedProduct(&no))))

		products, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.True(mt, products[0].Available)
		assert.False(mt, products[1].Available)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := newStorage(mt.DB, discardLogger()).Products()
		doc := storedProduct(&yes)
		doc.Price = 150
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toD(mt, doc)}))

		price := 150.0
		product, err := repo.Update(context.Background(), doc.ID.Hex(), model.ProductPatch{Price: &price})
		require.NoError(mt, err)
		assert.Equal(mt, 150.0, product.Price)
		assert.Equal(mt, "Croissant", product.Name)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch, toD(mt, doc)))
		product, err = repo.Update(context.Background(), doc.ID.Hex(), model.ProductPatch{})
		require.NoError(mt, err)
		assert.Equal(mt, doc.ID.Hex(), product.ID)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		_, err = repo.Update(context.Background(), doc.ID.Hex(), model.ProductPatch{Price: &price})
		assert.ErrorIs(mt, err, domainErrors.ErrNotFound)
	})

	mt.Run("toggle", func(mt *mtest.T) {
		repo := newStorage(mt.DB, discardLogger()).Products()
		doc := storedProduct(&no)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toD(mt, doc)}))

		product, err := repo.ToggleAvailability(context.Background(), doc.ID.Hex())
		require.NoError(mt, err)
		assert.False(mt, product.Available)

		_, err = repo.ToggleAvailability(context.Background(), "bad")
		assert.ErrorIs(mt, err, domainErrors.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := newStorage(mt.DB, discardLogger()).Products()
		doc := storedProduct(&yes)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toD(mt, doc)}))

		product, err := repo.Delete(context.Background(), doc.ID.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, &model.Asset{URL: "u", Handle: "h"}, product.Image)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		_, err = repo.Delete(context.Background(), doc.ID.Hex())
		assert.ErrorIs(mt, err, domainErrors.ErrNotFound)
	})
}

func TestPatchFields(t *testing.T) {
	name := "Bun"
	options := []string{"a"}
	available := false
	fields := patchFields(model.ProductPatch{
		Name:      &name,
		Options:   &options,
		Available: &available,
		Image:     &model.Asset{URL: "u", Handle: "h"},
	})

	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"name", "options", "available", "image"}, keys)
	assert.Empty(t, patchFields(model.ProductPatch{}))
}

func TestOrderDocumentKeepsCartExtras(t *testing.T) {
	order := &model.Order{
		FullName: "Ada",
		Cart: model.Cart{{
			Name:     "Eclair",
			Quantity: 1,
			Price:    90,
			Extra:    map[string]any{"id": "p-17", "meta": map[string]any{"size": "large"}},
		}},
	}

	raw, err := bson.Marshal(newOrderDocument(order))
	require.NoError(t, err)

	var doc orderDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, order.Cart, doc.model().Cart)
}
