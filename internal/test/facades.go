package test

import (
	"context"
	"time"

	"github.com/polkiloo/bakery/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn  func(context.Context, model.OrderForm) (*model.Order, error)
	ListFn   func(context.Context) ([]model.Order, error)
	GetFn    func(context.Context, string) (*model.Order, error)
	StatusFn func(context.Context, string, string) (*model.Order, error)
	DeleteFn func(context.Context, string) error
}

// PlaceOrder delegates to provided function or returns default order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, in model.OrderForm) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, in)
	}
	return &model.Order{ID: "order-1", FullName: in.FullName, Status: model.OrderStatusPending}, nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.Order{{ID: "order-1", Status: model.OrderStatusPending, CreatedAt: time.Unix(0, 0).UTC()}}, nil
}

// Order returns a single order.
func (s OrderFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

// UpdateOrderStatus returns order with new status.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, id, status string) (*model.Order, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, id, status)
	}
	return &model.Order{ID: id, Status: model.OrderStatus(status)}, nil
}

// DeleteOrder executes configured handler.
func (s OrderFacadeStub) DeleteOrder(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// ProductFacadeStub provides controllable behaviour for catalog endpoints.
type ProductFacadeStub struct {
	CreateFn func(context.Context, model.ProductForm) (*model.Product, error)
	UpdateFn func(context.Context, string, model.ProductForm) (*model.Product, error)
	ToggleFn func(context.Context, string) (*model.Product, error)
	DeleteFn func(context.Context, string) error
	ListFn   func(context.Context) ([]model.Product, error)
	GetFn    func(context.Context, string) (*model.Product, error)
}

// CreateProduct delegates to provided function or echoes the name.
func (s ProductFacadeStub) CreateProduct(ctx context.Context, in model.ProductForm) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in)
	}
	product := &model.Product{ID: "product-1", Options: []string{}, Available: true}
	if in.Name != nil {
		product.Name = *in.Name
	}
	return product, nil
}

// UpdateProduct delegates to provided function.
func (s ProductFacadeStub) UpdateProduct(ctx context.Context, id string, in model.ProductForm) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, in)
	}
	return &model.Product{ID: id, Options: []string{}, Available: true}, nil
}

// ToggleProduct flips a fixed product.
func (s ProductFacadeStub) ToggleProduct(ctx context.Context, id string) (*model.Product, error) {
	if s.ToggleFn != nil {
		return s.ToggleFn(ctx, id)
	}
	return &model.Product{ID: id, Options: []string{}, Available: false}, nil
}

// DeleteProduct executes configured handler.
func (s ProductFacadeStub) DeleteProduct(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// Products returns predefined catalog.
func (s ProductFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.Product{{ID: "product-1", Name: "Croissant", Price: 120, Options: []string{}, Available: true}}, nil
}

// Product returns a single product.
func (s ProductFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Croissant", Options: []string{}, Available: true}, nil
}

// ContactFacadeStub records contact submissions.
type ContactFacadeStub struct {
	SubmitFn func(context.Context, model.ContactMessage) error
}

// SubmitContact delegates to provided function.
func (s ContactFacadeStub) SubmitContact(ctx context.Context, msg model.ContactMessage) error {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, msg)
	}
	return nil
}

// AuthFacadeStub simulates operator login.
type AuthFacadeStub struct {
	OperatorAuthStub
	LoginFn func(context.Context, string) (string, error)
}

// Login returns token for successful authentication scenarios.
func (s AuthFacadeStub) Login(ctx context.Context, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, password)
	}
	return "token", nil
}

// HealthFacadeStub returns configured health error.
type HealthFacadeStub struct {
	Err error
}

// Health reports configured state.
func (s HealthFacadeStub) Health(context.Context) error {
	return s.Err
}

// StoreFacadeStub aggregates facade dependencies for HTTP layer tests.
type StoreFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	ProductFacadeStub
	ContactFacadeStub
	HealthFacadeStub
}
