package app

import (
	"context"

	"github.com/polkiloo/bakery/internal/domain/model"
	"github.com/polkiloo/bakery/internal/domain/repository"
	"github.com/polkiloo/bakery/internal/usecase"
)

// StoreFacade exposes the storefront use cases to the HTTP layer.
type StoreFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	products *usecase.ProductUseCase
	contact  *usecase.ContactUseCase
	store    repository.Store
}

func NewStoreFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	products *usecase.ProductUseCase,
	contact *usecase.ContactUseCase,
	store repository.Store,
) *StoreFacade {
	return &StoreFacade{auth: auth, orders: orders, products: products, contact: contact, store: store}
}

func (f *StoreFacade) Login(ctx context.Context, password string) (string, error) {
	return f.auth.Login(ctx, password)
}

func (f *StoreFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) AuthEnabled() bool {
	return f.auth.Enabled()
}

func (f *StoreFacade) PlaceOrder(ctx context.Context, in model.OrderForm) (*model.Order, error) {
	return f.orders.Place(ctx, in)
}

func (f *StoreFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

func (f *StoreFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, id, status string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, id, status)
}

func (f *StoreFacade) DeleteOrder(ctx context.Context, id string) error {
	return f.orders.Delete(ctx, id)
}

func (f *StoreFacade) CreateProduct(ctx context.Context, in model.ProductForm) (*model.Product, error) {
	return f.products.Create(ctx, in)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, id string, in model.ProductForm) (*model.Product, error) {
	return f.products.Update(ctx, id, in)
}

func (f *StoreFacade) ToggleProduct(ctx context.Context, id string) (*model.Product, error) {
	return f.products.ToggleAvailability(ctx, id)
}

func (f *StoreFacade) DeleteProduct(ctx context.Context, id string) error {
	return f.products.Delete(ctx, id)
}

func (f *StoreFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.products.List(ctx)
}

func (f *StoreFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.products.Get(ctx, id)
}

func (f *StoreFacade) SubmitContact(ctx context.Context, msg model.ContactMessage) error {
	return f.contact.Submit(ctx, msg)
}

// Health pings the document store.
func (f *StoreFacade) Health(ctx context.Context) error {
	return f.store.HealthCheck(ctx)
}
