package handlers

import (
	"context"

	"github.com/polkiloo/bakery/internal/domain/model"
)

// AuthFacade describes operator authentication required by handlers.
type AuthFacade interface {
	Login(ctx context.Context, password string) (string, error)
	ParseToken(token string) (string, error)
	AuthEnabled() bool
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, in model.OrderForm) (*model.Order, error)
	Orders(ctx context.Context) ([]model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// ProductFacade encapsulates catalog operations exposed via HTTP.
type ProductFacade interface {
	CreateProduct(ctx context.Context, in model.ProductForm) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, in model.ProductForm) (*model.Product, error)
	ToggleProduct(ctx context.Context, id string) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
}

// ContactFacade relays contact-form messages.
type ContactFacade interface {
	SubmitContact(ctx context.Context, msg model.ContactMessage) error
}

// HealthFacade reports document store reachability.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	OrderFacade
	ProductFacade
	ContactFacade
	HealthFacade
}
