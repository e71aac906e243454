package repository

import (
	"context"

	"github.com/polkiloo/bakery/internal/domain/model"
)

// ProductRepository describes persistence operations with catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error)
	ToggleAvailability(ctx context.Context, id string) (*model.Product, error)
	Delete(ctx context.Context, id string) (*model.Product, error)
}
