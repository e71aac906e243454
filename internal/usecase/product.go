package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	"github.com/polkiloo/bakery/internal/domain/model"
	"github.com/polkiloo/bakery/internal/domain/repository"
)

// ProductUseCase manages the catalog.
type ProductUseCase struct {
	products repository.ProductRepository
	assets   AssetStore
	tasks    TaskSubmitter
	logger   *slog.Logger
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository, assets AssetStore, tasks TaskSubmitter, logger *slog.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, assets: assets, tasks: tasks, logger: logger}
}

// Create adds a product. Name and price are mandatory.
func (u *ProductUseCase) Create(ctx context.Context, in model.ProductForm) (*model.Product, error) {
	patch, err := buildPatch(in)
	if err != nil {
		return nil, err
	}
	if patch.Name == nil {
		return nil, fmt.Errorf("%w: name is required", domainErrors.ErrInvalidInput)
	}
	if patch.Price == nil {
		return nil, fmt.Errorf("%w: price is required", domainErrors.ErrInvalidInput)
	}

	product := &model.Product{
		Name:      *patch.Name,
		Price:     *patch.Price,
		Options:   []string{},
		Available: true,
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Options != nil {
		product.Options = *patch.Options
	}
	if patch.Available != nil {
		product.Available = *patch.Available
	}

	if in.Image != nil {
		asset, err := u.assets.Save(ctx, in.Image)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		product.Image = asset
	}

	created, err := u.products.Create(ctx, product)
	if err != nil {
		discardAsset(u.tasks, u.assets, product.Image, u.logger)
		return nil, err
	}
	return created, nil
}

// Update changes only supplied fields. A new image replaces the old one,
// which is scheduled for deletion once the document references the new one.
func (u *ProductUseCase) Update(ctx context.Context, id string, in model.ProductForm) (*model.Product, error) {
	patch, err := buildPatch(in)
	if err != nil {
		return nil, err
	}

	existing, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Image != nil {
		asset, err := u.assets.Save(ctx, in.Image)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		patch.Image = asset
	}

	if patch.Empty() {
		return existing, nil
	}

	updated, err := u.products.Update(ctx, id, patch)
	if err != nil {
		discardAsset(u.tasks, u.assets, patch.Image, u.logger)
		return nil, err
	}

	if patch.Image != nil {
		discardAsset(u.tasks, u.assets, existing.Image, u.logger)
	}
	return updated, nil
}

// ToggleAvailability flips the availability flag and returns the updated product.
func (u *ProductUseCase) ToggleAvailability(ctx context.Context, id string) (*model.Product, error) {
	return u.products.ToggleAvailability(ctx, id)
}

// Delete removes the product and schedules removal of its image.
func (u *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := u.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	discardAsset(u.tasks, u.assets, product.Image, u.logger)
	return nil
}

// List returns all products, newest first.
func (u *ProductUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

// Get returns a single product.
func (u *ProductUseCase) Get(ctx context.Context, id string) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

func buildPatch(in model.ProductForm) (model.ProductPatch, error) {
	var patch model.ProductPatch

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return patch, fmt.Errorf("%w: name must not be empty", domainErrors.ErrInvalidInput)
		}
		patch.Name = &name
	}
	if in.Price != nil {
		amount, err := parseAmount("price", *in.Price)
		if err != nil {
			return patch, err
		}
		price := amount.InexactFloat64()
		patch.Price = &price
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		patch.Description = &description
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		patch.Category = &category
	}
	if in.Options != nil {
		options := model.ParseOptions(*in.Options)
		patch.Options = &options
	}
	if in.Available != nil {
		available, err := strconv.ParseBool(strings.TrimSpace(*in.Available))
		if err != nil {
			return patch, fmt.Errorf("%w: available must be a boolean", domainErrors.ErrInvalidInput)
		}
		patch.Available = &available
	}

	return patch, nil
}
