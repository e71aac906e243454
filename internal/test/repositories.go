package test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	"github.com/polkiloo/bakery/internal/domain/model"
	"github.com/polkiloo/bakery/internal/domain/repository"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// OrderRepositoryStub keeps orders in memory. Err, when set, is returned by every call.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Items  map[string]model.Order
	Next   int
	Err    error
	Writes int
}

// NewOrderRepositoryStub constructs an empty order repository.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Items: make(map[string]model.Order)}
}

// Create assigns an identifier and creation time.
func (s *OrderRepositoryStub) Create(_ context.Context, order *model.Order) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Items == nil {
		s.Items = make(map[string]model.Order)
	}
	s.Next++
	s.Writes++
	stored := *order
	stored.ID = fmt.Sprintf("order-%d", s.Next)
	stored.CreatedAt = epoch.Add(time.Duration(s.Next) * time.Minute)
	s.Items[stored.ID] = stored
	return &stored, nil
}

// GetByID returns stored order or not found.
func (s *OrderRepositoryStub) GetByID(_ context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &order, nil
}

// List returns orders newest first.
func (s *OrderRepositoryStub) List(_ context.Context) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Order, 0, len(s.Items))
	for _, o := range s.Items {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UpdateStatus overwrites status of stored order.
func (s *OrderRepositoryStub) UpdateStatus(_ context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Writes++
	order.Status = status
	s.Items[id] = order
	return &order, nil
}

// Delete removes order and returns the removed document.
func (s *OrderRepositoryStub) Delete(_ context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Writes++
	delete(s.Items, id)
	return &order, nil
}

// ProductRepositoryStub keeps products in memory.
type ProductRepositoryStub struct {
	mu      sync.Mutex
	Items   map[string]model.Product
	Next    int
	Err     error
	Writes  int
	Patches []model.ProductPatch
}

// NewProductRepositoryStub constructs an empty product repository.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Items: make(map[string]model.Product)}
}

// Seed stores product as is and returns its identifier.
func (s *ProductRepositoryStub) Seed(product model.Product) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Items == nil {
		s.Items = make(map[string]model.Product)
	}
	s.Next++
	if product.ID == "" {
		product.ID = fmt.Sprintf("product-%d", s.Next)
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = epoch.Add(time.Duration(s.Next) * time.Minute)
	}
	s.Items[product.ID] = product
	return product.ID
}

// Create assigns an identifier and creation time.
func (s *ProductRepositoryStub) Create(_ context.Context, product *model.Product) (*model.Product, error) {
	s.mu.Lock()
	if s.Err != nil {
		s.mu.Unlock()
		return nil, s.Err
	}
	s.Writes++
	s.mu.Unlock()

	stored := *product
	stored.ID = ""
	id := s.Seed(stored)
	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.Items[id]
	return &created, nil
}

// GetByID returns stored product or not found.
func (s *ProductRepositoryStub) GetByID(_ context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	product, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &product, nil
}

// List returns products newest first.
func (s *ProductRepositoryStub) List(_ context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Product, 0, len(s.Items))
	for _, p := range s.Items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Update applies supplied patch fields.
func (s *ProductRepositoryStub) Update(_ context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	product, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Writes++
	s.Patches = append(s.Patches, patch)
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
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
	if patch.Image != nil {
		product.Image = patch.Image
	}
	s.Items[id] = product
	return &product, nil
}

// ToggleAvailability flips the availability flag.
func (s *ProductRepositoryStub) ToggleAvailability(_ context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	product, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Writes++
	product.Available = !product.Available
	s.Items[id] = product
	return &product, nil
}

// Delete removes product and returns the removed document.
func (s *ProductRepositoryStub) Delete(_ context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	product, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Writes++
	delete(s.Items, id)
	return &product, nil
}

// StoreStub bundles repository stubs behind the store contract.
type StoreStub struct {
	OrderRepo   *OrderRepositoryStub
	ProductRepo *ProductRepositoryStub
	PingErr     error
	Closed      bool
}

// NewStoreStub constructs a store with empty repositories.
func NewStoreStub() *StoreStub {
	return &StoreStub{OrderRepo: NewOrderRepositoryStub(), ProductRepo: NewProductRepositoryStub()}
}

func (s *StoreStub) Orders() repository.OrderRepository     { return s.OrderRepo }
func (s *StoreStub) Products() repository.ProductRepository { return s.ProductRepo }

// HealthCheck returns configured ping error.
func (s *StoreStub) HealthCheck(context.Context) error { return s.PingErr }

// Close marks the store closed.
func (s *StoreStub) Close(context.Context) error {
	s.Closed = true
	return nil
}

var _ repository.Store = (*StoreStub)(nil)
