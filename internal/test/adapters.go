package test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/polkiloo/bakery/internal/domain/model"
	"github.com/polkiloo/bakery/internal/worker"
)

// AssetStoreMock records Save and Delete calls via testify expectations.
type AssetStoreMock struct {
	mock.Mock
}

// Save returns the configured asset.
func (m *AssetStoreMock) Save(ctx context.Context, upload *model.Upload) (*model.Asset, error) {
	args := m.Called(ctx, upload)
	asset, _ := args.Get(0).(*model.Asset)
	return asset, args.Error(1)
}

// Delete returns the configured error.
func (m *AssetStoreMock) Delete(ctx context.Context, handle string) error {
	return m.Called(ctx, handle).Error(0)
}

// InlineTasks runs submitted tasks synchronously and records their outcome.
type InlineTasks struct {
	mu    sync.Mutex
	Names []string
	Errs  []error
}

// Submit runs task immediately.
func (t *InlineTasks) Submit(name string, task worker.Task) {
	err := task(context.Background())
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Names = append(t.Names, name)
	t.Errs = append(t.Errs, err)
}

// Count returns number of tasks run so far.
func (t *InlineTasks) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Names)
}

// NotifierStub records notifications.
type NotifierStub struct {
	mu       sync.Mutex
	Orders   []*model.Order
	Contacts []model.ContactMessage
	Err      error
}

// OrderPlaced records order.
func (n *NotifierStub) OrderPlaced(_ context.Context, order *model.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Orders = append(n.Orders, order)
	return n.Err
}

// ContactSubmitted records contact message.
func (n *NotifierStub) ContactSubmitted(_ context.Context, msg model.ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Contacts = append(n.Contacts, msg)
	return n.Err
}
