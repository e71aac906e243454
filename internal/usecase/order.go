package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	"github.com/polkiloo/bakery/internal/domain/model"
	"github.com/polkiloo/bakery/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	assets   AssetStore
	notifier Notifier
	tasks    TaskSubmitter
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, assets AssetStore, notifier Notifier, tasks TaskSubmitter, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, assets: assets, notifier: notifier, tasks: tasks, logger: logger}
}

// Place validates checkout input, stores the optional screenshot and persists
// a pending order. Notifications are sent in the background.
func (u *OrderUseCase) Place(ctx context.Context, in model.OrderForm) (*model.Order, error) {
	order := &model.Order{
		FullName:      strings.TrimSpace(in.FullName),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		Landmark:      strings.TrimSpace(in.Landmark),
		City:          strings.TrimSpace(in.City),
		Pincode:       strings.TrimSpace(in.Pincode),
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Status:        model.OrderStatusPending,
	}

	required := []struct{ field, value string }{
		{"fullName", order.FullName},
		{"email", order.Email},
		{"phone", order.Phone},
		{"address", order.Address},
		{"city", order.City},
		{"pincode", order.Pincode},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("%w: %s is required", domainErrors.ErrInvalidInput, r.field)
		}
	}

	cart, err := model.ParseCart(in.Cart)
	if err != nil {
		return nil, err
	}
	order.Cart = cart

	total, err := parseAmount("total", in.Total)
	if err != nil {
		return nil, err
	}
	order.Total = total.InexactFloat64()

	if subtotal := cart.Subtotal(); !subtotal.Equal(total) {
		u.logger.WarnContext(ctx, "order total differs from cart subtotal",
			slog.String("total", total.String()),
			slog.String("subtotal", subtotal.String()),
		)
	}

	if in.Screenshot != nil {
		asset, err := u.assets.Save(ctx, in.Screenshot)
		if err != nil {
			return nil, fmt.Errorf("store screenshot: %w", err)
		}
		order.Screenshot = asset
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		discardAsset(u.tasks, u.assets, order.Screenshot, u.logger)
		return nil, err
	}

	u.tasks.Submit("order notification "+created.ID, func(ctx context.Context) error {
		return u.notifier.OrderPlaced(ctx, created)
	})

	return created, nil
}

// List returns all orders, newest first.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// Get returns a single order.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// UpdateStatus overwrites the order status with any non-empty label.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", domainErrors.ErrInvalidInput)
	}
	return u.orders.UpdateStatus(ctx, id, model.OrderStatus(status))
}

// Delete removes the order and schedules removal of its screenshot.
func (u *OrderUseCase) Delete(ctx context.Context, id string) error {
	order, err := u.orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	discardAsset(u.tasks, u.assets, order.Screenshot, u.logger)
	return nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: %s is required", domainErrors.ErrInvalidInput, field)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a number", domainErrors.ErrInvalidInput, field)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s must not be negative", domainErrors.ErrInvalidInput, field)
	}
	return amount, nil
}
