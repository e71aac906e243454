package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	"github.com/polkiloo/bakery/internal/domain/model"
	testhelpers "github.com/polkiloo/bakery/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func validOrderForm() model.OrderForm {
	return model.OrderForm{
		FullName:      " Ada Lovelace ",
		Email:         "ada@example.com",
		Phone:         "555-0100",
		Address:       "1 Baker St",
		Landmark:      "near the park",
		City:          "London",
		Pincode:       "NW1",
		PaymentMethod: "upi",
		Cart:          `[{"name":"Croissant","quantity":2,"price":120,"option":"butter"}]`,
		Total:         "240",
	}
}

type orderFixture struct {
	repo     *testhelpers.OrderRepositoryStub
	assets   *testhelpers.AssetStoreMock
	notifier *testhelpers.NotifierStub
	tasks    *testhelpers.InlineTasks
	uc       *OrderUseCase
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		repo:     testhelpers.NewOrderRepositoryStub(),
		assets:   new(testhelpers.AssetStoreMock),
		notifier: &testhelpers.NotifierStub{},
		tasks:    &testhelpers.InlineTasks{},
	}
	f.uc = NewOrderUseCase(f.repo, f.assets, f.notifier, f.tasks, discardLogger())
	return f
}

func TestOrderUseCasePlaceRoundTrip(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	placed, err := f.uc.Place(ctx, validOrderForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if placed.ID == "" {
		t.Fatal("expected order id to be assigned")
	}

	stored, err := f.uc.Get(ctx, placed.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.FullName != "Ada Lovelace" || stored.City != "London" || stored.Landmark != "near the park" {
		t.Fatalf("unexpected stored contact fields: %+v", stored)
	}
	if stored.Total != 240 {
		t.Fatalf("expected total as supplied, got %v", stored.Total)
	}
	expectedCart := model.Cart{{Name: "Croissant", Quantity: 2, Price: 120, Option: "butter"}}
	if !reflect.DeepEqual(stored.Cart, expectedCart) {
		t.Fatalf("unexpected cart %+v", stored.Cart)
	}
	if stored.Status != model.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", stored.Status)
	}
	if stored.Screenshot != nil {
		t.Fatal("expected no screenshot")
	}

	if len(f.notifier.Orders) != 1 || f.notifier.Orders[0].ID != placed.ID {
		t.Fatalf("expected notification for placed order, got %+v", f.notifier.Orders)
	}
	f.assets.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderUseCasePlaceStoresScreenshot(t *testing.T) {
	f := newOrderFixture()
	upload := &model.Upload{Filename: "pay.png", Body: strings.NewReader("png")}
	f.assets.On("Save", mock.Anything, upload).Return(&model.Asset{URL: "/uploads/a.png", Handle: "a.png"}, nil).Once()

	form := validOrderForm()
	form.Screenshot = upload
	placed, err := f.uc.Place(context.Background(), form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if placed.Screenshot == nil || placed.Screenshot.Handle != "a.png" {
		t.Fatalf("expected screenshot reference, got %+v", placed.Screenshot)
	}
	f.assets.AssertExpectations(t)
}

func TestOrderUseCasePlaceNotificationFailureDoesNotFail(t *testing.T) {
	f := newOrderFixture()
	f.notifier.Err = errors.New("smtp down")

	if _, err := f.uc.Place(context.Background(), validOrderForm()); err != nil {
		t.Fatalf("expected order to be placed despite notification failure, got %v", err)
	}
	if f.tasks.Count() != 1 || f.tasks.Errs[0] == nil {
		t.Fatalf("expected failed notification task to be recorded, got %+v", f.tasks.Errs)
	}
}

func TestOrderUseCasePlaceValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.OrderForm)
		target error
	}{
		{"missing name", func(f *model.OrderForm) { f.FullName = "  " }, domainErrors.ErrInvalidInput},
		{"missing email", func(f *model.OrderForm) { f.Email = "" }, domainErrors.ErrInvalidInput},
		{"missing pincode", func(f *model.OrderForm) { f.Pincode = "" }, domainErrors.ErrInvalidInput},
		{"malformed cart", func(f *model.OrderForm) { f.Cart = "not json" }, domainErrors.ErrInvalidCart},
		{"empty cart", func(f *model.OrderForm) { f.Cart = "[]" }, domainErrors.ErrInvalidCart},
		{"missing total", func(f *model.OrderForm) { f.Total = "" }, domainErrors.ErrInvalidInput},
		{"bad total", func(f *model.OrderForm) { f.Total = "lots" }, domainErrors.ErrInvalidInput},
		{"negative total", func(f *model.OrderForm) { f.Total = "-1" }, domainErrors.ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture()
			form := validOrderForm()
			tc.mutate(&form)
			if _, err := f.uc.Place(context.Background(), form); !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
			if f.repo.Writes != 0 {
				t.Fatal("expected nothing to be persisted")
			}
			if f.tasks.Count() != 0 {
				t.Fatal("expected no background work")
			}
		})
	}
}

func TestOrderUseCasePlaceDiscardsScreenshotWhenStoreFails(t *testing.T) {
	f := newOrderFixture()
	f.repo.Err = errors.New("db down")
	f.assets.On("Save", mock.Anything, mock.Anything).Return(&model.Asset{URL: "u", Handle: "h.png"}, nil)
	f.assets.On("Delete", mock.Anything, "h.png").Return(nil).Once()

	form := validOrderForm()
	form.Screenshot = &model.Upload{Body: strings.NewReader("x")}
	if _, err := f.uc.Place(context.Background(), form); err == nil {
		t.Fatal("expected store error")
	}
	f.assets.AssertExpectations(t)
	if len(f.notifier.Orders) != 0 {
		t.Fatal("expected no notification for failed order")
	}
}

func TestOrderUseCasePlaceWarnsOnTotalMismatch(t *testing.T) {
	var buf bytes.Buffer
	f := newOrderFixture()
	f.uc.logger = slog.New(slog.NewJSONHandler(&buf, nil))

	form := validOrderForm()
	form.Total = "1"
	placed, err := f.uc.Place(context.Background(), form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if placed.Total != 1 {
		t.Fatalf("expected supplied total to be kept, got %v", placed.Total)
	}
	if !strings.Contains(buf.String(), "order total differs from cart subtotal") {
		t.Fatalf("expected mismatch warning, got %s", buf.String())
	}
}

func TestOrderUseCaseUpdateStatus(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	placed, err := f.uc.Place(ctx, validOrderForm())
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}

	updated, err := f.uc.UpdateStatus(ctx, placed.ID, "  out for delivery ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != "out for delivery" {
		t.Fatalf("expected free-text status, got %q", updated.Status)
	}

	if _, err := f.uc.UpdateStatus(ctx, placed.ID, " "); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank status, got %v", err)
	}
	if _, err := f.uc.UpdateStatus(ctx, "missing", "ready"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderUseCaseDelete(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.assets.On("Save", mock.Anything, mock.Anything).Return(&model.Asset{URL: "u", Handle: "shot.png"}, nil)
	f.assets.On("Delete", mock.Anything, "shot.png").Return(errors.New("already gone")).Once()

	form := validOrderForm()
	form.Screenshot = &model.Upload{Body: strings.NewReader("x")}
	placed, err := f.uc.Place(ctx, form)
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}

	if err := f.uc.Delete(ctx, placed.ID); err != nil {
		t.Fatalf("expected asset failure to be swallowed, got %v", err)
	}
	f.assets.AssertExpectations(t)

	if _, err := f.uc.Get(ctx, placed.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected order to be gone, got %v", err)
	}
	if err := f.uc.Delete(ctx, placed.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestOrderUseCaseList(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	first, _ := f.uc.Place(ctx, validOrderForm())
	second, _ := f.uc.Place(ctx, validOrderForm())

	orders, err := f.uc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != second.ID || orders[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", orders)
	}
}
