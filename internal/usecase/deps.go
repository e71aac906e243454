package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/bakery/internal/domain/model"
	"github.com/polkiloo/bakery/internal/worker"
)

// AssetStore persists uploaded images and removes them by handle.
type AssetStore interface {
	Save(ctx context.Context, upload *model.Upload) (*model.Asset, error)
	Delete(ctx context.Context, handle string) error
}

// Notifier sends storefront e-mails.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *model.Order) error
	ContactSubmitted(ctx context.Context, msg model.ContactMessage) error
}

// TaskSubmitter schedules best-effort work that must not delay the response.
type TaskSubmitter interface {
	Submit(name string, task worker.Task)
}

// discardAsset schedules removal of a stored asset. A nil asset is ignored.
func discardAsset(tasks TaskSubmitter, assets AssetStore, asset *model.Asset, logger *slog.Logger) {
	if asset == nil || asset.Handle == "" {
		return
	}
	handle := asset.Handle
	logger.Debug("scheduling asset deletion", slog.String("handle", handle))
	tasks.Submit("delete asset "+handle, func(ctx context.Context) error {
		return assets.Delete(ctx, handle)
	})
}
