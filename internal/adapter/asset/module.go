package asset

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/bakery/internal/config"
)

// Module exposes the configured asset store to fx graph.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (Store, error) {
	if p.Config.CloudinaryURL != "" {
		p.Logger.Info("asset store configured", slog.String("strategy", "cloudinary"), slog.String("folder", p.Config.CloudinaryFolder))
		return NewCloudinaryStore(p.Config.CloudinaryURL, p.Config.CloudinaryFolder, p.Config.MaxUploadSize)
	}
	p.Logger.Info("asset store configured", slog.String("strategy", "local"), slog.String("dir", p.Config.UploadDir))
	return NewLocalStore(p.Config.UploadDir, p.Config.MaxUploadSize)
}
