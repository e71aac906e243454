package di

import (
	"github.com/polkiloo/bakery/internal/adapter/asset"
	"github.com/polkiloo/bakery/internal/adapter/mailer"
	"github.com/polkiloo/bakery/internal/app"
	"github.com/polkiloo/bakery/internal/config"
	"github.com/polkiloo/bakery/internal/logger"
	"github.com/polkiloo/bakery/internal/notification"
	"github.com/polkiloo/bakery/internal/pkg/auth"
	"github.com/polkiloo/bakery/internal/server/http/handlers"
	"github.com/polkiloo/bakery/internal/server/http/router"
	"github.com/polkiloo/bakery/internal/storage"
	"github.com/polkiloo/bakery/internal/usecase"
	"github.com/polkiloo/bakery/internal/worker"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		asset.Module,
		mailer.Module,
		notification.Module,
		usecase.Module,
		fx.Provide(func(store asset.Store) usecase.AssetStore { return store }),
		fx.Provide(func(n *notification.Notifier) usecase.Notifier { return n }),
		fx.Provide(func(d *worker.Dispatcher) usecase.TaskSubmitter { return d }),
		fx.Provide(func(f *app.StoreFacade) handlers.StoreFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
