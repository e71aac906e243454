package storage

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"github.com/polkiloo/bakery/internal/config"
	"github.com/polkiloo/bakery/internal/domain/repository"
	"github.com/polkiloo/bakery/internal/storage/mongodb"
	"github.com/polkiloo/bakery/internal/storage/postgres"
)

// Module wires the document store selected by DATABASE_URI and its repositories.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Provide(
		func(s repository.Store) repository.OrderRepository { return s.Orders() },
		func(s repository.Store) repository.ProductRepository { return s.Products() },
	),
	fx.Invoke(registerLifecycle),
)

type opener func(ctx context.Context, uri string, logger *slog.Logger) (repository.Store, error)

var (
	openPostgres opener = func(ctx context.Context, uri string, logger *slog.Logger) (repository.Store, error) {
		s, err := postgres.New(ctx, uri, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	openMongo opener = func(ctx context.Context, uri string, logger *slog.Logger) (repository.Store, error) {
		s, err := mongodb.New(ctx, uri, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
)

// IsMongoURI reports whether uri addresses a MongoDB deployment.
func IsMongoURI(uri string) bool {
	uri = strings.ToLower(strings.TrimSpace(uri))
	return strings.HasPrefix(uri, "mongodb://") || strings.HasPrefix(uri, "mongodb+srv://")
}

type storeParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (repository.Store, error) {
	if IsMongoURI(p.Config.DatabaseURI) {
		return openMongo(p.Ctx, p.Config.DatabaseURI, p.Logger)
	}
	return openPostgres(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, store repository.Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close(ctx)
		},
	})
}
