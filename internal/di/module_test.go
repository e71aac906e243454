package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/bakery/internal/adapter/asset"
	"github.com/polkiloo/bakery/internal/config"
	"github.com/polkiloo/bakery/internal/domain/repository"
	"github.com/polkiloo/bakery/internal/server/http/handlers"
	"github.com/polkiloo/bakery/internal/test"
	"github.com/polkiloo/bakery/internal/usecase"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		UploadDir:       t.TempDir(),
		MaxUploadSize:   1 << 20,
		MailProvider:    config.MailProviderLog,
		StoreName:       "Bakery",
		AuthSecret:      "secret",
		CORSOrigins:     []string{"*"},
		WorkerPoolSize:  1,
		TaskQueueSize:   1,
		TaskTimeout:     time.Second,
		ShutdownTimeout: time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := test.NewStoreStub()
	assets := &test.AssetStoreMock{}

	var (
		facade   handlers.StoreFacade
		orders   *usecase.OrderUseCase
		server   *http.Server
		resolved repository.Store
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(fx.Annotate(store, fx.As(new(repository.Store)))),
			fx.Replace(fx.Annotate(assets, fx.As(new(asset.Store)))),
		),
		fx.Populate(&facade, &orders, &server, &resolved),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || orders == nil || server == nil {
		t.Fatal("expected facade, use case and server instances")
	}
	if resolved != store {
		t.Fatal("expected replaced store to be resolved")
	}
	if err := facade.Health(context.Background()); err != nil {
		t.Fatalf("unexpected health error: %v", err)
	}
}
