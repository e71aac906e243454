package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/bakery/internal/config"
	"github.com/polkiloo/bakery/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newEngine)

type engineParams struct {
	fx.In

	Facade handlers.StoreFacade
	Config *config.Config
	Logger *slog.Logger
}

func newEngine(p engineParams) *gin.Engine {
	return Setup(p.Facade, p.Config, p.Logger)
}
