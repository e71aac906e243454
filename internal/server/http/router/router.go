package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bakery/internal/adapter/asset"
	"github.com/polkiloo/bakery/internal/config"
	"github.com/polkiloo/bakery/internal/server/http/handlers"
	"github.com/polkiloo/bakery/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.MaxMultipartMemory = cfg.MaxUploadSize

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS(cfg.CORSOrigins))
	engine.Use(middleware.DecompressRequest())
	engine.Use(middleware.LimitRequestBody(2 * cfg.MaxUploadSize))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{asset.PublicPrefix})))

	if cfg.CloudinaryURL == "" {
		engine.Static(asset.PublicPrefix, cfg.UploadDir)
	}

	authHandler := handlers.NewAuthHandler(facade, logger)
	orderHandler := handlers.NewOrderHandler(facade, logger)
	productHandler := handlers.NewProductHandler(facade, logger)
	contactHandler := handlers.NewContactHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.POST("/admin/login", authHandler.Login)
	api.POST("/place-order", orderHandler.Place)
	api.POST("/contact", contactHandler.Submit)
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)

	operator := api.Group("")
	operator.Use(middleware.OperatorRequired(facade))
	operator.GET("/orders", orderHandler.List)
	operator.GET("/orders/:id", orderHandler.Get)
	operator.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	operator.DELETE("/orders/:id", orderHandler.Delete)
	operator.POST("/products", productHandler.Create)
	operator.PUT("/products/:id", productHandler.Update)
	operator.PUT("/products/:id/toggle-hold", productHandler.Toggle)
	operator.DELETE("/products/:id", productHandler.Delete)

	return engine
}
