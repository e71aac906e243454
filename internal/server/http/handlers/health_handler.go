package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bakery/internal/server/http/dto"
)

// HealthHandler exposes document store reachability.
type HealthHandler struct {
	facade HealthFacade
	logger *slog.Logger
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(facade HealthFacade, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{facade: facade, logger: logger}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.facade.Health(c.Request.Context()); err != nil {
		h.logger.WarnContext(c.Request.Context(), "health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Success: false, Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Success: true, Status: "ok"})
}
