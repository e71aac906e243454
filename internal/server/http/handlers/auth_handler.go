package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bakery/internal/server/http/dto"
	"github.com/polkiloo/bakery/internal/server/http/middleware"
)

// AuthHandler processes operator login.
type AuthHandler struct {
	facade AuthFacade
	logger *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, logger: logger}
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, err := h.facade.Login(c.Request.Context(), req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.LoginResponse{Success: true, Token: token})
}
