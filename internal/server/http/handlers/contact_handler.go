package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bakery/internal/domain/model"
	"github.com/polkiloo/bakery/internal/server/http/dto"
)

// ContactHandler relays contact-form submissions to the operator.
type ContactHandler struct {
	facade ContactFacade
	logger *slog.Logger
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(facade ContactFacade, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{facade: facade, logger: logger}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	msg := model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.facade.SubmitContact(c.Request.Context(), msg); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Message sent successfully"))
}
