package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	"github.com/polkiloo/bakery/internal/domain/model"
	"github.com/polkiloo/bakery/internal/server/http/dto"
)

const internalErrorMessage = "internal server error"

// respondError maps domain errors onto the JSON envelope. Unexpected errors
// are logged with detail and answered with a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Fail("not found"))
	case errors.Is(err, domainErrors.ErrInvalidInput),
		errors.Is(err, domainErrors.ErrInvalidCart),
		errors.Is(err, domainErrors.ErrInvalidUpload):
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.Fail("invalid credentials"))
	case errors.Is(err, domainErrors.ErrAuthDisabled):
		c.JSON(http.StatusNotFound, dto.Fail("operator login is not configured"))
	default:
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, dto.Fail(internalErrorMessage))
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.Fail(fmt.Sprintf("%v: %v", domainErrors.ErrInvalidInput, err)))
}

// formValue returns a pointer to a supplied form field, nil when absent.
func formValue(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

// formUpload opens an optional multipart file. The returned release func is never nil.
func formUpload(c *gin.Context, field string) (*model.Upload, func(), error) {
	release := func() {}

	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, release, nil
		}
		return nil, release, fmt.Errorf("%w: %v", domainErrors.ErrInvalidUpload, err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, release, fmt.Errorf("open %s: %w", field, err)
	}

	upload := &model.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
	return upload, func() { _ = file.Close() }, nil
}
