package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bakery/internal/server/http/dto"
	pkgAuth "github.com/polkiloo/bakery/internal/pkg/auth"
)

const (
	// OperatorContextKey is a gin context key for the authenticated operator subject.
	OperatorContextKey = "operator"
	authCookieName     = "bakery_token"
)

// OperatorAuth validates operator tokens.
type OperatorAuth interface {
	AuthEnabled() bool
	ParseToken(token string) (string, error)
}

// OperatorRequired guards operator routes. When no admin password is
// configured every request passes.
func OperatorRequired(auth OperatorAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.AuthEnabled() {
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("authentication required"))
			return
		}

		subject, err := auth.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("invalid token"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("internal server error"))
			return
		}

		c.Set(OperatorContextKey, subject)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
