package middleware

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bakery/internal/server/http/dto"
)

// DecompressRequest transparently inflates gzip encoded request bodies.
// Responses are left to the compressing middleware.
func DecompressRequest() gin.HandlerFunc {
	return gzip.Gzip(gzip.NoCompression, gzip.WithDecompressOnly(), gzip.WithDecompressFn(inflate))
}

func inflate(c *gin.Context) {
	gzip.DefaultDecompressHandle(c)

	// The header is only removed once every encoding layer was unwrapped.
	if c.GetHeader("Content-Encoding") != "" {
		c.JSON(c.Writer.Status(), dto.Fail("malformed or unsupported content encoding"))
	}
}

// LimitRequestBody caps the number of body bytes a handler may read.
// It applies after decompression, so it bounds the inflated size.
func LimitRequestBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
