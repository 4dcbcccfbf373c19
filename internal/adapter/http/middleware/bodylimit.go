package middleware

import (
	"net/http"

	"movie-wallet/pkg/apperror"
	"movie-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// MaxBodySize caps request bodies at maxBytes. A declared Content-Length
// over the cap is refused with 413 before the handler runs; bodies without
// one are cut off by the reader and the binding error surfaces instead.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, apperror.ErrPayloadTooLarge(maxBytes))
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
