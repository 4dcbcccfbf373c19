package middleware

import (
	"net/http"
	"strings"
	"time"

	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/apperror"
	"movie-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderRequestID is echoed back on every response.
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxRequestID = response.CtxRequestID
	CtxPrincipal = "principal"

	bearerPrefix = "Bearer "
)

// RequestID reuses the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AdminAuth requires a bearer session token that carries the admin flag.
func AdminAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) || len(authHeader) == len(bearerPrefix) {
			response.Error(c, apperror.ErrInvalidSession())
			c.Abort()
			return
		}

		principal, err := tokenSvc.Validate(authHeader[len(bearerPrefix):])
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("session rejected")
			response.Error(c, apperror.ErrInvalidSession())
			c.Abort()
			return
		}
		if !principal.IsAdmin {
			response.Error(c, apperror.ErrInvalidSession())
			c.Abort()
			return
		}

		c.Set(CtxPrincipal, *principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal AdminAuth stored on c.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.
			Str("request_id", c.GetString(CtxRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				response.Error(c, apperror.New(apperror.CodeInternal, apperror.GenericMessage, http.StatusInternalServerError))
				c.Abort()
			}
		}()
		c.Next()
	}
}
