package handler

import (
	"net/http"
	"strings"

	"movie-wallet/internal/adapter/http/dto"
	"movie-wallet/internal/adapter/http/middleware"
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/apperror"
	"movie-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles admin session endpoints.
type AuthHandler struct {
	authSvc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	// Passwords are compared as typed.
	session, err := h.authSvc.Login(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Unix(),
		Username:  session.Principal.Username,
		IsAdmin:   session.Principal.IsAdmin,
	})
}

// Logout handles POST /api/v1/auth/logout. Sessions are stateless, so the
// client discarding its token is what ends the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidSession())
		return
	}
	response.OK(c, gin.H{"logged_out": true, "username": principal.Username})
}

// HealthCheck handles GET /health. It pings every configured dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
