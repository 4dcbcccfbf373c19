package response

import (
	"errors"
	"net/http"
	"time"

	"movie-wallet/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CtxRequestID is the gin context key holding the request ID.
const CtxRequestID = "request_id"

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data interface{}) {
	success(c, http.StatusOK, data)
}

// Created sends a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	success(c, http.StatusCreated, data)
}

// Accepted sends a 202 response, used for work that completes later.
func Accepted(c *gin.Context, data interface{}) {
	success(c, http.StatusAccepted, data)
}

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Success:   true,
		Data:      data,
		RequestID: getRequestID(c),
		Timestamp: now(),
	})
}

// Error sends an error response. AppErrors keep their code and status,
// anything else becomes a generic 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorResponse{
			ErrorCode: appErr.Code,
			Message:   appErr.Message,
			RequestID: getRequestID(c),
			Timestamp: now(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		ErrorCode: "SYS_000",
		Message:   apperror.GenericMessage,
		RequestID: getRequestID(c),
		Timestamp: now(),
	})
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// getRequestID retrieves request ID from context, or generates one.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get(CtxRequestID); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}
