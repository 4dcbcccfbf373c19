package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// GenericMessage is what clients see for any failure we do not describe.
const GenericMessage = "Something went wrong"

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Error codes.
const (
	CodeNotFound           = "RES_001"
	CodeInsufficientFunds  = "LED_001"
	CodeValidation         = "VAL_001"
	CodeConflict           = "VAL_002"
	CodePayloadTooLarge    = "VAL_003"
	CodeInvalidCredentials = "AUTH_001"
	CodeInvalidSession     = "AUTH_002"
	CodeInternal           = "SYS_001"
	CodeStoreFailure       = "SYS_002"
)

// ---- Resources (RES) ----

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Ledger (LED) ----

func ErrInsufficientFunds() *AppError {
	return New(CodeInsufficientFunds, "Insufficient wallet balance", http.StatusPaymentRequired)
}

// ---- Validation (VAL) ----

// Validation returns a VAL_001 error with a user-visible message.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return Validation("Amount must be greater than zero")
}

func ErrAmountPrecision() *AppError {
	return Validation("Amount must have at most two decimal places")
}

func ErrBankRequired() *AppError {
	return Validation("Please select a bank")
}

func ErrPayloadTooLarge(limit int64) *AppError {
	return New(CodePayloadTooLarge, fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}

func ErrConflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidSession() *AppError {
	return New(CodeInvalidSession, "Invalid or expired session", http.StatusUnauthorized)
}

// ---- System (SYS) ----

// InternalError hides err behind the generic message.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, GenericMessage, http.StatusInternalServerError, err)
}

func ErrStoreFailure(err error) *AppError {
	return Wrap(CodeStoreFailure, GenericMessage, http.StatusInternalServerError, err)
}

// From returns err as an AppError, wrapping unknown errors as internal.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}
