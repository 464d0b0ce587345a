package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal error")
	ErrAuthFailed     = errors.New("authentication failed")
	ErrCatalog        = errors.New("catalog unavailable")
	ErrPaymentInit    = errors.New("payment initialization failed")
	ErrPaymentConfirm = errors.New("payment confirmation failed")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// AuthFailed creates a 401 error for a rejected login or register attempt.
// The message carries the backend's reason (invalid credentials, disabled
// account) and is safe to show to the user.
func AuthFailed(message string) *AppError {
	return &AppError{
		Code:    "AUTH_FAILED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrAuthFailed,
	}
}

// CatalogUnavailable creates a 502 error for a failed product catalog fetch.
// Catalog errors are surfaced to the user as-is and never retried.
func CatalogUnavailable(message string) *AppError {
	return &AppError{
		Code:    "CATALOG_UNAVAILABLE",
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     ErrCatalog,
	}
}

// PaymentInit creates a 502 error for a payment provider whose session setup
// failed (order/intent creation or SDK bootstrap). Other providers remain
// usable.
func PaymentInit(provider, message string) *AppError {
	return &AppError{
		Code:    "PAYMENT_INIT_FAILED",
		Message: fmt.Sprintf("%s: %s", provider, message),
		Status:  http.StatusBadGateway,
		Err:     ErrPaymentInit,
	}
}

// PaymentConfirm creates a 422 error for a declined or failed payment
// confirmation. The message is the provider's error payload, verbatim, so the
// UI can display it unchanged.
func PaymentConfirm(message string) *AppError {
	return &AppError{
		Code:    "PAYMENT_CONFIRM_FAILED",
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrPaymentConfirm,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrAuthFailed):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrPaymentConfirm):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrCatalog), errors.Is(err, ErrPaymentInit):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
