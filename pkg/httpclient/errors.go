package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/Pentakotacharan/shopmate-client/pkg/errors"
)

// BackendErrorResponse mirrors the error body shape returned by the ShopMate
// backend ({"message": "..."}). Some endpoints wrap it in an "error" object
// instead, so both forms are tried.
type BackendErrorResponse struct {
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError. If the body matches a known backend error
// shape the message is preserved; otherwise a generic error carries the status
// code and raw body.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, operation string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", operation, resp.StatusCode, err)
	}

	message := ""
	var backend BackendErrorResponse
	if json.Unmarshal(bodyBytes, &backend) == nil {
		switch {
		case backend.Error != nil && backend.Error.Message != "":
			message = backend.Error.Message
		case backend.Message != "":
			message = backend.Message
		}
	}
	if message == "" {
		message = string(bodyBytes)
	}

	return mapBackendError(resp.StatusCode, message, operation)
}

// mapBackendError translates the backend's HTTP status code into an AppError
// that preserves the error semantics for the storefront.
func mapBackendError(status int, message, operation string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", operation, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(operation, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualifiedMsg)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return apperrors.AuthFailed(message)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualifiedMsg)
	case status == http.StatusUnprocessableEntity:
		return apperrors.PaymentConfirm(message)
	case status >= 500:
		return fmt.Errorf("%s: backend server error (%d): %s", operation, status, message)
	case IsClientError(status):
		// An unmapped 4xx still carries the backend's verdict on the request,
		// so keep it structured.
		return &apperrors.AppError{
			Code:    "BACKEND_ERROR",
			Message: qualifiedMsg,
			Status:  status,
		}
	default:
		return fmt.Errorf("%s: unexpected backend status %d: %s", operation, status, message)
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
