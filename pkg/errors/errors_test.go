package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	e := AuthFailed("invalid email or password")
	assert.Equal(t, "AUTH_FAILED: invalid email or password: authentication failed", e.Error())

	plain := &AppError{Code: "X", Message: "y"}
	assert.Equal(t, "X: y", plain.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	e := PaymentInit("stripe", "intent creation failed")
	assert.ErrorIs(t, e, ErrPaymentInit)
}

func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
		code   string
	}{
		{"not found", NotFound("product", "p1"), http.StatusNotFound, "NOT_FOUND"},
		{"invalid input", InvalidInput("bad"), http.StatusBadRequest, "INVALID_INPUT"},
		{"unauthorized", Unauthorized("no"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"conflict", Conflict("busy"), http.StatusConflict, "CONFLICT"},
		{"auth failed", AuthFailed("nope"), http.StatusUnauthorized, "AUTH_FAILED"},
		{"catalog", CatalogUnavailable("down"), http.StatusBadGateway, "CATALOG_UNAVAILABLE"},
		{"payment init", PaymentInit("razorpay", "order failed"), http.StatusBadGateway, "PAYMENT_INIT_FAILED"},
		{"payment confirm", PaymentConfirm("card declined"), http.StatusUnprocessableEntity, "PAYMENT_CONFIRM_FAILED"},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestPaymentConfirm_PreservesPayloadVerbatim(t *testing.T) {
	payload := `{"code":"BAD_REQUEST_ERROR","description":"Payment failed due to insufficient funds"}`
	e := PaymentConfirm(payload)
	assert.Equal(t, payload, e.Message)
}

func TestHTTPStatus_WrappedSentinels(t *testing.T) {
	err := fmt.Errorf("fetch products: %w", ErrCatalog)
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(err))

	err = fmt.Errorf("login: %w", ErrAuthFailed)
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(err))

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("unknown")))
}

func TestWrap(t *testing.T) {
	base := NotFound("cart", "user-1")
	wrapped := Wrap(base, "load cart")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Contains(t, wrapped.Error(), "load cart")
}
