package validator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"jo@example.com","password":"secret"}`))

	var body credentials
	require.NoError(t, DecodeAndValidate(req, &body))
	assert.Equal(t, "jo@example.com", body.Email)
}

func TestDecodeAndValidateMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))

	var body credentials
	err := DecodeAndValidate(req, &body)
	require.Error(t, err)

	// A decode failure is not a field-level validation error.
	var valErr *ValidationError
	assert.False(t, errors.As(err, &valErr))
}

func TestDecodeAndValidateFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"not-an-email"}`))

	var body credentials
	err := DecodeAndValidate(req, &body)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "must be a valid email address", fields["Email"])
	assert.Equal(t, "is required", fields["Password"])
}
