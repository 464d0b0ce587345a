package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Pentakotacharan/shopmate-client/pkg/errors"
	"github.com/Pentakotacharan/shopmate-client/pkg/logger"
)

func write(t *testing.T, err error) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	WriteError(rec, req, err, logger.NewWithWriter("test", "error", io.Discard))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestWriteErrorAppError(t *testing.T) {
	rec, resp := write(t, apperrors.PaymentConfirm(`{"code":"card_declined"}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PAYMENT_CONFIRM_FAILED", resp.Error.Code)
	assert.Equal(t, `{"code":"card_declined"}`, resp.Error.Message)
}

func TestWriteErrorSentinel(t *testing.T) {
	rec, resp := write(t, apperrors.Wrap(apperrors.ErrNotFound, "lookup"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestWriteErrorUnknownIs500(t *testing.T) {
	rec, resp := write(t, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	// Internal details never leak to the client.
	assert.NotContains(t, resp.Error.Message, "boom")
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, Response{Data: map[string]int{"n": 1}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
