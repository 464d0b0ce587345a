package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
)

func TestDecide(t *testing.T) {
	assert.Equal(t, Allow, Decide(domain.SessionAuthenticated))
	assert.Equal(t, Pending, Decide(domain.SessionRestoring))
	assert.Equal(t, RedirectToLogin, Decide(domain.SessionGuest))
	assert.Equal(t, RedirectToLogin, Decide(domain.SessionState("bogus")))
}

type fixedState domain.SessionState

func (f fixedState) State() domain.SessionState { return domain.SessionState(f) }

func serve(t *testing.T, state domain.SessionState) *httptest.ResponseRecorder {
	t.Helper()

	handler := Middleware(fixedState(state), "/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checkout", nil))
	return rec
}

func TestMiddlewareAllow(t *testing.T) {
	rec := serve(t, domain.SessionAuthenticated)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewarePendingHoldsInsteadOfRedirecting(t *testing.T) {
	rec := serve(t, domain.SessionRestoring)

	// Never a login redirect while restore is in flight.
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestMiddlewareGuestRedirects(t *testing.T) {
	rec := serve(t, domain.SessionGuest)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
