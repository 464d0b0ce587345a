// Package guard decides whether a protected route may be served for the
// current session state. The decision itself is pure; the middleware
// translates it to HTTP.
package guard

import (
	"net/http"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	"github.com/Pentakotacharan/shopmate-client/pkg/httputil"
)

// Decision is the guard's verdict for a protected route.
type Decision string

const (
	// Allow serves the route.
	Allow Decision = "allow"

	// RedirectToLogin sends the caller to the login flow.
	RedirectToLogin Decision = "redirect_to_login"

	// Pending holds the request: the session is still restoring and
	// redirecting now could bounce a signed-in customer to login.
	Pending Decision = "pending"
)

// Decide maps a session state to a verdict. It is a pure function of its
// input.
func Decide(state domain.SessionState) Decision {
	switch state {
	case domain.SessionAuthenticated:
		return Allow
	case domain.SessionRestoring:
		return Pending
	default:
		return RedirectToLogin
	}
}

// StateReader exposes the current session state. session.Store satisfies it.
type StateReader interface {
	State() domain.SessionState
}

// Middleware guards the wrapped routes: Pending answers 503 with a short
// Retry-After, RedirectToLogin answers 401 carrying the login location, and
// Allow passes through.
func Middleware(states StateReader, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch Decide(states.State()) {
			case Allow:
				next.ServeHTTP(w, r)

			case Pending:
				w.Header().Set("Retry-After", "1")
				httputil.WriteJSON(w, http.StatusServiceUnavailable, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "SESSION_RESTORING",
						Message: "session restore in progress, retry shortly",
					},
				})

			default:
				w.Header().Set("Location", loginPath)
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "LOGIN_REQUIRED",
						Message: "sign in to continue",
					},
				})
			}
		})
	}
}
