package http

import (
	"log/slog"
	"net/http"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	"github.com/Pentakotacharan/shopmate-client/internal/session"
	"github.com/Pentakotacharan/shopmate-client/pkg/httputil"
	"github.com/Pentakotacharan/shopmate-client/pkg/validator"
)

// SessionHandler handles the session endpoints.
type SessionHandler struct {
	sessions *session.Store
	logger   *slog.Logger
}

// NewSessionHandler creates a session HTTP handler.
func NewSessionHandler(sessions *session.Store, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// LoginRequest is the JSON request body for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the JSON request body for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type actorView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Guest bool   `json:"guest"`
}

type sessionView struct {
	State domain.SessionState `json:"state"`
	Actor actorView           `json:"actor"`
}

func viewOf(state domain.SessionState, actor domain.Actor) sessionView {
	return sessionView{
		State: state,
		Actor: actorView{
			ID:    actor.ID,
			Name:  actor.Name,
			Email: actor.Email,
			Guest: actor.IsGuest(),
		},
	}
}

// Get handles GET /api/v1/session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: viewOf(h.sessions.State(), h.sessions.Actor()),
	})
}

// Login handles POST /api/v1/session/login.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	actor, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: viewOf(h.sessions.State(), actor),
	})
}

// Register handles POST /api/v1/session/register.
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	actor, err := h.sessions.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{
		Data: viewOf(h.sessions.State(), actor),
	})
}

// Logout handles DELETE /api/v1/session.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r.Context())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: viewOf(h.sessions.State(), h.sessions.Actor()),
	})
}
