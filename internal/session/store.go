// Package session owns the active identity: the guest fallback, login and
// logout against the backend auth API, and restoring a persisted identity at
// startup. Other components observe identity changes through Subscribe; the
// cart's rebind is wired to it at composition time.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	"github.com/Pentakotacharan/shopmate-client/internal/store"
)

// AuthAPI is the slice of the backend the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (domain.Actor, error)
	Register(ctx context.Context, name, email, password string) (domain.Actor, error)
}

// Listener receives every actor transition with the previous and next actor.
// Listeners run synchronously, inside the transition, so anything keyed on
// the actor (the cart) is consistent before the triggering call returns.
type Listener func(ctx context.Context, prev, next domain.Actor)

// Store is the session store.
type Store struct {
	mu        sync.RWMutex
	state     domain.SessionState
	actor     domain.Actor
	listeners []Listener

	kv     store.KV
	auth   AuthAPI
	logger *slog.Logger
	now    func() time.Time
}

// New creates a session store in the Restoring state with the guest actor.
// Call Restore once at startup to settle into Guest or Authenticated.
func New(kv store.KV, auth AuthAPI, logger *slog.Logger) *Store {
	return &Store{
		state:  domain.SessionRestoring,
		actor:  domain.Guest(),
		kv:     kv,
		auth:   auth,
		logger: logger,
		now:    time.Now,
	}
}

// Subscribe registers a listener for actor transitions. Subscribe before
// calling Restore so the listener also sees the restore transition.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// State returns the current session state.
func (s *Store) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Actor returns the current actor.
func (s *Store) Actor() domain.Actor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actor
}

// Restore reads the persisted identity and settles the session into Guest or
// Authenticated. Any defect in the persisted record resolves to guest: a
// missing key, an unparseable payload, or an expired auth token all mean
// nobody is signed in.
func (s *Store) Restore(ctx context.Context) domain.Actor {
	next := domain.Guest()

	data, err := s.kv.Get(ctx, domain.SessionKey)
	switch {
	case err == store.ErrKeyNotFound:
		// First run, nothing persisted.
	case err != nil:
		s.logger.WarnContext(ctx, "session restore: read failed, starting as guest",
			slog.String("error", err.Error()))
	default:
		var actor domain.Actor
		if err := json.Unmarshal(data, &actor); err != nil {
			s.logger.WarnContext(ctx, "session restore: corrupt identity record, starting as guest",
				slog.String("error", err.Error()))
			s.deleteIdentity(ctx)
		} else if s.tokenExpired(ctx, actor.AuthToken) {
			s.logger.InfoContext(ctx, "session restore: auth token expired, starting as guest",
				slog.String("actor_id", actor.ID))
			s.deleteIdentity(ctx)
		} else {
			next = actor
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.actor
	s.actor = next
	if next.IsGuest() {
		s.state = domain.SessionGuest
	} else {
		s.state = domain.SessionAuthenticated
	}
	s.notifyLocked(ctx, prev, next)

	return next
}

// Login authenticates against the backend. On success the identity is
// persisted and listeners are notified; on failure the session is untouched
// and the error surfaces to the caller as-is.
func (s *Store) Login(ctx context.Context, email, password string) (domain.Actor, error) {
	actor, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return domain.Actor{}, err
	}

	s.become(ctx, actor)
	return actor, nil
}

// Register creates an account and signs it in, with Login's persistence and
// notification semantics.
func (s *Store) Register(ctx context.Context, name, email, password string) (domain.Actor, error) {
	actor, err := s.auth.Register(ctx, name, email, password)
	if err != nil {
		return domain.Actor{}, err
	}

	s.become(ctx, actor)
	return actor, nil
}

// Logout clears the persisted identity and reverts to guest.
func (s *Store) Logout(ctx context.Context) {
	s.deleteIdentity(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.actor
	s.actor = domain.Guest()
	s.state = domain.SessionGuest
	s.notifyLocked(ctx, prev, s.actor)
}

func (s *Store) become(ctx context.Context, actor domain.Actor) {
	if data, err := json.Marshal(actor); err != nil {
		s.logger.ErrorContext(ctx, "session: marshal identity", slog.String("error", err.Error()))
	} else if err := s.kv.Set(ctx, domain.SessionKey, data); err != nil {
		// The in-memory session stays signed in; only restore-after-restart
		// is degraded.
		s.logger.WarnContext(ctx, "session: persist identity failed",
			slog.String("actor_id", actor.ID),
			slog.String("error", err.Error()))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.actor
	s.actor = actor
	s.state = domain.SessionAuthenticated
	s.notifyLocked(ctx, prev, actor)
}

func (s *Store) notifyLocked(ctx context.Context, prev, next domain.Actor) {
	for _, fn := range s.listeners {
		fn(ctx, prev, next)
	}
}

func (s *Store) deleteIdentity(ctx context.Context) {
	if err := s.kv.Delete(ctx, domain.SessionKey); err != nil {
		s.logger.WarnContext(ctx, "session: delete identity failed",
			slog.String("error", err.Error()))
	}
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; the backend owns validation, this only avoids restoring a
// session the backend would reject anyway. A token that cannot be parsed is
// treated as expired; a token with no exp claim is kept.
func (s *Store) tokenExpired(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		s.logger.DebugContext(ctx, "session: unparseable auth token",
			slog.String("error", err.Error()))
		return true
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return exp.Before(s.now())
}
