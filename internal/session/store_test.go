package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	"github.com/Pentakotacharan/shopmate-client/internal/store"
	"github.com/Pentakotacharan/shopmate-client/internal/store/memory"
	"github.com/Pentakotacharan/shopmate-client/pkg/logger"
)

type mockAuthAPI struct {
	mock.Mock
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (domain.Actor, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.Actor), args.Error(1)
}

func (m *mockAuthAPI) Register(ctx context.Context, name, email, password string) (domain.Actor, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(domain.Actor), args.Error(1)
}

type transition struct {
	prev, next domain.Actor
}

func newTestStore(t *testing.T) (*Store, *memory.Store, *mockAuthAPI, *[]transition) {
	t.Helper()

	kv := memory.New()
	auth := new(mockAuthAPI)
	s := New(kv, auth, logger.NewWithWriter("test", "error", io.Discard))

	var seen []transition
	s.Subscribe(func(_ context.Context, prev, next domain.Actor) {
		seen = append(seen, transition{prev, next})
	})

	return s, kv, auth, &seen
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func seedIdentity(t *testing.T, kv store.KV, actor domain.Actor) {
	t.Helper()

	data, err := json.Marshal(actor)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), domain.SessionKey, data))
}

func TestRestoreFirstRun(t *testing.T) {
	s, _, _, seen := newTestStore(t)

	assert.Equal(t, domain.SessionRestoring, s.State())

	actor := s.Restore(context.Background())

	assert.True(t, actor.IsGuest())
	assert.Equal(t, domain.SessionGuest, s.State())
	require.Len(t, *seen, 1)
	assert.True(t, (*seen)[0].next.IsGuest())
}

func TestRestorePersistedIdentity(t *testing.T) {
	s, kv, _, seen := newTestStore(t)

	seedIdentity(t, kv, domain.Actor{
		ID: "u1", Name: "Jo",
		AuthToken: signedToken(t, time.Now().Add(time.Hour)),
	})

	actor := s.Restore(context.Background())

	assert.Equal(t, "u1", actor.ID)
	assert.Equal(t, domain.SessionAuthenticated, s.State())
	require.Len(t, *seen, 1)
	assert.True(t, (*seen)[0].prev.IsGuest())
	assert.Equal(t, "u1", (*seen)[0].next.ID)
}

func TestRestoreExpiredToken(t *testing.T) {
	s, kv, _, _ := newTestStore(t)

	seedIdentity(t, kv, domain.Actor{
		ID: "u1", Name: "Jo",
		AuthToken: signedToken(t, time.Now().Add(-time.Hour)),
	})

	actor := s.Restore(context.Background())

	assert.True(t, actor.IsGuest())
	assert.Equal(t, domain.SessionGuest, s.State())

	// The stale record is cleared so the next restart does not retry it.
	_, err := kv.Get(context.Background(), domain.SessionKey)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestRestoreCorruptRecord(t *testing.T) {
	s, kv, _, _ := newTestStore(t)

	require.NoError(t, kv.Set(context.Background(), domain.SessionKey, []byte("{not json")))

	actor := s.Restore(context.Background())

	assert.True(t, actor.IsGuest())
	assert.Equal(t, domain.SessionGuest, s.State())
}

func TestRestoreTokenWithoutExpiry(t *testing.T) {
	s, kv, _, _ := newTestStore(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	seedIdentity(t, kv, domain.Actor{ID: "u1", AuthToken: token})

	actor := s.Restore(context.Background())
	assert.Equal(t, "u1", actor.ID)
	assert.Equal(t, domain.SessionAuthenticated, s.State())
}

func TestLoginPersistsAndNotifies(t *testing.T) {
	s, kv, auth, seen := newTestStore(t)
	s.Restore(context.Background())

	auth.On("Login", mock.Anything, "jo@example.com", "secret").
		Return(domain.Actor{ID: "u1", Name: "Jo", AuthToken: "tok"}, nil)

	actor, err := s.Login(context.Background(), "jo@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", actor.ID)
	assert.Equal(t, domain.SessionAuthenticated, s.State())

	data, err := kv.Get(context.Background(), domain.SessionKey)
	require.NoError(t, err)
	var persisted domain.Actor
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, "u1", persisted.ID)
	assert.Equal(t, "tok", persisted.AuthToken)

	require.Len(t, *seen, 2) // restore + login
	assert.True(t, (*seen)[1].prev.IsGuest())
	assert.Equal(t, "u1", (*seen)[1].next.ID)

	auth.AssertExpectations(t)
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	s, kv, auth, seen := newTestStore(t)
	s.Restore(context.Background())

	auth.On("Login", mock.Anything, "jo@example.com", "wrong").
		Return(domain.Actor{}, errors.New("invalid email or password"))

	_, err := s.Login(context.Background(), "jo@example.com", "wrong")
	require.Error(t, err)

	assert.Equal(t, domain.SessionGuest, s.State())
	assert.True(t, s.Actor().IsGuest())
	assert.Len(t, *seen, 1) // restore only

	_, kvErr := kv.Get(context.Background(), domain.SessionKey)
	assert.ErrorIs(t, kvErr, store.ErrKeyNotFound)
}

func TestRegister(t *testing.T) {
	s, _, auth, _ := newTestStore(t)
	s.Restore(context.Background())

	auth.On("Register", mock.Anything, "Jo", "jo@example.com", "secret").
		Return(domain.Actor{ID: "u2", Name: "Jo", AuthToken: "tok"}, nil)

	actor, err := s.Register(context.Background(), "Jo", "jo@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u2", actor.ID)
	assert.Equal(t, domain.SessionAuthenticated, s.State())
}

func TestLogout(t *testing.T) {
	s, kv, auth, seen := newTestStore(t)
	s.Restore(context.Background())

	auth.On("Login", mock.Anything, "jo@example.com", "secret").
		Return(domain.Actor{ID: "u1", AuthToken: "tok"}, nil)
	_, err := s.Login(context.Background(), "jo@example.com", "secret")
	require.NoError(t, err)

	s.Logout(context.Background())

	assert.Equal(t, domain.SessionGuest, s.State())
	assert.True(t, s.Actor().IsGuest())

	_, kvErr := kv.Get(context.Background(), domain.SessionKey)
	assert.ErrorIs(t, kvErr, store.ErrKeyNotFound)

	require.Len(t, *seen, 3) // restore, login, logout
	assert.Equal(t, "u1", (*seen)[2].prev.ID)
	assert.True(t, (*seen)[2].next.IsGuest())
}
