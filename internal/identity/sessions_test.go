package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySessionStore struct {
	sessions map[string]string // session id -> account id
	failWith error
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]string)}
}

func (s *memorySessionStore) Save(_ context.Context, sessionID, accountID string, _ time.Duration) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.sessions[sessionID] = accountID
	return nil
}

func (s *memorySessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	if s.failWith != nil {
		return false, s.failWith
	}
	_, ok := s.sessions[sessionID]
	return ok, nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func (s *memorySessionStore) DeleteAccount(_ context.Context, accountID string) error {
	for id, owner := range s.sessions {
		if owner == accountID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func TestIssueAndValidate(t *testing.T) {
	store := newMemorySessionStore()
	sm := NewSessionManager("test-secret", time.Hour, store)

	token, expiresAt, err := sm.Issue(context.Background(), "a1", "user@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	ident, err := sm.ValidateSession(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "a1", ident.AccountID)
	assert.Equal(t, "user@example.com", ident.Email)
}

func TestValidateGarbageToken(t *testing.T) {
	sm := NewSessionManager("test-secret", time.Hour, newMemorySessionStore())

	_, err := sm.ValidateSession(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = sm.ValidateSession(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateWrongSecret(t *testing.T) {
	store := newMemorySessionStore()
	issuer := NewSessionManager("secret-one", time.Hour, store)
	verifier := NewSessionManager("secret-two", time.Hour, store)

	token, _, err := issuer.Issue(context.Background(), "a1", "user@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSignOutRevokesToken(t *testing.T) {
	store := newMemorySessionStore()
	sm := NewSessionManager("test-secret", time.Hour, store)

	token, _, err := sm.Issue(context.Background(), "a1", "user@example.com")
	require.NoError(t, err)

	require.NoError(t, sm.SignOut(context.Background(), token))

	// The token still parses but the session is gone.
	_, err = sm.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSignOutGarbageIsNoop(t *testing.T) {
	sm := NewSessionManager("test-secret", time.Hour, newMemorySessionStore())
	assert.NoError(t, sm.SignOut(context.Background(), "garbage"))
}

func TestRevokeAccountKillsAllSessions(t *testing.T) {
	store := newMemorySessionStore()
	sm := NewSessionManager("test-secret", time.Hour, store)

	tok1, _, err := sm.Issue(context.Background(), "a1", "user@example.com")
	require.NoError(t, err)
	tok2, _, err := sm.Issue(context.Background(), "a1", "user@example.com")
	require.NoError(t, err)
	other, _, err := sm.Issue(context.Background(), "a2", "other@example.com")
	require.NoError(t, err)

	require.NoError(t, sm.RevokeAccount(context.Background(), "a1"))

	_, err = sm.ValidateSession(context.Background(), tok1)
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = sm.ValidateSession(context.Background(), tok2)
	assert.ErrorIs(t, err, ErrInvalidSession)

	// Other accounts are untouched.
	_, err = sm.ValidateSession(context.Background(), other)
	assert.NoError(t, err)
}

func TestValidateFailsClosedOnStoreError(t *testing.T) {
	store := newMemorySessionStore()
	sm := NewSessionManager("test-secret", time.Hour, store)

	token, _, err := sm.Issue(context.Background(), "a1", "user@example.com")
	require.NoError(t, err)

	store.failWith = errors.New("connection refused")
	_, err = sm.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
