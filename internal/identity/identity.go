package identity

import (
	"context"
	"errors"
	"time"
)

// Identity is the authenticated caller as the identity provider reports it.
type Identity struct {
	AccountID string
	Email     string
}

// ErrInvalidSession is returned for missing, expired, malformed, or revoked
// tokens. Callers treat it as "anonymous", not as a failure.
var ErrInvalidSession = errors.New("invalid session")

// Provider validates and destroys session tokens. The edge gate consumes this
// narrow surface; SessionManager is the in-house implementation.
type Provider interface {
	ValidateSession(ctx context.Context, token string) (Identity, error)
	SignOut(ctx context.Context, token string) error
}

// Sessions is the full session lifecycle used by the login/registration flows,
// including issuing and account-wide revocation on administrative block.
type Sessions interface {
	Provider
	Issue(ctx context.Context, accountID, email string) (string, time.Time, error)
	RevokeAccount(ctx context.Context, accountID string) error
}
