package identity

import (
	"context"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionStore tracks which session ids are still live. Deleting an entry
// revokes the session even though its token has not expired.
type SessionStore interface {
	Save(ctx context.Context, sessionID, accountID string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteAccount(ctx context.Context, accountID string) error
}

// SessionManager issues signed session tokens and checks them against the
// store, so logout and administrative block invalidate live sessions
// immediately instead of waiting for token expiry.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	store  SessionStore
}

// NewSessionManager builds a manager over the given revocation store.
func NewSessionManager(secret string, ttl time.Duration, store SessionStore) *SessionManager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, store: store}
}

// Claims describes the session token payload.
type Claims struct {
	AccountID string `json:"sub"`
	Email     string `json:"email"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Issue signs a new session token and registers it in the store.
func (sm *SessionManager) Issue(ctx context.Context, accountID, email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(sm.ttl)
	claims := &Claims{
		AccountID: accountID,
		Email:     email,
		SessionID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(sm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := sm.store.Save(ctx, claims.SessionID, accountID, sm.ttl); err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateSession parses the token and confirms the session is still live.
// Any parse or revocation miss maps to ErrInvalidSession; store transport
// failures fail closed the same way.
func (sm *SessionManager) ValidateSession(ctx context.Context, token string) (Identity, error) {
	claims, err := sm.parse(token)
	if err != nil {
		return Identity{}, ErrInvalidSession
	}
	live, err := sm.store.Exists(ctx, claims.SessionID)
	if err != nil || !live {
		return Identity{}, ErrInvalidSession
	}
	return Identity{AccountID: claims.AccountID, Email: claims.Email}, nil
}

// SignOut destroys the session behind the token. A token that no longer
// parses is already signed out.
func (sm *SessionManager) SignOut(ctx context.Context, token string) error {
	claims, err := sm.parse(token)
	if err != nil {
		return nil
	}
	return sm.store.Delete(ctx, claims.SessionID)
}

// RevokeAccount destroys every live session of the account. Used when an
// administrator sets the block flag.
func (sm *SessionManager) RevokeAccount(ctx context.Context, accountID string) error {
	return sm.store.DeleteAccount(ctx, accountID)
}

func (sm *SessionManager) parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return sm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
