package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/identity"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// AuthResult bundles everything a login/registration flow needs to set the
// session and pick a landing page.
type AuthResult struct {
	Account   *domain.Account
	Profile   *domain.Profile
	Company   *domain.Company
	Token     string
	ExpiresAt time.Time
}

// AccountService coordinates registration and login against the identity
// provider and the profile store.
type AccountService struct {
	accounts   repository.AccountRepository
	profiles   repository.ProfileRepository
	companies  repository.CompanyRepository
	sessions   identity.Sessions
	dispatcher events.Dispatcher
	bcryptCost int
	minPassLen int
}

// AccountDependencies encapsulates requirements for the account service.
type AccountDependencies struct {
	AccountRepo repository.AccountRepository
	ProfileRepo repository.ProfileRepository
	CompanyRepo repository.CompanyRepository
	Sessions    identity.Sessions
	Dispatcher  events.Dispatcher
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	minLen := cfg.Auth.MinPasswordLen
	if minLen <= 0 {
		minLen = 6
	}
	return &AccountService{
		accounts:   deps.AccountRepo,
		profiles:   deps.ProfileRepo,
		companies:  deps.CompanyRepo,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		minPassLen: minLen,
	}
}

// Register creates a new account with the chosen role and issues a session.
// The profile row is created immediately with onboarded=false; the role can
// only be changed later through the explicit re-selection flow.
func (s *AccountService) Register(ctx context.Context, email, password string, role domain.Role) (*AuthResult, error) {
	if email == "" {
		return nil, apperrors.NewValidationError("email required", nil)
	}
	if len(password) < s.minPassLen {
		return nil, apperrors.NewWeakCredentials("password too short")
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role must be candidate or employer", nil)
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateAccount(email)
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	hash, err := identity.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	profile := &domain.Profile{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      role,
		Onboarded: false,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	token, exp, err := s.sessions.Issue(ctx, account.ID, account.Email)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.publish(ctx, events.EventAccountRegistered, account.ID, events.AccountRegisteredPayload{
		Email: account.Email,
		Role:  role,
	})

	return &AuthResult{Account: account, Profile: profile, Token: token, ExpiresAt: exp}, nil
}

// Login authenticates an account. A blocked profile never receives a session:
// any surviving sessions are revoked and the caller gets AccountBlocked.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	if err := identity.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	profile, err := s.profiles.Get(ctx, account.ID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	if profile != nil && profile.Blocked {
		_ = s.sessions.RevokeAccount(ctx, account.ID)
		return nil, apperrors.NewAccountBlocked()
	}

	var company *domain.Company
	if profile != nil && profile.Role == domain.RoleEmployer {
		company, err = s.companies.GetByOwner(ctx, account.ID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, apperrors.NewStoreUnavailable(err)
		}
	}

	token, exp, err := s.sessions.Issue(ctx, account.ID, account.Email)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	return &AuthResult{Account: account, Profile: profile, Company: company, Token: token, ExpiresAt: exp}, nil
}

// Logout destroys the session behind the token.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.SignOut(ctx, token)
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, accountID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
