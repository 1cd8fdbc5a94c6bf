package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

func newAccountService(t *testing.T) (*AccountService, *fakeAccountRepo, *fakeProfileRepo, *fakeSessions, *recordingDispatcher) {
	t.Helper()
	accounts := newFakeAccountRepo()
	profiles := newFakeProfileRepo()
	companies := newFakeCompanyRepo()
	sessions := &fakeSessions{}
	dispatcher := &recordingDispatcher{}

	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: 4, MinPasswordLen: 6}}
	svc := NewAccountService(cfg, AccountDependencies{
		AccountRepo: accounts,
		ProfileRepo: profiles,
		CompanyRepo: companies,
		Sessions:    sessions,
		Dispatcher:  dispatcher,
	})
	return svc, accounts, profiles, sessions, dispatcher
}

func TestRegisterCreatesProfileWithRole(t *testing.T) {
	svc, _, profiles, _, dispatcher := newAccountService(t)

	result, err := svc.Register(context.Background(), "emp@example.com", "secret1", domain.RoleEmployer)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, domain.RoleEmployer, result.Profile.Role)
	assert.False(t, result.Profile.Onboarded)

	stored, err := profiles.Get(context.Background(), result.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployer, stored.Role)
	assert.Equal(t, []events.EventType{events.EventAccountRegistered}, dispatcher.typesPublished())
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _, _, sessions, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), "a@example.com", "short", domain.RoleCandidate)
	require.Error(t, err)
	assert.Equal(t, "WEAK_CREDENTIALS", apperrors.CodeOf(err))
	assert.Zero(t, sessions.issued)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), "dup@example.com", "secret1", domain.RoleCandidate)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "dup@example.com", "secret1", domain.RoleEmployer)
	require.Error(t, err)
	assert.Equal(t, "DUPLICATE_ACCOUNT", apperrors.CodeOf(err))
}

func TestRegisterRejectsUnsetRole(t *testing.T) {
	svc, _, _, _, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), "a@example.com", "secret1", domain.RoleUnset)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.CodeOf(err))
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _, _, _ := newAccountService(t)

	reg, err := svc.Register(context.Background(), "c@example.com", "secret1", domain.RoleCandidate)
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "c@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.Account.ID, result.Account.ID)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, domain.RoleCandidate, result.Profile.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), "c@example.com", "secret1", domain.RoleCandidate)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "c@example.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.CodeOf(err))
}

func TestLoginBlockedRevokesSessions(t *testing.T) {
	svc, _, profiles, sessions, _ := newAccountService(t)

	reg, err := svc.Register(context.Background(), "b@example.com", "secret1", domain.RoleCandidate)
	require.NoError(t, err)

	require.NoError(t, profiles.SetBlocked(context.Background(), reg.Account.ID, true))
	issuedBefore := sessions.issued

	_, err = svc.Login(context.Background(), "b@example.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "ACCOUNT_BLOCKED", apperrors.CodeOf(err))
	// No new session was issued and existing ones were revoked.
	assert.Equal(t, issuedBefore, sessions.issued)
	assert.Equal(t, []string{reg.Account.ID}, sessions.revoked)
}

func TestLoginEmployerLoadsCompany(t *testing.T) {
	svc, _, profiles, _, _ := newAccountService(t)

	reg, err := svc.Register(context.Background(), "emp@example.com", "secret1", domain.RoleEmployer)
	require.NoError(t, err)

	// Onboard and attach a company directly through the fakes.
	profile, err := profiles.Get(context.Background(), reg.Account.ID)
	require.NoError(t, err)
	profile.Onboarded = true
	require.NoError(t, profiles.Upsert(context.Background(), profile))

	companies := svc.companies.(*fakeCompanyRepo)
	_, err = companies.CreateForOwner(context.Background(), &domain.Company{
		OwnerID: reg.Account.ID,
		Name:    "Acme",
		Status:  domain.VerificationPending,
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "emp@example.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, result.Company)
	assert.Equal(t, domain.VerificationPending, result.Company.Status)
}

func TestLogoutSignsOutToken(t *testing.T) {
	svc, _, _, sessions, _ := newAccountService(t)

	require.NoError(t, svc.Logout(context.Background(), "some-token"))
	assert.Equal(t, []string{"some-token"}, sessions.signOuts)

	// Empty token is a no-op, not an error.
	require.NoError(t, svc.Logout(context.Background(), ""))
	assert.Len(t, sessions.signOuts, 1)
}
