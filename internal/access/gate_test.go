package access

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/identity"
	"github.com/spec-kit/jobboard-service/internal/observability"
)

const testCookie = "jm_session"

type fakeProvider struct {
	identities map[string]identity.Identity
	signedOut  []string
}

func (f *fakeProvider) ValidateSession(_ context.Context, token string) (identity.Identity, error) {
	if ident, ok := f.identities[token]; ok {
		return ident, nil
	}
	return identity.Identity{}, identity.ErrInvalidSession
}

func (f *fakeProvider) SignOut(_ context.Context, token string) error {
	f.signedOut = append(f.signedOut, token)
	return nil
}

type fakeProfiles struct {
	profiles map[string]*domain.Profile
	err      error
	reads    int
}

func (f *fakeProfiles) Get(_ context.Context, accountID string) (*domain.Profile, error) {
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	if profile, ok := f.profiles[accountID]; ok {
		return profile, nil
	}
	return nil, pgx.ErrNoRows
}

func newGateApp(provider *fakeProvider, profiles *fakeProfiles) *fiber.App {
	gate := NewGate(testPolicy(), provider, profiles, testCookie, zap.NewNop(), observability.NewMetrics())

	app := fiber.New()
	app.Use(gate.Handle)
	app.All("/*", func(c *fiber.Ctx) error {
		return c.SendString("page")
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGateAnonymousPrivateRedirectsWithNext(t *testing.T) {
	app := newGateApp(&fakeProvider{}, &fakeProfiles{})

	resp := get(t, app, "/resume", "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth?next=%2Fresume", resp.Header.Get("Location"))
}

func TestGatePublicPathSkipsResolution(t *testing.T) {
	profiles := &fakeProfiles{}
	app := newGateApp(&fakeProvider{}, profiles)

	resp := get(t, app, "/jobs/123", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, profiles.reads)
}

func TestGateAuthenticatedNotOnboardedAllowedOnPublic(t *testing.T) {
	provider := &fakeProvider{identities: map[string]identity.Identity{
		"tok": {AccountID: "a1", Email: "user@example.com"},
	}}
	profiles := &fakeProfiles{profiles: map[string]*domain.Profile{
		"a1": {AccountID: "a1", Role: domain.RoleCandidate, Onboarded: false},
	}}
	app := newGateApp(provider, profiles)

	resp := get(t, app, "/jobs/123", "tok")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateAllowsAuthenticatedPrivate(t *testing.T) {
	provider := &fakeProvider{identities: map[string]identity.Identity{
		"tok": {AccountID: "a1", Email: "user@example.com"},
	}}
	profiles := &fakeProfiles{profiles: map[string]*domain.Profile{
		"a1": {AccountID: "a1", Role: domain.RoleCandidate, Onboarded: true},
	}}
	app := newGateApp(provider, profiles)

	resp := get(t, app, "/resume", "tok")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, profiles.reads)
}

func TestGateMissingProfileRowIsNotAnError(t *testing.T) {
	provider := &fakeProvider{identities: map[string]identity.Identity{
		"tok": {AccountID: "fresh", Email: "fresh@example.com"},
	}}
	app := newGateApp(provider, &fakeProfiles{})

	resp := get(t, app, "/onboarding", "tok")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateBlockedSignsOutAndRedirects(t *testing.T) {
	provider := &fakeProvider{identities: map[string]identity.Identity{
		"tok": {AccountID: "a1", Email: "admin@example.com"},
	}}
	profiles := &fakeProfiles{profiles: map[string]*domain.Profile{
		"a1": {AccountID: "a1", Blocked: true},
	}}
	app := newGateApp(provider, profiles)

	// Blocked wins even for an allow-listed admin on an admin path.
	resp := get(t, app, "/admin/users", "tok")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth?error=blocked", resp.Header.Get("Location"))
	assert.Equal(t, []string{"tok"}, provider.signedOut)
}

func TestGateAdminAllowList(t *testing.T) {
	provider := &fakeProvider{identities: map[string]identity.Identity{
		"admin-tok": {AccountID: "a1", Email: "admin@example.com"},
		"user-tok":  {AccountID: "a2", Email: "user@example.com"},
	}}
	profiles := &fakeProfiles{profiles: map[string]*domain.Profile{
		"a1": {AccountID: "a1"},
		"a2": {AccountID: "a2", Role: domain.RoleCandidate, Onboarded: true},
	}}
	app := newGateApp(provider, profiles)

	resp := get(t, app, "/admin/users", "admin-tok")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Non-admins are sent home silently, with no error flag.
	resp = get(t, app, "/admin/users", "user-tok")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestGateFailsClosedWhenProfileStoreDown(t *testing.T) {
	provider := &fakeProvider{identities: map[string]identity.Identity{
		"tok": {AccountID: "a1", Email: "user@example.com"},
	}}
	profiles := &fakeProfiles{err: errors.New("connection refused")}
	app := newGateApp(provider, profiles)

	resp := get(t, app, "/resume", "tok")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth?next=%2Fresume", resp.Header.Get("Location"))
}

func TestGateInvalidTokenIsAnonymous(t *testing.T) {
	app := newGateApp(&fakeProvider{}, &fakeProfiles{})

	resp := get(t, app, "/me", "garbage")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth?next=%2Fme", resp.Header.Get("Location"))
}

func TestGateBearerHeaderFallback(t *testing.T) {
	provider := &fakeProvider{identities: map[string]identity.Identity{
		"tok": {AccountID: "a1", Email: "user@example.com"},
	}}
	profiles := &fakeProfiles{profiles: map[string]*domain.Profile{
		"a1": {AccountID: "a1", Role: domain.RoleCandidate, Onboarded: true},
	}}
	app := newGateApp(provider, profiles)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
