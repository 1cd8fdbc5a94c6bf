package access

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/identity"
	"github.com/spec-kit/jobboard-service/internal/observability"
)

const (
	identityKey = "gate_identity"
	profileKey  = "gate_profile"
)

// ProfileSource is the one profile-store read the gate performs per request.
type ProfileSource interface {
	Get(ctx context.Context, accountID string) (*domain.Profile, error)
}

// Gate intercepts every request before page logic runs: it resolves the
// session, fetches the profile snapshot, and executes the policy decision.
// Nothing is cached across requests, so a just-blocked account loses access
// on its very next request.
type Gate struct {
	policy     *Policy
	sessions   identity.Provider
	profiles   ProfileSource
	cookieName string
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewGate wires the gate middleware.
func NewGate(policy *Policy, sessions identity.Provider, profiles ProfileSource, cookieName string, logger *zap.Logger, metrics *observability.Metrics) *Gate {
	return &Gate{
		policy:     policy,
		sessions:   sessions,
		profiles:   profiles,
		cookieName: cookieName,
		logger:     logger,
		metrics:    metrics,
	}
}

// Handle runs the per-request decision.
func (g *Gate) Handle(c *fiber.Ctx) error {
	class := g.policy.Classify(c.Path())
	if class == ClassBypass || class == ClassPublic {
		return c.Next()
	}

	token := g.tokenFrom(c)
	var ident *identity.Identity
	if token != "" {
		resolved, err := g.sessions.ValidateSession(c.UserContext(), token)
		if err == nil {
			ident = &resolved
		}
	}

	var profile *domain.Profile
	if ident != nil {
		loaded, err := g.profiles.Get(c.UserContext(), ident.AccountID)
		switch {
		case err == nil:
			profile = loaded
		case err == pgx.ErrNoRows:
			// Profile rows are created lazily; a missing row is a fresh
			// account, not a failure.
		default:
			// Profile store unreachable: fail closed, treat the caller as
			// anonymous rather than letting the request through.
			g.logger.Error("profile store unavailable", zap.Error(err))
			g.metrics.RecordGateDenial(c.Path(), "store_unavailable")
			ident = nil
		}
	}

	decision := g.policy.Decide(class, c.OriginalURL(), ident, profile)
	switch decision.Action {
	case ActionAllow:
		c.Locals(identityKey, ident)
		c.Locals(profileKey, profile)
		return c.Next()
	case ActionSignOutRedirect:
		_ = g.sessions.SignOut(c.UserContext(), token)
		c.ClearCookie(g.cookieName)
		g.metrics.RecordGateDenial(c.Path(), "blocked")
		return c.Redirect(decision.Location, fiber.StatusSeeOther)
	case ActionRedirectHome:
		g.metrics.RecordGateDenial(c.Path(), "permission_denied")
		return c.Redirect(decision.Location, fiber.StatusSeeOther)
	default:
		g.metrics.RecordGateDenial(c.Path(), "auth_required")
		return c.Redirect(decision.Location, fiber.StatusSeeOther)
	}
}

func (g *Gate) tokenFrom(c *fiber.Ctx) string {
	if cookie := c.Cookies(g.cookieName); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// IdentityFromContext retrieves the authenticated identity stashed by the gate.
func IdentityFromContext(c *fiber.Ctx) (*identity.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	ident, ok := val.(*identity.Identity)
	if !ok || ident == nil {
		return nil, false
	}
	return ident, true
}

// ProfileFromContext retrieves the profile snapshot stashed by the gate. The
// profile may legitimately be nil for a fresh account.
func ProfileFromContext(c *fiber.Ctx) (*domain.Profile, bool) {
	val := c.Locals(profileKey)
	if val == nil {
		return nil, false
	}
	profile, ok := val.(*domain.Profile)
	return profile, ok
}
