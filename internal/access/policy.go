package access

import (
	"net/url"
	"sort"
	"strings"

	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/identity"
)

// Class is the visibility classification of a request path.
type Class int

const (
	// ClassBypass paths (framework internals, API routes, static assets)
	// skip the gate entirely.
	ClassBypass Class = iota
	ClassPublic
	ClassPrivate
	ClassAdminOnly
)

// Action tells the edge gate what to do with the request.
type Action int

const (
	ActionAllow Action = iota
	ActionRedirectAuth
	ActionRedirectHome
	// ActionSignOutRedirect destroys the session before redirecting.
	ActionSignOutRedirect
)

// Decision is the outcome of evaluating a request against the policy.
type Decision struct {
	Action   Action
	Location string
}

type prefixRule struct {
	prefix string
	class  Class
}

// Policy classifies paths and decides access. It is pure: both Classify and
// Decide only read their inputs and the injected configuration.
type Policy struct {
	rules       []prefixRule
	adminEmails map[string]struct{}
}

// NewPolicy builds the policy from the injected access configuration. The
// admin allow-list lives here and nowhere else; the role router asks this
// policy instead of keeping its own copy.
func NewPolicy(cfg config.AccessConfig) *Policy {
	rules := []prefixRule{
		{"/_next", ClassBypass},
		{"/api", ClassBypass},
		{"/auth", ClassPublic},
		{"/me", ClassPrivate},
		{"/resume", ClassPrivate},
		{"/profile", ClassPrivate},
		{"/onboarding", ClassPrivate},
		{"/employer", ClassPrivate},
		{"/admin", ClassAdminOnly},
	}
	// Longest prefix wins regardless of declaration order.
	sort.Slice(rules, func(i, j int) bool {
		return len(rules[i].prefix) > len(rules[j].prefix)
	})

	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		admins[strings.ToLower(email)] = struct{}{}
	}
	return &Policy{rules: rules, adminEmails: admins}
}

// Classify maps a path to its visibility class using longest-prefix matching.
// Paths containing a dot are static assets and bypass the gate.
func (p *Policy) Classify(path string) Class {
	if strings.Contains(path, ".") {
		return ClassBypass
	}
	for _, rule := range p.rules {
		if strings.HasPrefix(path, rule.prefix) {
			return rule.class
		}
	}
	return ClassPublic
}

// IsAdmin reports allow-list membership. Matching is case-insensitive on the
// email, as the identity provider preserves the caller's original casing.
func (p *Policy) IsAdmin(email string) bool {
	_, ok := p.adminEmails[strings.ToLower(email)]
	return ok
}

// Decide applies the access table. ident is nil for anonymous callers;
// profile may be nil for an authenticated account whose profile row has not
// been created yet. The blocked check always precedes the admin check, so a
// blocked administrator is still denied.
func (p *Policy) Decide(class Class, path string, ident *identity.Identity, profile *domain.Profile) Decision {
	if class == ClassBypass || class == ClassPublic {
		return Decision{Action: ActionAllow}
	}
	if ident == nil {
		return Decision{Action: ActionRedirectAuth, Location: AuthRedirect(path)}
	}
	if profile != nil && profile.Blocked {
		return Decision{Action: ActionSignOutRedirect, Location: BlockedRedirect()}
	}
	if class == ClassAdminOnly && !p.IsAdmin(ident.Email) {
		// Silent redirect home; no error flag, so the path's admin gating
		// is not leaked.
		return Decision{Action: ActionRedirectHome, Location: "/"}
	}
	return Decision{Action: ActionAllow}
}

// AuthRedirect builds the auth-page location preserving the original target.
func AuthRedirect(next string) string {
	if next == "" || next == "/" {
		return "/auth"
	}
	return "/auth?next=" + url.QueryEscape(next)
}

// BlockedRedirect is the one error code the core emits through the auth page.
func BlockedRedirect() string {
	return "/auth?error=blocked"
}

// SameOriginNext reports whether a next parameter is safe to honor: an
// absolute path on this origin, not a protocol-relative URL.
func SameOriginNext(next string) bool {
	return strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//")
}
