package access

import (
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/identity"
)

// Landing is the post-authentication navigation decision.
type Landing struct {
	Path string
	// Restricted flags an employer dashboard rendered without job-posting
	// ability (company pending or rejected). The dashboard itself is out of
	// scope; the flag is passed through to the client.
	Restricted bool
	// SignOut tells the caller the session must be destroyed before
	// following the redirect.
	SignOut bool
}

// Router computes where an authenticated identity lands right now. It shares
// the policy's admin allow-list so the gate and the router can never disagree
// about who is an administrator.
type Router struct {
	policy *Policy
}

// NewRouter builds the role router over the shared policy.
func NewRouter(policy *Policy) *Router {
	return &Router{policy: policy}
}

// Landing resolves the destination, first match wins. A same-origin next
// overrides the computed destination except when the blocked or unset-role
// rules fire.
func (r *Router) Landing(ident identity.Identity, profile *domain.Profile, company *domain.Company, next string) Landing {
	override := ""
	if SameOriginNext(next) {
		override = next
	}

	if profile != nil && profile.Blocked {
		return Landing{Path: BlockedRedirect(), SignOut: true}
	}
	if r.policy.IsAdmin(ident.Email) {
		return Landing{Path: or(override, "/admin")}
	}
	if profile == nil || profile.Role == domain.RoleUnset {
		return Landing{Path: "/onboarding"}
	}

	switch profile.Role {
	case domain.RoleEmployer:
		state := domain.DeriveState(profile, company)
		switch state {
		case domain.StateRoleSelected, domain.StateCompanyMissing:
			return Landing{Path: or(override, "/onboarding/employer")}
		case domain.StateCompanyPending, domain.StateCompanyRejected:
			return Landing{Path: or(override, "/employer"), Restricted: true}
		default:
			return Landing{Path: or(override, "/employer")}
		}
	default:
		if !profile.Onboarded {
			return Landing{Path: or(override, "/onboarding/candidate")}
		}
		return Landing{Path: or(override, "/resume")}
	}
}

func or(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
