package domain

// OnboardingState is the derived lifecycle position of an account. It is never
// stored; DeriveState recomputes it from the profile and company facts so the
// state cannot drift from the rows it summarizes.
type OnboardingState string

const (
	StateRoleUnset       OnboardingState = "role_unset"
	StateRoleSelected    OnboardingState = "role_selected"
	StateOnboarded       OnboardingState = "onboarded"
	StateCompanyMissing  OnboardingState = "company_missing"
	StateCompanyPending  OnboardingState = "company_pending"
	StateCompanyApproved OnboardingState = "company_approved"
	StateCompanyRejected OnboardingState = "company_rejected"
)

// DeriveState computes the onboarding state from a profile snapshot and the
// owner's company, if any. Both arguments come from the same request's reads,
// so no partial update is visible mid-decision. A nil company is treated as
// VerificationNone.
func DeriveState(profile *Profile, company *Company) OnboardingState {
	if profile == nil || profile.Role == RoleUnset {
		return StateRoleUnset
	}
	if !profile.Onboarded {
		return StateRoleSelected
	}
	if profile.Role == RoleCandidate {
		return StateOnboarded
	}

	// Employer sub-chain: onboarded employers advance through company
	// verification.
	if company == nil || company.Status == VerificationNone {
		return StateCompanyMissing
	}
	switch company.Status {
	case VerificationPending:
		return StateCompanyPending
	case VerificationApproved:
		return StateCompanyApproved
	case VerificationRejected:
		return StateCompanyRejected
	}
	return StateCompanyMissing
}

// CanPostJobs reports whether the state unlocks listing publication. Only a
// verified employer may publish.
func (s OnboardingState) CanPostJobs() bool {
	return s == StateCompanyApproved
}
