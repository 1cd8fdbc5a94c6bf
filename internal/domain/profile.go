package domain

import "time"

// Role is the marketplace-side role an account picked at registration.
type Role string

const (
	RoleUnset     Role = ""
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// Valid reports whether the role is one of the two selectable roles.
func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleEmployer
}

// JobSearchStatus mirrors the candidate-facing search status options.
type JobSearchStatus string

const (
	SearchActivelyLooking JobSearchStatus = "actively_looking"
	SearchOpenToOffers    JobSearchStatus = "open_to_offers"
	SearchNotLooking      JobSearchStatus = "not_looking"
)

// Profile is the application-owned completeness record, one per account,
// created lazily on first registration. Invariant: Role == RoleUnset implies
// Onboarded == false.
type Profile struct {
	AccountID       string
	Email           string
	Role            Role
	FullName        string
	Title           string
	Phone           string
	Telegram        string
	Location        string
	JobSearchStatus JobSearchStatus
	Onboarded       bool
	Blocked         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
