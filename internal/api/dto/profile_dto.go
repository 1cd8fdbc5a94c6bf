package dto

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// OnboardingRequest carries the multi-step form submission. Reused by profile
// editing: re-submitting while onboarded overwrites fields.
type OnboardingRequest struct {
	FullName        string `json:"full_name"`
	Title           string `json:"title,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Telegram        string `json:"telegram,omitempty"`
	Location        string `json:"location,omitempty"`
	JobSearchStatus string `json:"job_search_status,omitempty"`
}

// SelectRoleRequest payload for the explicit role re-selection flow.
type SelectRoleRequest struct {
	Role string `json:"role"`
}

// ProfileResponse is the /me view of a profile with its derived state.
type ProfileResponse struct {
	AccountID       string    `json:"account_id"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	FullName        string    `json:"full_name,omitempty"`
	Title           string    `json:"title,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Telegram        string    `json:"telegram,omitempty"`
	Location        string    `json:"location,omitempty"`
	JobSearchStatus string    `json:"job_search_status,omitempty"`
	Onboarded       bool      `json:"onboarded"`
	State           string    `json:"state"`
	CanPostJobs     bool      `json:"can_post_jobs"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewProfileResponse maps the domain snapshot.
func NewProfileResponse(profile *domain.Profile, company *domain.Company) ProfileResponse {
	state := domain.DeriveState(profile, company)
	resp := ProfileResponse{
		State:       string(state),
		CanPostJobs: state.CanPostJobs(),
	}
	if profile != nil {
		resp.AccountID = profile.AccountID
		resp.Email = profile.Email
		resp.Role = string(profile.Role)
		resp.FullName = profile.FullName
		resp.Title = profile.Title
		resp.Phone = profile.Phone
		resp.Telegram = profile.Telegram
		resp.Location = profile.Location
		resp.JobSearchStatus = string(profile.JobSearchStatus)
		resp.Onboarded = profile.Onboarded
		resp.UpdatedAt = profile.UpdatedAt
	}
	return resp
}
