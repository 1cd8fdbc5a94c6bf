package dto

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// AdminUserResponse is the admin screen's row per account.
type AdminUserResponse struct {
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name,omitempty"`
	Onboarded bool      `json:"onboarded"`
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAdminUserResponse maps a profile row.
func NewAdminUserResponse(profile domain.Profile) AdminUserResponse {
	return AdminUserResponse{
		AccountID: profile.AccountID,
		Email:     profile.Email,
		Role:      string(profile.Role),
		FullName:  profile.FullName,
		Onboarded: profile.Onboarded,
		Blocked:   profile.Blocked,
		CreatedAt: profile.CreatedAt,
	}
}

// ReviewRequest is the administrator's verdict payload.
type ReviewRequest struct {
	Decision string `json:"decision"`
}

// AuditEntryResponse view of one audit row.
type AuditEntryResponse struct {
	ID         string    `json:"id"`
	ActorEmail string    `json:"actor_email"`
	Action     string    `json:"action"`
	SubjectID  string    `json:"subject_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAuditEntryResponse maps an audit row.
func NewAuditEntryResponse(entry domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         entry.ID,
		ActorEmail: entry.ActorEmail,
		Action:     string(entry.Action),
		SubjectID:  entry.SubjectID,
		Detail:     entry.Detail,
		CreatedAt:  entry.CreatedAt,
	}
}
