package events

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventProfileOnboarded  EventType = "profile_onboarded"
	EventCompanySubmitted  EventType = "company_submitted"
	EventCompanyReviewed   EventType = "company_reviewed"
	EventAccountBlocked    EventType = "account_blocked"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID string      `json:"account_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// ProfileOnboardedPayload payload.
type ProfileOnboardedPayload struct {
	Role     domain.Role `json:"role"`
	FullName string      `json:"full_name"`
}

// CompanySubmittedPayload payload.
type CompanySubmittedPayload struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
}

// CompanyReviewedPayload payload.
type CompanyReviewedPayload struct {
	CompanyID string                    `json:"company_id"`
	Status    domain.VerificationStatus `json:"status"`
	Reviewer  string                    `json:"reviewer"`
}

// AccountBlockedPayload payload.
type AccountBlockedPayload struct {
	Blocked bool   `json:"blocked"`
	Actor   string `json:"actor"`
}
