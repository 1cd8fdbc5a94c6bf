package domain

import "time"

// VerificationStatus is the administrative approval state of a company.
// Absence of a company row is equivalent to VerificationNone.
type VerificationStatus string

const (
	VerificationNone     VerificationStatus = "none"
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Company belongs one-to-one to an employer account via OwnerID.
type Company struct {
	ID          string
	OwnerID     string
	Name        string
	Website     string
	Description string
	Status      VerificationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
