package domain

import "time"

// AuditAction identifies an administrative action worth recording.
type AuditAction string

const (
	AuditAccountBlocked   AuditAction = "account_blocked"
	AuditAccountUnblocked AuditAction = "account_unblocked"
	AuditCompanyApproved  AuditAction = "company_approved"
	AuditCompanyRejected  AuditAction = "company_rejected"
)

// AuditEntry is one row in the administrative audit trail.
type AuditEntry struct {
	ID         string
	ActorEmail string
	Action     AuditAction
	SubjectID  string
	Detail     string
	CreatedAt  time.Time
}
