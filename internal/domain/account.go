package domain

import "time"

// Account is the identity-provider credential record. The application never
// mutates it after creation except through the password flows.
type Account struct {
	ID            string
	Email         string
	PasswordHash  string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
