package dto

import "time"

// RegisterRequest payload for sign-up. Role is pre-selected on the auth form
// via the role query parameter.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Next     string `json:"next,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Next     string `json:"next,omitempty"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LandingResponse is the role router's navigation decision.
type LandingResponse struct {
	Path       string `json:"path"`
	Restricted bool   `json:"restricted,omitempty"`
}
