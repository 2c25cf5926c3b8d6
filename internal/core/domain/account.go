package domain

import "time"

// MinPasswordLength is the minimum accepted password length for new accounts.
const MinPasswordLength = 6

// Identity is an account record in the external identity service. It is the
// source of truth for existence and credentials; the password itself is
// write-only and never read back.
type Identity struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	Role          Role   `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

// Profile is the denormalized account projection stored alongside the
// identity record. Its ID always equals the identity's ID; an identity may
// transiently exist without a profile, but never the reverse.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
