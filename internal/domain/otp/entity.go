package otp

import "time"

// OTP is a short-lived one-time code used by the (out-of-core) login flow.
// Only the bcrypt hash of the code is stored.
type OTP struct {
	ID        string
	Email     string
	CodeHash  string
	ExpiresAt time.Time
	CreatedAt time.Time
}
