package domain

import (
	"errors"
	"strings"
	"time"
)

// User is the core user entity. PasswordHash and the OTP fields are
// sensitive: generic repository reads return them zeroed, and only the
// WithSecrets variants populate them.
type User struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	IsAccountVerified bool
	// VerifyOTP is the SHA-256 hex digest of the outstanding verification
	// code; empty when none is outstanding. Set and cleared together with
	// VerifyOTPExpiresAt.
	VerifyOTP          string
	VerifyOTPExpiresAt *time.Time
	// ResetOTP mirrors VerifyOTP for the password-reset purpose.
	ResetOTP          string
	ResetOTPExpiresAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Name)) < 2 {
		return errors.New("name must be at least 2 characters")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// Sanitized returns a copy with the password hash and OTP state cleared.
func (u *User) Sanitized() *User {
	c := *u
	c.PasswordHash = ""
	c.VerifyOTP = ""
	c.VerifyOTPExpiresAt = nil
	c.ResetOTP = ""
	c.ResetOTPExpiresAt = nil
	return &c
}

// NormalizeEmail lowercases and trims an email for use as the lookup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
