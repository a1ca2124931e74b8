package repository

import (
	"context"
	"errors"
	"time"

	"email-auth-service/internal/user/domain"
)

// ErrEmailTaken is returned by Create when the email is already registered.
// Uniqueness is enforced by the storage layer so two concurrent
// registrations with the same address cannot both succeed.
var ErrEmailTaken = errors.New("email already registered")

// Repository defines persistence for users. Get methods return (nil, nil)
// when no row matches; errors are database failures only.
type Repository interface {
	// GetByID returns the user for id with sensitive fields zeroed.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail returns the user for the normalized email with sensitive fields zeroed.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByIDWithSecrets returns the user including password hash and OTP state.
	GetByIDWithSecrets(ctx context.Context, id string) (*domain.User, error)
	// GetByEmailWithSecrets returns the user including password hash and OTP state.
	GetByEmailWithSecrets(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new user. The user must have ID set. Returns
	// ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u *domain.User) error
	// SetVerifyOTP binds a verification code hash and expiry to the user,
	// overwriting any outstanding one.
	SetVerifyOTP(ctx context.Context, userID, codeHash string, expiresAt time.Time) error
	// SetResetOTP binds a password-reset code hash and expiry to the user,
	// overwriting any outstanding one.
	SetResetOTP(ctx context.Context, userID, codeHash string, expiresAt time.Time) error
	// ConsumeVerifyOTP marks the account verified and clears the
	// verification OTP in one write, conditioned on the stored hash still
	// matching codeHash. Returns false when the condition no longer holds
	// (the code was consumed or reissued concurrently).
	ConsumeVerifyOTP(ctx context.Context, userID, codeHash string) (bool, error)
	// ConsumeResetOTP replaces the password hash and clears the reset OTP
	// in one write, conditioned on the stored hash still matching codeHash.
	ConsumeResetOTP(ctx context.Context, userID, codeHash, newPasswordHash string) (bool, error)
}
