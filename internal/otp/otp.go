// Package otp generates and checks the one-time codes used for account
// verification and password reset.
package otp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"math/big"
	"time"
)

// Check failure kinds, in the order Check reports them.
var (
	// ErrNoneOutstanding is returned when no code is bound for the purpose.
	ErrNoneOutstanding = errors.New("no outstanding code")
	// ErrExpired is returned when the bound code is past its expiry.
	ErrExpired = errors.New("code expired")
	// ErrInvalidCode is returned when the supplied code does not match.
	ErrInvalidCode = errors.New("invalid code")
)

var codeSpan = big.NewInt(900000)

// Generate returns a 6-digit numeric code drawn uniformly from
// 100000–999999 using crypto/rand.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", err
	}
	return n.Add(n, big.NewInt(100000)).String(), nil
}

// Hash returns the SHA-256 digest of code, hex-encoded. Codes are stored
// hashed; the supplied code is hashed as-is, so comparison stays an exact
// string match with no case or whitespace normalization.
func Hash(code string) string {
	h := sha256.Sum256([]byte(code))
	return hex.EncodeToString(h[:])
}

// Equal performs a constant-time comparison of the supplied code's hash
// with the stored hash.
func Equal(supplied, storedHash string) bool {
	suppliedHash := Hash(supplied)
	return subtle.ConstantTimeCompare([]byte(suppliedHash), []byte(storedHash)) == 1
}

// Check classifies an attempt to consume an outstanding code. storedHash and
// expiresAt are the purpose-specific fields from the user record; supplied is
// the code the caller presented. Expiry is checked before the match, so an
// expired-but-correct code reports ErrExpired. A nil error means the code is
// valid right now; actually clearing it is the caller's write, conditioned on
// the stored hash still matching.
func Check(storedHash string, expiresAt *time.Time, supplied string, now time.Time) error {
	if storedHash == "" || expiresAt == nil {
		return ErrNoneOutstanding
	}
	if !now.Before(*expiresAt) {
		return ErrExpired
	}
	if !Equal(supplied, storedHash) {
		return ErrInvalidCode
	}
	return nil
}
