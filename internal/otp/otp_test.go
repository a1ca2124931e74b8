package otp

import (
	"strconv"
	"testing"
	"time"
)

func TestGenerate_SixDigitRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code length = %d, want 6 (%q)", len(code), code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d outside 100000–999999", n)
		}
	}
}

func TestGenerate_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 10 {
		t.Errorf("50 draws produced only %d distinct codes", len(seen))
	}
}

func TestHash_Consistent(t *testing.T) {
	if Hash("123456") != Hash("123456") {
		t.Error("Hash not deterministic")
	}
	if len(Hash("123456")) != 64 {
		t.Errorf("hash length = %d, want 64 (SHA-256 hex)", len(Hash("123456")))
	}
	if Hash("123456") == Hash("654321") {
		t.Error("Hash produced same digest for different codes")
	}
}

func TestEqual(t *testing.T) {
	stored := Hash("123456")
	if !Equal("123456", stored) {
		t.Error("Equal should match the correct code")
	}
	if Equal("654321", stored) {
		t.Error("Equal should reject a wrong code")
	}
	// No normalization: whitespace or shifted case must not match.
	if Equal(" 123456", stored) {
		t.Error("Equal should reject a code with leading whitespace")
	}
	if Equal("", stored) {
		t.Error("Equal should reject an empty code")
	}
}

func TestCheck_Classification(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Minute)
	stored := Hash("123456")

	testCases := []struct {
		name       string
		storedHash string
		expiresAt  *time.Time
		supplied   string
		want       error
	}{
		{"none outstanding", "", nil, "123456", ErrNoneOutstanding},
		{"expiry cleared", stored, nil, "123456", ErrNoneOutstanding},
		{"expired even when matching", stored, &past, "123456", ErrExpired},
		{"expired at exact instant", stored, &now, "123456", ErrExpired},
		{"wrong code", stored, &future, "000000", ErrInvalidCode},
		{"valid", stored, &future, "123456", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Check(tc.storedHash, tc.expiresAt, tc.supplied, now); got != tc.want {
				t.Errorf("Check = %v, want %v", got, tc.want)
			}
		})
	}
}
