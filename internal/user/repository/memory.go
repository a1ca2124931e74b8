package repository

import (
	"context"
	"sync"
	"time"

	"email-auth-service/internal/user/domain"
)

// MemoryRepository is an in-memory Repository used by tests and local runs
// without Postgres. Writes are serialized per store, matching the
// conditional-update semantics of the Postgres implementation.
type MemoryRepository struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byEmail map[string]string
}

// NewMemoryRepository returns an empty in-memory user repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return u.Sanitized(), nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return r.byID[id].Sanitized(), nil
}

func (r *MemoryRepository) GetByIDWithSecrets(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *MemoryRepository) GetByEmailWithSecrets(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	c := *r.byID[id]
	return &c, nil
}

func (r *MemoryRepository) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[u.Email]; taken {
		return ErrEmailTaken
	}
	c := *u
	r.byID[c.ID] = &c
	r.byEmail[c.Email] = c.ID
	return nil
}

func (r *MemoryRepository) SetVerifyOTP(ctx context.Context, userID, codeHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID]; ok {
		t := expiresAt
		u.VerifyOTP = codeHash
		u.VerifyOTPExpiresAt = &t
		u.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (r *MemoryRepository) SetResetOTP(ctx context.Context, userID, codeHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID]; ok {
		t := expiresAt
		u.ResetOTP = codeHash
		u.ResetOTPExpiresAt = &t
		u.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (r *MemoryRepository) ConsumeVerifyOTP(ctx context.Context, userID, codeHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok || u.VerifyOTP == "" || u.VerifyOTP != codeHash {
		return false, nil
	}
	u.IsAccountVerified = true
	u.VerifyOTP = ""
	u.VerifyOTPExpiresAt = nil
	u.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryRepository) ConsumeResetOTP(ctx context.Context, userID, codeHash, newPasswordHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok || u.ResetOTP == "" || u.ResetOTP != codeHash {
		return false, nil
	}
	u.PasswordHash = newPasswordHash
	u.ResetOTP = ""
	u.ResetOTPExpiresAt = nil
	u.UpdatedAt = time.Now().UTC()
	return true, nil
}
