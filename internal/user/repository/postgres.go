package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"email-auth-service/internal/user/domain"
)

// PostgresRepository persists users in the users table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const sanitizedColumns = `id, name, email, is_account_verified, created_at, updated_at`

const secretColumns = `id, name, email, password_hash, is_account_verified,
	verify_otp, verify_otp_expires_at, reset_otp, reset_otp_expires_at,
	created_at, updated_at`

// GetByID returns the user for id with sensitive fields zeroed, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sanitizedColumns+` FROM users WHERE id = $1`, id)
	return scanSanitized(row)
}

// GetByEmail returns the user for email with sensitive fields zeroed, or nil if not found.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sanitizedColumns+` FROM users WHERE email = $1`, email)
	return scanSanitized(row)
}

// GetByIDWithSecrets returns the user for id including password hash and OTP state.
func (r *PostgresRepository) GetByIDWithSecrets(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+secretColumns+` FROM users WHERE id = $1`, id)
	return scanWithSecrets(row)
}

// GetByEmailWithSecrets returns the user for email including password hash and OTP state.
func (r *PostgresRepository) GetByEmailWithSecrets(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+secretColumns+` FROM users WHERE email = $1`, email)
	return scanWithSecrets(row)
}

// Create persists the user. The user must have ID set; it is not assigned by
// this method. A unique violation on email maps to ErrEmailTaken.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, is_account_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.IsAccountVerified, u.CreatedAt, u.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmailTaken
	}
	return err
}

// SetVerifyOTP binds a verification code hash and expiry, overwriting any outstanding one.
func (r *PostgresRepository) SetVerifyOTP(ctx context.Context, userID, codeHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET verify_otp = $2, verify_otp_expires_at = $3, updated_at = $4
		WHERE id = $1`,
		userID, codeHash, expiresAt, time.Now().UTC(),
	)
	return err
}

// SetResetOTP binds a password-reset code hash and expiry, overwriting any outstanding one.
func (r *PostgresRepository) SetResetOTP(ctx context.Context, userID, codeHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET reset_otp = $2, reset_otp_expires_at = $3, updated_at = $4
		WHERE id = $1`,
		userID, codeHash, expiresAt, time.Now().UTC(),
	)
	return err
}

// ConsumeVerifyOTP flips is_account_verified and clears the verification OTP
// in a single conditional update. The WHERE clause re-checks the stored hash,
// so of two concurrent consumers at most one sees a row updated.
func (r *PostgresRepository) ConsumeVerifyOTP(ctx context.Context, userID, codeHash string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET is_account_verified = true, verify_otp = NULL, verify_otp_expires_at = NULL, updated_at = $3
		WHERE id = $1 AND verify_otp = $2`,
		userID, codeHash, time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ConsumeResetOTP replaces the password hash and clears the reset OTP in a
// single conditional update, same race discipline as ConsumeVerifyOTP.
func (r *PostgresRepository) ConsumeResetOTP(ctx context.Context, userID, codeHash, newPasswordHash string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = $3, reset_otp = NULL, reset_otp_expires_at = NULL, updated_at = $4
		WHERE id = $1 AND reset_otp = $2`,
		userID, codeHash, newPasswordHash, time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanSanitized(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.IsAccountVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func scanWithSecrets(row *sql.Row) (*domain.User, error) {
	var (
		u            domain.User
		verifyOTP    sql.NullString
		verifyExpiry sql.NullTime
		resetOTP     sql.NullString
		resetExpiry  sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAccountVerified,
		&verifyOTP, &verifyExpiry, &resetOTP, &resetExpiry,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if verifyOTP.Valid {
		u.VerifyOTP = verifyOTP.String
	}
	if verifyExpiry.Valid {
		t := verifyExpiry.Time
		u.VerifyOTPExpiresAt = &t
	}
	if resetOTP.Valid {
		u.ResetOTP = resetOTP.String
	}
	if resetExpiry.Valid {
		t := resetExpiry.Time
		u.ResetOTPExpiresAt = &t
	}
	return &u, nil
}
