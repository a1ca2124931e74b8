// Package service implements the auth orchestrator: registration, login,
// and the OTP flows for account verification and password reset.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"email-auth-service/internal/mail"
	"email-auth-service/internal/otp"
	"email-auth-service/internal/security"
	"email-auth-service/internal/user/domain"
	"email-auth-service/internal/user/repository"
)

// Sentinel errors for the auth service; the handler maps them to HTTP statuses.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyVerified    = errors.New("account already verified")
)

// ValidationError reports missing or malformed input. The handler maps it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }

// UserRepo is the user repository surface needed by the auth service.
type UserRepo interface {
	GetByIDWithSecrets(ctx context.Context, id string) (*domain.User, error)
	GetByEmailWithSecrets(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	SetVerifyOTP(ctx context.Context, userID, codeHash string, expiresAt time.Time) error
	SetResetOTP(ctx context.Context, userID, codeHash string, expiresAt time.Time) error
	ConsumeVerifyOTP(ctx context.Context, userID, codeHash string) (bool, error)
	ConsumeResetOTP(ctx context.Context, userID, codeHash, newPasswordHash string) (bool, error)
}

// AuthService sequences the credential store, hasher, token provider, OTP
// engine, and mailer per operation.
type AuthService struct {
	users     UserRepo
	hasher    *security.Hasher
	tokens    *security.TokenProvider
	mailer    mail.Mailer
	verifyTTL time.Duration
	resetTTL  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService returns an AuthService with the given dependencies.
// verifyTTL and resetTTL bound the verification and reset OTPs respectively.
func NewAuthService(
	users UserRepo,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	mailer mail.Mailer,
	verifyTTL, resetTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		mailer:    mailer,
		verifyTTL: verifyTTL,
		resetTTL:  resetTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates an unverified user, issues a session token, and fires a
// best-effort welcome mail. A failed welcome send is logged, never surfaced:
// registration has already committed. Returns the sanitized user and token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)
	if len(name) < 2 {
		return nil, "", validationErr("name must be at least 2 characters")
	}
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}
	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, "", validationErr(err.Error())
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	go func() {
		if err := s.mailer.SendWelcome(context.WithoutCancel(ctx), user.Email, user.Name); err != nil {
			s.logger.Warn("welcome mail failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}()

	return user.Sanitized(), token, nil
}

// Login authenticates with email/password and issues a session token.
// Returns ErrUserNotFound for an unknown email and ErrInvalidCredentials for
// a password mismatch.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", validationErr("email and password are required")
	}
	user, err := s.users.GetByEmailWithSecrets(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user.Sanitized(), token, nil
}

// SendVerifyOTP binds a fresh verification code to the user (overwriting any
// outstanding one) and emails it. The send is awaited: an unreachable code is
// useless, so a mail failure surfaces to the caller.
func (s *AuthService) SendVerifyOTP(ctx context.Context, userID string) error {
	user, err := s.users.GetByIDWithSecrets(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsAccountVerified {
		return ErrAlreadyVerified
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}
	expiresAt := s.now().UTC().Add(s.verifyTTL)
	if err := s.users.SetVerifyOTP(ctx, user.ID, otp.Hash(code), expiresAt); err != nil {
		return err
	}
	if err := s.mailer.SendVerifyOTP(ctx, user.Email, code); err != nil {
		return fmt.Errorf("send verify otp: %w", err)
	}
	return nil
}

// VerifyEmail consumes the outstanding verification code and marks the
// account verified. Returns otp.ErrNoneOutstanding, otp.ErrExpired, or
// otp.ErrInvalidCode on failure. Of two concurrent calls with the same valid
// code, exactly one succeeds: the clearing write is conditioned on the stored
// code still matching.
func (s *AuthService) VerifyEmail(ctx context.Context, userID, code string) error {
	user, err := s.users.GetByIDWithSecrets(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := otp.Check(user.VerifyOTP, user.VerifyOTPExpiresAt, code, s.now().UTC()); err != nil {
		return err
	}
	ok, err := s.users.ConsumeVerifyOTP(ctx, user.ID, user.VerifyOTP)
	if err != nil {
		return err
	}
	if !ok {
		// Lost the race: someone consumed or reissued the code since the read.
		return otp.ErrInvalidCode
	}
	return nil
}

// SendResetOTP binds a fresh password-reset code to the account for email and
// mails it. Deliberately usable without a session. The send is awaited, as
// with SendVerifyOTP.
func (s *AuthService) SendResetOTP(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return validationErr("email is required")
	}
	user, err := s.users.GetByEmailWithSecrets(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}
	expiresAt := s.now().UTC().Add(s.resetTTL)
	if err := s.users.SetResetOTP(ctx, user.ID, otp.Hash(code), expiresAt); err != nil {
		return err
	}
	if err := s.mailer.SendResetOTP(ctx, user.Email, code); err != nil {
		return fmt.Errorf("send reset otp: %w", err)
	}
	return nil
}

// ResetPassword consumes the outstanding reset code and replaces the password
// hash wholesale in the same write that clears the code.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = domain.NormalizeEmail(email)
	if email == "" || code == "" {
		return validationErr("email and otp are required")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	user, err := s.users.GetByEmailWithSecrets(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := otp.Check(user.ResetOTP, user.ResetOTPExpiresAt, code, s.now().UTC()); err != nil {
		return err
	}
	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	ok, err := s.users.ConsumeResetOTP(ctx, user.ID, user.ResetOTP, newHash)
	if err != nil {
		return err
	}
	if !ok {
		return otp.ErrInvalidCode
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return validationErr("email is required")
	}
	const simpleEmail = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	ok, _ := regexp.MatchString(simpleEmail, email)
	if !ok {
		return validationErr("invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return validationErr("password must be at least 6 characters")
	}
	return nil
}
