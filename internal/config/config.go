// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTSecret is the HMAC secret used to sign session tokens. Required.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTTokenTTL is the session token lifetime (e.g. "168h" for 7 days).
	JWTTokenTTL string `mapstructure:"JWT_TOKEN_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// VerifyOTPTTL is the account-verification OTP lifetime (e.g. "24h").
	VerifyOTPTTL string `mapstructure:"VERIFY_OTP_TTL"`
	// ResetOTPTTL is the password-reset OTP lifetime (e.g. "15m").
	ResetOTPTTL string `mapstructure:"RESET_OTP_TTL"`
	// SMTPHost is the SMTP server host used for OTP and welcome mail.
	SMTPHost string `mapstructure:"SMTP_HOST"`
	// SMTPPort is the SMTP server port (default 587).
	SMTPPort int `mapstructure:"SMTP_PORT"`
	// SMTPUser is the SMTP username.
	SMTPUser string `mapstructure:"SMTP_USER"`
	// SMTPPass is the SMTP password.
	SMTPPass string `mapstructure:"SMTP_PASS"`
	// SenderEmail is the From address for outgoing mail.
	SenderEmail string `mapstructure:"SENDER_EMAIL"`
	// CORSOrigin is the allowed cross-origin source for the browser client.
	CORSOrigin string `mapstructure:"CORS_ORIGIN"`
	// Env is the application environment (e.g. "development", "production").
	// In production the session cookie is Secure with SameSite=None.
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TOKEN_TTL", "168h") // 7d
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("VERIFY_OTP_TTL", "24h")
	v.SetDefault("RESET_OTP_TTL", "15m")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("SENDER_EMAIL", "")
	v.SetDefault("CORS_ORIGIN", "")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET must be set")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	return &cfg, nil
}

// TokenTTL parses JWTTokenTTL as a time.Duration. Returns 168h if unset or invalid.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTTokenTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// VerifyTTL parses VerifyOTPTTL as a time.Duration. Returns 24h if unset or invalid.
func (c *Config) VerifyTTL() time.Duration {
	d, err := time.ParseDuration(c.VerifyOTPTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// ResetTTL parses ResetOTPTTL as a time.Duration. Returns 15m if unset or invalid.
func (c *Config) ResetTTL() time.Duration {
	d, err := time.ParseDuration(c.ResetOTPTTL)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// IsProduction reports whether the app runs with production cookie attributes.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
