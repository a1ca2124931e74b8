// Package handler exposes the auth operations over HTTP.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"email-auth-service/internal/auth/service"
	"email-auth-service/internal/otp"
	"email-auth-service/internal/server/middleware"
)

// AuthHandler maps the auth service operations onto the /api/auth routes.
type AuthHandler struct {
	auth    *service.AuthService
	cookies *CookieWriter
	logger  *zap.Logger
}

// NewAuthHandler returns the handler set for /api/auth.
func NewAuthHandler(auth *service.AuthService, cookies *CookieWriter, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, cookies: cookies, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyAccountRequest struct {
	OTP string `json:"otp" binding:"required"`
}

type sendResetOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type userPayload struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}

// Register creates the account, sets the session cookie, and returns the
// created identity. The password hash never leaves the service.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondStatus(c, http.StatusBadRequest, "All fields are required.")
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.cookies.SetSession(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User register successfully.",
		"user": userPayload{
			ID:                user.ID,
			Name:              user.Name,
			Email:             user.Email,
			IsAccountVerified: user.IsAccountVerified,
		},
	})
}

// Login authenticates and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondStatus(c, http.StatusBadRequest, "All fields are required.")
		return
	}

	_, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.cookies.SetSession(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User logged in successfully."})
}

// Logout clears the session cookie unconditionally.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User logout successfully."})
}

// SendVerifyOTP issues a verification code for the authenticated user.
func (h *AuthHandler) SendVerifyOTP(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondStatus(c, http.StatusUnauthorized, "Authorization failed. Please log in again.")
		return
	}
	if err := h.auth.SendVerifyOTP(c.Request.Context(), userID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification OTP sent to your email."})
}

// VerifyAccount consumes the verification code for the authenticated user.
func (h *AuthHandler) VerifyAccount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondStatus(c, http.StatusUnauthorized, "Authorization failed. Please log in again.")
		return
	}
	var req verifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondStatus(c, http.StatusBadRequest, "OTP is required.")
		return
	}
	if err := h.auth.VerifyEmail(c.Request.Context(), userID, req.OTP); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified successfully."})
}

// IsAuthenticated succeeds whenever the guard resolved a valid session.
func (h *AuthHandler) IsAuthenticated(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		respondStatus(c, http.StatusUnauthorized, "Authorization failed. Please log in again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User is authenticated."})
}

// SendResetOTP issues a password-reset code by email. Not behind the guard:
// a user who forgot their password has no session.
func (h *AuthHandler) SendResetOTP(c *gin.Context) {
	var req sendResetOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondStatus(c, http.StatusBadRequest, "Email is required.")
		return
	}
	if err := h.auth.SendResetOTP(c.Request.Context(), req.Email); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reset OTP sent to your email."})
}

// ResetPassword consumes the reset code and replaces the password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondStatus(c, http.StatusBadRequest, "All fields are required.")
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password has been reset successfully."})
}

// respondError turns expected failure kinds into structured responses and
// reduces everything else to a generic 500. Internal detail never reaches
// the client.
func (h *AuthHandler) respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		respondStatus(c, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, service.ErrEmailTaken):
		respondStatus(c, http.StatusConflict, "User with email is already registered.")
	case errors.Is(err, service.ErrUserNotFound):
		respondStatus(c, http.StatusNotFound, "User not found!")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondStatus(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrAlreadyVerified):
		respondStatus(c, http.StatusBadRequest, "Account is already verified.")
	case errors.Is(err, otp.ErrNoneOutstanding):
		respondStatus(c, http.StatusBadRequest, "No OTP is outstanding. Request a new one.")
	case errors.Is(err, otp.ErrInvalidCode):
		respondStatus(c, http.StatusUnauthorized, "Invalid OTP.")
	case errors.Is(err, otp.ErrExpired):
		respondStatus(c, http.StatusGone, "OTP has expired. Request a new one.")
	default:
		h.logger.Error("auth operation failed", zap.String("path", c.FullPath()), zap.Error(err))
		respondStatus(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}

func respondStatus(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
