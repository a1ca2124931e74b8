// Package server wires the gin router and route table.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authhandler "email-auth-service/internal/auth/handler"
	"email-auth-service/internal/security"
	"email-auth-service/internal/server/middleware"
	userhandler "email-auth-service/internal/user/handler"
)

// NewRouter wires routes and middleware. The guard protects send-verify-otp,
// verify-account, is-auth, and the user-data read; the reset flow stays open
// since its callers have no session.
func NewRouter(
	authHandler *authhandler.AuthHandler,
	userHandler *userhandler.UserHandler,
	tokens *security.TokenProvider,
	corsOrigin string,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(corsOrigin))

	guard := middleware.Auth(tokens)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/send-verify-otp", guard, authHandler.SendVerifyOTP)
		auth.POST("/verify-account", guard, authHandler.VerifyAccount)
		auth.POST("/is-auth", guard, authHandler.IsAuthenticated)
		auth.POST("/send-reset-otp", authHandler.SendResetOTP)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	user := r.Group("/api/user")
	{
		user.GET("/data", guard, userHandler.GetUserData)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
