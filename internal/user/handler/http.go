// Package handler serves user-data reads behind the auth guard.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"email-auth-service/internal/server/middleware"
	"email-auth-service/internal/user/repository"
)

// UserHandler serves /api/user routes.
type UserHandler struct {
	users  repository.Repository
	logger *zap.Logger
}

// NewUserHandler returns the handler set for /api/user.
func NewUserHandler(users repository.Repository, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{users: users, logger: logger}
}

// GetUserData returns the profile of the user the guard resolved. Identity
// comes only from the request context, never from the body.
func (h *UserHandler) GetUserData(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authorization failed. Please log in again.",
		})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("get user data failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Something went wrong. Please try again later.",
		})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "No user found with the provided ID.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User retrieved successfully",
		"userData": gin.H{
			"name":              user.Name,
			"isAccountVerified": user.IsAccountVerified,
		},
	})
}
