// Package middleware carries the gin middleware: the session auth guard,
// CORS, and request logging.
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"email-auth-service/internal/security"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "token"

// Auth returns the guard for protected routes. It reads the session token
// from the cookie and resolves the user id into the request context.
// Absent cookie → 401; expired token → 401 (session lapsed, re-login);
// malformed token or bad signature → 403.
func Auth(tokens *security.TokenProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization failed. Please log in again.",
			})
			return
		}

		userID, err := tokens.Validate(token)
		if err != nil {
			if errors.Is(err, security.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"message": "Token has expired. Please log in again.",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Invalid token. Please log in again.",
			})
			return
		}

		withUserID(c, userID)
		c.Next()
	}
}
