package middleware

import "github.com/gin-gonic/gin"

const userIDKey = "auth_user_id"

// withUserID stores the resolved user id on the request context. Only the
// auth guard writes it; handlers must read identity from here and never from
// client-supplied body fields.
func withUserID(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
}

// GetUserID returns the user id resolved by the auth guard and true if set.
func GetUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
