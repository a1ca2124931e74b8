package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"email-auth-service/internal/security"
)

func guardRouter(tokens *security.TokenProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/protected", Auth(tokens), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "userId": userID})
	})
	return r
}

func doRequest(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingCookie(t *testing.T) {
	tokens := security.NewTokenProvider("secret", time.Hour)
	w := doRequest(guardRouter(tokens), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "log in again")
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := security.NewTokenProvider("secret", time.Hour)
	token, err := tokens.Issue("u1")
	require.NoError(t, err)

	w := doRequest(guardRouter(tokens), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"u1"`)
}

func TestAuth_ExpiredToken(t *testing.T) {
	expiredIssuer := security.NewTokenProvider("secret", -time.Minute)
	token, err := expiredIssuer.Issue("u1")
	require.NoError(t, err)

	tokens := security.NewTokenProvider("secret", time.Hour)
	w := doRequest(guardRouter(tokens), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuth_ForeignSignature(t *testing.T) {
	foreign := security.NewTokenProvider("other-secret", time.Hour)
	token, err := foreign.Issue("u1")
	require.NoError(t, err)

	tokens := security.NewTokenProvider("secret", time.Hour)
	w := doRequest(guardRouter(tokens), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuth_MalformedToken(t *testing.T) {
	tokens := security.NewTokenProvider("secret", time.Hour)
	w := doRequest(guardRouter(tokens), "not-a-jwt")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
