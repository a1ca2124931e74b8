package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"email-auth-service/internal/server/middleware"
)

// CookieWriter sets and clears the HTTP-only session cookie. In production
// the cookie is Secure with SameSite=None so a cross-site browser client can
// carry it; otherwise SameSite=Strict for local development.
type CookieWriter struct {
	ttl        time.Duration
	production bool
}

// NewCookieWriter returns a CookieWriter. ttl should match the session token
// lifetime so the cookie and the embedded expiry lapse together.
func NewCookieWriter(ttl time.Duration, production bool) *CookieWriter {
	return &CookieWriter{ttl: ttl, production: production}
}

// SetSession writes the session token cookie.
func (w *CookieWriter) SetSession(c *gin.Context, token string) {
	c.SetSameSite(w.sameSite())
	c.SetCookie(middleware.SessionCookie, token, int(w.ttl.Seconds()), "/", "", w.production, true)
}

// ClearSession expires the session cookie. Always succeeds.
func (w *CookieWriter) ClearSession(c *gin.Context) {
	c.SetSameSite(w.sameSite())
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", w.production, true)
}

func (w *CookieWriter) sameSite() http.SameSite {
	if w.production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}
