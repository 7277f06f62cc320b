package middleware

import (
	"net/http"

	"github.com/eaglebank/ledger/shared/utils"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName is the cookie carrying the anonymous session id.
	SessionCookieName = "sessionId"

	// SessionCookieMaxAge is 60*60*7 seconds: seven hours, not seven days.
	SessionCookieMaxAge = 60 * 60 * 7

	sessionContextKey = "sessionId"
)

// SessionMiddleware rejects requests that carry no sessionId cookie. The value
// is trusted on presence alone: no signature, expiry or store lookup.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := sessionFromCookie(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized.",
			})
			c.Abort()
			return
		}

		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session id stored by SessionMiddleware.
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get(sessionContextKey)
	if !exists {
		return "", false
	}
	return sessionID.(string), true
}

// EnsureSession returns the caller's session id, issuing a new one as a
// cookie when the request has none. created reports whether a cookie was set.
func EnsureSession(c *gin.Context) (sessionID string, created bool) {
	if sessionID, ok := sessionFromCookie(c); ok {
		return sessionID, false
	}

	sessionID = utils.GenerateID()
	c.SetCookie(SessionCookieName, sessionID, SessionCookieMaxAge, "/", "", false, false)
	return sessionID, true
}

func sessionFromCookie(c *gin.Context) (string, bool) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || sessionID == "" {
		return "", false
	}
	return sessionID, true
}
