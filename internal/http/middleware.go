package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"user-directory/internal/auth"
)

const (
	sessionCookie   = "access_token"
	contextEmailKey = "session_email"
)

// requireSession is the gate every protected route passes through: it reads
// the session cookie, resolves it, and either stores the authenticated email
// in the request context or redirects to the login page.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil {
			redirectToLogin(c, "Not authenticated")
			return
		}

		email, ok := auth.ResolveToken(token, h.jwtSecret)
		if !ok {
			redirectToLogin(c, "Invalid or expired session")
			return
		}

		c.Set(contextEmailKey, email)
		c.Next()
	}
}

// currentEmail returns the authenticated identity set by requireSession.
func currentEmail(c *gin.Context) string {
	return c.GetString(contextEmailKey)
}

func redirectToLogin(c *gin.Context, msg string) {
	c.Redirect(http.StatusSeeOther, "/login?msg="+url.QueryEscape(msg))
	c.Abort()
}
