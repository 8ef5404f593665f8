package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"user-directory/internal/auth"
)

func newSessionRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &Handler{
		jwtSecret: []byte(secret),
		tokenTTL:  time.Hour,
	}
	router := gin.New()
	router.GET("/protected", h.requireSession(), func(c *gin.Context) {
		c.String(http.StatusOK, currentEmail(c))
	})
	return router
}

func requestWithCookie(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireSession_NoCookie(t *testing.T) {
	router := newSessionRouter(t, "secret")

	w := requestWithCookie(router, "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Location"), "/login"))
}

func TestRequireSession_InvalidToken(t *testing.T) {
	router := newSessionRouter(t, "secret")

	w := requestWithCookie(router, "not-a-token")
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Location"), "/login"))
}

func TestRequireSession_WrongKey(t *testing.T) {
	router := newSessionRouter(t, "secret")

	tok, err := auth.IssueToken("jane@x.com", []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	w := requestWithCookie(router, tok)
	require.Equal(t, http.StatusSeeOther, w.Code)
}

func TestRequireSession_Expired(t *testing.T) {
	router := newSessionRouter(t, "secret")

	tok, err := auth.IssueToken("jane@x.com", []byte("secret"), -1*time.Minute)
	require.NoError(t, err)

	w := requestWithCookie(router, tok)
	require.Equal(t, http.StatusSeeOther, w.Code)
}

func TestRequireSession_ValidToken(t *testing.T) {
	router := newSessionRouter(t, "secret")

	tok, err := auth.IssueToken("jane@x.com", []byte("secret"), time.Hour)
	require.NoError(t, err)

	w := requestWithCookie(router, tok)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "jane@x.com", w.Body.String())
}
