package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookiesIssuesIdentity(t *testing.T) {
	var seen string
	h := Cookies(CookieConfig{Name: "sid", Secure: true, MaxAge: time.Hour})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "sid", c.Name)
	assert.Equal(t, seen, c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 3600, c.MaxAge)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestCookiesKeepsValidIdentity(t *testing.T) {
	var seen string
	h := Cookies(DefaultCookieConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "spendsmart_sid", Value: sid})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, sid, seen)
	assert.Empty(t, rec.Result().Cookies())
}

func TestCookiesReplacesMalformedIdentity(t *testing.T) {
	var seen string
	h := Cookies(DefaultCookieConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "spendsmart_sid", Value: "../../etc/passwd"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEqual(t, "../../etc/passwd", seen)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, seen, rec.Result().Cookies()[0].Value)
}
