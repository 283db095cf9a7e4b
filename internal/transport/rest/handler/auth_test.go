package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"labsite/internal/cache"
	"labsite/internal/model"
	"labsite/internal/repository"
	"labsite/internal/service"
)

type fakeLoginLimiter struct {
	allowed  bool
	failures int
	resets   int
}

func (l *fakeLoginLimiter) Allow(context.Context, string) (bool, error) { return l.allowed, nil }
func (l *fakeLoginLimiter) RecordFailure(context.Context, string) error {
	l.failures++
	return nil
}
func (l *fakeLoginLimiter) Reset(context.Context, string) error {
	l.resets++
	return nil
}

func newTestAuthHandler(t *testing.T, limiter cache.LoginLimiter) *AuthHandler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	identities := repository.NewStaticIdentityRepo([]repository.AdminUser{{
		Identity: model.Identity{
			ID:    "1",
			Email: "admin@example.com",
			Name:  "Admin User",
			Role:  model.RoleAdmin,
		},
		PasswordHash: string(hash),
	}})
	authSvc := service.NewAuthService(identities, []byte("test-secret"), cache.NewTokenCache(5*time.Minute, 100), "labsite_session")
	return NewAuthHandler(authSvc, limiter)
}

func doLogin(h *AuthHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:51234"
	w := httptest.NewRecorder()
	h.Login(w, req)
	return w
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	limiter := &fakeLoginLimiter{allowed: true}
	h := newTestAuthHandler(t, limiter)

	w := doLogin(h, `{"email": "admin@example.com", "password": "admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin@example.com", resp.User.Email)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "labsite_session", cookies[0].Name)
	assert.Equal(t, resp.Token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	assert.Equal(t, 1, limiter.resets)
	assert.Equal(t, 0, limiter.failures)
}

func TestLoginFailuresLookIdentical(t *testing.T) {
	limiter := &fakeLoginLimiter{allowed: true}
	h := newTestAuthHandler(t, limiter)

	wrongPassword := doLogin(h, `{"email": "admin@example.com", "password": "wrong"}`)
	unknownEmail := doLogin(h, `{"email": "nobody@example.com", "password": "x"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, 2, limiter.failures)
}

func TestLoginThrottledBySourceBudget(t *testing.T) {
	limiter := &fakeLoginLimiter{allowed: false}
	h := newTestAuthHandler(t, limiter)

	w := doLogin(h, `{"email": "admin@example.com", "password": "admin123"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestLoginMalformedBody(t *testing.T) {
	h := newTestAuthHandler(t, &fakeLoginLimiter{allowed: true})

	w := doLogin(h, `{broken`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	h := newTestAuthHandler(t, &fakeLoginLimiter{allowed: true})

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	w := httptest.NewRecorder()
	h.Logout(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "labsite_session", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
