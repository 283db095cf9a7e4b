package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labsite/internal/cache"
	"labsite/internal/model"
	"labsite/internal/repository"
	"labsite/internal/service"
)

func newTestAuthService() *service.AuthService {
	identities := repository.NewStaticIdentityRepo(nil)
	return service.NewAuthService(identities, []byte("test-secret"), cache.NewTokenCache(5*time.Minute, 100), "labsite_session")
}

func protectedOK(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())
		require.NotNil(t, identity)
		assert.Equal(t, model.RoleAdmin, identity.Role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdminAcceptsSessionToken(t *testing.T) {
	authSvc := newTestAuthService()
	mw := NewAuthMiddleware(NewSessionAuthenticator(authSvc))

	token, err := authSvc.IssueToken(&model.Identity{ID: "1", Role: model.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/prg-sessions", nil)
	req.AddCookie(authSvc.SessionCookie(token))
	w := httptest.NewRecorder()
	mw.RequireAdmin(protectedOK(t)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRejectsTamperedToken(t *testing.T) {
	authSvc := newTestAuthService()
	mw := NewAuthMiddleware(NewSessionAuthenticator(authSvc))

	token, err := authSvc.IssueToken(&model.Identity{ID: "1", Role: model.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/prg-sessions", nil)
	req.AddCookie(authSvc.SessionCookie(token + "x"))
	w := httptest.NewRecorder()
	mw.RequireAdmin(protectedOK(t)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminRejectsMissingCredentials(t *testing.T) {
	mw := NewAuthMiddleware(NewSessionAuthenticator(newTestAuthService()))

	req := httptest.NewRequest("POST", "/api/prg-sessions", nil)
	w := httptest.NewRecorder()
	mw.RequireAdmin(protectedOK(t)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthorized")
}

func TestRequireAdminAcceptsAPIKeyStrategy(t *testing.T) {
	mw := NewAuthMiddleware(
		NewSessionAuthenticator(newTestAuthService()),
		NewAPIKeyAuthenticator("legacy-key"),
	)

	req := httptest.NewRequest("POST", "/api/prg-sessions", nil)
	req.Header.Set("x-api-key", "legacy-key")
	w := httptest.NewRecorder()
	mw.RequireAdmin(protectedOK(t)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRejectsWrongAPIKey(t *testing.T) {
	mw := NewAuthMiddleware(NewAPIKeyAuthenticator("legacy-key"))

	req := httptest.NewRequest("POST", "/api/prg-sessions", nil)
	req.Header.Set("x-api-key", "other-key1")
	w := httptest.NewRecorder()
	mw.RequireAdmin(protectedOK(t)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIKeyAuthenticatorDisabledWhenUnconfigured(t *testing.T) {
	a := NewAPIKeyAuthenticator("")

	req := httptest.NewRequest("POST", "/api/prg-sessions", nil)
	req.Header.Set("x-api-key", "")
	_, ok := a.Authenticate(httptest.NewRecorder(), req)
	assert.False(t, ok)
}
