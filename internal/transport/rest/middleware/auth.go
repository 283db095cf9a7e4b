package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"labsite/internal/model"
	"labsite/internal/service"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticator is one way of proving a request belongs to the admin.
// Strategies are interchangeable; the middleware tries each in order.
// A strategy may write to the response, e.g. to re-issue a refreshed
// session cookie.
type Authenticator interface {
	Authenticate(w http.ResponseWriter, r *http.Request) (*model.Identity, bool)
}

// SessionAuthenticator validates the signed session token carried by
// cookie or bearer header, re-issuing the cookie when the token is stale.
type SessionAuthenticator struct {
	authSvc *service.AuthService
}

// NewSessionAuthenticator creates the session-token strategy.
func NewSessionAuthenticator(authSvc *service.AuthService) *SessionAuthenticator {
	return &SessionAuthenticator{authSvc: authSvc}
}

func (a *SessionAuthenticator) Authenticate(w http.ResponseWriter, r *http.Request) (*model.Identity, bool) {
	identity, refreshed, ok := a.authSvc.ValidateRequest(r)
	if !ok {
		return nil, false
	}
	if refreshed != "" {
		http.SetCookie(w, a.authSvc.SessionCookie(refreshed))
	}
	return identity, true
}

// APIKeyAuthenticator accepts the legacy static x-api-key header.
type APIKeyAuthenticator struct {
	key string
}

// NewAPIKeyAuthenticator creates the static-key strategy. An empty key
// disables it.
func NewAPIKeyAuthenticator(key string) *APIKeyAuthenticator {
	return &APIKeyAuthenticator{key: key}
}

func (a *APIKeyAuthenticator) Authenticate(_ http.ResponseWriter, r *http.Request) (*model.Identity, bool) {
	if a.key == "" {
		return nil, false
	}
	presented := r.Header.Get("x-api-key")
	// Constant-time comparison to prevent timing attacks.
	if len(presented) != len(a.key) || subtle.ConstantTimeCompare([]byte(presented), []byte(a.key)) != 1 {
		return nil, false
	}
	return &model.Identity{Role: model.RoleAdmin}, true
}

// AuthMiddleware gates admin routes behind the configured strategies.
type AuthMiddleware struct {
	strategies []Authenticator
}

// NewAuthMiddleware creates middleware trying each strategy in order.
func NewAuthMiddleware(strategies ...Authenticator) *AuthMiddleware {
	return &AuthMiddleware{strategies: strategies}
}

// RequireAdmin rejects the request with 401 unless some strategy
// authenticates it as the admin.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, strategy := range m.strategies {
			if identity, ok := strategy.Authenticate(w, r); ok {
				ctx := context.WithValue(r.Context(), identityKey, identity)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"unauthorized"}`))
	})
}

// GetIdentity extracts the authenticated identity from the context.
func GetIdentity(ctx context.Context) *model.Identity {
	if v := ctx.Value(identityKey); v != nil {
		return v.(*model.Identity)
	}
	return nil
}
