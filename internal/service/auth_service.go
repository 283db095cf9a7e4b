package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"labsite/internal/cache"
	"labsite/internal/model"
	"labsite/internal/repository"
)

var (
	// ErrInvalidCredentials is the single failure for every bad login,
	// so callers cannot tell a wrong email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers malformed, tampered and expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

const (
	tokenLifetime = 24 * time.Hour
	refreshAfter  = time.Hour
)

// AuthService verifies admin credentials, mints session tokens and
// validates the token carried on incoming requests.
type AuthService struct {
	identities repository.IdentityRepo
	secret     []byte
	tokenCache *cache.TokenCache
	cookieName string
	now        func() time.Time
}

// NewAuthService creates an auth service. The token cache is owned by
// the instance, so tests can construct isolated services.
func NewAuthService(identities repository.IdentityRepo, secret []byte, tokenCache *cache.TokenCache, cookieName string) *AuthService {
	return &AuthService{
		identities: identities,
		secret:     secret,
		tokenCache: tokenCache,
		cookieName: cookieName,
		now:        time.Now,
	}
}

// Authorize checks an email/password pair against the identity store.
// Every failure, including lookup errors, collapses into
// ErrInvalidCredentials; causes are only logged.
func (s *AuthService) Authorize(ctx context.Context, email, password string) (*model.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("identity lookup failed: %v", err)
		return nil, ErrInvalidCredentials
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	identity := user.Identity
	return &identity, nil
}

// IssueToken signs a session token for the identity, valid for 24 hours.
func (s *AuthService) IssueToken(identity *model.Identity) (string, error) {
	now := s.now()
	claims := &model.AdminClaims{
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken verifies a token's signature and expiry and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*model.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateRequest extracts the session token from the request and
// checks that it belongs to an admin. Results are cached per credential
// carrier so repeated requests skip signature verification. When the
// token was verified and is over an hour old, a fresh token is returned
// for re-issue. The check fails closed: internal errors log and report
// an invalid session.
func (s *AuthService) ValidateRequest(r *http.Request) (identity *model.Identity, refreshed string, ok bool) {
	carrier := s.tokenFromRequest(r)
	if carrier == "" {
		return nil, "", false
	}

	fingerprint := carrierFingerprint(carrier)
	if valid, hit := s.tokenCache.Get(fingerprint); hit {
		if !valid {
			return nil, "", false
		}
		// Cache hit skips parsing, so only the role is known here.
		return &model.Identity{Role: model.RoleAdmin}, "", true
	}

	claims, err := s.ParseToken(carrier)
	if err != nil {
		s.tokenCache.Set(fingerprint, false)
		return nil, "", false
	}

	valid := claims.Role == model.RoleAdmin
	s.tokenCache.Set(fingerprint, valid)
	if !valid {
		return nil, "", false
	}

	identity = &model.Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}

	if claims.IssuedAt != nil && s.now().Sub(claims.IssuedAt.Time) > refreshAfter {
		token, err := s.IssueToken(identity)
		if err != nil {
			log.Printf("session token refresh failed: %v", err)
		} else {
			refreshed = token
		}
	}
	return identity, refreshed, true
}

// SessionCookie wraps a token in the HttpOnly session cookie.
func (s *AuthService) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokenLifetime / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearedCookie expires the session cookie.
func (s *AuthService) ClearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// tokenFromRequest reads the session cookie, falling back to a bearer
// Authorization header.
func (s *AuthService) tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(s.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func carrierFingerprint(carrier string) string {
	sum := sha256.Sum256([]byte(carrier))
	return hex.EncodeToString(sum[:])
}
