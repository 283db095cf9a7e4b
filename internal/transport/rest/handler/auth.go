package handler

import (
	"encoding/json"
	"log"
	"net"
	"net/http"

	"labsite/internal/cache"
	"labsite/internal/model"
	"labsite/internal/service"
)

// AuthHandler handles the login and logout endpoints.
type AuthHandler struct {
	authSvc *service.AuthService
	limiter cache.LoginLimiter
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authSvc *service.AuthService, limiter cache.LoginLimiter) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, limiter: limiter}
}

// Login handles POST /api/auth/login. Failed attempts are budgeted per
// source IP; every credential failure looks identical to the caller.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	source := clientIP(r)
	allowed, err := h.limiter.Allow(r.Context(), source)
	if err != nil {
		// Degrade open: a limiter outage must not lock out the admin.
		log.Printf("login limiter unavailable: %v", err)
		allowed = true
	}
	if !allowed {
		writeError(w, http.StatusTooManyRequests, "too many failed login attempts, try again later")
		return
	}

	identity, err := h.authSvc.Authorize(r.Context(), req.Email, req.Password)
	if err != nil {
		if err := h.limiter.RecordFailure(r.Context(), source); err != nil {
			log.Printf("login limiter record failed: %v", err)
		}
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.authSvc.IssueToken(identity)
	if err != nil {
		log.Printf("token issue failed: %v", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	if err := h.limiter.Reset(r.Context(), source); err != nil {
		log.Printf("login limiter reset failed: %v", err)
	}

	http.SetCookie(w, h.authSvc.SessionCookie(token))
	writeJSON(w, http.StatusOK, model.LoginResponse{Token: token, User: *identity})
}

// Logout handles POST /api/auth/logout by expiring the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.authSvc.ClearedCookie())
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
