package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"labsite/internal/cache"
	"labsite/internal/content"
	"labsite/internal/service"
	"labsite/internal/transport/rest/handler"
	"labsite/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router.
type Container struct {
	SessionService *service.SessionService
	AuthService    *service.AuthService
	LoginLimiter   cache.LoginLimiter
	Content        *content.Library
	AdminAPIKey    string
	CORSOrigins    string
	Logger         *slog.Logger
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(c.SessionService)
	authHandler := handler.NewAuthHandler(c.AuthService, c.LoginLimiter)
	contentHandler := handler.NewContentHandler(c.Content)

	authMW := middleware.NewAuthMiddleware(
		middleware.NewSessionAuthenticator(c.AuthService),
		middleware.NewAPIKeyAuthenticator(c.AdminAPIKey),
	)

	r.Use(corsMiddleware(c.CORSOrigins))
	if c.Logger != nil {
		r.Use(middleware.RequestLogger(c.Logger))
	}

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	api.HandleFunc("/prg-sessions", sessionHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/prg-sessions/{id}", sessionHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/videos", contentHandler.Videos).Methods("GET", "OPTIONS")
	api.HandleFunc("/publications", contentHandler.Publications).Methods("GET", "OPTIONS")
	api.HandleFunc("/students", contentHandler.Students).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes (require admin auth)
	adminRoutes := api.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/prg-sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/prg-sessions/{id}", sessionHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/prg-sessions/{id}", sessionHandler.Delete).Methods("DELETE", "OPTIONS")

	return r
}

func corsMiddleware(origins string) mux.MiddlewareFunc {
	if origins == "" {
		origins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, x-api-key")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
