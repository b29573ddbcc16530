package handlers

import (
	"net/http"

	"github.com/rs/cors"

	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/security"
	"weddingrsvp/internal/service"
)

// RouterConfig holds everything the HTTP API is built from
type RouterConfig struct {
	AuthService         *service.AuthService
	FamilyService       *service.FamilyService
	AccessService       *service.AccessService
	ConfirmationService *service.ConfirmationService

	LoginLimiter  *security.RateLimiter
	AccessLimiter *security.RateLimiter
	// ClientIP keys the limiters; nil means RemoteAddr only
	ClientIP      *security.ClientIPResolver

	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	Logger             *logger.Logger
}

// NewRouter registers every API route and wraps the mux with CORS and
// request logging
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger

	middleware := NewMiddleware(cfg.AuthService, cfg.ClientIP, log)
	authHandler := NewAuthHandler(cfg.AuthService, cfg.MaxBodyBytes, log)
	familyHandler := NewFamilyHandler(cfg.FamilyService, cfg.MaxBodyBytes, log)
	guestHandler := NewGuestHandler(cfg.AccessService, cfg.ConfirmationService, cfg.MaxBodyBytes, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, http.StatusOK, okResponse{OK: true})
	})

	mux.HandleFunc("POST /api/admin/login", middleware.RateLimit(cfg.LoginLimiter, authHandler.Login))
	mux.HandleFunc("GET /api/admin/session", middleware.RequireAdmin(authHandler.Session))

	mux.HandleFunc("GET /api/admin/families", middleware.RequireAdmin(familyHandler.ListFamilies))
	mux.HandleFunc("POST /api/admin/families", middleware.RequireAdmin(familyHandler.CreateFamily))
	mux.HandleFunc("PUT /api/admin/families/{id}", middleware.RequireAdmin(familyHandler.UpdateFamily))
	mux.HandleFunc("DELETE /api/admin/families/{id}", middleware.RequireAdmin(familyHandler.DeleteFamily))
	mux.HandleFunc("GET /api/admin/summary", middleware.RequireAdmin(familyHandler.Summary))

	mux.HandleFunc("GET /api/access/{code}", middleware.RateLimit(cfg.AccessLimiter, guestHandler.Access))
	mux.HandleFunc("POST /api/confirmations", guestHandler.Confirm)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})

	return Logging(log, corsHandler.Handler(mux))
}
