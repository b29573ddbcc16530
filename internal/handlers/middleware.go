package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/security"
	"weddingrsvp/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	AdminEmailContextKey ContextKey = "admin_email"
	RequestIDContextKey  ContextKey = "request_id"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	clientIP    *security.ClientIPResolver
	log         *logger.Logger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, clientIP *security.ClientIPResolver, log *logger.Logger) *Middleware {
	return &Middleware{
		authService: authService,
		clientIP:    clientIP,
		log:         log,
	}
}

// RequireAdmin is middleware that requires a valid admin bearer token
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respondWithError(w, m.log, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		email, err := m.authService.Authenticate(token)
		if err != nil {
			respondWithError(w, m.log, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), AdminEmailContextKey, email)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects requests from a client IP that exceeded limiter
func (m *Middleware) RateLimit(limiter *security.RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := m.clientIP.ClientIP(r)
		if !limiter.Allow(ip) {
			m.log.Warn("Rate limit exceeded", "ip", ip, "path", r.URL.Path)
			respondWithError(w, m.log, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging middleware tags each request with an id and logs it once served
func Logging(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		next.ServeHTTP(rec, r.WithContext(ctx))

		log.Info("Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", requestID,
		)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// GetAdminEmailFromContext retrieves the authenticated admin's email
func GetAdminEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(AdminEmailContextKey).(string)
	return email
}
