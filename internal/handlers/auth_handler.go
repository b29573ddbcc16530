package handlers

import (
	"net/http"

	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/service"
	"weddingrsvp/internal/validation"
)

// AuthHandler handles admin login and session requests
type AuthHandler struct {
	authService  *service.AuthService
	maxBodyBytes int64
	log          *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, maxBodyBytes int64, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		maxBodyBytes: maxBodyBytes,
		log:          log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges the admin email and password for a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, validation.MsgCredentialsRequired, "", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithServiceError(w, h.log, err, ErrLogin)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}

// Session reports the admin the bearer token belongs to
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, map[string]string{
		"email": GetAdminEmailFromContext(r.Context()),
	})
}
