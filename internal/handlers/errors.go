package handlers

import (
	"errors"
	"net/http"

	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/service"
	"weddingrsvp/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, log *logger.Logger, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Error(logMsg, "status", status, "error", err)
	}

	writeJSON(w, log, status, errorResponse{Error: userMsg})
}

// respondWithServiceError maps a service error to its status and message.
// Unrecognized errors are logged and reported as fallbackMsg with a 500.
func respondWithServiceError(w http.ResponseWriter, log *logger.Logger, err error, fallbackMsg string) {
	var verr validation.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithError(w, log, http.StatusBadRequest, verr.Message, "", nil)
	case errors.Is(err, service.ErrInvalidAccessCode):
		respondWithError(w, log, http.StatusBadRequest, ErrInvalidCode, "", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, log, http.StatusUnauthorized, ErrInvalidLogin, "", nil)
	case errors.Is(err, service.ErrUnauthorized):
		respondWithError(w, log, http.StatusUnauthorized, ErrUnauthorized, "", nil)
	case errors.Is(err, service.ErrAccessCodeNotFound):
		respondWithError(w, log, http.StatusNotFound, ErrCodeNotFound, "", nil)
	case errors.Is(err, service.ErrFamilyNotFound):
		respondWithError(w, log, http.StatusNotFound, ErrFamilyNotFound, "", nil)
	case errors.Is(err, service.ErrAccessCodeExhausted):
		respondWithError(w, log, http.StatusInternalServerError, ErrCodeExhausted, "Access code retries exhausted", err)
	default:
		respondWithError(w, log, http.StatusInternalServerError, fallbackMsg, "", err)
	}
}
