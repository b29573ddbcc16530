package handlers

import (
	"encoding/json"
	"net/http"

	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/models"
	"weddingrsvp/internal/service"
	"weddingrsvp/internal/validation"
)

// GuestHandler handles the public invitation endpoints
type GuestHandler struct {
	accessService       *service.AccessService
	confirmationService *service.ConfirmationService
	maxBodyBytes        int64
	log                 *logger.Logger
}

// NewGuestHandler creates a new guest handler
func NewGuestHandler(accessService *service.AccessService, confirmationService *service.ConfirmationService, maxBodyBytes int64, log *logger.Logger) *GuestHandler {
	return &GuestHandler{
		accessService:       accessService,
		confirmationService: confirmationService,
		maxBodyBytes:        maxBodyBytes,
		log:                 log,
	}
}

// Access returns the family and members behind an access code
func (h *GuestHandler) Access(w http.ResponseWriter, r *http.Request) {
	result, err := h.accessService.LookupByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		respondWithServiceError(w, h.log, err, ErrLookupCode)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

type confirmationsRequest struct {
	Confirmations json.RawMessage `json:"confirmations"`
}

// Confirm records the RSVP responses of one or more members
func (h *GuestHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmationsRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, validation.MsgInvalidConfirmations, "", nil)
		return
	}

	var items []models.ConfirmationInput
	if len(req.Confirmations) == 0 || json.Unmarshal(req.Confirmations, &items) != nil {
		respondWithError(w, h.log, http.StatusBadRequest, validation.MsgInvalidConfirmations, "", nil)
		return
	}

	if _, err := h.confirmationService.Record(r.Context(), items); err != nil {
		respondWithServiceError(w, h.log, err, ErrSaveConfirmations)
		return
	}
	writeJSON(w, h.log, http.StatusOK, okResponse{OK: true})
}
