package handlers

import (
	"net/http"
	"strconv"

	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/service"
	"weddingrsvp/internal/validation"
)

// FamilyHandler handles the admin guest list endpoints
type FamilyHandler struct {
	familyService *service.FamilyService
	maxBodyBytes  int64
	log           *logger.Logger
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(familyService *service.FamilyService, maxBodyBytes int64, log *logger.Logger) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
		maxBodyBytes:  maxBodyBytes,
		log:           log,
	}
}

// ListFamilies returns every family, member and confirmation
func (h *FamilyHandler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	listing, err := h.familyService.ListAll(r.Context())
	if err != nil {
		respondWithServiceError(w, h.log, err, ErrLoadFamilies)
		return
	}
	writeJSON(w, h.log, http.StatusOK, listing)
}

// CreateFamily adds a family and returns it with its access code and members
func (h *FamilyHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req validation.FamilyRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, validation.MsgFamilyRequired, "", nil)
		return
	}

	result, err := h.familyService.CreateFamily(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, h.log, err, ErrSaveFamily)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

// UpdateFamily replaces a family's details and member list
func (h *FamilyHandler) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	familyID, ok := h.familyID(w, r)
	if !ok {
		return
	}

	var req validation.FamilyRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, validation.MsgFamilyRequired, "", nil)
		return
	}

	result, err := h.familyService.UpdateFamily(r.Context(), familyID, req)
	if err != nil {
		respondWithServiceError(w, h.log, err, ErrUpdateFamily)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

// DeleteFamily removes a family and its members
func (h *FamilyHandler) DeleteFamily(w http.ResponseWriter, r *http.Request) {
	familyID, ok := h.familyID(w, r)
	if !ok {
		return
	}

	if err := h.familyService.DeleteFamily(r.Context(), familyID); err != nil {
		respondWithServiceError(w, h.log, err, ErrDeleteFamily)
		return
	}
	writeJSON(w, h.log, http.StatusOK, okResponse{OK: true})
}

// Summary returns attendance totals
func (h *FamilyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.familyService.Summary(r.Context())
	if err != nil {
		respondWithServiceError(w, h.log, err, ErrLoadSummary)
		return
	}
	writeJSON(w, h.log, http.StatusOK, summary)
}

// familyID parses the {id} path value, writing a 400 when it is not a
// positive integer
func (h *FamilyHandler) familyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		id = 0
	}
	if err := validation.ValidateFamilyID(id); err != nil {
		respondWithServiceError(w, h.log, err, ErrInternalServerError)
		return 0, false
	}
	return id, true
}
