package handlers

import (
	"encoding/json"
	"net/http"

	"weddingrsvp/internal/logger"
)

type okResponse struct {
	OK bool `json:"ok"`
}

func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// decodeJSON reads a JSON body of at most maxBytes into dst.
// Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
