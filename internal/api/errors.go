package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vk/metrograph/internal/metro"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps engine failures to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, metro.ErrStationNotFound), errors.Is(err, metro.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, metro.ErrDuplicateStation), errors.Is(err, metro.ErrDuplicateLine):
		return http.StatusConflict
	case errors.Is(err, metro.ErrNoPath), errors.Is(err, metro.ErrNotAdjacent):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
