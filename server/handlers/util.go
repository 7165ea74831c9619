package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// DetailResponse is returned when a request is rejected.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is returned on successful signup/unregister requests.
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// requireEmail extracts the email query parameter. A present-but-empty
// value is valid; only a missing parameter is rejected.
func requireEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := r.URL.Query()
	if !q.Has("email") {
		writeJSON(w, http.StatusUnprocessableEntity, DetailResponse{
			Detail: "email query parameter is required",
		})
		return "", false
	}
	return q.Get("email"), true
}
