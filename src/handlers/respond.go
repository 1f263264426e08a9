package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/fraudsight/src/logger"
	"github.com/username/fraudsight/src/services"
)

func sendJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	logger.L.Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("Failed to encode response", "path", r.URL.Path, "error", err)
	}
}

// handleServiceError maps service failures onto the API's two error shapes:
// unknown user is a 404, anything else is a 500.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrUserNotFound) {
		sendJSONError(w, "User not found", http.StatusNotFound)
		return
	}
	logger.FromContext(r.Context()).Error("Service call failed", "path", r.URL.Path, "error", err)
	sendJSONError(w, "Internal server error", http.StatusInternalServerError)
}
