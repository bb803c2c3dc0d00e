package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"stock-backend/internal/apperrors"
)

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[HTTP] Failed to encode response: %v", err)
	}
}

// ErrorMessage writes a JSON error body with an explicit status code.
func ErrorMessage(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Error maps a service error onto an HTTP status. Unclassified errors are
// logged and reported as a generic 500 so internals never leak to clients.
func Error(w http.ResponseWriter, err error) {
	var (
		validation *apperrors.ValidationError
		notFound   *apperrors.NotFoundError
		transition *apperrors.InvalidTransitionError
	)
	switch {
	case errors.As(err, &validation):
		ErrorMessage(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &notFound):
		ErrorMessage(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &transition):
		ErrorMessage(w, http.StatusConflict, transition.Error())
	default:
		log.Printf("[HTTP] Internal error: %v", err)
		ErrorMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
