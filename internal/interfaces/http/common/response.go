package common

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

// Envelope is the body shape shared by every /api endpoint.
type Envelope struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("failed to encode JSON response: %v", err)
	}
}

// WriteData writes a success envelope around data.
func WriteData(logger *log.Logger, w http.ResponseWriter, status int, data any) {
	WriteJSON(logger, w, status, Envelope{Success: true, Data: data})
}

// WriteFailure writes a failure envelope carrying a human readable message.
func WriteFailure(logger *log.Logger, w http.ResponseWriter, status int, message string) {
	WriteJSON(logger, w, status, Envelope{Success: false, Message: message})
}

// WriteValidation writes a 400 listing every rejected field.
func WriteValidation(logger *log.Logger, w http.ResponseWriter, fields []domain.FieldError) {
	WriteJSON(logger, w, http.StatusBadRequest, Envelope{Success: false, Errors: fields})
}
