package public

import (
	"time"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

// evaluateRequest keeps field values untyped so the service can report a
// wrong JSON type against the field that carried it.
type evaluateRequest struct {
	Name    any `json:"name"`
	Email   any `json:"email"`
	Answers any `json:"answers"`
}

type evaluateResponse struct {
	ID              string                  `json:"id"`
	Score           int                     `json:"score"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Store   string `json:"store"`
	Time    string `json:"time"`
}

func newHealthResponse(status, message, store string) healthResponse {
	return healthResponse{
		Status:  status,
		Message: message,
		Store:   store,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}
}
