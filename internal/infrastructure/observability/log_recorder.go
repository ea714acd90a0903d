package observability

import (
	"context"
	"encoding/json"
	"log"
	"strconv"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

// LogRecorder writes one "[SECURITY] EVENT key=value" line per event. Names
// and emails are never logged.
type LogRecorder struct {
	logger *log.Logger
}

// NewLogRecorder writes events to logger.
func NewLogRecorder(logger *log.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) EvaluationCreated(_ context.Context, evaluation domain.Evaluation) {
	r.logger.Printf("[SECURITY] EVALUATION_CREATED id=%s score=%d", evaluation.ID, evaluation.Score)
}

// ValidationRejected logs only the rejected field names, never their values.
func (r *LogRecorder) ValidationRejected(_ context.Context, fields []domain.FieldError) {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		encoded = []byte(strconv.Itoa(len(fields)))
	}
	r.logger.Printf("[SECURITY] VALIDATION_ERROR errors=%s", encoded)
}

func (r *LogRecorder) ReadNotFound(_ context.Context, id string) {
	r.logger.Printf("[SECURITY] READ_NOT_FOUND id=%q", id)
}

func (r *LogRecorder) StoreFailed(_ context.Context, op string, err error) {
	r.logger.Printf("[SECURITY] STORE_ERROR op=%s detail=%q", op, errString(err))
}

func (r *LogRecorder) Unhandled(_ context.Context, detail string) {
	r.logger.Printf("[SECURITY] UNHANDLED_ERROR detail=%q", detail)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
