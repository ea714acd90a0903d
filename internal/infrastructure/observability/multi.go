package observability

import (
	"context"

	"github.com/sngm3741/secucheck/api/internal/evaluation/application"
	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

// Fanout forwards each event to every recorder in order.
type Fanout []application.EventRecorder

// NewFanout drops nil recorders.
func NewFanout(recorders ...application.EventRecorder) Fanout {
	out := make(Fanout, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// EvaluationCreated forwards to every recorder in order.
func (f Fanout) EvaluationCreated(ctx context.Context, evaluation domain.Evaluation) {
	for _, r := range f {
		r.EvaluationCreated(ctx, evaluation)
	}
}

func (f Fanout) ValidationRejected(ctx context.Context, fields []domain.FieldError) {
	for _, r := range f {
		r.ValidationRejected(ctx, fields)
	}
}

func (f Fanout) ReadNotFound(ctx context.Context, id string) {
	for _, r := range f {
		r.ReadNotFound(ctx, id)
	}
}

func (f Fanout) StoreFailed(ctx context.Context, op string, err error) {
	for _, r := range f {
		r.StoreFailed(ctx, op, err)
	}
}

func (f Fanout) Unhandled(ctx context.Context, detail string) {
	for _, r := range f {
		r.Unhandled(ctx, detail)
	}
}
