package application

import (
	"context"
	"time"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

// IDGenerator hands out unique evaluation ids, also under concurrent use.
type IDGenerator interface {
	NewID() string
}

// EventRecorder receives the named facts the service emits.
type EventRecorder interface {
	EvaluationCreated(ctx context.Context, evaluation domain.Evaluation)
	ValidationRejected(ctx context.Context, fields []domain.FieldError)
	ReadNotFound(ctx context.Context, id string)
	StoreFailed(ctx context.Context, op string, err error)
	Unhandled(ctx context.Context, detail string)
}

// SubmitEvaluationCommand carries an unvalidated create request. Fields hold
// values as decoded from JSON, so a wrong type is reported per field.
type SubmitEvaluationCommand struct {
	Name    any
	Email   any
	Answers any
}

// EvaluationCommandService handles the create flow.
type EvaluationCommandService interface {
	Submit(ctx context.Context, cmd SubmitEvaluationCommand) (*domain.Evaluation, error)
}

// EvaluationQueryService handles the read flows.
type EvaluationQueryService interface {
	List(ctx context.Context) ([]domain.EvaluationSummary, error)
	Detail(ctx context.Context, id string) (*domain.Evaluation, error)
	Stats(ctx context.Context) (domain.EvaluationStats, error)
}

// Option customises the services.
type Option func(*options)

type options struct {
	policy domain.ScoringPolicy
	now    func() time.Time
}

// WithScoringPolicy overrides the default scoring policy.
func WithScoringPolicy(policy domain.ScoringPolicy) Option {
	return func(o *options) { o.policy = policy }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) EvaluationCreated(context.Context, domain.Evaluation) {}

func (NopRecorder) ValidationRejected(context.Context, []domain.FieldError) {}

func (NopRecorder) ReadNotFound(context.Context, string) {}

func (NopRecorder) StoreFailed(context.Context, string, error) {}

func (NopRecorder) Unhandled(context.Context, string) {}
