package application

import (
	"context"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

//go:generate mockgen -source=./repository.go -destination=../mocks/repository.mock.go -package=evalmocks

// EvaluationRepository persists evaluations. Implementations return
// domain.ErrNotFound for unknown ids and *domain.StoreError for medium
// failures. List may return summaries in any order.
type EvaluationRepository interface {
	Save(ctx context.Context, evaluation domain.Evaluation) error
	List(ctx context.Context) ([]domain.EvaluationSummary, error)
	FindByID(ctx context.Context, id string) (*domain.Evaluation, error)
}

// Pinger is implemented by repositories that can report medium health.
type Pinger interface {
	Ping(ctx context.Context) error
}
