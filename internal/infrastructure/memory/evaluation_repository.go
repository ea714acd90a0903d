package memory

import (
	"context"
	"sync"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

// EvaluationRepository keeps evaluations in process memory. It backs tests
// and STORE_DRIVER=memory.
type EvaluationRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]domain.Evaluation
}

// NewEvaluationRepository returns an empty repository.
func NewEvaluationRepository() *EvaluationRepository {
	return &EvaluationRepository{items: make(map[string]domain.Evaluation)}
}

// Save stores a copy of evaluation.
func (r *EvaluationRepository) Save(_ context.Context, evaluation domain.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[evaluation.ID]; !exists {
		r.order = append(r.order, evaluation.ID)
	}
	r.items[evaluation.ID] = evaluation.Clone()
	return nil
}

// List returns summaries in insertion order; callers sort.
func (r *EvaluationRepository) List(_ context.Context) ([]domain.EvaluationSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	summaries := make([]domain.EvaluationSummary, 0, len(r.order))
	for _, id := range r.order {
		summaries = append(summaries, r.items[id].Summary())
	}
	return summaries, nil
}

// FindByID returns a copy so callers cannot mutate stored state.
func (r *EvaluationRepository) FindByID(_ context.Context, id string) (*domain.Evaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	evaluation, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := evaluation.Clone()
	return &clone, nil
}

// Ping always succeeds.
func (r *EvaluationRepository) Ping(context.Context) error {
	return nil
}
