package application

import (
	"context"
	"errors"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

// evaluationQueryService implements EvaluationQueryService.
type evaluationQueryService struct {
	repo   EvaluationRepository
	events EventRecorder
}

// NewEvaluationQueryService creates a new EvaluationQueryService.
func NewEvaluationQueryService(repo EvaluationRepository, events EventRecorder) EvaluationQueryService {
	if events == nil {
		events = NopRecorder{}
	}
	return &evaluationQueryService{repo: repo, events: events}
}

func (s *evaluationQueryService) List(ctx context.Context) ([]domain.EvaluationSummary, error) {
	summaries, err := s.repo.List(ctx)
	if err != nil {
		s.events.StoreFailed(ctx, "list", err)
		return nil, err
	}
	if summaries == nil {
		summaries = []domain.EvaluationSummary{}
	}
	domain.SortNewestFirst(summaries)
	return summaries, nil
}

func (s *evaluationQueryService) Detail(ctx context.Context, id string) (*domain.Evaluation, error) {
	evaluation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.events.ReadNotFound(ctx, id)
			return nil, domain.ErrNotFound
		}
		s.events.StoreFailed(ctx, "get", err)
		return nil, err
	}
	return evaluation, nil
}

func (s *evaluationQueryService) Stats(ctx context.Context) (domain.EvaluationStats, error) {
	summaries, err := s.List(ctx)
	if err != nil {
		return domain.EvaluationStats{}, err
	}
	return domain.Summarize(summaries), nil
}
