package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

type evaluationCommandService struct {
	repo   EvaluationRepository
	ids    IDGenerator
	events EventRecorder
	opts   options
}

// NewEvaluationCommandService wires the create flow.
func NewEvaluationCommandService(repo EvaluationRepository, ids IDGenerator, events EventRecorder, opts ...Option) EvaluationCommandService {
	if events == nil {
		events = NopRecorder{}
	}
	return &evaluationCommandService{
		repo:   repo,
		ids:    ids,
		events: events,
		opts:   buildOptions(opts),
	}
}

// Submit validates cmd, scores it, and persists the result. Nothing is
// stored unless every field is valid, and nothing is returned unless the
// store accepted the record.
func (s *evaluationCommandService) Submit(ctx context.Context, cmd SubmitEvaluationCommand) (result *domain.Evaluation, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.events.Unhandled(ctx, fmt.Sprint(r))
			result, err = nil, domain.ErrInternal
		}
	}()

	name, email, answers, verr := validateSubmission(cmd)
	if verr != nil {
		s.events.ValidationRejected(ctx, verr.Fields)
		return nil, verr
	}

	score := s.opts.policy.Score(answers)
	recs := domain.Recommend(answers)
	evaluation := domain.NewEvaluation(s.ids.NewID(), name, email, answers, score, recs, s.opts.now())

	if err := s.repo.Save(ctx, evaluation); err != nil {
		s.events.StoreFailed(ctx, "save", err)
		var storeErr *domain.StoreError
		if errors.As(err, &storeErr) {
			return nil, err
		}
		return nil, &domain.StoreError{Op: "save", ID: evaluation.ID, Err: err}
	}

	s.events.EvaluationCreated(ctx, evaluation)
	out := evaluation.Clone()
	return &out, nil
}

func validateSubmission(cmd SubmitEvaluationCommand) (domain.Name, domain.Email, domain.AnswerSet, *domain.ValidationError) {
	var fields []domain.FieldError

	var name domain.Name
	if raw, fe := textField("name", cmd.Name); fe != nil {
		fields = append(fields, *fe)
	} else if n, err := domain.NewName(raw); err != nil {
		fields = append(fields, asFieldError(err, "name"))
	} else {
		name = n
	}

	var email domain.Email
	if raw, fe := textField("email", cmd.Email); fe != nil {
		fields = append(fields, *fe)
	} else if e, err := domain.NewEmail(raw); err != nil {
		fields = append(fields, asFieldError(err, "email"))
	} else {
		email = e
	}

	var answers domain.AnswerSet
	if raw, ok := cmd.Answers.(map[string]any); ok && raw != nil {
		var answerErrs []domain.FieldError
		answers, answerErrs = domain.ParseAnswerSet(raw)
		fields = append(fields, answerErrs...)
	} else {
		fields = append(fields, domain.FieldError{Field: "answers", Message: "answers must be an object"})
	}

	if len(fields) > 0 {
		return "", "", domain.AnswerSet{}, &domain.ValidationError{Fields: fields}
	}
	return name, email, answers, nil
}

// textField accepts a string or a missing value; anything else is a type error.
func textField(field string, value any) (string, *domain.FieldError) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", &domain.FieldError{Field: field, Message: field + " must be a string"}
	}
}

func asFieldError(err error, field string) domain.FieldError {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return *fe
	}
	return domain.FieldError{Field: field, Message: err.Error()}
}
