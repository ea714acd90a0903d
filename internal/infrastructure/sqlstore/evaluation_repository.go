package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

// EvaluationRepository persists evaluations in a single SQL table. created_at
// holds the timestamp in Unix milliseconds.
type EvaluationRepository struct {
	db     *sql.DB
	driver Driver
	logger *log.Logger
}

// NewEvaluationRepository wraps an opened DB. Rows that cannot be read are
// reported on logger and left out of listings.
func NewEvaluationRepository(db *sql.DB, driver Driver, logger *log.Logger) *EvaluationRepository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &EvaluationRepository{db: db, driver: driver, logger: logger}
}

// rebind turns ? placeholders into $n for postgres.
func (r *EvaluationRepository) rebind(query string) string {
	if r.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// Save inserts the evaluation or replaces the row with the same id.
func (r *EvaluationRepository) Save(ctx context.Context, evaluation domain.Evaluation) error {
	recs, err := json.Marshal(evaluation.Recommendations)
	if err != nil {
		return &domain.StoreError{Op: "save", ID: evaluation.ID, Err: err}
	}
	answers, err := json.Marshal(evaluation.Answers)
	if err != nil {
		return &domain.StoreError{Op: "save", ID: evaluation.ID, Err: err}
	}

	_, err = r.db.ExecContext(ctx, r.rebind(`INSERT INTO evaluations (id,created_at,name,email,score,recommendations_json,answers_json)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT (id) DO UPDATE SET created_at=EXCLUDED.created_at, name=EXCLUDED.name, email=EXCLUDED.email,
		score=EXCLUDED.score, recommendations_json=EXCLUDED.recommendations_json, answers_json=EXCLUDED.answers_json`),
		evaluation.ID, evaluation.Timestamp.UnixMilli(), evaluation.Name.String(), evaluation.Email.String(),
		evaluation.Score, string(recs), string(answers))
	if err != nil {
		return &domain.StoreError{Op: "save", ID: evaluation.ID, Err: err}
	}
	return nil
}

// List returns one summary per readable row, newest first.
func (r *EvaluationRepository) List(ctx context.Context) ([]domain.EvaluationSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id,created_at,name,score FROM evaluations ORDER BY created_at DESC`)
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	summaries := make([]domain.EvaluationSummary, 0)
	for rows.Next() {
		var (
			s         domain.EvaluationSummary
			name      string
			createdAt int64
		)
		if err := rows.Scan(&s.ID, &createdAt, &name, &s.Score); err != nil {
			r.logger.Printf("skipping unreadable evaluation row: %v", err)
			continue
		}
		s.Name = domain.Name(name)
		s.Timestamp = time.UnixMilli(createdAt).UTC()
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}
	return summaries, nil
}

// FindByID loads one evaluation. sql.ErrNoRows maps to domain.ErrNotFound.
func (r *EvaluationRepository) FindByID(ctx context.Context, id string) (*domain.Evaluation, error) {
	row := r.db.QueryRowContext(ctx, r.rebind(`SELECT id,created_at,name,email,score,recommendations_json,answers_json FROM evaluations WHERE id=?`), id)

	var (
		e           domain.Evaluation
		createdAt   int64
		name, email string
		recsJSON    string
		answersJSON string
	)
	if err := row.Scan(&e.ID, &createdAt, &name, &email, &e.Score, &recsJSON, &answersJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StoreError{Op: "get", ID: id, Err: err}
	}
	if err := json.Unmarshal([]byte(recsJSON), &e.Recommendations); err != nil {
		return nil, &domain.StoreError{Op: "get", ID: id, Err: err}
	}
	if err := json.Unmarshal([]byte(answersJSON), &e.Answers); err != nil {
		return nil, &domain.StoreError{Op: "get", ID: id, Err: err}
	}
	if e.Recommendations == nil {
		e.Recommendations = []domain.Recommendation{}
	}
	e.Name = domain.Name(name)
	e.Email = domain.Email(email)
	e.Timestamp = time.UnixMilli(createdAt).UTC()
	return &e, nil
}

// Ping checks the connection.
func (r *EvaluationRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
