package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

const (
	filePrefix = "evaluation_"
	fileSuffix = ".json"
)

var validID = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// EvaluationRepository stores one JSON document per evaluation in a flat
// directory. Records are published with a rename so readers never observe a
// partially written file.
type EvaluationRepository struct {
	dir    string
	logger *log.Logger
	schema *jsonschema.Schema
}

// NewEvaluationRepository creates dir if needed and returns a repository rooted there.
func NewEvaluationRepository(dir string, logger *log.Logger) (*EvaluationRepository, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &domain.StoreError{Op: "init", Err: err}
	}
	schema, err := compileRecordSchema()
	if err != nil {
		return nil, &domain.StoreError{Op: "init", Err: err}
	}
	return &EvaluationRepository{dir: dir, logger: logger, schema: schema}, nil
}

func (r *EvaluationRepository) pathFor(id string) string {
	return filepath.Join(r.dir, filePrefix+id+fileSuffix)
}

// Save publishes the record under its id, replacing any previous version.
func (r *EvaluationRepository) Save(ctx context.Context, evaluation domain.Evaluation) error {
	if err := ctx.Err(); err != nil {
		return &domain.StoreError{Op: "save", ID: evaluation.ID, Err: err}
	}
	if !validID.MatchString(evaluation.ID) {
		return &domain.StoreError{Op: "save", ID: evaluation.ID, Err: errors.New("invalid id")}
	}

	body, err := json.MarshalIndent(evaluation, "", "  ")
	if err != nil {
		return &domain.StoreError{Op: "save", ID: evaluation.ID, Err: err}
	}

	if err := r.writeAtomic(r.pathFor(evaluation.ID), body); err != nil {
		return &domain.StoreError{Op: "save", ID: evaluation.ID, Err: err}
	}
	return nil
}

func (r *EvaluationRepository) writeAtomic(path string, body []byte) error {
	tmp, err := os.CreateTemp(r.dir, ".tmp-"+filePrefix+"*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

// List reads every record in the directory. Unreadable or malformed files are
// logged and skipped.
func (r *EvaluationRepository) List(ctx context.Context) ([]domain.EvaluationSummary, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}

	summaries := make([]domain.EvaluationSummary, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, &domain.StoreError{Op: "list", Err: err}
		}
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		evaluation, err := r.readRecord(filepath.Join(r.dir, name))
		if err != nil {
			r.logger.Printf("skipping evaluation record %s: %v", name, err)
			continue
		}
		summaries = append(summaries, evaluation.Summary())
	}
	return summaries, nil
}

// FindByID returns domain.ErrNotFound for unknown or malformed ids.
func (r *EvaluationRepository) FindByID(ctx context.Context, id string) (*domain.Evaluation, error) {
	if !validID.MatchString(id) {
		return nil, domain.ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, &domain.StoreError{Op: "get", ID: id, Err: err}
	}

	evaluation, err := r.readRecord(r.pathFor(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StoreError{Op: "get", ID: id, Err: err}
	}
	return evaluation, nil
}

// Ping reports whether the data directory is usable.
func (r *EvaluationRepository) Ping(context.Context) error {
	info, err := os.Stat(r.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", r.dir)
	}
	return nil
}

func (r *EvaluationRepository) readRecord(path string) (*domain.Evaluation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := r.schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var evaluation domain.Evaluation
	if err := json.Unmarshal(raw, &evaluation); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	evaluation.Timestamp = evaluation.Timestamp.UTC()
	return &evaluation, nil
}
