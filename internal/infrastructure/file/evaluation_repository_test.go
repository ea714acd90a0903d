package file

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newEvaluation(id string, at time.Time) domain.Evaluation {
	answers := domain.AnswerSet{
		Password:   domain.AnswerYes,
		TwoFactor:  domain.AnswerYes,
		Updates:    domain.AnswerAlways,
		PublicWifi: domain.AnswerNo,
		Backup:     domain.AnswerNo,
	}
	return domain.NewEvaluation(id, "Ana", "ana@example.com", answers, domain.Score(answers), domain.Recommend(answers), at)
}

func newRepo(t *testing.T) (*EvaluationRepository, string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	var logs bytes.Buffer
	repo, err := NewEvaluationRepository(dir, log.New(&logs, "", 0))
	require.NoError(t, err)
	return repo, dir, &logs
}

func TestEvaluationRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, dir, _ := newRepo(t)

	ev := newEvaluation("1730000000000", time.Date(2026, 6, 1, 10, 0, 0, 250_000_000, time.UTC))
	require.NoError(t, repo.Save(ctx, ev))
	assert.FileExists(t, filepath.Join(dir, "evaluation_1730000000000.json"))

	got, err := repo.FindByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev, *got)

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.EvaluationSummary{ev.Summary()}, summaries)

	require.NoError(t, repo.Ping(ctx))
}

func TestEvaluationRepository_FindByIDNotFound(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newRepo(t)

	testCases := []struct {
		name string
		id   string
	}{
		{name: "unknown id", id: "42"},
		{name: "path traversal", id: "../secret"},
		{name: "empty", id: ""},
		{name: "too long", id: fmt.Sprintf("%065d", 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.FindByID(ctx, tc.id)
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestEvaluationRepository_ListSkipsCorruptRecords(t *testing.T) {
	ctx := context.Background()
	repo, dir, logs := newRepo(t)

	good := newEvaluation("good-1", time.Now())
	require.NoError(t, repo.Save(ctx, good))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "evaluation_broken.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "evaluation_bad-score.json"),
		[]byte(`{"id":"bad-score","timestamp":"2026-01-01T00:00:00Z","name":"x","email":"a@b.co","score":140,"recommendations":[],"answers":{"password":"si","twoFactor":"si","updates":"siempre","publicWifi":"no","backup":"si"}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-evaluation_123"), []byte("partial"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "good-1", summaries[0].ID)
	assert.Contains(t, logs.String(), "evaluation_broken.json")
	assert.Contains(t, logs.String(), "evaluation_bad-score.json")

	_, err = repo.FindByID(ctx, "broken")
	var storeErr *domain.StoreError
	assert.ErrorAs(t, err, &storeErr)
}

func TestEvaluationRepository_SaveRejectsUnsafeIDs(t *testing.T) {
	repo, _, _ := newRepo(t)
	err := repo.Save(context.Background(), newEvaluation("../../etc/passwd", time.Now()))
	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "save", storeErr.Op)
}

func TestEvaluationRepository_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	repo, dir, _ := newRepo(t)

	var eg errgroup.Group
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("c-%d", i)
		eg.Go(func() error {
			return repo.Save(ctx, newEvaluation(id, time.Now()))
		})
	}
	require.NoError(t, eg.Wait())

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, summaries, 40)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
