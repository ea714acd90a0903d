package sqlstore

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func openSQLite(t *testing.T) *EvaluationRepository {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)"
	db, err := Open(context.Background(), DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEvaluationRepository(db, DriverSQLite, nil)
}

func newEvaluation(id string, at time.Time, answers domain.AnswerSet) domain.Evaluation {
	return domain.NewEvaluation(id, "Ana", "ana@example.com", answers, domain.Score(answers), domain.Recommend(answers), at)
}

var weakAnswers = domain.AnswerSet{
	Password: domain.AnswerNo, TwoFactor: domain.AnswerNo, Updates: domain.AnswerNever,
	PublicWifi: domain.AnswerYes, Backup: domain.AnswerNo,
}

func TestEvaluationRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := openSQLite(t)
	base := time.Date(2026, 7, 1, 12, 0, 0, 5_000_000, time.UTC)

	older := newEvaluation("s1", base, weakAnswers)
	newer := newEvaluation("s2", base.Add(time.Second), domain.AnswerSet{
		Password: domain.AnswerYes, TwoFactor: domain.AnswerYes, Updates: domain.AnswerAlways,
		PublicWifi: domain.AnswerNo, Backup: domain.AnswerYes,
	})
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	got, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, older, *got)

	got, err = repo.FindByID(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, newer, *got)
	assert.Empty(t, got.Recommendations)

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.EvaluationSummary{newer.Summary(), older.Summary()}, summaries)

	_, err = repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Ping(ctx))
}

func TestEvaluationRepository_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	repo := openSQLite(t)

	var eg errgroup.Group
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("c%d", i)
		eg.Go(func() error {
			return repo.Save(ctx, newEvaluation(id, time.Now(), weakAnswers))
		})
	}
	require.NoError(t, eg.Wait())

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, summaries, 20)
}

func TestEvaluationRepository_ListSkipsUnreadableRows(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "skip.db") + "?_pragma=busy_timeout(5000)"
	db, err := Open(ctx, DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var logs bytes.Buffer
	repo := NewEvaluationRepository(db, DriverSQLite, log.New(&logs, "", 0))

	good := newEvaluation("1", time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC), weakAnswers)
	require.NoError(t, repo.Save(ctx, good))
	_, err = db.ExecContext(ctx, `INSERT INTO evaluations (id,created_at,name,email,score,recommendations_json,answers_json)
		VALUES ('2',5,'Bad','b@x.com','not-a-number','[]','{}')`)
	require.NoError(t, err)

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.EvaluationSummary{good.Summary()}, summaries)
	assert.Contains(t, logs.String(), "skipping unreadable evaluation row")
}

func TestRebind(t *testing.T) {
	testCases := []struct {
		name   string
		driver Driver
		want   string
	}{
		{name: "sqlite keeps question marks", driver: DriverSQLite, want: "SELECT 1 WHERE a=? AND b=?"},
		{name: "postgres numbers placeholders", driver: DriverPostgres, want: "SELECT 1 WHERE a=$1 AND b=$2"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewEvaluationRepository(nil, tc.driver, nil)
			assert.Equal(t, tc.want, repo.rebind("SELECT 1 WHERE a=? AND b=?"))
		})
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Driver("oracle"), "")
	assert.EqualError(t, err, "unsupported driver: oracle")
}
