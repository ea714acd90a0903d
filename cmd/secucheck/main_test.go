package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	evalapp "github.com/sngm3741/secucheck/api/internal/evaluation/application"
	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/idgen"
	"github.com/sngm3741/secucheck/api/internal/infrastructure/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLI_EvaluateHistoryShow(t *testing.T) {
	t.Setenv("SCORING_PUBLIC_WIFI_INVERTED", "false")
	t.Setenv("ID_STRATEGY", "uuid")
	dir := t.TempDir()
	common := []string{"--store", "file", "--data-dir", dir}

	_, stderr, err := execute(t, append([]string{"evaluate", "--name", "Ana", "--email", "ana@example.com",
		"--password", "si", "--two-factor", "si", "--updates", "siempre", "--public-wifi", "no"}, common...)...)
	require.Error(t, err)
	assert.Contains(t, stderr, "answers.backup")

	stdout, _, err := execute(t, append([]string{"evaluate", "--name", "Ana", "--email", "ana@example.com",
		"--password", "si", "--two-factor", "si", "--updates", "siempre", "--public-wifi", "no", "--backup", "no"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "score: 60/100 (fair)")
	assert.Contains(t, stdout, "Backups")

	stdout, _, err = execute(t, append([]string{"history", "--json"}, common...)...)
	require.NoError(t, err)
	var summaries []domain.EvaluationSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, domain.Name("Ana"), summaries[0].Name)

	stdout, _, err = execute(t, append([]string{"show", summaries[0].ID}, common...)...)
	require.NoError(t, err)
	var evaluation domain.Evaluation
	require.NoError(t, json.Unmarshal([]byte(stdout), &evaluation))
	assert.Equal(t, domain.Email("ana@example.com"), evaluation.Email)
	assert.Equal(t, domain.AnswerNo, evaluation.Answers.Backup)

	_, _, err = execute(t, append([]string{"show", "../../etc/passwd"}, common...)...)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeedEvaluations(t *testing.T) {
	repo := memory.NewEvaluationRepository()
	commands := evalapp.NewEvaluationCommandService(repo, idgen.UUID{}, nil)

	created, err := seedEvaluations(context.Background(), commands, rand.New(rand.NewSource(7)), 25)
	require.NoError(t, err)
	assert.Equal(t, 25, created)

	summaries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 25)
	for _, s := range summaries {
		assert.GreaterOrEqual(t, s.Score, 0)
		assert.LessOrEqual(t, s.Score, 100)
		assert.True(t, strings.Contains(string(s.Name), " "))
	}
}

func TestCLIIDStrategy(t *testing.T) {
	testCases := []struct {
		name string
		flag string
		env  string
		want string
	}{
		{name: "uuid when nothing is set", want: "uuid"},
		{name: "environment", env: "Snowflake", want: "snowflake"},
		{name: "flag wins", flag: "uuid", env: "snowflake", want: "uuid"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cliIDStrategy(tc.flag, tc.env))
		})
	}
}

func TestCLI_SeedDefaultsToUUIDs(t *testing.T) {
	t.Setenv("ID_STRATEGY", "")
	dir := t.TempDir()
	common := []string{"--store", "file", "--data-dir", dir, "--id-strategy", ""}

	_, _, err := execute(t, append([]string{"seed", "--count", "3", "--seed", "11"}, common...)...)
	require.NoError(t, err)

	stdout, _, err := execute(t, append([]string{"history", "--json"}, common...)...)
	require.NoError(t, err)
	var summaries []domain.EvaluationSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summaries))
	require.Len(t, summaries, 3)
	for _, s := range summaries {
		_, err := uuid.Parse(s.ID)
		assert.NoError(t, err, s.ID)
	}
}
