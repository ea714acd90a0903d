package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createdEvaluation() domain.Evaluation {
	answers := domain.AnswerSet{
		Password: domain.AnswerNo, TwoFactor: domain.AnswerYes, Updates: domain.AnswerAlways,
		PublicWifi: domain.AnswerNo, Backup: domain.AnswerYes,
	}
	return domain.NewEvaluation("123", "Ana", "ana@example.com", answers, domain.Score(answers), domain.Recommend(answers), time.Now())
}

func TestMessenger_EvaluationCreated(t *testing.T) {
	var (
		mu       sync.Mutex
		payloads []map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		payloads = append(payloads, body)
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewMessenger(Config{Endpoint: srv.URL + "/", Destination: "discord"})
	m.EvaluationCreated(context.Background(), createdEvaluation())
	require.NoError(t, m.Close(context.Background()))

	require.Len(t, payloads, 1)
	assert.Equal(t, "123", payloads[0]["userId"])
	assert.Equal(t, "discord", payloads[0]["destination"])
	assert.Contains(t, payloads[0]["text"], "score: 60 / 100 (fair)")
	assert.Contains(t, payloads[0]["text"], "Weak Passwords")
	assert.NotContains(t, payloads[0]["text"], "ana@example.com")
}

func TestMessenger_RetriesThenGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := NewMessenger(Config{Endpoint: srv.URL, Attempts: 3, RetryDelay: time.Millisecond})
	err := m.sendWithRetry(context.Background(), "1", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=503")
	assert.Equal(t, int32(3), calls.Load())
}

func TestMessenger_DisabledWithoutEndpoint(t *testing.T) {
	m := NewMessenger(Config{})
	m.EvaluationCreated(context.Background(), createdEvaluation())
	assert.NoError(t, m.Close(context.Background()))
}
