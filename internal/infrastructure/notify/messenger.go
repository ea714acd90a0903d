package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sngm3741/secucheck/api/internal/evaluation/application"
	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

// Config wires a messenger-gateway client.
type Config struct {
	Endpoint    string
	Destination string
	Timeout     time.Duration
	Attempts    int
	RetryDelay  time.Duration
	Logger      *log.Logger
	HTTPClient  *http.Client
}

// Messenger posts a short message to the messenger gateway for every new
// evaluation. Delivery runs in the background and never blocks the caller.
type Messenger struct {
	application.NopRecorder

	endpoint    string
	destination string
	attempts    int
	retryDelay  time.Duration
	logger      *log.Logger
	httpClient  *http.Client
	wg          sync.WaitGroup
}

// NewMessenger fills in defaults: 3s timeout, 3 attempts, discarded logs.
func NewMessenger(cfg Config) *Messenger {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 3
	}
	return &Messenger{
		endpoint:    strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
		destination: strings.TrimSpace(cfg.Destination),
		attempts:    attempts,
		retryDelay:  cfg.RetryDelay,
		logger:      logger,
		httpClient:  client,
	}
}

// EvaluationCreated schedules a notification for evaluation.
func (m *Messenger) EvaluationCreated(_ context.Context, evaluation domain.Evaluation) {
	if m.endpoint == "" {
		return
	}
	identifier := evaluation.ID
	text := buildCreatedMessage(evaluation)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.sendWithRetry(context.Background(), identifier, text); err != nil {
			m.logger.Printf("messenger notification failed id=%s: %v", identifier, err)
		}
	}()
}

// Close waits for in-flight notifications or until ctx is done.
func (m *Messenger) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func buildCreatedMessage(evaluation domain.Evaluation) string {
	var builder strings.Builder
	builder.WriteString("New security self-assessment received.\n")
	builder.WriteString(fmt.Sprintf("- id: %s\n", evaluation.ID))
	builder.WriteString(fmt.Sprintf("- score: %d / 100 (%s)\n", evaluation.Score, domain.LevelFor(evaluation.Score)))
	builder.WriteString(fmt.Sprintf("- recommendations: %d\n", len(evaluation.Recommendations)))
	for _, rec := range evaluation.Recommendations {
		if rec.Priority == domain.PriorityHigh {
			builder.WriteString(fmt.Sprintf("  * %s\n", rec.Title))
		}
	}
	return builder.String()
}

func (m *Messenger) sendWithRetry(ctx context.Context, userID, text string) error {
	var lastErr error
	for i := 0; i < m.attempts; i++ {
		if err := m.send(ctx, userID, text); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if m.retryDelay > 0 && i < m.attempts-1 {
			time.Sleep(m.retryDelay)
		}
	}
	return lastErr
}

func (m *Messenger) send(ctx context.Context, userID, bodyText string) error {
	trimmedUserID := strings.TrimSpace(userID)
	if trimmedUserID == "" {
		return errors.New("userID is required")
	}

	payload := map[string]any{
		"userId": trimmedUserID,
		"text":   bodyText,
	}
	if m.destination != "" {
		payload["destination"] = m.destination
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal messenger payload: %w", err)
	}

	timeout := m.httpClient.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodPost, m.endpoint+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build messenger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("messenger request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("messenger responded status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}
