package admin

import (
	"io"
	"log"

	"github.com/go-chi/chi/v5"
	evalapp "github.com/sngm3741/secucheck/api/internal/evaluation/application"
)

// Handler wires operator HTTP endpoints to application services.
type Handler struct {
	logger  *log.Logger
	queries evalapp.EvaluationQueryService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger  *log.Logger
	Queries evalapp.EvaluationQueryService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Handler{
		logger:  logger,
		queries: cfg.Queries,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/evaluations/stats", h.statsHandler())
}
