package public

import (
	"io"
	"log"

	"github.com/go-chi/chi/v5"
	evalapp "github.com/sngm3741/secucheck/api/internal/evaluation/application"
	"github.com/sngm3741/secucheck/api/internal/interfaces/http/common"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger   *log.Logger
	commands evalapp.EvaluationCommandService
	queries  evalapp.EvaluationQueryService
	store    evalapp.Pinger
	maxBody  int64
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger   *log.Logger
	Commands evalapp.EvaluationCommandService
	Queries  evalapp.EvaluationQueryService
	// Store is optional; without it /health only reports the process.
	Store   evalapp.Pinger
	MaxBody int64
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	maxBody := cfg.MaxBody
	if maxBody <= 0 {
		maxBody = common.MaxEvaluationRequestBody
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Handler{
		logger:   logger,
		commands: cfg.Commands,
		queries:  cfg.Queries,
		store:    cfg.Store,
		maxBody:  maxBody,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.healthHandler())
	r.Get("/questions", h.questionListHandler())
	r.Post("/evaluate", h.evaluateHandler())
	r.Get("/evaluations", h.evaluationListHandler())
	r.Get("/evaluations/{id}", h.evaluationDetailHandler())
}
