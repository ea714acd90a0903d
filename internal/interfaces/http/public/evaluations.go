package public

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	evalapp "github.com/sngm3741/secucheck/api/internal/evaluation/application"
	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
	"github.com/sngm3741/secucheck/api/internal/interfaces/http/common"
)

func (h *Handler) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.store == nil {
			common.WriteJSON(h.logger, w, http.StatusOK, newHealthResponse("ok", "Server is running", "unknown"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			h.logger.Printf("health check: store ping failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusServiceUnavailable, newHealthResponse("degraded", "Store is unavailable", "unavailable"))
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, newHealthResponse("ok", "Server is running", "ok"))
	}
}

func (h *Handler) questionListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteData(h.logger, w, http.StatusOK, domain.Questions())
	}
}

// evaluateHandler scores a submission and persists it.
func (h *Handler) evaluateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req evaluateRequest
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				common.WriteFailure(h.logger, w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			common.WriteFailure(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		evaluation, err := h.commands.Submit(ctx, evalapp.SubmitEvaluationCommand{
			Name:    req.Name,
			Email:   req.Email,
			Answers: req.Answers,
		})
		if err != nil {
			h.writeError(w, err, "failed to process the evaluation")
			return
		}

		common.WriteData(h.logger, w, http.StatusOK, evaluateResponse{
			ID:              evaluation.ID,
			Score:           evaluation.Score,
			Recommendations: evaluation.Recommendations,
		})
	}
}

func (h *Handler) evaluationListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		summaries, err := h.queries.List(ctx)
		if err != nil {
			h.writeError(w, err, "failed to load evaluations")
			return
		}
		common.WriteData(h.logger, w, http.StatusOK, summaries)
	}
}

func (h *Handler) evaluationDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		evaluation, err := h.queries.Detail(ctx, id)
		if err != nil {
			h.writeError(w, err, "failed to load the evaluation")
			return
		}
		common.WriteData(h.logger, w, http.StatusOK, evaluation)
	}
}

// writeError maps service errors onto status codes. Store and internal
// failures only ever expose fallback.
func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	if verr, ok := domain.IsValidationError(err); ok {
		common.WriteValidation(h.logger, w, verr.Fields)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		common.WriteFailure(h.logger, w, http.StatusNotFound, "evaluation not found")
		return
	}
	h.logger.Printf("request failed: %v", err)
	common.WriteFailure(h.logger, w, http.StatusInternalServerError, fallback)
}
