package admin

import (
	"context"
	"net/http"

	"github.com/sngm3741/secucheck/api/internal/interfaces/http/common"
)

func (h *Handler) statsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		stats, err := h.queries.Stats(ctx)
		if err != nil {
			h.logger.Printf("evaluation stats failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to compute statistics"})
			return
		}

		operator, _ := common.OperatorFromContext(r.Context())
		h.logger.Printf("evaluation stats requested by operator=%q count=%d", operator.ID, stats.Count)
		common.WriteJSON(h.logger, w, http.StatusOK, stats)
	}
}
