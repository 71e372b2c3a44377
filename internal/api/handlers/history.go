package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/wonny/readytrade/internal/history"
	"github.com/wonny/readytrade/pkg/logger"
)

// HistoryLister lists persisted evaluations
type HistoryLister interface {
	ListRecent(ctx context.Context, limit int) ([]history.Evaluation, error)
}

// HistoryHandler serves evaluation history
type HistoryHandler struct {
	repo   HistoryLister
	logger *logger.Logger
}

// NewHistoryHandler creates a new history handler. A nil repo reports
// history as disabled.
func NewHistoryHandler(repo HistoryLister, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{
		repo:   repo,
		logger: log,
	}
}

// ListEvaluations returns recent evaluations, newest first
// GET /api/evaluations?limit=20
func (h *HistoryHandler) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"enabled":     false,
			"evaluations": []history.Evaluation{},
		})
		return
	}

	limit := history.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			limit = l
		}
	}

	evaluations, err := h.repo.ListRecent(r.Context(), history.ClampLimit(limit))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list evaluations")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve evaluations")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"enabled":     true,
		"evaluations": evaluations,
	})
}
