package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/readytrade/internal/catalog"
	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/pkg/logger"
)

// ADPHandler serves average draft position boards
type ADPHandler struct {
	boards *catalog.ADPBoards
	logger *logger.Logger
}

// NewADPHandler creates a new ADP handler
func NewADPHandler(boards *catalog.ADPBoards, log *logger.Logger) *ADPHandler {
	return &ADPHandler{
		boards: boards,
		logger: log,
	}
}

// GetADP returns the board for a scoring type
// GET /api/adp/{type}?teams=12&year=2024
func (h *ADPHandler) GetADP(w http.ResponseWriter, r *http.Request) {
	adpType, err := contracts.ParseADPType(mux.Vars(r)["type"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := contracts.ADPQuery{Type: adpType}
	q := r.URL.Query()
	if v := q.Get("teams"); v != "" {
		if query.Teams, err = strconv.Atoi(v); err != nil || query.Teams <= 0 {
			respondError(w, http.StatusBadRequest, "teams must be a positive integer")
			return
		}
	}
	if v := q.Get("year"); v != "" {
		if query.Year, err = strconv.Atoi(v); err != nil || query.Year <= 0 {
			respondError(w, http.StatusBadRequest, "year must be a positive integer")
			return
		}
	}

	board, err := h.boards.Get(r.Context(), query)
	if err != nil {
		h.logger.WithError(err).WithField("type", adpType).Error("Failed to get ADP board")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, board)
}
