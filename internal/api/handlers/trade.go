package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wonny/readytrade/internal/analyzer"
	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/pkg/logger"
)

// TradeHandler evaluates trades
type TradeHandler struct {
	evaluator *analyzer.Evaluator
	logger    *logger.Logger
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(evaluator *analyzer.Evaluator, log *logger.Logger) *TradeHandler {
	return &TradeHandler{
		evaluator: evaluator,
		logger:    log,
	}
}

// evaluateRequest is the POST body. Missing settings use the defaults.
type evaluateRequest struct {
	Settings *contracts.LeagueSettings `json:"settings"`
	Giving   []int                     `json:"giving"`
	Getting  []int                     `json:"getting"`
}

// Evaluate scores a trade
// POST /api/trade/evaluate {"settings": {...}, "giving": [1], "getting": [2, 3]}
func (h *TradeHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var body evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req := analyzer.TradeRequest{
		Settings: contracts.DefaultLeagueSettings,
		Giving:   body.Giving,
		Getting:  body.Getting,
	}
	if body.Settings != nil {
		req.Settings = *body.Settings
	}

	result, err := h.evaluator.Evaluate(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.WithError(err).Error("Trade evaluation failed")
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}
