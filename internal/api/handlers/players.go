package handlers

import (
	"net/http"

	"github.com/wonny/readytrade/internal/catalog"
	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/internal/selection"
	"github.com/wonny/readytrade/pkg/logger"
)

// PlayerHandler serves the player catalog
type PlayerHandler struct {
	catalog *catalog.Cache
	logger  *logger.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(cache *catalog.Cache, log *logger.Logger) *PlayerHandler {
	return &PlayerHandler{
		catalog: cache,
		logger:  log,
	}
}

// GetPlayers returns the catalog for league settings
// GET /api/players?isDynasty=false&numQbs=1&numTeams=12&ppr=1
func (h *PlayerHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	settings, err := contracts.ParseLeagueSettings(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	players, err := h.catalog.GetOrFetch(r.Context(), settings)
	if err != nil {
		h.logger.WithError(err).WithField("settings", settings.Key()).Error("Failed to get players")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"settings": settings,
		"count":    len(players),
		"players":  players,
	})
}

// SearchPlayers filters the catalog by name
// GET /api/players/search?q=jus&exclude=1,2&numTeams=12
func (h *PlayerHandler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	settings, err := contracts.ParseLeagueSettings(q)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	exclude, err := parseIDs(q.Get("exclude"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "exclude must be a comma-separated list of player ids")
		return
	}

	players, err := h.catalog.GetOrFetch(r.Context(), settings)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	results := selection.Filter(players, exclude, q.Get("q"))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   q.Get("q"),
		"count":   len(results),
		"players": results,
	})
}

// GetStats returns catalog cache counters
// GET /api/catalog/stats
func (h *PlayerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Stats())
}
