package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/wonny/readytrade/internal/analyzer"
	"github.com/wonny/readytrade/internal/contracts"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	var se contracts.SettingsError
	var upe analyzer.UnknownPlayerError

	switch {
	case errors.Is(err, contracts.ErrFetchFailed):
		return http.StatusBadGateway
	case errors.As(err, &se), errors.As(err, &upe):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIDs parses a comma-separated id list; blanks are skipped
func parseIDs(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
