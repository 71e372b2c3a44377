package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/wonny/readytrade/internal/scheduler"
	"github.com/wonny/readytrade/pkg/database"
	"github.com/wonny/readytrade/pkg/logger"
)

// DBHealth reports database connectivity
type DBHealth interface {
	HealthCheck(ctx context.Context) database.HealthStatus
}

// JobStatsProvider reports background job statistics
type JobStatsProvider interface {
	GetJobStats() map[string]scheduler.JobStats
}

// HealthHandler serves the health check
type HealthHandler struct {
	db     DBHealth
	jobs   JobStatsProvider
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler. Either source may be nil.
func NewHealthHandler(db DBHealth, jobs JobStatsProvider, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		jobs:   jobs,
		logger: log,
	}
}

// Health reports service status, database health and job statistics.
// An unreachable database answers 503 with status "degraded".
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]interface{}{
		"status":  "ok",
		"service": "readytrade-api",
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		db := h.db.HealthCheck(ctx)
		body["database"] = db
		if !db.Healthy {
			h.logger.WithField("error", db.Error).Warn("Database health check failed")
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
	}

	if h.jobs != nil {
		body["jobs"] = h.jobs.GetJobStats()
	}

	respondJSON(w, status, body)
}
