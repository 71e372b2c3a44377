package jobs

import (
	"context"

	"github.com/wonny/readytrade/internal/catalog"
	"github.com/wonny/readytrade/pkg/logger"
)

// CatalogPruneJob drops expired catalogs and ADP boards
type CatalogPruneJob struct {
	store  *catalog.MemoryStore
	boards *catalog.ADPBoards
	logger *logger.Logger
}

// NewCatalogPruneJob creates a new prune job. boards may be nil.
func NewCatalogPruneJob(store *catalog.MemoryStore, boards *catalog.ADPBoards, log *logger.Logger) *CatalogPruneJob {
	return &CatalogPruneJob{
		store:  store,
		boards: boards,
		logger: log,
	}
}

// Name returns the job name
func (j *CatalogPruneJob) Name() string {
	return "catalog_prune"
}

// Schedule returns the cron schedule (every 5 minutes)
func (j *CatalogPruneJob) Schedule() string {
	return "0 */5 * * * *"
}

// Run executes the prune
func (j *CatalogPruneJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled catalog prune")

	catalogs := j.store.Prune()
	boards := 0
	if j.boards != nil {
		boards = j.boards.Prune()
	}

	if catalogs+boards > 0 {
		j.logger.WithFields(map[string]interface{}{
			"catalogs": catalogs,
			"boards":   boards,
		}).Info("Catalog prune completed")
	}

	return nil
}
