package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/pkg/logger"
)

// CatalogFetcher is the catalog cache as seen by the warm job
type CatalogFetcher interface {
	GetOrFetch(ctx context.Context, settings contracts.LeagueSettings) ([]contracts.Player, error)
}

// PopularSettings are the league formats warmed by default
var PopularSettings = []contracts.LeagueSettings{
	{IsDynasty: false, NumQBs: 1, NumTeams: 12, PPR: 1},
	{IsDynasty: false, NumQBs: 1, NumTeams: 12, PPR: 0.5},
	{IsDynasty: false, NumQBs: 1, NumTeams: 10, PPR: 1},
	{IsDynasty: true, NumQBs: 1, NumTeams: 12, PPR: 1},
	{IsDynasty: true, NumQBs: 2, NumTeams: 12, PPR: 1},
}

// warmConcurrency bounds parallel upstream fetches per run
const warmConcurrency = 2

// CatalogWarmJob loads catalogs for common settings ahead of user requests.
// Catalogs already cached are not refetched.
type CatalogWarmJob struct {
	catalog  CatalogFetcher
	settings []contracts.LeagueSettings
	schedule string
	logger   *logger.Logger
}

// NewCatalogWarmJob creates a warm job. Empty settings use PopularSettings.
func NewCatalogWarmJob(catalog CatalogFetcher, settings []contracts.LeagueSettings, schedule string, log *logger.Logger) *CatalogWarmJob {
	if len(settings) == 0 {
		settings = PopularSettings
	}
	return &CatalogWarmJob{
		catalog:  catalog,
		settings: settings,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *CatalogWarmJob) Name() string {
	return "catalog_warm"
}

// Schedule returns the cron schedule
func (j *CatalogWarmJob) Schedule() string {
	return j.schedule
}

// Run fetches every configured catalog. All settings are attempted; the
// returned error joins every failure.
func (j *CatalogWarmJob) Run(ctx context.Context) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(warmConcurrency)

	for _, s := range j.settings {
		s := s
		g.Go(func() error {
			players, err := j.catalog.GetOrFetch(ctx, s)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", s.Key(), err))
				mu.Unlock()
				return nil
			}

			j.logger.WithFields(map[string]interface{}{
				"settings": s.Key(),
				"players":  len(players),
			}).Debug("Catalog warmed")
			return nil
		})
	}
	g.Wait()

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	j.logger.WithField("catalogs", len(j.settings)).Info("Catalog warm completed")
	return nil
}
