package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/readytrade/internal/catalog"
	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/pkg/logger"
)

type fakeCatalog struct {
	mu      sync.Mutex
	fetched []string
	fail    map[string]bool
}

func (f *fakeCatalog) GetOrFetch(_ context.Context, s contracts.LeagueSettings) ([]contracts.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, s.Key())
	if f.fail[s.Key()] {
		return nil, contracts.NewFetchError("FantasyCalc", 503, nil)
	}
	return []contracts.Player{{ID: 1}}, nil
}

func TestCatalogWarmJob_WarmsAll(t *testing.T) {
	cat := &fakeCatalog{}
	job := NewCatalogWarmJob(cat, nil, "0 0 */6 * * *", logger.Nop())

	require.NoError(t, job.Run(context.Background()))
	assert.Len(t, cat.fetched, len(PopularSettings))
	assert.Equal(t, "catalog_warm", job.Name())
	assert.Equal(t, "0 0 */6 * * *", job.Schedule())
}

func TestCatalogWarmJob_AttemptsEveryoneAndJoinsErrors(t *testing.T) {
	bad := PopularSettings[1]
	cat := &fakeCatalog{fail: map[string]bool{bad.Key(): true}}
	job := NewCatalogWarmJob(cat, nil, "@hourly", logger.Nop())

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrFetchFailed))
	assert.Contains(t, err.Error(), bad.Key())
	assert.Len(t, cat.fetched, len(PopularSettings))
}

type staticADP struct{}

func (staticADP) FetchADP(_ context.Context, q contracts.ADPQuery) (*contracts.ADPResponse, error) {
	return &contracts.ADPResponse{Status: "Success"}, nil
}

func TestCatalogPruneJob(t *testing.T) {
	store := catalog.NewMemoryStore(0, 0)
	job := NewCatalogPruneJob(store, nil, logger.Nop())

	assert.NoError(t, job.Run(context.Background()))
	assert.Equal(t, "catalog_prune", job.Name())
}

func TestCatalogPruneJob_PrunesADPBoards(t *testing.T) {
	store := catalog.NewMemoryStore(0, 0)
	boards := catalog.NewADPBoards(staticADP{}, nil, time.Nanosecond, logger.Nop())
	for year := 2021; year <= 2023; year++ {
		_, err := boards.Get(context.Background(), contracts.ADPQuery{Year: year})
		require.NoError(t, err)
	}
	require.Equal(t, 3, boards.Len())

	time.Sleep(time.Millisecond)
	job := NewCatalogPruneJob(store, boards, logger.Nop())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 0, boards.Len())
}
