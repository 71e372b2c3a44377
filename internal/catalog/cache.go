package catalog

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/pkg/logger"
)

// Stats is a snapshot of cache activity
type Stats struct {
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
	Fetches  int64 `json:"fetches"`
	Failures int64 `json:"failures"`
	Entries  int   `json:"entries"`
}

// Cache memoizes player catalogs by league settings.
// ⭐ SSOT: the only path from callers to the valuation source
//
// A stored catalog is served until the store evicts it; it is never refreshed
// in place. Failed fetches are never stored. Concurrent misses for the same
// settings share one upstream request.
type Cache struct {
	source contracts.PlayerSource
	tiers  []Store
	group  singleflight.Group
	logger *logger.Logger

	hits     atomic.Int64
	misses   atomic.Int64
	fetches  atomic.Int64
	failures atomic.Int64
}

// New creates a cache over source. tiers are consulted in order; the first
// is the primary store and is back-filled on hits from later tiers.
func New(source contracts.PlayerSource, log *logger.Logger, tiers ...Store) *Cache {
	if len(tiers) == 0 {
		tiers = []Store{NewMemoryStore(0, 0)}
	}
	return &Cache{
		source: source,
		tiers:  tiers,
		logger: log,
	}
}

// GetOrFetch returns the catalog for settings, fetching it on a miss
func (c *Cache) GetOrFetch(ctx context.Context, settings contracts.LeagueSettings) ([]contracts.Player, error) {
	key := settings.Key()

	if players, ok := c.lookup(ctx, key); ok {
		c.hits.Add(1)
		return players, nil
	}
	c.misses.Add(1)

	// The shared fetch ignores caller cancellation; the HTTP client timeout bounds it.
	flight := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		// another caller may have stored it while we waited for the flight slot
		if players, ok := c.lookup(flight, key); ok {
			return players, nil
		}

		c.fetches.Add(1)
		players, err := c.source.FetchPlayers(flight, settings)
		if err != nil {
			c.failures.Add(1)
			return nil, err
		}

		c.store(flight, key, players)
		return players, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		c.logger.WithError(res.Err).WithField("settings", key).Warn("Catalog fetch failed")
		return nil, res.Err
	}

	if res.Shared {
		c.logger.WithField("settings", key).Debug("Catalog fetch shared")
	}

	return res.Val.([]contracts.Player), nil
}

// Stats returns a snapshot of counters and primary store size
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Fetches:  c.fetches.Load(),
		Failures: c.failures.Load(),
		Entries:  c.tiers[0].Len(),
	}
}

func (c *Cache) lookup(ctx context.Context, key string) ([]contracts.Player, bool) {
	for i, tier := range c.tiers {
		players, ok, err := tier.Get(ctx, key)
		if err != nil {
			c.logger.WithError(err).WithField("tier", i).Warn("Catalog store read failed")
			continue
		}
		if !ok {
			continue
		}
		for j := 0; j < i; j++ {
			if err := c.tiers[j].Set(ctx, key, players); err != nil {
				c.logger.WithError(err).WithField("tier", j).Warn("Catalog back-fill failed")
			}
		}
		return players, true
	}
	return nil, false
}

func (c *Cache) store(ctx context.Context, key string, players []contracts.Player) {
	for i, tier := range c.tiers {
		if err := tier.Set(ctx, key, players); err != nil {
			c.logger.WithError(err).WithField("tier", i).Warn("Catalog store write failed")
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"settings": key,
		"players":  len(players),
	}).Info("Catalog cached")
}
