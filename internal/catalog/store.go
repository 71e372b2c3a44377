package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/pkg/redis"
)

// Store holds fetched catalogs by serialized league settings
type Store interface {
	Get(ctx context.Context, key string) ([]contracts.Player, bool, error)
	Set(ctx context.Context, key string, players []contracts.Player) error
	Len() int
}

type memoryEntry struct {
	players   []contracts.Player
	storedAt  time.Time
	insertSeq uint64
}

// MemoryStore is an in-process Store.
// With a zero TTL and zero MaxEntries nothing is ever evicted.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[string]*memoryEntry
	ttl        time.Duration
	maxEntries int
	seq        uint64
	now        func() time.Time
}

// NewMemoryStore creates a memory store.
// ttl > 0 expires entries; maxEntries > 0 evicts the oldest insert when full.
func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]*memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the catalog stored under key, if present and not expired
func (s *MemoryStore) Get(_ context.Context, key string) ([]contracts.Player, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if s.ttl > 0 && s.now().Sub(entry.storedAt) > s.ttl {
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && cur == entry {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	return entry.players, true, nil
}

// Set stores players under key
func (s *MemoryStore) Set(_ context.Context, key string, players []contracts.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.entries[key] = &memoryEntry{
		players:   players,
		storedAt:  s.now(),
		insertSeq: s.seq,
	}

	if s.maxEntries > 0 {
		for len(s.entries) > s.maxEntries {
			s.evictOldestLocked()
		}
	}

	return nil
}

// Len returns the number of stored catalogs
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Prune drops expired entries and returns how many were removed
func (s *MemoryStore) Prune() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := s.now()
	for k, e := range s.entries {
		if now.Sub(e.storedAt) > s.ttl {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) evictOldestLocked() {
	var oldestKey string
	var oldestSeq uint64
	for k, e := range s.entries {
		if oldestKey == "" || e.insertSeq < oldestSeq {
			oldestKey = k
			oldestSeq = e.insertSeq
		}
	}
	delete(s.entries, oldestKey)
}

// RedisStore shares catalogs between processes through Redis
type RedisStore struct {
	cache *redis.Cache
	ttl   time.Duration
}

// NewRedisStore creates a Redis-backed store. A zero ttl keeps keys until deleted.
func NewRedisStore(cache *redis.Cache, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]contracts.Player, bool, error) {
	var players []contracts.Player
	found, err := s.cache.Get(ctx, redis.CatalogKey(key), &players)
	if err != nil || !found {
		return nil, false, err
	}
	return players, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, players []contracts.Player) error {
	return s.cache.Set(ctx, redis.CatalogKey(key), players, s.ttl)
}

// Len is unknown for a shared store
func (s *RedisStore) Len() int {
	return -1
}
