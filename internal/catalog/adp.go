package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/pkg/logger"
	"github.com/wonny/readytrade/pkg/redis"
)

// ADPBoards memoizes ADP boards for a TTL.
// The optional shared cache may be nil.
type ADPBoards struct {
	source contracts.ADPSource
	shared *redis.Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *logger.Logger

	mu     sync.RWMutex
	boards map[string]adpEntry
	now    func() time.Time
}

type adpEntry struct {
	board    *contracts.ADPResponse
	storedAt time.Time
}

// NewADPBoards creates a board cache. A zero ttl keeps boards forever.
func NewADPBoards(source contracts.ADPSource, shared *redis.Cache, ttl time.Duration, log *logger.Logger) *ADPBoards {
	return &ADPBoards{
		source: source,
		shared: shared,
		ttl:    ttl,
		logger: log,
		boards: make(map[string]adpEntry),
		now:    time.Now,
	}
}

// Get returns the board for query, fetching it on a miss
func (b *ADPBoards) Get(ctx context.Context, query contracts.ADPQuery) (*contracts.ADPResponse, error) {
	if query.Type == "" {
		query.Type = contracts.ADPStandard
	}
	key := redis.ADPKey(string(query.Type), query.Teams, query.Year)

	if board, ok := b.local(key); ok {
		return board, nil
	}

	flight := context.WithoutCancel(ctx)
	ch := b.group.DoChan(key, func() (interface{}, error) {
		if b.shared != nil {
			var board contracts.ADPResponse
			found, err := b.shared.Get(flight, key, &board)
			if err != nil {
				b.logger.WithError(err).Warn("ADP shared cache read failed")
			}
			if found {
				b.put(key, &board)
				return &board, nil
			}
		}

		board, err := b.source.FetchADP(flight, query)
		if err != nil {
			return nil, err
		}

		b.put(key, board)
		if b.shared != nil {
			if err := b.shared.Set(flight, key, board, b.ttl); err != nil {
				b.logger.WithError(err).Warn("ADP shared cache write failed")
			}
		}
		return board, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	return res.Val.(*contracts.ADPResponse), nil
}

func (b *ADPBoards) local(key string) (*contracts.ADPResponse, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.boards[key]
	if !ok {
		return nil, false
	}
	if b.expired(entry) {
		delete(b.boards, key)
		return nil, false
	}
	return entry.board, true
}

// Prune drops expired boards and returns how many were removed
func (b *ADPBoards) Prune() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := 0
	for key, entry := range b.boards {
		if b.expired(entry) {
			delete(b.boards, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of boards held locally
func (b *ADPBoards) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.boards)
}

func (b *ADPBoards) expired(entry adpEntry) bool {
	return b.ttl > 0 && b.now().Sub(entry.storedAt) > b.ttl
}

func (b *ADPBoards) put(key string, board *contracts.ADPResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.boards[key] = adpEntry{board: board, storedAt: b.now()}
}
