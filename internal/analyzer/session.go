package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/internal/scoring"
	"github.com/wonny/readytrade/internal/selection"
	"github.com/wonny/readytrade/pkg/logger"
)

// Catalog resolves league settings to a player catalog
type Catalog interface {
	GetOrFetch(ctx context.Context, settings contracts.LeagueSettings) ([]contracts.Player, error)
}

// ErrStaleSettings is returned by SetSettings when a newer settings change
// superseded the fetch before it completed. The session state is untouched.
var ErrStaleSettings = errors.New("settings superseded by a newer change")

// UnknownPlayerError reports a player id missing from the current catalog
type UnknownPlayerError struct {
	ID int
}

func (e UnknownPlayerError) Error() string {
	return fmt.Sprintf("player %d not in catalog", e.ID)
}

// State is a point-in-time copy of a session
type State struct {
	Settings     contracts.LeagueSettings `json:"settings"`
	Loading      bool                     `json:"loading"`
	Error        string                   `json:"error,omitempty"`
	CatalogSize  int                      `json:"catalogSize"`
	Giving       []contracts.Player       `json:"giving"`
	Getting      []contracts.Player       `json:"getting"`
	GivingQuery  string                   `json:"givingQuery"`
	GettingQuery string                   `json:"gettingQuery"`
	Verdict      contracts.Verdict        `json:"verdict"`
}

// Session is one user's trade workspace: league settings, the catalog for
// them, and the two sides being compared. Safe for concurrent use.
type Session struct {
	catalog Catalog
	engine  *scoring.Engine
	logger  *logger.Logger

	mu         sync.Mutex
	settings   contracts.LeagueSettings
	players    []contracts.Player
	index      map[int]contracts.Player
	loading    bool
	fetchErr   error
	generation uint64
	sides      map[selection.SideName]*selection.Side
	queries    map[selection.SideName]string
}

// NewSession creates a session with default settings and no catalog loaded
func NewSession(catalog Catalog, engine *scoring.Engine, log *logger.Logger) *Session {
	return &Session{
		catalog:  catalog,
		engine:   engine,
		logger:   log,
		settings: contracts.DefaultLeagueSettings,
		index:    map[int]contracts.Player{},
		sides: map[selection.SideName]*selection.Side{
			selection.Giving:  {},
			selection.Getting: {},
		},
		queries: map[selection.SideName]string{},
	}
}

// SetSettings switches the session to settings and loads their catalog.
//
// On a fetch failure the player list is cleared and the error recorded; the
// session stays usable and a later call may succeed. If another SetSettings
// started after this one, the result is discarded and ErrStaleSettings
// returned, so a slow response never overwrites newer settings.
func (s *Session) SetSettings(ctx context.Context, settings contracts.LeagueSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.settings = settings
	s.loading = true
	s.mu.Unlock()

	players, err := s.catalog.GetOrFetch(ctx, settings)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.WithField("settings", settings.Key()).Debug("Discarded stale catalog response")
		return ErrStaleSettings
	}

	s.loading = false
	if err != nil {
		s.players = nil
		s.index = map[int]contracts.Player{}
		s.fetchErr = err
		return err
	}

	s.players = players
	s.index = contracts.IndexByID(players)
	s.fetchErr = nil
	s.repriceLocked()
	return nil
}

// repriceLocked refreshes selected players from the new catalog.
// Players absent from it keep their previous values.
func (s *Session) repriceLocked() {
	for name, side := range s.sides {
		fresh := &selection.Side{}
		for _, p := range side.Players() {
			if np, ok := s.index[p.ID]; ok {
				p = np
			}
			fresh.Select(p)
		}
		s.sides[name] = fresh
	}
}

// Search records query for side and returns matching catalog players not
// already selected on that side
func (s *Session) Search(side selection.SideName, query string) []contracts.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries[side] = query
	return s.resultsLocked(side)
}

// Results re-runs the last query of side against the current catalog
func (s *Session) Results(side selection.SideName) []contracts.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultsLocked(side)
}

func (s *Session) resultsLocked(side selection.SideName) []contracts.Player {
	sel, ok := s.sides[side]
	if !ok {
		return nil
	}
	return selection.Filter(s.players, sel.IDs(), s.queries[side])
}

// Add selects the catalog player id on side and clears that side's query.
// Adding an already-selected id is a no-op reporting false.
func (s *Session) Add(side selection.SideName, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, ok := s.sides[side]
	if !ok {
		return false, fmt.Errorf("unknown side %q", side)
	}
	p, ok := s.index[id]
	if !ok {
		return false, UnknownPlayerError{ID: id}
	}

	added := sel.Select(p)
	if added {
		s.queries[side] = ""
	}
	return added, nil
}

// Remove drops id from side; a no-op reporting false when absent
func (s *Session) Remove(side selection.SideName, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, ok := s.sides[side]
	if !ok {
		return false
	}
	return sel.Remove(id)
}

// Reset clears both sides and queries. Settings and catalog are kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sel := range s.sides {
		sel.Reset()
	}
	s.queries = map[selection.SideName]string{}
}

// Verdict evaluates the current sides
func (s *Session) Verdict() contracts.Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verdictLocked()
}

func (s *Session) verdictLocked() contracts.Verdict {
	return s.engine.Evaluate(
		s.sides[selection.Giving].Players(),
		s.sides[selection.Getting].Players(),
	)
}

// Snapshot returns a copy of the full session state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Settings:     s.settings,
		Loading:      s.loading,
		CatalogSize:  len(s.players),
		Giving:       s.sides[selection.Giving].Players(),
		Getting:      s.sides[selection.Getting].Players(),
		GivingQuery:  s.queries[selection.Giving],
		GettingQuery: s.queries[selection.Getting],
		Verdict:      s.verdictLocked(),
	}
	if s.fetchErr != nil {
		st.Error = s.fetchErr.Error()
	}
	return st
}
