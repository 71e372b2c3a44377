package analyzer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/internal/scoring"
	"github.com/wonny/readytrade/internal/selection"
	"github.com/wonny/readytrade/pkg/logger"
)

var (
	chase   = contracts.Player{ID: 1, Name: "Ja'Marr Chase", Value: 10519, RedraftValue: 10519, OverallRank: 1}
	kelce   = contracts.Player{ID: 2, Name: "Travis Kelce", Value: 5000, RedraftValue: 5000, OverallRank: 50}
	allen   = contracts.Player{ID: 3, Name: "Josh Allen", Value: 8900, RedraftValue: 9100, OverallRank: 6}
	jackson = contracts.Player{ID: 4, Name: "Lamar Jackson", Value: 8700, RedraftValue: 9000, OverallRank: 8}
)

// stubCatalog returns a fixed catalog per settings key. Keys listed in
// gates block until the gate is closed.
type stubCatalog struct {
	mu       sync.Mutex
	catalogs map[string][]contracts.Player
	fail     map[string]error
	gates    map[string]chan struct{}
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		catalogs: map[string][]contracts.Player{},
		fail:     map[string]error{},
		gates:    map[string]chan struct{}{},
	}
}

func (c *stubCatalog) GetOrFetch(ctx context.Context, s contracts.LeagueSettings) ([]contracts.Player, error) {
	c.mu.Lock()
	gate := c.gates[s.Key()]
	c.mu.Unlock()
	if gate != nil {
		<-gate
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.fail[s.Key()]; err != nil {
		return nil, err
	}
	return c.catalogs[s.Key()], nil
}

func loadedSession(t *testing.T) (*Session, *stubCatalog) {
	t.Helper()
	cat := newStubCatalog()
	cat.catalogs[contracts.DefaultLeagueSettings.Key()] = []contracts.Player{chase, kelce, allen, jackson}

	s := NewSession(cat, scoring.Default(), logger.Nop())
	require.NoError(t, s.SetSettings(context.Background(), contracts.DefaultLeagueSettings))
	return s, cat
}

func TestSession_PlaceholderUntilBothSides(t *testing.T) {
	s, _ := loadedSession(t)
	assert.True(t, s.Verdict().Placeholder)

	_, err := s.Add(selection.Giving, chase.ID)
	require.NoError(t, err)
	assert.True(t, s.Verdict().Placeholder)

	_, err = s.Add(selection.Getting, kelce.ID)
	require.NoError(t, err)

	v := s.Verdict()
	assert.False(t, v.Placeholder)
	assert.Equal(t, contracts.CategoryVeryBad, v.Category)
}

func TestSession_AddDuplicateIsNoOp(t *testing.T) {
	s, _ := loadedSession(t)

	added, err := s.Add(selection.Giving, allen.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add(selection.Giving, allen.ID)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, s.Snapshot().Giving, 1)
}

func TestSession_AddUnknown(t *testing.T) {
	s, _ := loadedSession(t)

	_, err := s.Add(selection.Giving, 999)
	var upe UnknownPlayerError
	require.True(t, errors.As(err, &upe))
	assert.Equal(t, 999, upe.ID)

	_, err = s.Add(selection.SideName("sideways"), chase.ID)
	assert.Error(t, err)
}

func TestSession_RemoveAndReset(t *testing.T) {
	s, _ := loadedSession(t)
	s.Add(selection.Giving, chase.ID)
	s.Add(selection.Getting, kelce.ID)

	assert.False(t, s.Remove(selection.Giving, kelce.ID), "absent id is a no-op")
	assert.True(t, s.Remove(selection.Giving, chase.ID))
	assert.True(t, s.Verdict().Placeholder)

	s.Search(selection.Getting, "allen")
	s.Reset()

	st := s.Snapshot()
	assert.Empty(t, st.Giving)
	assert.Empty(t, st.Getting)
	assert.Empty(t, st.GettingQuery)
	assert.Equal(t, 4, st.CatalogSize, "reset keeps the catalog")
}

func TestSession_SearchExcludesOwnSide(t *testing.T) {
	s, _ := loadedSession(t)
	s.Add(selection.Giving, allen.ID)

	results := s.Search(selection.Giving, "")
	assert.Equal(t, []int{1, 2, 4}, contracts.PlayerIDs(results))

	results = s.Search(selection.Getting, "JOSH")
	assert.Equal(t, []int{3}, contracts.PlayerIDs(results))
}

func TestSession_AddClearsQuery(t *testing.T) {
	s, _ := loadedSession(t)
	s.Search(selection.Getting, "lamar")

	_, err := s.Add(selection.Getting, jackson.ID)
	require.NoError(t, err)
	assert.Empty(t, s.Snapshot().GettingQuery)
}

func TestSession_FetchFailureClearsCatalog(t *testing.T) {
	s, cat := loadedSession(t)
	s.Add(selection.Giving, chase.ID)

	dynasty := contracts.DefaultLeagueSettings
	dynasty.IsDynasty = true
	cat.fail[dynasty.Key()] = contracts.NewFetchError("FantasyCalc", 500, nil)

	err := s.SetSettings(context.Background(), dynasty)
	assert.True(t, errors.Is(err, contracts.ErrFetchFailed))

	st := s.Snapshot()
	assert.Equal(t, 0, st.CatalogSize)
	assert.Contains(t, st.Error, "FantasyCalc")
	assert.False(t, st.Loading)
	assert.Empty(t, s.Search(selection.Getting, ""))

	// recover by switching back
	require.NoError(t, s.SetSettings(context.Background(), contracts.DefaultLeagueSettings))
	st = s.Snapshot()
	assert.Empty(t, st.Error)
	assert.Equal(t, 4, st.CatalogSize)
	assert.Len(t, st.Giving, 1, "selection survives settings changes")
}

func TestSession_InvalidSettings(t *testing.T) {
	s, _ := loadedSession(t)
	err := s.SetSettings(context.Background(), contracts.LeagueSettings{NumQBs: 3, NumTeams: 12, PPR: 1})

	var se contracts.SettingsError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "numQbs", se.Field)
}

func TestSession_RepricesOnSettingsChange(t *testing.T) {
	s, cat := loadedSession(t)
	s.Add(selection.Giving, allen.ID)

	superflex := contracts.DefaultLeagueSettings
	superflex.NumQBs = 2
	repriced := allen
	repriced.Value = 12000
	cat.catalogs[superflex.Key()] = []contracts.Player{repriced, chase}

	require.NoError(t, s.SetSettings(context.Background(), superflex))
	assert.Equal(t, 12000, s.Snapshot().Giving[0].Value)
}

func TestSession_StaleResponseDiscarded(t *testing.T) {
	s, cat := loadedSession(t)

	slow := contracts.DefaultLeagueSettings
	slow.NumTeams = 10
	fast := contracts.DefaultLeagueSettings
	fast.NumTeams = 14

	gate := make(chan struct{})
	cat.mu.Lock()
	cat.gates[slow.Key()] = gate
	cat.catalogs[slow.Key()] = []contracts.Player{chase}
	cat.catalogs[fast.Key()] = []contracts.Player{chase, kelce}
	cat.mu.Unlock()

	slowErr := make(chan error, 1)
	go func() {
		slowErr <- s.SetSettings(context.Background(), slow)
	}()

	require.Eventually(t, func() bool { return s.Snapshot().Settings == slow }, time.Second, time.Millisecond)

	require.NoError(t, s.SetSettings(context.Background(), fast))
	close(gate)

	assert.ErrorIs(t, <-slowErr, ErrStaleSettings)

	st := s.Snapshot()
	assert.Equal(t, fast, st.Settings)
	assert.Equal(t, 2, st.CatalogSize, "late response for old settings must not overwrite")
}
