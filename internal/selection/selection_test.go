package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/readytrade/internal/contracts"
)

var catalog = []contracts.Player{
	{ID: 1, Name: "Justin Jefferson", Position: "WR", Team: "MIN", Value: 9800},
	{ID: 2, Name: "Justin Herbert", Position: "QB", Team: "LAC", Value: 5200},
	{ID: 3, Name: "Ja'Marr Chase", Position: "WR", Team: "CIN", Value: 10500},
	{ID: 4, Name: "Josh Allen", Position: "QB", Team: "BUF", Value: 8900},
}

func names(players []contracts.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		exclude []int
		query   string
		want    []string
	}{
		{"empty query matches all", nil, "", []string{"Justin Jefferson", "Justin Herbert", "Ja'Marr Chase", "Josh Allen"}},
		{"case insensitive", nil, "JUSTIN", []string{"Justin Jefferson", "Justin Herbert"}},
		{"substring inside name", nil, "marr", []string{"Ja'Marr Chase"}},
		{"excluded ids are dropped", []int{1}, "justin", []string{"Justin Herbert"}},
		{"no match", nil, "mahomes", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(catalog, tt.exclude, tt.query)))
		})
	}
}

func TestFilter_NeverReturnsSelected(t *testing.T) {
	side := NewSide(catalog[0], catalog[3])
	for _, q := range []string{"", "j", "allen", "justin"} {
		for _, p := range Filter(catalog, side.IDs(), q) {
			assert.False(t, side.Contains(p.ID), "query %q returned selected player %d", q, p.ID)
		}
	}
}

func TestSide_SelectIsNoOpOnDuplicate(t *testing.T) {
	side := &Side{}

	assert.True(t, side.Select(catalog[0]))
	assert.False(t, side.Select(catalog[0]))
	assert.True(t, side.Select(catalog[2]))

	assert.Equal(t, []int{1, 3}, side.IDs())
}

func TestSide_Remove(t *testing.T) {
	side := NewSide(catalog...)

	assert.True(t, side.Remove(2))
	assert.Equal(t, []int{1, 3, 4}, side.IDs())

	assert.False(t, side.Remove(99), "removing an absent id is a no-op")
	assert.Equal(t, 3, side.Len())
}

func TestSide_PlayersIsACopy(t *testing.T) {
	side := NewSide(catalog[0], catalog[1])
	players := side.Players()
	side.Remove(1)

	assert.Equal(t, 1, players[0].ID)
	assert.Equal(t, []int{2}, side.IDs())
}

func TestSide_Reset(t *testing.T) {
	side := NewSide(catalog...)
	side.Reset()
	assert.Equal(t, 0, side.Len())
	assert.Empty(t, side.IDs())
}

func TestNewSide_DropsDuplicates(t *testing.T) {
	side := NewSide(catalog[0], catalog[0], catalog[1])
	assert.Equal(t, []int{1, 2}, side.IDs())
}

func TestParseSideName(t *testing.T) {
	s, err := ParseSideName("giving")
	assert.NoError(t, err)
	assert.Equal(t, Giving, s)

	_, err = ParseSideName("taking")
	assert.Error(t, err)
}
