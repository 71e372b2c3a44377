package selection

import (
	"fmt"

	"github.com/wonny/readytrade/internal/contracts"
)

// SideName identifies one half of a trade
type SideName string

const (
	Giving  SideName = "giving"
	Getting SideName = "getting"
)

// ParseSideName accepts "giving" or "getting"
func ParseSideName(s string) (SideName, error) {
	switch SideName(s) {
	case Giving, Getting:
		return SideName(s), nil
	default:
		return "", fmt.Errorf("unknown side %q (valid: giving, getting)", s)
	}
}

// Side is an ordered list of selected players with unique ids.
// The zero value is an empty side.
type Side struct {
	players []contracts.Player
}

// NewSide builds a side from players, dropping duplicate ids
func NewSide(players ...contracts.Player) *Side {
	s := &Side{}
	for _, p := range players {
		s.Select(p)
	}
	return s
}

// Select appends p. It is a no-op returning false if p's id is already present.
func (s *Side) Select(p contracts.Player) bool {
	if s.Contains(p.ID) {
		return false
	}
	s.players = append(s.players, p)
	return true
}

// Remove drops the player with id. It is a no-op returning false if absent.
func (s *Side) Remove(id int) bool {
	for i, p := range s.players {
		if p.ID == id {
			s.players = append(s.players[:i:i], s.players[i+1:]...)
			return true
		}
	}
	return false
}

// Reset empties the side
func (s *Side) Reset() {
	s.players = nil
}

// Contains reports whether id is selected
func (s *Side) Contains(id int) bool {
	for _, p := range s.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of selected players
func (s *Side) Len() int {
	return len(s.players)
}

// Players returns a copy of the selection in insertion order
func (s *Side) Players() []contracts.Player {
	out := make([]contracts.Player, len(s.players))
	copy(out, s.players)
	return out
}

// IDs returns the selected ids in insertion order
func (s *Side) IDs() []int {
	return contracts.PlayerIDs(s.players)
}
