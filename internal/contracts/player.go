package contracts

// Player is one entry of a fetched catalog.
// Values and ranks come from the upstream service and are never computed here.
type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`

	Value         int `json:"value"`        // dynasty-context trade value
	RedraftValue  int `json:"redraftValue"` // redraft-context trade value
	CombinedValue int `json:"combinedValue"`
	OverallRank   int `json:"overallRank"` // 1 = best
	PositionRank  int `json:"positionRank"`
	Trend30Day    int `json:"trend30Day"`

	Starter             bool     `json:"starter"`
	MaybeTier           *int     `json:"maybeTier,omitempty"`
	MaybeAdp            *float64 `json:"maybeAdp,omitempty"`
	MaybeTradeFrequency *float64 `json:"maybeTradeFrequency,omitempty"`
}

// PlayerIDs returns the ids of players in order
func PlayerIDs(players []Player) []int {
	ids := make([]int, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}

// IndexByID maps player id to player
func IndexByID(players []Player) map[int]Player {
	idx := make(map[int]Player, len(players))
	for _, p := range players {
		idx[p.ID] = p
	}
	return idx
}
