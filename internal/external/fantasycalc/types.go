package fantasycalc

import "github.com/wonny/readytrade/internal/contracts"

// UpstreamPlayer is the player sub-record of a values response item
type UpstreamPlayer struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Position      string   `json:"position"`
	MaybeTeam     *string  `json:"maybeTeam"`
	MflID         string   `json:"mflId,omitempty"`
	SleeperID     string   `json:"sleeperId,omitempty"`
	EspnID        string   `json:"espnId,omitempty"`
	FleaflickerID string   `json:"fleaflickerId,omitempty"`
	MaybeBirthday string   `json:"maybeBirthday,omitempty"`
	MaybeHeight   string   `json:"maybeHeight,omitempty"`
	MaybeWeight   *float64 `json:"maybeWeight,omitempty"`
	MaybeCollege  string   `json:"maybeCollege,omitempty"`
	MaybeAge      *float64 `json:"maybeAge,omitempty"`
	MaybeYoe      *int     `json:"maybeYoe,omitempty"`
}

// ValueResponse is one item of GET /values/current
type ValueResponse struct {
	Player              UpstreamPlayer `json:"player"`
	Value               int            `json:"value"`
	OverallRank         int            `json:"overallRank"`
	PositionRank        int            `json:"positionRank"`
	Trend30Day          int            `json:"trend30Day"`
	RedraftValue        int            `json:"redraftValue"`
	CombinedValue       int            `json:"combinedValue"`
	Starter             bool           `json:"starter"`
	MaybeTier           *int           `json:"maybeTier"`
	MaybeAdp            *float64       `json:"maybeAdp"`
	MaybeTradeFrequency *float64       `json:"maybeTradeFrequency"`
}

// toPlayer flattens the wrapped upstream record. A missing team becomes "".
func (v ValueResponse) toPlayer() contracts.Player {
	team := ""
	if v.Player.MaybeTeam != nil {
		team = *v.Player.MaybeTeam
	}

	return contracts.Player{
		ID:                  v.Player.ID,
		Name:                v.Player.Name,
		Position:            v.Player.Position,
		Team:                team,
		Value:               v.Value,
		RedraftValue:        v.RedraftValue,
		CombinedValue:       v.CombinedValue,
		OverallRank:         v.OverallRank,
		PositionRank:        v.PositionRank,
		Trend30Day:          v.Trend30Day,
		Starter:             v.Starter,
		MaybeTier:           v.MaybeTier,
		MaybeAdp:            v.MaybeAdp,
		MaybeTradeFrequency: v.MaybeTradeFrequency,
	}
}
