package contracts

import "context"

// PlayerSource fetches a player catalog for league settings
type PlayerSource interface {
	FetchPlayers(ctx context.Context, settings LeagueSettings) ([]Player, error)
}

// ADPSource fetches an ADP board
type ADPSource interface {
	FetchADP(ctx context.Context, query ADPQuery) (*ADPResponse, error)
}
