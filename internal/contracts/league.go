package contracts

import (
	"fmt"
	"net/url"
	"strconv"
)

// LeagueSettings parameterise the valuation request and key the catalog cache
type LeagueSettings struct {
	IsDynasty bool    `json:"isDynasty"`
	NumQBs    int     `json:"numQbs"`
	NumTeams  int     `json:"numTeams"`
	PPR       float64 `json:"ppr"`
}

// DefaultLeagueSettings is a 12-team, 1QB, full-PPR redraft league
var DefaultLeagueSettings = LeagueSettings{
	IsDynasty: false,
	NumQBs:    1,
	NumTeams:  12,
	PPR:       1,
}

const (
	MinTeams = 8
	MaxTeams = 16
)

// SettingsError describes an out-of-range league setting
type SettingsError struct {
	Field   string
	Message string
}

func (e SettingsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the documented domains: numQbs 1|2, numTeams 8..16, ppr 0|0.5|1
func (s LeagueSettings) Validate() error {
	if s.NumQBs != 1 && s.NumQBs != 2 {
		return SettingsError{"numQbs", "must be 1 or 2"}
	}
	if s.NumTeams < MinTeams || s.NumTeams > MaxTeams {
		return SettingsError{"numTeams", fmt.Sprintf("must be between %d and %d", MinTeams, MaxTeams)}
	}
	if s.PPR != 0 && s.PPR != 0.5 && s.PPR != 1 {
		return SettingsError{"ppr", "must be 0, 0.5 or 1"}
	}
	return nil
}

// Query serializes the settings as upstream query parameters
func (s LeagueSettings) Query() url.Values {
	q := url.Values{}
	q.Set("isDynasty", strconv.FormatBool(s.IsDynasty))
	q.Set("numQbs", strconv.Itoa(s.NumQBs))
	q.Set("numTeams", strconv.Itoa(s.NumTeams))
	q.Set("ppr", strconv.FormatFloat(s.PPR, 'f', -1, 64))
	return q
}

// Key is the serialized form used as the catalog cache key.
// Structurally equal settings always produce the same key.
func (s LeagueSettings) Key() string {
	return s.Query().Encode()
}

// ParseLeagueSettings reads settings from query parameters, falling back
// to DefaultLeagueSettings for absent fields, and validates the result.
func ParseLeagueSettings(q url.Values) (LeagueSettings, error) {
	s := DefaultLeagueSettings

	if v := q.Get("isDynasty"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return s, SettingsError{"isDynasty", "must be true or false"}
		}
		s.IsDynasty = b
	}
	if v := q.Get("numQbs"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, SettingsError{"numQbs", "must be an integer"}
		}
		s.NumQBs = n
	}
	if v := q.Get("numTeams"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, SettingsError{"numTeams", "must be an integer"}
		}
		s.NumTeams = n
	}
	if v := q.Get("ppr"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return s, SettingsError{"ppr", "must be a number"}
		}
		s.PPR = f
	}

	return s, s.Validate()
}
