package contracts

import "fmt"

// ADPType selects the scoring format of an ADP board
type ADPType string

const (
	ADPStandard ADPType = "standard"
	ADPPPR      ADPType = "ppr"
	ADPHalfPPR  ADPType = "half-ppr"
)

// ParseADPType maps "" to standard and rejects unknown formats
func ParseADPType(s string) (ADPType, error) {
	switch ADPType(s) {
	case "":
		return ADPStandard, nil
	case ADPStandard, ADPPPR, ADPHalfPPR:
		return ADPType(s), nil
	default:
		return "", fmt.Errorf("unknown ADP type %q (valid: standard, ppr, half-ppr)", s)
	}
}

// ADPQuery parameterises an ADP request. Zero Teams/Year are omitted.
type ADPQuery struct {
	Type  ADPType `json:"type"`
	Teams int     `json:"teams,omitempty"`
	Year  int     `json:"year,omitempty"`
}

// ADPResponse is the ADP board as returned by the upstream
type ADPResponse struct {
	Status  string      `json:"status"`
	Meta    ADPMeta     `json:"meta"`
	Players []ADPPlayer `json:"players"`
}

type ADPMeta struct {
	Type        string `json:"type"`
	Teams       int    `json:"teams"`
	Rounds      int    `json:"rounds"`
	TotalDrafts int    `json:"total_drafts"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type ADPPlayer struct {
	PlayerID     int     `json:"player_id"`
	Name         string  `json:"name"`
	Position     string  `json:"position"`
	Team         string  `json:"team"`
	ADP          float64 `json:"adp"`
	ADPFormatted string  `json:"adp_formatted"`
	TimesDrafted int     `json:"times_drafted"`
	High         int     `json:"high"`
	Low          int     `json:"low"`
	Stdev        float64 `json:"stdev"`
	Bye          int     `json:"bye"`
}
