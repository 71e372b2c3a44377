package scoringconfig

import (
	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/internal/scoring"
)

// Config overrides the scoring engine's band thresholds and narratives
type Config struct {
	Meta          Meta          `yaml:"meta" json:"meta"`
	Bands         Bands         `yaml:"bands" json:"bands"`
	Presentations Presentations `yaml:"presentations" json:"presentations"`
}

// Meta identifies a scoring config
type Meta struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// Bands holds one threshold triple per non-balanced category.
// Unfavorable thresholds are negative.
type Bands struct {
	VeryGood     scoring.Thresholds `yaml:"very_good" json:"very_good"`
	Good         scoring.Thresholds `yaml:"good" json:"good"`
	SlightlyGood scoring.Thresholds `yaml:"slightly_good" json:"slightly_good"`
	SlightlyBad  scoring.Thresholds `yaml:"slightly_bad" json:"slightly_bad"`
	Bad          scoring.Thresholds `yaml:"bad" json:"bad"`
	VeryBad      scoring.Thresholds `yaml:"very_bad" json:"very_bad"`
}

// Presentations holds the display data of all seven categories.
// A struct rather than a map keeps Hash stable.
type Presentations struct {
	VeryGood     scoring.Presentation `yaml:"very_good" json:"very_good"`
	Good         scoring.Presentation `yaml:"good" json:"good"`
	SlightlyGood scoring.Presentation `yaml:"slightly_good" json:"slightly_good"`
	Balanced     scoring.Presentation `yaml:"balanced" json:"balanced"`
	SlightlyBad  scoring.Presentation `yaml:"slightly_bad" json:"slightly_bad"`
	Bad          scoring.Presentation `yaml:"bad" json:"bad"`
	VeryBad      scoring.Presentation `yaml:"very_bad" json:"very_bad"`
}

// Default mirrors the engine's built-in tables
func Default() *Config {
	bands := scoring.DefaultBands()
	pres := scoring.DefaultPresentations()

	return &Config{
		Meta: Meta{Name: "default", Version: "1"},
		Bands: Bands{
			VeryGood:     bands[0].Thresholds,
			Good:         bands[1].Thresholds,
			SlightlyGood: bands[2].Thresholds,
			VeryBad:      bands[3].Thresholds,
			Bad:          bands[4].Thresholds,
			SlightlyBad:  bands[5].Thresholds,
		},
		Presentations: Presentations{
			VeryGood:     pres[contracts.CategoryVeryGood],
			Good:         pres[contracts.CategoryGood],
			SlightlyGood: pres[contracts.CategorySlightlyGood],
			Balanced:     pres[contracts.CategoryBalanced],
			SlightlyBad:  pres[contracts.CategorySlightlyBad],
			Bad:          pres[contracts.CategoryBad],
			VeryBad:      pres[contracts.CategoryVeryBad],
		},
	}
}

// Engine builds a scoring engine in the fixed band priority order
func (c *Config) Engine() *scoring.Engine {
	bands := []scoring.Band{
		{Category: contracts.CategoryVeryGood, Direction: scoring.Favorable, Thresholds: c.Bands.VeryGood},
		{Category: contracts.CategoryGood, Direction: scoring.Favorable, Thresholds: c.Bands.Good},
		{Category: contracts.CategorySlightlyGood, Direction: scoring.Favorable, Thresholds: c.Bands.SlightlyGood},
		{Category: contracts.CategoryVeryBad, Direction: scoring.Unfavorable, Thresholds: c.Bands.VeryBad},
		{Category: contracts.CategoryBad, Direction: scoring.Unfavorable, Thresholds: c.Bands.Bad},
		{Category: contracts.CategorySlightlyBad, Direction: scoring.Unfavorable, Thresholds: c.Bands.SlightlyBad},
	}

	return scoring.NewEngine(bands, c.presentationMap())
}

func (c *Config) presentationMap() map[contracts.Category]scoring.Presentation {
	return map[contracts.Category]scoring.Presentation{
		contracts.CategoryVeryGood:     c.Presentations.VeryGood,
		contracts.CategoryGood:         c.Presentations.Good,
		contracts.CategorySlightlyGood: c.Presentations.SlightlyGood,
		contracts.CategoryBalanced:     c.Presentations.Balanced,
		contracts.CategorySlightlyBad:  c.Presentations.SlightlyBad,
		contracts.CategoryBad:          c.Presentations.Bad,
		contracts.CategoryVeryBad:      c.Presentations.VeryBad,
	}
}
