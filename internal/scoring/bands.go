package scoring

import "github.com/wonny/readytrade/internal/contracts"

// Direction says which way a band's thresholds point
type Direction int

const (
	// Favorable bands match when any difference is at or above its threshold
	Favorable Direction = iota
	// Unfavorable bands match when any difference is at or below its threshold
	Unfavorable
)

// Thresholds are the per-signal cut-offs of a band
type Thresholds struct {
	Value   float64 `json:"value" yaml:"value"`
	Redraft float64 `json:"redraft" yaml:"redraft"`
	Rank    float64 `json:"rank" yaml:"rank"`
}

// Band pairs a predicate over the three differences with the category it selects
type Band struct {
	Category   contracts.Category
	Direction  Direction
	Thresholds Thresholds
}

// Matches reports whether any of the three signals crosses the band
func (b Band) Matches(d Differences) bool {
	t := b.Thresholds
	if b.Direction == Favorable {
		return d.Value >= t.Value || d.Redraft >= t.Redraft || d.Rank >= t.Rank
	}
	return d.Value <= t.Value || d.Redraft <= t.Redraft || d.Rank <= t.Rank
}

// Differences are the classification inputs
type Differences struct {
	Value   float64
	Redraft float64
	Rank    float64
}

// DefaultBands returns the built-in band table in priority order.
// Favorable bands come first, so a trade strong on one signal and weak on
// another takes the more favorable category.
func DefaultBands() []Band {
	return []Band{
		{contracts.CategoryVeryGood, Favorable, Thresholds{30, 30, 20}},
		{contracts.CategoryGood, Favorable, Thresholds{15, 15, 12}},
		{contracts.CategorySlightlyGood, Favorable, Thresholds{8, 8, 6}},
		{contracts.CategoryVeryBad, Unfavorable, Thresholds{-30, -30, -20}},
		{contracts.CategoryBad, Unfavorable, Thresholds{-15, -15, -12}},
		{contracts.CategorySlightlyBad, Unfavorable, Thresholds{-8, -8, -6}},
	}
}

// Presentation is the fixed display data of a category
type Presentation struct {
	Narrative string `json:"narrative" yaml:"narrative"`
	Color     string `json:"color" yaml:"color"`
	Icon      string `json:"icon" yaml:"icon"`
}

// DefaultPresentations returns the built-in narrative table
func DefaultPresentations() map[contracts.Category]Presentation {
	return map[contracts.Category]Presentation{
		contracts.CategoryVeryGood: {
			Narrative: "Highway robbery! Accept before they come to their senses.",
			Color:     "green-500",
			Icon:      "party-popper",
		},
		contracts.CategoryGood: {
			Narrative: "Solid win for you. They clearly didn't do their homework.",
			Color:     "green-600",
			Icon:      "thumbs-up",
		},
		contracts.CategorySlightlyGood: {
			Narrative: "Slight edge in your favor. They won't even notice what hit them.",
			Color:     "green-700",
			Icon:      "laugh",
		},
		contracts.CategoryBalanced: {
			Narrative: "Dead even. Flip a coin or go with your gut.",
			Color:     "amber-500",
			Icon:      "meh",
		},
		contracts.CategorySlightlyBad: {
			Narrative: "Slightly unfavorable. Ask for a kicker to even things out.",
			Color:     "red-700",
			Icon:      "frown",
		},
		contracts.CategoryBad: {
			Narrative: "You're getting the short end of the stick here. Hard pass.",
			Color:     "red-600",
			Icon:      "alert-triangle",
		},
		contracts.CategoryVeryBad: {
			Narrative: "Are you trying to get fleeced? Maybe reconsider your life choices.",
			Color:     "red-500",
			Icon:      "skull",
		},
	}
}
