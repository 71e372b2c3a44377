package contracts

// Category is the qualitative outcome of a trade evaluation
type Category string

const (
	CategoryVeryGood     Category = "very_good"
	CategoryGood         Category = "good"
	CategorySlightlyGood Category = "slightly_good"
	CategoryBalanced     Category = "balanced"
	CategorySlightlyBad  Category = "slightly_bad"
	CategoryBad          Category = "bad"
	CategoryVeryBad      Category = "very_bad"
)

// Categories lists every category from best to worst
var Categories = []Category{
	CategoryVeryGood,
	CategoryGood,
	CategorySlightlyGood,
	CategoryBalanced,
	CategorySlightlyBad,
	CategoryBad,
	CategoryVeryBad,
}

// Order ranks a category from worst (0) to best (6); -1 if unknown
func (c Category) Order() int {
	for i, cat := range Categories {
		if cat == c {
			return len(Categories) - 1 - i
		}
	}
	return -1
}

// Favor says which side a trade leans to
type Favor string

const (
	FavorYou  Favor = "your favor"
	FavorThem Favor = "their favor"
	FavorEven Favor = "even"
)

// Verdict is derived from the two trade sides on every evaluation.
// When Placeholder is true no classification was made and only Message is meaningful.
type Verdict struct {
	Placeholder bool   `json:"placeholder"`
	Message     string `json:"message,omitempty"`

	GivingValue         int `json:"givingValue"`
	GettingValue        int `json:"gettingValue"`
	GivingRedraftValue  int `json:"givingRedraftValue"`
	GettingRedraftValue int `json:"gettingRedraftValue"`

	ValueDifference        float64 `json:"valueDifference"`
	RedraftValueDifference float64 `json:"redraftValueDifference"`
	GivingAvgRank          float64 `json:"givingAvgRank"`
	GettingAvgRank         float64 `json:"gettingAvgRank"`
	RankDifference         float64 `json:"rankDifference"`

	Category  Category `json:"category,omitempty"`
	Narrative string   `json:"narrative,omitempty"`
	Color     string   `json:"color,omitempty"`
	Icon      string   `json:"icon,omitempty"`
	Favor     Favor    `json:"favor,omitempty"`
	Summary   string   `json:"summary,omitempty"`

	GivingPercent  float64 `json:"givingPercent"`
	GettingPercent float64 `json:"gettingPercent"`
}
