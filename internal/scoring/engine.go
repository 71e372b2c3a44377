package scoring

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wonny/readytrade/internal/contracts"
)

// PlaceholderMessage is shown until both sides hold at least one player
const PlaceholderMessage = "Select players on both sides to see analysis"

// Engine classifies trades against an ordered band table.
// ⭐ SSOT: trade verdicts are only computed here
//
// Evaluate is a pure function of its inputs; an Engine is safe for concurrent use.
type Engine struct {
	bands         []Band
	presentations map[contracts.Category]Presentation
}

// NewEngine builds an engine from a band table (evaluated first match wins)
// and a presentation for each category. Missing presentations fall back to
// the defaults.
func NewEngine(bands []Band, presentations map[contracts.Category]Presentation) *Engine {
	pres := DefaultPresentations()
	for cat, p := range presentations {
		pres[cat] = p
	}

	return &Engine{
		bands:         append([]Band(nil), bands...),
		presentations: pres,
	}
}

// Default returns an engine with the built-in tables
func Default() *Engine {
	return NewEngine(DefaultBands(), nil)
}

// Bands returns a copy of the band table
func (e *Engine) Bands() []Band {
	return append([]Band(nil), e.bands...)
}

// Classify returns the category of the first matching band, or Balanced
func (e *Engine) Classify(d Differences) contracts.Category {
	for _, b := range e.bands {
		if b.Matches(d) {
			return b.Category
		}
	}
	return contracts.CategoryBalanced
}

// Presentation returns the display data of category
func (e *Engine) Presentation(category contracts.Category) Presentation {
	return e.presentations[category]
}

// Evaluate computes the verdict for a trade. It never fails: when either
// side is empty the result is a placeholder carrying only the side totals
// and an even bar.
func (e *Engine) Evaluate(giving, getting []contracts.Player) contracts.Verdict {
	givingValue, givingRedraft := sums(giving)
	gettingValue, gettingRedraft := sums(getting)

	v := contracts.Verdict{
		GivingValue:         givingValue,
		GettingValue:        gettingValue,
		GivingRedraftValue:  givingRedraft,
		GettingRedraftValue: gettingRedraft,
	}
	v.GivingPercent, v.GettingPercent = barSplit(givingValue, gettingValue)

	if len(giving) == 0 || len(getting) == 0 {
		v.Placeholder = true
		v.Message = PlaceholderMessage
		return v
	}

	v.ValueDifference = difference(givingValue, gettingValue)
	v.RedraftValueDifference = difference(givingRedraft, gettingRedraft)
	v.GivingAvgRank = averageRank(giving)
	v.GettingAvgRank = averageRank(getting)
	v.RankDifference = v.GivingAvgRank - v.GettingAvgRank

	v.Category = e.Classify(Differences{
		Value:   v.ValueDifference,
		Redraft: v.RedraftValueDifference,
		Rank:    v.RankDifference,
	})

	p := e.Presentation(v.Category)
	v.Narrative = p.Narrative
	v.Color = p.Color
	v.Icon = p.Icon

	v.Favor, v.Summary = summarize(v.ValueDifference)

	return v
}

func sums(players []contracts.Player) (value, redraft int) {
	for _, p := range players {
		value += p.Value
		redraft += p.RedraftValue
	}
	return value, redraft
}

// round1 rounds half away from zero to one decimal place
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// difference is getting minus giving, in hundreds of points, each side
// rounded to one decimal before subtracting
func difference(giving, getting int) float64 {
	d := round1(float64(getting)/100) - round1(float64(giving)/100)
	// strip binary noise such as 50.0-105.2 = -55.2000000001
	return round1(d)
}

func averageRank(players []contracts.Player) float64 {
	n := len(players)
	if n == 0 {
		n = 1
	}
	total := 0
	for _, p := range players {
		total += p.OverallRank
	}
	return float64(total) / float64(n)
}

func barSplit(giving, getting int) (givingPercent, gettingPercent float64) {
	total := giving + getting
	if total == 0 {
		return 50, 50
	}
	givingPercent = float64(giving) / float64(total) * 100
	return givingPercent, 100 - givingPercent
}

func summarize(diff float64) (contracts.Favor, string) {
	if diff == 0 {
		return contracts.FavorEven, ""
	}

	favor := contracts.FavorYou
	if diff < 0 {
		favor = contracts.FavorThem
	}

	abs := math.Abs(diff)
	noun := "differences"
	if abs == 1 {
		noun = "difference"
	}

	return favor, fmt.Sprintf("%s point %s in %s", strconv.FormatFloat(abs, 'f', -1, 64), noun, favor)
}
