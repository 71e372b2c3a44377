package scoringconfig

import (
	"fmt"

	"github.com/wonny/readytrade/internal/scoring"
)

// ValidationError reports an invalid field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks band ordering and that every category has display data.
// Favorable thresholds must be positive and strictly descending from
// very_good to slightly_good; unfavorable ones negative and strictly
// ascending from very_bad to slightly_bad.
func Validate(cfg *Config) error {
	if cfg.Meta.Name == "" {
		return ValidationError{"meta.name", "required"}
	}

	b := cfg.Bands
	if err := validateDescending("bands", []namedThresholds{
		{"very_good", b.VeryGood},
		{"good", b.Good},
		{"slightly_good", b.SlightlyGood},
	}); err != nil {
		return err
	}
	if err := validateAscending("bands", []namedThresholds{
		{"very_bad", b.VeryBad},
		{"bad", b.Bad},
		{"slightly_bad", b.SlightlyBad},
	}); err != nil {
		return err
	}

	p := cfg.Presentations
	for _, np := range []struct {
		name string
		pres scoring.Presentation
	}{
		{"very_good", p.VeryGood},
		{"good", p.Good},
		{"slightly_good", p.SlightlyGood},
		{"balanced", p.Balanced},
		{"slightly_bad", p.SlightlyBad},
		{"bad", p.Bad},
		{"very_bad", p.VeryBad},
	} {
		field := "presentations." + np.name
		if np.pres.Narrative == "" {
			return ValidationError{field + ".narrative", "required"}
		}
		if np.pres.Color == "" {
			return ValidationError{field + ".color", "required"}
		}
	}

	return nil
}

type namedThresholds struct {
	name string
	t    scoring.Thresholds
}

type signal struct {
	name string
	v    float64
}

func signals(t scoring.Thresholds) []signal {
	return []signal{{"value", t.Value}, {"redraft", t.Redraft}, {"rank", t.Rank}}
}

func validateDescending(prefix string, bands []namedThresholds) error {
	for i, nb := range bands {
		for j, s := range signals(nb.t) {
			field := fmt.Sprintf("%s.%s.%s", prefix, nb.name, s.name)
			if s.v <= 0 {
				return ValidationError{field, "must be > 0"}
			}
			if i > 0 {
				prev := signals(bands[i-1].t)[j].v
				if s.v >= prev {
					return ValidationError{field, fmt.Sprintf("must be < %s (%g)", bands[i-1].name, prev)}
				}
			}
		}
	}
	return nil
}

func validateAscending(prefix string, bands []namedThresholds) error {
	for i, nb := range bands {
		for j, s := range signals(nb.t) {
			field := fmt.Sprintf("%s.%s.%s", prefix, nb.name, s.name)
			if s.v >= 0 {
				return ValidationError{field, "must be < 0"}
			}
			if i > 0 {
				prev := signals(bands[i-1].t)[j].v
				if s.v <= prev {
					return ValidationError{field, fmt.Sprintf("must be > %s (%g)", bands[i-1].name, prev)}
				}
			}
		}
	}
	return nil
}
