package analyzer

import (
	"context"

	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/internal/scoring"
	"github.com/wonny/readytrade/internal/selection"
	"github.com/wonny/readytrade/pkg/logger"
)

// Recorder persists completed evaluations
type Recorder interface {
	Record(ctx context.Context, result *TradeResult) error
}

// TradeRequest names both sides of a trade by player id
type TradeRequest struct {
	Settings contracts.LeagueSettings `json:"settings"`
	Giving   []int                    `json:"giving"`
	Getting  []int                    `json:"getting"`
}

// TradeResult is an evaluated trade with the resolved players
type TradeResult struct {
	Settings contracts.LeagueSettings `json:"settings"`
	Giving   []contracts.Player       `json:"giving"`
	Getting  []contracts.Player       `json:"getting"`
	Verdict  contracts.Verdict        `json:"verdict"`
}

// Evaluator scores trades given by player id, without session state
type Evaluator struct {
	catalog  Catalog
	engine   *scoring.Engine
	recorder Recorder
	logger   *logger.Logger
}

// NewEvaluator creates an evaluator. recorder may be nil.
func NewEvaluator(catalog Catalog, engine *scoring.Engine, recorder Recorder, log *logger.Logger) *Evaluator {
	return &Evaluator{
		catalog:  catalog,
		engine:   engine,
		recorder: recorder,
		logger:   log,
	}
}

// Engine returns the scoring engine in use
func (e *Evaluator) Engine() *scoring.Engine {
	return e.engine
}

// Evaluate resolves both sides against the catalog for req.Settings and
// scores them. Duplicate ids on a side count once. Non-placeholder results
// are recorded; a recording failure is logged, not returned.
func (e *Evaluator) Evaluate(ctx context.Context, req TradeRequest) (*TradeResult, error) {
	if err := req.Settings.Validate(); err != nil {
		return nil, err
	}

	players, err := e.catalog.GetOrFetch(ctx, req.Settings)
	if err != nil {
		return nil, err
	}
	index := contracts.IndexByID(players)

	giving, err := resolve(index, req.Giving)
	if err != nil {
		return nil, err
	}
	getting, err := resolve(index, req.Getting)
	if err != nil {
		return nil, err
	}

	result := &TradeResult{
		Settings: req.Settings,
		Giving:   giving,
		Getting:  getting,
		Verdict:  e.engine.Evaluate(giving, getting),
	}

	if e.recorder != nil && !result.Verdict.Placeholder {
		if err := e.recorder.Record(ctx, result); err != nil {
			e.logger.WithError(err).Warn("Failed to record evaluation")
		}
	}

	return result, nil
}

func resolve(index map[int]contracts.Player, ids []int) ([]contracts.Player, error) {
	side := &selection.Side{}
	for _, id := range ids {
		p, ok := index[id]
		if !ok {
			return nil, UnknownPlayerError{ID: id}
		}
		side.Select(p)
	}
	return side.Players(), nil
}
