package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/readytrade/internal/analyzer"
	"github.com/wonny/readytrade/internal/contracts"
)

// DefaultListLimit caps ListRecent when no positive limit is given
const DefaultListLimit = 20

// MaxListLimit is the largest page ListRecent returns
const MaxListLimit = 200

// Evaluation is one persisted trade verdict
type Evaluation struct {
	ID                     uuid.UUID                `json:"id"`
	Settings               contracts.LeagueSettings `json:"settings"`
	GivingIDs              []int64                  `json:"givingIds"`
	GettingIDs             []int64                  `json:"gettingIds"`
	Category               contracts.Category       `json:"category"`
	ValueDifference        float64                  `json:"valueDifference"`
	RedraftValueDifference float64                  `json:"redraftValueDifference"`
	RankDifference         float64                  `json:"rankDifference"`
	CreatedAt              time.Time                `json:"createdAt"`
}

// FromResult converts an evaluated trade into a history row
func FromResult(result *analyzer.TradeResult, now time.Time) Evaluation {
	return Evaluation{
		ID:                     uuid.New(),
		Settings:               result.Settings,
		GivingIDs:              toInt64(contracts.PlayerIDs(result.Giving)),
		GettingIDs:             toInt64(contracts.PlayerIDs(result.Getting)),
		Category:               result.Verdict.Category,
		ValueDifference:        result.Verdict.ValueDifference,
		RedraftValueDifference: result.Verdict.RedraftValueDifference,
		RankDifference:         result.Verdict.RankDifference,
		CreatedAt:              now,
	}
}

func toInt64(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

// Repository handles evaluation history persistence
// ⭐ SSOT: evaluation history is only read and written here
type Repository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewRepository creates a new history repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool, now: time.Now}
}

// EnsureSchema creates the history table if missing
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE SCHEMA IF NOT EXISTS trade;
		CREATE TABLE IF NOT EXISTS trade.evaluations (
			id UUID PRIMARY KEY,
			settings JSONB NOT NULL,
			settings_key TEXT NOT NULL,
			giving_ids BIGINT[] NOT NULL,
			getting_ids BIGINT[] NOT NULL,
			category TEXT NOT NULL,
			value_difference DOUBLE PRECISION NOT NULL,
			redraft_value_difference DOUBLE PRECISION NOT NULL,
			rank_difference DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS evaluations_created_at_idx ON trade.evaluations (created_at DESC);
	`

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure history schema: %w", err)
	}
	return nil
}

// Record saves an evaluated trade
func (r *Repository) Record(ctx context.Context, result *analyzer.TradeResult) error {
	return r.Save(ctx, FromResult(result, r.now()))
}

// Save inserts an evaluation
func (r *Repository) Save(ctx context.Context, e Evaluation) error {
	settingsJSON, err := json.Marshal(e.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	query := `
		INSERT INTO trade.evaluations (
			id, settings, settings_key, giving_ids, getting_ids, category,
			value_difference, redraft_value_difference, rank_difference, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.pool.Exec(ctx, query,
		e.ID, settingsJSON, e.Settings.Key(), e.GivingIDs, e.GettingIDs, string(e.Category),
		e.ValueDifference, e.RedraftValueDifference, e.RankDifference, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save evaluation: %w", err)
	}

	return nil
}

// ListRecent returns the newest evaluations first
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Evaluation, error) {
	limit = ClampLimit(limit)

	query := `
		SELECT id, settings, giving_ids, getting_ids, category,
		       value_difference, redraft_value_difference, rank_difference, created_at
		FROM trade.evaluations
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := make([]Evaluation, 0, limit)
	for rows.Next() {
		var e Evaluation
		var settingsJSON []byte
		var category string

		if err := rows.Scan(
			&e.ID, &settingsJSON, &e.GivingIDs, &e.GettingIDs, &category,
			&e.ValueDifference, &e.RedraftValueDifference, &e.RankDifference, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}

		if err := json.Unmarshal(settingsJSON, &e.Settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
		}
		e.Category = contracts.Category(category)

		evaluations = append(evaluations, e)
	}

	return evaluations, rows.Err()
}

// ClampLimit maps a requested page size into [1, MaxListLimit]
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
