package history

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/readytrade/internal/analyzer"
	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/pkg/config"
	"github.com/wonny/readytrade/pkg/database"
)

func sampleResult() *analyzer.TradeResult {
	return &analyzer.TradeResult{
		Settings: contracts.DefaultLeagueSettings,
		Giving:   []contracts.Player{{ID: 5856}, {ID: 7}},
		Getting:  []contracts.Player{{ID: 4046}},
		Verdict: contracts.Verdict{
			Category:               contracts.CategoryBad,
			ValueDifference:        -18.4,
			RedraftValueDifference: -9.1,
			RankDifference:         -3.5,
		},
	}
}

func TestFromResult(t *testing.T) {
	now := time.Date(2024, 9, 8, 13, 0, 0, 0, time.UTC)
	e := FromResult(sampleResult(), now)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, []int64{5856, 7}, e.GivingIDs)
	assert.Equal(t, []int64{4046}, e.GettingIDs)
	assert.Equal(t, contracts.CategoryBad, e.Category)
	assert.Equal(t, -18.4, e.ValueDifference)
	assert.Equal(t, now, e.CreatedAt)

	other := FromResult(sampleResult(), now)
	assert.NotEqual(t, e.ID, other.ID)
}

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, DefaultListLimit},
		{-5, DefaultListLimit},
		{1, 1},
		{50, 50},
		{MaxListLimit + 1, MaxListLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampLimit(tt.in), "ClampLimit(%d)", tt.in)
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg)
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db.Pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.Record(ctx, sampleResult()))

	recent, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, contracts.CategoryBad, recent[0].Category)
	assert.Equal(t, contracts.DefaultLeagueSettings, recent[0].Settings)
}
