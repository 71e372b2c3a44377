package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/readytrade/internal/analyzer"
	"github.com/wonny/readytrade/internal/catalog"
	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/internal/external/fantasycalc"
	"github.com/wonny/readytrade/internal/external/ffcalc"
	"github.com/wonny/readytrade/internal/history"
	"github.com/wonny/readytrade/internal/scoring"
	"github.com/wonny/readytrade/internal/scoringconfig"
	"github.com/wonny/readytrade/pkg/config"
	"github.com/wonny/readytrade/pkg/database"
	"github.com/wonny/readytrade/pkg/httputil"
	"github.com/wonny/readytrade/pkg/logger"
	"github.com/wonny/readytrade/pkg/redis"
)

// app holds the wired dependencies shared by every command
type app struct {
	cfg    *config.Config
	logger *logger.Logger

	redis   *redis.Client
	db      *database.DB
	memory  *catalog.MemoryStore
	catalog *catalog.Cache
	adp     *catalog.ADPBoards
	engine  *scoring.Engine
	history *history.Repository
}

// newApp loads config and builds the catalog, ADP and scoring layers.
// The database is only connected when withHistory is set and DATABASE_URL is present.
func newApp(ctx context.Context, withHistory bool) (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	a := &app{cfg: cfg, logger: log}

	// 3. Connect to Redis (optional)
	a.redis, err = redis.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	// 4. Create HTTP clients, one token bucket per upstream
	valuesHTTP := httputil.New(cfg, log)
	adpHTTP := httputil.New(cfg, log)
	if a.redis.Enabled() {
		limiter := redis.NewRateLimiter(a.redis, "ratelimit")
		valuesHTTP.WithRateLimiter(limiter, redis.FantasyCalcRateLimit)
		adpHTTP.WithRateLimiter(limiter, redis.FFCalcRateLimit)
	}

	// 5. Create upstream clients
	valuesClient := fantasycalc.NewClient(valuesHTTP, log, cfg.FantasyCalc.BaseURL)
	adpClient := ffcalc.NewClient(adpHTTP, log, cfg.FFCalc.BaseURL)

	// 6. Create catalog tiers
	a.memory = catalog.NewMemoryStore(cfg.Catalog.TTL, cfg.Catalog.MaxEntries)
	tiers := []catalog.Store{a.memory}
	var shared *redis.Cache
	if a.redis.Enabled() {
		shared = redis.NewCache(a.redis, "readytrade")
		tiers = append(tiers, catalog.NewRedisStore(shared, cfg.Catalog.TTL))
	}
	a.catalog = catalog.New(valuesClient, log, tiers...)
	a.adp = catalog.NewADPBoards(adpClient, shared, cfg.Catalog.TTL, log)

	// 7. Load scoring bands
	a.engine, err = loadEngine(cfg, log)
	if err != nil {
		a.close()
		return nil, err
	}

	// 8. Connect to database (optional)
	if withHistory {
		a.db, err = database.New(ctx, cfg)
		switch {
		case errors.Is(err, database.ErrDisabled):
			log.Info("DATABASE_URL not set, evaluation history disabled")
		case err != nil:
			a.close()
			return nil, fmt.Errorf("connect to database: %w", err)
		default:
			a.history = history.NewRepository(a.db.Pool)
			if err := a.history.EnsureSchema(ctx); err != nil {
				a.close()
				return nil, fmt.Errorf("ensure history schema: %w", err)
			}
			log.Info("Connected to database")
		}
	}

	return a, nil
}

// loadEngine builds the scoring engine from SCORING_CONFIG, or the built-in bands
func loadEngine(cfg *config.Config, log *logger.Logger) (*scoring.Engine, error) {
	if cfg.ScoringConfigPath == "" {
		return scoring.Default(), nil
	}

	sc, _, err := scoringconfig.Load(cfg.ScoringConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load scoring config: %w", err)
	}

	hash, err := scoringconfig.Hash(sc)
	if err != nil {
		return nil, fmt.Errorf("hash scoring config: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"path":    cfg.ScoringConfigPath,
		"name":    sc.Meta.Name,
		"version": sc.Meta.Version,
		"hash":    hash[:12],
	}).Info("Loaded scoring config")

	return sc.Engine(), nil
}

// evaluator returns an evaluator recording into history when it is enabled
func (a *app) evaluator() *analyzer.Evaluator {
	var recorder analyzer.Recorder
	if a.history != nil {
		recorder = a.history
	}
	return analyzer.NewEvaluator(a.catalog, a.engine, recorder, a.logger)
}

func (a *app) close() {
	a.db.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close redis")
		}
	}
}

// settingsFlags binds league settings flags to a command
type settingsFlags struct {
	dynasty bool
	qbs     int
	teams   int
	ppr     float64
}

func (f *settingsFlags) bind(cmd *cobra.Command) {
	d := contracts.DefaultLeagueSettings
	cmd.Flags().BoolVar(&f.dynasty, "dynasty", d.IsDynasty, "dynasty league values")
	cmd.Flags().IntVar(&f.qbs, "qbs", d.NumQBs, "starting quarterbacks (1 or 2)")
	cmd.Flags().IntVar(&f.teams, "teams", d.NumTeams, "number of teams (8-16)")
	cmd.Flags().Float64Var(&f.ppr, "ppr", d.PPR, "points per reception (0, 0.5 or 1)")
}

func (f *settingsFlags) settings() (contracts.LeagueSettings, error) {
	s := contracts.LeagueSettings{
		IsDynasty: f.dynasty,
		NumQBs:    f.qbs,
		NumTeams:  f.teams,
		PPR:       f.ppr,
	}
	return s, s.Validate()
}
