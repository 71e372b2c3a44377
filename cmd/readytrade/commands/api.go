package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/readytrade/internal/api"
	"github.com/wonny/readytrade/internal/api/handlers"
	"github.com/wonny/readytrade/internal/scheduler"
	"github.com/wonny/readytrade/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST and websocket API server.

This command:
- serves player catalogs and search per league format
- evaluates trades and records them when DATABASE_URL is set
- runs live trade sessions over a websocket
- warms popular catalogs on WARM_SCHEDULE (unless --no-warm)

Endpoints:
  GET  /health                  - Health check, database and job stats
  GET  /api/players             - Player catalog for league settings
  GET  /api/players/search      - Search the catalog by name
  GET  /api/catalog/stats       - Catalog cache counters
  POST /api/trade/evaluate      - Evaluate a trade
  GET  /api/evaluations         - Recent evaluations
  GET  /api/adp/{type}          - ADP board (standard|ppr|half-ppr)
  GET  /ws/session              - Live trade session

Example:
  go run ./cmd/readytrade api
  go run ./cmd/readytrade api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort   string
	apiNoWarm bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default from PORT)")
	apiCmd.Flags().BoolVar(&apiNoWarm, "no-warm", false, "do not schedule catalog warming")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== ReadyTrade API Server ===")

	// 1. Build dependencies
	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.close()

	cfg, log := a.cfg, a.logger

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log.WithFields(map[string]interface{}{
		"port":    cfg.Port,
		"env":     cfg.Env,
		"redis":   a.redis.Enabled(),
		"history": a.history != nil,
	}).Info("Initializing API server")

	// 2. Create scheduler
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewCatalogPruneJob(a.memory, a.adp, log)); err != nil {
		return fmt.Errorf("add prune job: %w", err)
	}
	if !apiNoWarm && cfg.WarmSchedule != "" {
		if err := sched.AddJob(jobs.NewCatalogWarmJob(a.catalog, nil, cfg.WarmSchedule, log)); err != nil {
			return fmt.Errorf("add warm job: %w", err)
		}
	}

	// 3. Create handlers
	var lister handlers.HistoryLister
	var dbHealth handlers.DBHealth
	if a.history != nil {
		lister = a.history
		dbHealth = a.db
	}
	h := api.Handlers{
		Health:  handlers.NewHealthHandler(dbHealth, sched, log),
		Players: handlers.NewPlayerHandler(a.catalog, log),
		Trade:   handlers.NewTradeHandler(a.evaluator(), log),
		ADP:     handlers.NewADPHandler(a.adp, log),
		History: handlers.NewHistoryHandler(lister, log),
		Session: handlers.NewSessionHandler(a.catalog, a.engine, cfg.Search.Debounce, cfg.Search.Cooldown, cfg.CORSAllowedOrigins, log),
	}

	// 4. Create router and server
	router := api.NewRouter(h, cfg.CORSAllowedOrigins, log)
	server := api.New(cfg, log, router)

	sched.Start()
	defer sched.Stop()

	// 5. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	PrintList([]string{
		"GET  /health",
		"GET  /api/players",
		"GET  /api/players/search?q=",
		"GET  /api/catalog/stats",
		"POST /api/trade/evaluate",
		"GET  /api/evaluations",
		"GET  /api/adp/{type}",
		"GET  /ws/session",
	})
	fmt.Println("\nScheduled jobs:")
	PrintList(sched.GetAllJobs())
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal or a server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
