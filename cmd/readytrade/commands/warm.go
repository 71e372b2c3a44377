package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/readytrade/internal/scheduler"
	"github.com/wonny/readytrade/internal/scheduler/jobs"
)

// warmCmd represents the warm command
var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Fetch popular catalogs once",
	Long: `Runs the catalog warm job immediately for the popular league formats.
With REDIS_ENABLED the catalogs land in the shared tier and are served
to every API instance. Without it the catalogs only live in this
process, so the command refuses to run unless --force is given.

Example:
  go run ./cmd/readytrade warm
  go run ./cmd/readytrade warm --force`,
	RunE: runWarm,
}

var warmForce bool

// errWarmLocalOnly is returned when warming would only fill the in-process tier
var errWarmLocalOnly = errors.New("REDIS_ENABLED is false: warmed catalogs would be discarded on exit (use --force to run anyway)")

func init() {
	rootCmd.AddCommand(warmCmd)

	warmCmd.Flags().BoolVar(&warmForce, "force", false, "warm even when no shared cache is configured")
}

// checkWarmTarget refuses a warm run that has no shared tier to fill
func checkWarmTarget(redisEnabled, force bool) error {
	if redisEnabled || force {
		return nil
	}
	return errWarmLocalOnly
}

func runWarm(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.close()

	if err := checkWarmTarget(a.redis.Enabled(), warmForce); err != nil {
		return err
	}
	if !a.redis.Enabled() {
		PrintWarning("REDIS_ENABLED is false: catalogs are process-local and discarded on exit")
	}

	sched := scheduler.New(a.logger).WithRetry(0, 0)
	defer sched.Stop()
	job := jobs.NewCatalogWarmJob(a.catalog, nil, "@every 6h", a.logger)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("add warm job: %w", err)
	}

	PrintHeader("Catalog Warm", fmt.Sprintf("%d league formats", len(jobs.PopularSettings)))
	result, err := sched.RunJob(job.Name())
	if err != nil {
		return err
	}

	stats := a.catalog.Stats()
	PrintKeyValue("Fetches", strconv.FormatInt(stats.Fetches, 10), 9)
	PrintKeyValue("Failures", strconv.FormatInt(stats.Failures, 10), 9)
	PrintKeyValue("Duration", result.Duration.String(), 9)
	fmt.Println()

	history, err := sched.GetJobHistory(job.Name())
	if err != nil {
		return err
	}
	for _, run := range history {
		status := "ok"
		if !run.Success {
			status = "failed"
		}
		PrintKeyValue(run.StartTime.Format(time.TimeOnly), fmt.Sprintf("%s %s (%s)", run.JobName, status, run.Duration.Round(time.Millisecond)), 9)
	}
	fmt.Println()

	if !result.Success {
		PrintError(result.Error)
		return fmt.Errorf("warm failed")
	}
	PrintSuccess("Catalogs warmed")
	return nil
}
