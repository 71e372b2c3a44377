package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/readytrade/internal/contracts"
	"github.com/wonny/readytrade/internal/scoring"
	"github.com/wonny/readytrade/internal/scoringconfig"
)

// scoringCmd represents the scoring command
var scoringCmd = &cobra.Command{
	Use:   "scoring",
	Short: "Inspect scoring bands",
	Long: `Validates and prints the bands used to classify trades.

Subcommands:
  validate  - validate a scoring YAML file
  show      - print the bands in effect

Example:
  go run ./cmd/readytrade scoring validate config/scoring/default.yaml
  go run ./cmd/readytrade scoring show`,
}

var (
	scoringValidateCmd = &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a scoring config file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScoringValidate,
	}

	scoringShowCmd = &cobra.Command{
		Use:   "show [file]",
		Short: "Print scoring bands (built-in when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScoringShow,
	}
)

func init() {
	rootCmd.AddCommand(scoringCmd)
	scoringCmd.AddCommand(scoringValidateCmd)
	scoringCmd.AddCommand(scoringShowCmd)
}

func runScoringValidate(cmd *cobra.Command, args []string) error {
	cfg, _, err := scoringconfig.Load(args[0])
	if err != nil {
		PrintError(err.Error())
		return err
	}

	hash, err := scoringconfig.Hash(cfg)
	if err != nil {
		return fmt.Errorf("hash scoring config: %w", err)
	}

	PrintSuccess(fmt.Sprintf("%s is valid", args[0]))
	PrintKeyValue("Name", cfg.Meta.Name, 8)
	PrintKeyValue("Version", cfg.Meta.Version, 8)
	PrintKeyValue("Hash", hash, 8)
	return nil
}

func runScoringShow(cmd *cobra.Command, args []string) error {
	engine := scoring.Default()
	title := "Built-in scoring bands"
	if len(args) == 1 {
		cfg, _, err := scoringconfig.Load(args[0])
		if err != nil {
			return err
		}
		engine = cfg.Engine()
		title = fmt.Sprintf("%s (v%s)", cfg.Meta.Name, cfg.Meta.Version)
	}

	PrintHeader(title)
	widths := []int{14, 8, 8, 8, 32}
	PrintTableHeader([]string{"CATEGORY", "VALUE", "REDRAFT", "RANK", "NARRATIVE"}, widths)
	for _, b := range engine.Bands() {
		PrintTableRow([]string{
			string(b.Category),
			bound(b.Direction, b.Thresholds.Value),
			bound(b.Direction, b.Thresholds.Redraft),
			bound(b.Direction, b.Thresholds.Rank),
			engine.Presentation(b.Category).Narrative,
		}, widths)
	}
	PrintTableRow([]string{string(contracts.CategoryBalanced), "-", "-", "-", engine.Presentation(contracts.CategoryBalanced).Narrative}, widths)
	return nil
}

func bound(d scoring.Direction, threshold float64) string {
	if d == scoring.Favorable {
		return fmt.Sprintf(">=%g", threshold)
	}
	return fmt.Sprintf("<=%g", threshold)
}
