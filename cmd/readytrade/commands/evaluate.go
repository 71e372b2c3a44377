package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/readytrade/internal/analyzer"
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a trade",
	Long: `Scores a trade: the players you give against the players you get.
Values come from the catalog for the given league settings.
The verdict is recorded when DATABASE_URL is set.

Example:
  go run ./cmd/readytrade evaluate --give 4035 --get 7564,5012
  go run ./cmd/readytrade evaluate --give 4035 --get 7564 --dynasty --qbs 2`,
	RunE: runEvaluate,
}

var (
	evaluateSettings settingsFlags
	evaluateGive     []int
	evaluateGet      []int
)

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateSettings.bind(evaluateCmd)
	evaluateCmd.Flags().IntSliceVar(&evaluateGive, "give", nil, "player ids you give")
	evaluateCmd.Flags().IntSliceVar(&evaluateGet, "get", nil, "player ids you get")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	settings, err := evaluateSettings.settings()
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.evaluator().Evaluate(cmd.Context(), analyzer.TradeRequest{
		Settings: settings,
		Giving:   evaluateGive,
		Getting:  evaluateGet,
	})
	if err != nil {
		return fmt.Errorf("evaluate trade: %w", err)
	}

	PrintHeader("Trade Evaluation", describeSettings(settings))
	PrintTrade(result)
	return nil
}

// PrintTrade prints both sides and the verdict
func PrintTrade(result *analyzer.TradeResult) {
	fmt.Println("\nYou give:")
	PrintPlayers(result.Giving)
	fmt.Println("\nYou get:")
	PrintPlayers(result.Getting)
	fmt.Println()

	v := result.Verdict
	if v.Placeholder {
		PrintWarning(v.Message)
		return
	}

	PrintSeparator()
	fmt.Printf("  %s\n", v.Narrative)
	PrintSeparator()
	PrintKeyValue("Category", string(v.Category), 14)
	PrintKeyValue("Value", fmt.Sprintf("%d → %d (%s)", v.GivingValue, v.GettingValue, signed(v.ValueDifference)), 14)
	PrintKeyValue("Redraft", fmt.Sprintf("%d → %d (%s)", v.GivingRedraftValue, v.GettingRedraftValue, signed(v.RedraftValueDifference)), 14)
	PrintKeyValue("Avg rank", fmt.Sprintf("%.1f → %.1f (%s)", v.GivingAvgRank, v.GettingAvgRank, signed(v.RankDifference)), 14)
	PrintKeyValue("Split", bar(v.GivingPercent, v.GettingPercent, 40), 14)
	if v.Summary != "" {
		PrintKeyValue("Summary", v.Summary, 14)
	}
}

func signed(x float64) string {
	s := strconv.FormatFloat(x, 'f', 1, 64)
	if x > 0 {
		return "+" + s
	}
	return s
}

// bar renders the giving/getting split as a fixed-width gauge
func bar(givingPercent, gettingPercent float64, width int) string {
	left := int(givingPercent / 100 * float64(width))
	if left < 0 {
		left = 0
	}
	if left > width {
		left = width
	}
	return fmt.Sprintf("%.0f%% %s%s %.0f%%", givingPercent, strings.Repeat("█", left), strings.Repeat("░", width-left), gettingPercent)
}
