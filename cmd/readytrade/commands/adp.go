package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/readytrade/internal/contracts"
)

// adpCmd represents the adp command
var adpCmd = &cobra.Command{
	Use:   "adp [type]",
	Short: "Show an ADP board",
	Long: `Fetches average draft position for a scoring format.
Type is one of standard, ppr, half-ppr (default standard).

Example:
  go run ./cmd/readytrade adp
  go run ./cmd/readytrade adp ppr --teams 10 --year 2024`,
	Args: cobra.MaximumNArgs(1),
	RunE: runADP,
}

var (
	adpTeams int
	adpYear  int
	adpLimit int
)

func init() {
	rootCmd.AddCommand(adpCmd)

	adpCmd.Flags().IntVar(&adpTeams, "teams", 0, "league size (omitted when 0)")
	adpCmd.Flags().IntVar(&adpYear, "year", 0, "season (omitted when 0)")
	adpCmd.Flags().IntVar(&adpLimit, "limit", 25, "number of players to print (0 = all)")
}

func runADP(cmd *cobra.Command, args []string) error {
	raw := ""
	if len(args) == 1 {
		raw = args[0]
	}
	adpType, err := contracts.ParseADPType(raw)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.close()

	board, err := a.adp.Get(cmd.Context(), contracts.ADPQuery{Type: adpType, Teams: adpTeams, Year: adpYear})
	if err != nil {
		return fmt.Errorf("fetch adp: %w", err)
	}

	PrintHeader(fmt.Sprintf("ADP · %s", adpType),
		fmt.Sprintf("%d teams · %d rounds · %d drafts", board.Meta.Teams, board.Meta.Rounds, board.Meta.TotalDrafts),
		fmt.Sprintf("%s ~ %s", board.Meta.StartDate, board.Meta.EndDate),
	)

	widths := []int{6, 26, 4, 5, 5}
	PrintTableHeader([]string{"ADP", "NAME", "POS", "TEAM", "BYE"}, widths)
	for _, p := range limit(board.Players, adpLimit) {
		PrintTableRow([]string{p.ADPFormatted, p.Name, p.Position, p.Team, strconv.Itoa(p.Bye)}, widths)
	}
	return nil
}
