package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/readytrade/internal/selection"
)

// playersCmd represents the players command
var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the player catalog",
	Long: `Fetches the player catalog for the given league settings and
prints the top players in catalog order.

Example:
  go run ./cmd/readytrade players
  go run ./cmd/readytrade players --dynasty --qbs 2 --limit 50`,
	RunE: runPlayers,
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search players by name",
	Long: `Filters the catalog by a case-insensitive substring of the player name.
An empty query lists every player.

Example:
  go run ./cmd/readytrade search jefferson
  go run ./cmd/readytrade search allen --exclude 4984`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

var (
	playersSettings settingsFlags
	playersLimit    int

	searchSettings settingsFlags
	searchLimit    int
	searchExclude  []int
)

func init() {
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(searchCmd)

	playersSettings.bind(playersCmd)
	playersCmd.Flags().IntVar(&playersLimit, "limit", 25, "number of players to print (0 = all)")

	searchSettings.bind(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 25, "number of matches to print (0 = all)")
	searchCmd.Flags().IntSliceVar(&searchExclude, "exclude", nil, "player ids to leave out")
}

func runPlayers(cmd *cobra.Command, args []string) error {
	settings, err := playersSettings.settings()
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.close()

	players, err := a.catalog.GetOrFetch(cmd.Context(), settings)
	if err != nil {
		return fmt.Errorf("fetch players: %w", err)
	}

	PrintHeader("Player Catalog", describeSettings(settings), fmt.Sprintf("%d players", len(players)))
	PrintPlayers(limit(players, playersLimit))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	settings, err := searchSettings.settings()
	if err != nil {
		return err
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.close()

	players, err := a.catalog.GetOrFetch(cmd.Context(), settings)
	if err != nil {
		return fmt.Errorf("fetch players: %w", err)
	}

	matches := selection.Filter(players, searchExclude, query)
	PrintHeader(fmt.Sprintf("Search %q", query), describeSettings(settings), fmt.Sprintf("%d matches", len(matches)))
	if len(matches) == 0 {
		PrintWarning("No players found")
		return nil
	}
	PrintPlayers(limit(matches, searchLimit))
	return nil
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
