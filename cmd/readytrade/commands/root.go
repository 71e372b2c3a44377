package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "readytrade",
	Short: "ReadyTrade - fantasy football trade analyzer",
	Long: `ReadyTrade Unified CLI

Evaluates fantasy football trades against current market values.
Player catalogs are fetched per league format and cached in memory.

Usage:
  go run ./cmd/readytrade [command]

Examples:
  go run ./cmd/readytrade api
  go run ./cmd/readytrade search mahomes --teams 10
  go run ./cmd/readytrade evaluate --give 4035 --get 7564,5012
  go run ./cmd/readytrade scoring validate config/scoring/default.yaml`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
