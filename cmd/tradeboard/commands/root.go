package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	env        string
	verbose    bool
	sourceKind string
	sourceFile string
	apiURL     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tradeboard",
	Short: "Tradeboard - 봇 거래 성과 분석 대시보드",
	Long: `Tradeboard CLI

Closed-trade analytics for trading bots: win rate, profit factor,
time-weighted return, Sortino ratio and equity curves.

Usage:
  go run ./cmd/tradeboard [command]

Examples:
  go run ./cmd/tradeboard api
  go run ./cmd/tradeboard stats --bot ES-Momentum --from 2024-01-01
  go run ./cmd/tradeboard equity --view per-trade --source file --file trades.csv
  go run ./cmd/tradeboard bots
  go run ./cmd/tradeboard test-db`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment override (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&sourceKind, "source", "", "trade source override (http|postgres|file)")
	rootCmd.PersistentFlags().StringVar(&sourceFile, "file", "", "trade file for --source file (.json or .csv)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "upstream API base URL for --source http")
}
