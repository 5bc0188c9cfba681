package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dealscout",
	Short: "DealScout - business acquisition deal flow engine",
	Long: `DealScout Unified CLI

Aggregates business-for-sale listings from multiple marketplaces into a
canonical, deduplicated catalog, scores each listing for quality and
risk, and runs due diligence analysis for buyers.

Usage:
  go run ./cmd/dealscout [command]

Examples:
  go run ./cmd/dealscout api
  go run ./cmd/dealscout import all
  go run ./cmd/dealscout report <listing-id> --investment 250000
  go run ./cmd/dealscout status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
