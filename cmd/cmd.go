// Package cmd defines the command-line interface for debtscan.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"debtscan/internal/contract"
	"debtscan/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(hotspotsCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TableOut), "Output format: table or json or markdown or csv")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("window", contract.DefaultWindow, "Duplicate comparison window in normalized lines")
	rootCmd.PersistentFlags().Int("stride", 0, "Window advance step, 1..window (0 = same as window)")
	rootCmd.PersistentFlags().Int("min-block-span", 0, "Minimum normalized span for a duplicate block (0 = same as window)")
	rootCmd.PersistentFlags().Int("complexity-threshold", contract.DefaultComplexityThreshold, "Code lines above which a file counts as complex")
	rootCmd.PersistentFlags().Int("stale-months", contract.DefaultStaleMonths, "Months without modification before a file counts as stale")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Scan history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of hotspotsCmd to Viper
	hotspotsCmd.Flags().Int("top", contract.DefaultTop, "Number of hotspot entries to display")
	if err := viper.BindPFlags(hotspotsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding hotspots flags", err)
	}

	// Bind all flags of trendCmd to Viper
	trendCmd.Flags().Int("commits", contract.DefaultCommits, "Number of commits to analyze, most recent first")
	if err := viper.BindPFlags(trendCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trend flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
