package cmd

import (
	"github.com/spf13/cobra"

	"debtscan/core"
	"debtscan/internal/contract"
)

// trendCmd tracks debt totals across recent commits.
var trendCmd = &cobra.Command{
	Use:   "trend [repo-path]",
	Short: "Track estimated debt across recent commits.",
	Long: `Replay the scan at each of the last N commits and report how the
debt total moved, oldest commit first.

The repository must be a Git repository. Commits whose tree cannot be
loaded are kept in the series but marked as skipped.

Examples:
  # Trend over the default last 10 commits
  debtscan trend

  # Longer horizon with per-commit deltas in markdown
  debtscan trend --commits 50 --output markdown`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := contract.NewLocalGitClient()
		if err := core.ExecuteTrend(rootCtx, cfg, client); err != nil {
			contract.LogFatal("Cannot run trend analysis", err)
		}
	},
}
