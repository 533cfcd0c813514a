package cmd

import (
	"github.com/spf13/cobra"

	"debtscan/core"
	"debtscan/internal/contract"
)

// hotspotsCmd ranks files by the debt hours attributed to them.
var hotspotsCmd = &cobra.Command{
	Use:   "hotspots [repo-path]",
	Short: "Show the files carrying the most estimated debt.",
	Long: `Rank individual files by the debt hours attributed to them.

Every finding's hours are spread across the files it names, then
summed per file. Each entry shows the dominant category so you know
what kind of work the file needs first.

Examples:
  # Show the default top 10
  debtscan hotspots

  # Widen the ranking and export it
  debtscan hotspots --top 50 --output csv --output-file hotspots.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHotspots(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run hotspot analysis", err)
		}
	},
}
