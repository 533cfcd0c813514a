package cmd

import (
	"github.com/spf13/cobra"

	"debtscan/core"
	"debtscan/internal/contract"
	"debtscan/internal/iohistory"
)

// scanCmd runs the full debt scan over a repository.
var scanCmd = &cobra.Command{
	Use:   "scan [repo-path]",
	Short: "Scan a repository and report estimated debt per category.",
	Long: `Walk the repository tree and estimate technical debt in developer-hours.

Findings are grouped into six categories:
- complexity: files whose code line count exceeds the threshold
- duplication: repeated normalized code blocks across files
- test_coverage: source files with no matching test file
- documentation: public items without documentation
- staleness: files untouched beyond the staleness horizon
- dependencies: manifest/lock hygiene of the project

Each completed scan is recorded to the history store unless the
backend is set to none.

Examples:
  # Scan the current directory
  debtscan scan

  # Scan another repo with a stricter complexity threshold
  debtscan scan ~/src/service --complexity-threshold 300

  # Emit the report as markdown for a PR comment
  debtscan scan --output markdown --output-file debt.md`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := iohistory.NewHistoryStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
		if err != nil {
			// Scan results are still useful without persistence.
			contract.LogWarn("history store unavailable", err)
			store = nil
		}
		if store != nil {
			defer func() { _ = store.Close() }()
		}

		if err := core.ExecuteScan(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Cannot run scan", err)
		}
	},
}
