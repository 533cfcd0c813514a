package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"debtscan/internal/contract"
	"debtscan/internal/iohistory"
	"debtscan/schema"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need store access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as the default
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	// Get output-related config values (used by export command)
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// Unlike historySetup consumers, the migrate command never opens a store,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := historySetup(); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if cfg.HistoryBackend == schema.SQLiteBackend && cfg.HistoryDBConnect == "" {
		cfg.HistoryDBConnect = contract.GetHistoryDBFilePath()
	}

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// openHistoryStore opens the store configured by historySetup.
func openHistoryStore() contract.HistoryStore {
	store, err := iohistory.NewHistoryStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		contract.LogFatal("Failed to open history store", err)
	}
	return store
}

// historyCmd focused on scan history management.
//
// Note: History subcommands use minimal initialization (historySetup)
// instead of the full sharedSetup used by scan commands. This avoids
// repo path validation and scan config processing for simple store
// operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage stored scan history and exports",
	Long: `Manage the scan history used for longitudinal debt reporting.

When enabled, debtscan records every completed scan, storing:
- Scan metadata (repository, timestamp, total hours)
- Per-category hours, severity and item counts

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show scan history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all recorded scans
  migrate - Run database schema migrations

Examples:
  # Check history status
  debtscan history status

  # Export for analysis in pandas/DuckDB
  debtscan history export --output-file debt-history`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display scan history statistics and connection details",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistoryStore()
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iohistory.PrintHistoryStatus(status)
	},
}

// historyClearCmd clears the scan history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded scans",
	Long: `Delete all stored scans and per-category records.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  debtscan history export --output-file backup
  debtscan history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistoryStore()
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear scan history", err)
		}
		fmt.Println("Scan history cleared successfully.")
	},
}

// historyExportCmd exports scan history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scan history to Parquet for BI tools and analytics",
	Long: `Export all recorded scans to Parquet format for use with analytics tools.

Exports two datasets:
- Scans - one row per recorded scan run
- Scan categories - per-category hours, severity and item counts

Requires: --output-file parameter. The value is used as a prefix;
<prefix>.scans.parquet and <prefix>.scan_categories.parquet are written.

Examples:
  # Export all data
  debtscan history export --output-file debt-history

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('debt-history.scans.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistoryStore()
		defer func() { _ = store.Close() }()

		if err := iohistory.ExecuteExport(store, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export scan history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the scan history store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  debtscan history migrate

  # Migrate to specific version
  debtscan history migrate --target-version 1

  # Rollback to initial state
  debtscan history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iohistory.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
