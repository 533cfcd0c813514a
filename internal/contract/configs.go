package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"debtscan/schema"
)

// Default values for configuration.
const (
	DefaultWindow              = 10
	DefaultComplexityThreshold = 500
	DefaultStaleMonths         = 12
	DefaultTop                 = 10
	DefaultCommits             = 10
	MaxTop                     = 200
	MaxCommits                 = 500
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for a scan.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath string

	Window       int // Comparison window size in normalized lines
	Stride       int // Window advance step, 1..Window
	MinBlockSpan int // Minimum normalized span for a reported block

	ComplexityThreshold int // Code lines above which a file counts as complex
	StaleMonths         int // Months without modification before a file is stale

	Top     int // Maximum hotspot entries to show
	Commits int // Number of commits to cover in a trend run
	Workers int // Number of concurrent workers for extraction

	Excludes []string // Path prefixes/suffixes/globs to ignore

	Output     schema.OutputMode
	OutputFile string
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	Multipliers schema.Multipliers
	Ladders     map[schema.Category]schema.SeverityLadder
}

// Clone returns a copy of the config safe for per-request overrides.
// Slices and maps are duplicated so callers never mutate the base.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Excludes = append([]string(nil), c.Excludes...)
	clone.Ladders = make(map[schema.Category]schema.SeverityLadder, len(c.Ladders))
	for k, v := range c.Ladders {
		clone.Ladders[k] = v
	}
	return &clone
}

// MultipliersRawInput holds hour-weight overrides from the YAML config
// file. Float pointers distinguish "absent" from zero.
type MultipliersRawInput struct {
	Complexity        *float64 `mapstructure:"complexity"`
	Duplication       *float64 `mapstructure:"duplication"`
	TestCoverage      *float64 `mapstructure:"test_coverage"`
	Documentation     *float64 `mapstructure:"documentation"`
	Staleness         *float64 `mapstructure:"staleness"`
	DependencyBase    *float64 `mapstructure:"dependency_base"`
	DependencyMissing *float64 `mapstructure:"dependency_missing"`
}

// LadderRawInput holds the severity rungs for one category from the
// YAML config file.
type LadderRawInput struct {
	Critical *int `mapstructure:"critical"`
	High     *int `mapstructure:"high"`
	Medium   *int `mapstructure:"medium"`
}

// LaddersRawInput holds all severity ladder overrides from the YAML
// config file.
type LaddersRawInput struct {
	Complexity    *LadderRawInput `mapstructure:"complexity"`
	Duplication   *LadderRawInput `mapstructure:"duplication"`
	TestCoverage  *LadderRawInput `mapstructure:"test_coverage"`
	Documentation *LadderRawInput `mapstructure:"documentation"`
	Staleness     *LadderRawInput `mapstructure:"staleness"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output              string `mapstructure:"output"`
	OutputFile          string `mapstructure:"output-file"`
	Window              int    `mapstructure:"window"`
	Stride              int    `mapstructure:"stride"`
	MinBlockSpan        int    `mapstructure:"min-block-span"`
	ComplexityThreshold int    `mapstructure:"complexity-threshold"`
	StaleMonths         int    `mapstructure:"stale-months"`
	Workers             int    `mapstructure:"workers"`
	Exclude             string `mapstructure:"exclude"`
	Color               string `mapstructure:"color"`
	Width               int    `mapstructure:"width"`
	HistoryBackend      string `mapstructure:"history-backend"`
	HistoryDBConnect    string `mapstructure:"history-db-connect"`

	// --- Fields from hotspotsCmd.Flags() ---
	Top int `mapstructure:"top"`

	// --- Fields from trendCmd.Flags() ---
	Commits int `mapstructure:"commits"`

	// --- Hour weights from config file ---
	Multipliers MultipliersRawInput `mapstructure:"multipliers"`

	// --- Severity ladders from config file ---
	Ladders LaddersRawInput `mapstructure:"ladders"`
}

// ProcessAndValidate performs all parsing and validation on the raw
// inputs and updates the final Config struct. Any error here is fatal
// before scan work begins.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateEngineInputs(cfg, input); err != nil {
		return err
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processMultipliers(cfg, input); err != nil {
		return err
	}
	if err := processLadders(cfg, input); err != nil {
		return err
	}
	if err := resolveRepoPath(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateEngineInputs checks the duplication-engine and detector knobs.
func validateEngineInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Window <= 0 {
		return fmt.Errorf("window must be greater than 0 (received %d)", input.Window)
	}
	cfg.Window = input.Window

	stride := input.Stride
	if stride == 0 {
		stride = cfg.Window // default stride equals the window
	}
	if stride < 1 || stride > cfg.Window {
		return fmt.Errorf("stride must be between 1 and window size %d (received %d)", cfg.Window, input.Stride)
	}
	cfg.Stride = stride

	minSpan := input.MinBlockSpan
	if minSpan == 0 {
		minSpan = cfg.Window
	}
	if minSpan < 1 {
		return fmt.Errorf("min-block-span must be greater than 0 (received %d)", input.MinBlockSpan)
	}
	cfg.MinBlockSpan = minSpan

	if input.ComplexityThreshold <= 0 {
		return fmt.Errorf("complexity-threshold must be greater than 0 (received %d)", input.ComplexityThreshold)
	}
	cfg.ComplexityThreshold = input.ComplexityThreshold

	if input.StaleMonths <= 0 {
		return fmt.Errorf("stale-months must be greater than 0 (received %d)", input.StaleMonths)
	}
	cfg.StaleMonths = input.StaleMonths

	return nil
}

// validateSimpleInputs processes and validates all non-engine fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Top <= 0 || input.Top > MaxTop {
		return fmt.Errorf("top must be greater than 0 and cannot exceed %d (received %d)", MaxTop, input.Top)
	}
	cfg.Top = input.Top

	if input.Commits <= 0 || input.Commits > MaxCommits {
		return fmt.Errorf("commits must be greater than 0 and cannot exceed %d (received %d)", MaxCommits, input.Commits)
	}
	cfg.Commits = input.Commits

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be table, json, markdown, csv", input.Output)
	}

	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// Excludes: generated and lock artifacts first, then user additions.
	defaults := []string{
		"package-lock.json", "yarn.lock", "go.sum", "Pipfile.lock", "uv.lock",
		".min.js", ".min.css",
		"dist/", "build/", "out/", "target/", "bin/",
	}
	cfg.Excludes = defaults
	if input.Exclude != "" {
		parts := strings.SplitSeq(input.Exclude, ",")
		for p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				cfg.Excludes = append(cfg.Excludes, trimmed)
			}
		}
	}

	return nil
}

// processMultipliers merges config-file overrides over the default hour
// weights and rejects negative values.
func processMultipliers(cfg *Config, input *ConfigRawInput) error {
	m := schema.DefaultMultipliers()
	raw := input.Multipliers

	apply := func(dst *float64, src *float64, name string) error {
		if src == nil {
			return nil
		}
		if *src < 0 {
			return fmt.Errorf("multiplier %s must not be negative (received %.2f)", name, *src)
		}
		*dst = *src
		return nil
	}

	if err := apply(&m.ComplexityHours, raw.Complexity, "complexity"); err != nil {
		return err
	}
	if err := apply(&m.DuplicationHours, raw.Duplication, "duplication"); err != nil {
		return err
	}
	if err := apply(&m.TestCoverageHours, raw.TestCoverage, "test_coverage"); err != nil {
		return err
	}
	if err := apply(&m.DocumentationHours, raw.Documentation, "documentation"); err != nil {
		return err
	}
	if err := apply(&m.StalenessHours, raw.Staleness, "staleness"); err != nil {
		return err
	}
	if err := apply(&m.DependencyBase, raw.DependencyBase, "dependency_base"); err != nil {
		return err
	}
	if err := apply(&m.DependencyMissing, raw.DependencyMissing, "dependency_missing"); err != nil {
		return err
	}

	cfg.Multipliers = m
	return nil
}

// processLadders merges config-file overrides over the default severity
// ladders and checks that rungs stay strictly ordered.
func processLadders(cfg *Config, input *ConfigRawInput) error {
	ladders := schema.DefaultLadders()
	overrides := map[schema.Category]*LadderRawInput{
		schema.Complexity:    input.Ladders.Complexity,
		schema.Duplication:   input.Ladders.Duplication,
		schema.TestCoverage:  input.Ladders.TestCoverage,
		schema.Documentation: input.Ladders.Documentation,
		schema.Staleness:     input.Ladders.Staleness,
	}

	for category, raw := range overrides {
		if raw == nil {
			continue
		}
		ladder := ladders[category]
		if raw.Critical != nil {
			ladder.Critical = *raw.Critical
		}
		if raw.High != nil {
			ladder.High = *raw.High
		}
		if raw.Medium != nil {
			ladder.Medium = *raw.Medium
		}
		if ladder.Medium < 0 || ladder.Medium >= ladder.High || ladder.High >= ladder.Critical {
			return fmt.Errorf("ladder for %s must satisfy 0 <= medium < high < critical (received %d/%d/%d)",
				category, ladder.Medium, ladder.High, ladder.Critical)
		}
		ladders[category] = ladder
	}

	cfg.Ladders = ladders
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// resolveRepoPath resolves the positional repository path to an
// absolute directory.
func resolveRepoPath(cfg *Config, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	absPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("repository path %q is not accessible: %w", searchPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("repository path %q is not a directory", searchPath)
	}

	cfg.RepoPath = absPath
	return nil
}
