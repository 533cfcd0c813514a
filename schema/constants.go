package schema

// Custom string types for type safety.
type (
	// Category represents one debt category.
	Category string

	// Severity represents the urgency grade of a finding.
	Severity string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for scan history.
	DatabaseBackend string

	// Language represents a recognized source language.
	Language string
)

// All debt categories supported.
const (
	Complexity    Category = "complexity"
	Duplication   Category = "duplication"
	TestCoverage  Category = "test_coverage"
	Documentation Category = "documentation"
	Staleness     Category = "staleness"
	Dependencies  Category = "dependencies"
)

// AllCategories lists every category in fixed report order.
var AllCategories = []Category{
	Complexity,
	Duplication,
	TestCoverage,
	Documentation,
	Staleness,
	Dependencies,
}

// categoryTitles maps categories to their display titles.
var categoryTitles = map[Category]string{
	Complexity:    "Complexity Debt",
	Duplication:   "Duplication Debt",
	TestCoverage:  "Test Coverage Debt",
	Documentation: "Documentation Debt",
	Staleness:     "Stale Code Debt",
	Dependencies:  "Dependency Debt",
}

// Title returns the human-readable name of the category.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// Order returns the position of the category in AllCategories,
// used as the final tie-break when sorting findings.
func (c Category) Order() int {
	for i, cat := range AllCategories {
		if cat == c {
			return i
		}
	}
	return len(AllCategories)
}

// All severities supported, from most to least urgent.
const (
	CriticalSeverity Severity = "critical"
	HighSeverity     Severity = "high"
	MediumSeverity   Severity = "medium"
	LowSeverity      Severity = "low"
)

// severityRanks orders severities for sorting; lower rank is more urgent.
var severityRanks = map[Severity]int{
	CriticalSeverity: 0,
	HighSeverity:     1,
	MediumSeverity:   2,
	LowSeverity:      3,
}

// Rank returns the sort rank of the severity. Unknown severities sort last.
func (s Severity) Rank() int {
	if r, ok := severityRanks[s]; ok {
		return r
	}
	return len(severityRanks)
}

// All output modes supported.
const (
	TableOut    OutputMode = "table" // default
	JSONOut     OutputMode = "json"
	MarkdownOut OutputMode = "markdown"
	CSVOut      OutputMode = "csv"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TableOut:    {},
	JSONOut:     {},
	MarkdownOut: {},
	CSVOut:      {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Multipliers are the fixed hour weights applied per category item.
// They are read once from config at startup and never change mid-run.
type Multipliers struct {
	ComplexityHours    float64 `mapstructure:"complexity_hours"`     // per oversized file
	DuplicationHours   float64 `mapstructure:"duplication_hours"`    // per duplicate block
	TestCoverageHours  float64 `mapstructure:"test_coverage_hours"`  // per untested file
	DocumentationHours float64 `mapstructure:"documentation_hours"`  // per undocumented item
	StalenessHours     float64 `mapstructure:"staleness_hours"`      // per stale file
	DependencyBase     float64 `mapstructure:"dependency_base"`      // base dependency score
	DependencyMissing  float64 `mapstructure:"dependency_missing"`   // surcharge when no manifest
}

// DefaultMultipliers returns the standard hour weights.
func DefaultMultipliers() Multipliers {
	return Multipliers{
		ComplexityHours:    10.0,
		DuplicationHours:   3.0,
		TestCoverageHours:  4.0,
		DocumentationHours: 0.5,
		StalenessHours:     6.0,
		DependencyBase:     5.0,
		DependencyMissing:  3.0,
	}
}

// SeverityLadder grades an item count into a severity. Counts strictly
// above a rung get that rung's grade; anything else is Low.
type SeverityLadder struct {
	Critical int `mapstructure:"critical"`
	High     int `mapstructure:"high"`
	Medium   int `mapstructure:"medium"`
}

// Grade returns the severity for the given item count.
func (l SeverityLadder) Grade(count int) Severity {
	switch {
	case count > l.Critical:
		return CriticalSeverity
	case count > l.High:
		return HighSeverity
	case count > l.Medium:
		return MediumSeverity
	default:
		return LowSeverity
	}
}

// DefaultLadders returns the standard count-to-severity ladders per
// count-based category. Dependencies are graded separately by lock age.
func DefaultLadders() map[Category]SeverityLadder {
	return map[Category]SeverityLadder{
		Complexity:    {Critical: 20, High: 10, Medium: 5},
		Duplication:   {Critical: 30, High: 15, Medium: 5},
		TestCoverage:  {Critical: 50, High: 25, Medium: 10},
		Documentation: {Critical: 100, High: 50, Medium: 20},
		Staleness:     {Critical: 30, High: 15, Medium: 5},
	}
}
