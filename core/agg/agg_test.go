package agg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debtscan/schema"
)

func defaultSettings() (schema.Multipliers, map[schema.Category]schema.SeverityLadder) {
	return schema.DefaultMultipliers(), schema.DefaultLadders()
}

// emptyInputs returns inputs with every category present but empty.
func emptyInputs() Inputs {
	return Inputs{
		Complexity:    schema.Finding{Category: schema.Complexity},
		TestCoverage:  schema.Finding{Category: schema.TestCoverage},
		Documentation: schema.Finding{Category: schema.Documentation},
		Staleness:     schema.Finding{Category: schema.Staleness},
		Dependency: schema.DependencyScore{
			Hours:    5.0,
			Severity: schema.LowSeverity,
		},
	}
}

func TestBuildReportSingleComplexFile(t *testing.T) {
	// One 850-line file, nothing else: 10.0 complexity hours plus the
	// dependency base, zero in the remaining categories.
	multipliers, ladders := defaultSettings()
	in := emptyInputs()
	in.Complexity = schema.Finding{
		Category: schema.Complexity,
		Items:    1,
		Files:    []string{"big.py (850 lines)"},
		PerFile:  map[string]int{"big.py": 1},
	}

	report := BuildReport("/repo", time.Now(), in, multipliers, ladders)

	complexity := report.FindingFor(schema.Complexity)
	require.NotNil(t, complexity)
	assert.Equal(t, 10.0, complexity.Hours)
	assert.Equal(t, schema.LowSeverity, complexity.Severity)

	assert.Zero(t, report.FindingFor(schema.Duplication).Hours)
	assert.Zero(t, report.FindingFor(schema.TestCoverage).Hours)
	assert.Zero(t, report.FindingFor(schema.Documentation).Hours)
	assert.Zero(t, report.FindingFor(schema.Staleness).Hours)
	assert.Equal(t, 15.0, report.TotalHours)
}

func TestBuildReportSingleDuplicateBlock(t *testing.T) {
	multipliers, ladders := defaultSettings()
	in := emptyInputs()
	in.Duplication = []schema.DuplicateBlock{{
		Span: 10,
		Locations: []schema.BlockLocation{
			{Path: "first.py", StartLine: 1, EndLine: 10},
			{Path: "second.py", StartLine: 1, EndLine: 10},
		},
	}}

	report := BuildReport("/repo", time.Now(), in, multipliers, ladders)

	dup := report.FindingFor(schema.Duplication)
	assert.Equal(t, 3.0, dup.Hours)
	require.Len(t, dup.Files, 1)
	assert.Contains(t, dup.Files[0], "first.py:1")
}

func TestBuildReportTotalIsExactSum(t *testing.T) {
	multipliers, ladders := defaultSettings()
	in := emptyInputs()
	in.Documentation = schema.Finding{
		Category: schema.Documentation,
		Items:    3,
		PerFile:  map[string]int{"a.py": 3},
	}
	in.Staleness = schema.Finding{
		Category: schema.Staleness,
		Items:    2,
		PerFile:  map[string]int{"b.py": 1, "c.py": 1},
	}

	report := BuildReport("/repo", time.Now(), in, multipliers, ladders)

	sum := 0.0
	for _, f := range report.Findings {
		sum += f.Hours
	}
	assert.Equal(t, sum, report.TotalHours)
	assert.Equal(t, 1.5, report.FindingFor(schema.Documentation).Hours)
	assert.Equal(t, 12.0, report.FindingFor(schema.Staleness).Hours)
}

func TestBuildReportIdempotent(t *testing.T) {
	multipliers, ladders := defaultSettings()
	in := emptyInputs()
	in.Complexity = schema.Finding{Category: schema.Complexity, Items: 7, PerFile: map[string]int{"x.py": 7}}
	scannedAt := time.Unix(1700000000, 0)

	first := BuildReport("/repo", scannedAt, in, multipliers, ladders)
	second := BuildReport("/repo", scannedAt, in, multipliers, ladders)

	assert.Equal(t, first, second)
}

func TestBuildReportSeverityLadders(t *testing.T) {
	multipliers, ladders := defaultSettings()

	testCases := []struct {
		name     string
		items    int
		expected schema.Severity
	}{
		{"low", 3, schema.LowSeverity},
		{"medium", 6, schema.MediumSeverity},
		{"high", 11, schema.HighSeverity},
		{"critical", 21, schema.CriticalSeverity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := emptyInputs()
			in.Complexity = schema.Finding{Category: schema.Complexity, Items: tc.items}
			report := BuildReport("/repo", time.Now(), in, multipliers, ladders)
			assert.Equal(t, tc.expected, report.FindingFor(schema.Complexity).Severity)
		})
	}
}

func TestBuildReportDegradedCategoryCaveat(t *testing.T) {
	multipliers, ladders := defaultSettings()
	in := emptyInputs()
	in.Staleness = ZeroFinding(schema.Staleness, "file times unavailable")

	report := BuildReport("/repo", time.Now(), in, multipliers, ladders)

	stale := report.FindingFor(schema.Staleness)
	assert.Zero(t, stale.Hours)
	assert.Equal(t, "file times unavailable", stale.Caveat)
	assert.Equal(t, schema.LowSeverity, stale.Severity)
}

func TestBuildHotspots(t *testing.T) {
	multipliers, _ := defaultSettings()
	in := emptyInputs()
	in.Complexity = schema.Finding{Category: schema.Complexity, PerFile: map[string]int{"big.py": 1}}
	in.TestCoverage = schema.Finding{Category: schema.TestCoverage, PerFile: map[string]int{"big.py": 1, "other.py": 1}}
	in.Duplication = []schema.DuplicateBlock{{
		Span: 10,
		Locations: []schema.BlockLocation{
			{Path: "other.py", StartLine: 1, EndLine: 10},
			{Path: "third.py", StartLine: 5, EndLine: 14},
		},
	}}
	sizes := map[string]int{"big.py": 900, "other.py": 100, "third.py": 50}

	entries := BuildHotspots(in, multipliers, sizes, 10)

	require.Len(t, entries, 3)
	assert.Equal(t, "big.py", entries[0].Path)
	assert.Equal(t, 14.0, entries[0].Hours)
	assert.Equal(t, schema.Complexity, entries[0].Category)

	assert.Equal(t, "other.py", entries[1].Path)
	assert.Equal(t, 7.0, entries[1].Hours)

	assert.Equal(t, "third.py", entries[2].Path)
	assert.Equal(t, 3.0, entries[2].Hours)
	assert.Equal(t, schema.Duplication, entries[2].Category)
}

func TestBuildHotspotsTopCap(t *testing.T) {
	multipliers, _ := defaultSettings()
	in := emptyInputs()
	in.TestCoverage = schema.Finding{
		Category: schema.TestCoverage,
		PerFile:  map[string]int{"a.py": 1, "b.py": 1, "c.py": 1},
	}

	entries := BuildHotspots(in, multipliers, map[string]int{}, 2)
	assert.Len(t, entries, 2)
}

func TestBuildHotspotsStableUnderPermutation(t *testing.T) {
	// Equal hours and sizes: path ordering decides, no matter what
	// order the inputs were discovered in.
	multipliers, _ := defaultSettings()
	sizes := map[string]int{"a.py": 100, "b.py": 100, "c.py": 100}

	forward := emptyInputs()
	forward.TestCoverage = schema.Finding{
		Category: schema.TestCoverage,
		PerFile:  map[string]int{"a.py": 1, "b.py": 1, "c.py": 1},
	}
	reversed := emptyInputs()
	reversed.TestCoverage = schema.Finding{
		Category: schema.TestCoverage,
		PerFile:  map[string]int{"c.py": 1, "b.py": 1, "a.py": 1},
	}

	first := BuildHotspots(forward, multipliers, sizes, 10)
	second := BuildHotspots(reversed, multipliers, sizes, 10)

	assert.Equal(t, first, second)
	assert.Equal(t, "a.py", first[0].Path)
}
