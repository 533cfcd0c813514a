package detect

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debtscan/schema"
)

// sourceFile builds a file from raw content for detector tests.
func sourceFile(path string, lang schema.Language, content string, modTime time.Time) schema.SourceFile {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	return schema.SourceFile{
		Path:      path,
		Language:  lang,
		Lines:     lines,
		ModTime:   modTime,
		LineCount: len(lines),
	}
}

// repeatLines produces n copies of a code line joined by newlines.
func repeatLines(line string, n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "%s_%d\n", line, i)
	}
	return b.String()
}

func TestCountCodeLines(t *testing.T) {
	content := `"""Module doc."""
# comment

def run():
    """Doc."""
    x = 1
    return x
`
	file := sourceFile("app.py", schema.Python, content, time.Now())
	// Counted lines: def, x = 1, return x.
	assert.Equal(t, 3, CountCodeLines(file))
}

func TestCountCodeLinesGoComments(t *testing.T) {
	content := `// Package main.
package main

// run does things.
func run() int {
	return 1
}
`
	file := sourceFile("main.go", schema.Go, content, time.Now())
	assert.Equal(t, 4, CountCodeLines(file))
}

func TestFindComplexFiles(t *testing.T) {
	now := time.Now()
	snap := &schema.Snapshot{Files: []schema.SourceFile{
		sourceFile("big.py", schema.Python, repeatLines("x = ", 850), now),
		sourceFile("small.py", schema.Python, repeatLines("y = ", 40), now),
	}}

	finding := FindComplexFiles(snap, 500)

	assert.Equal(t, schema.Complexity, finding.Category)
	assert.Equal(t, 1, finding.Items)
	require.Len(t, finding.Files, 1)
	assert.Contains(t, finding.Files[0], "big.py")
	assert.Contains(t, finding.Files[0], "850 lines")
	assert.Equal(t, map[string]int{"big.py": 1}, finding.PerFile)
}

func TestFindComplexFilesAtThreshold(t *testing.T) {
	// Exactly at the threshold does not count; strictly above does.
	snap := &schema.Snapshot{Files: []schema.SourceFile{
		sourceFile("edge.py", schema.Python, repeatLines("x = ", 500), time.Now()),
	}}

	finding := FindComplexFiles(snap, 500)
	assert.Zero(t, finding.Items)
}

func TestFindUntestedFiles(t *testing.T) {
	now := time.Now()
	snap := &schema.Snapshot{Files: []schema.SourceFile{
		sourceFile("src/app.py", schema.Python, "x = 1\n", now),
		sourceFile("src/orphan.py", schema.Python, "y = 2\n", now),
		sourceFile("tests/test_app.py", schema.Python, "assert True\n", now),
	}}

	finding := FindUntestedFiles(snap)

	assert.Equal(t, schema.TestCoverage, finding.Category)
	assert.Equal(t, []string{"src/orphan.py"}, finding.Files)
	assert.Equal(t, 1, finding.Items)
}

func TestFindUntestedFilesRequiresAnchoredMatch(t *testing.T) {
	// A test file whose name merely contains the source stem as a
	// substring is not coverage: "happy_test" does not test "app".
	now := time.Now()
	snap := &schema.Snapshot{Files: []schema.SourceFile{
		sourceFile("src/app.py", schema.Python, "x = 1\n", now),
		sourceFile("tests/happy_test.py", schema.Python, "assert True\n", now),
	}}

	finding := FindUntestedFiles(snap)
	assert.Equal(t, []string{"src/app.py"}, finding.Files)
}

func TestFindUntestedFilesMatchesTestAffixes(t *testing.T) {
	now := time.Now()
	snap := &schema.Snapshot{Files: []schema.SourceFile{
		sourceFile("src/app.js", schema.JavaScript, "let x = 1\n", now),
		sourceFile("src/widget.py", schema.Python, "y = 2\n", now),
		sourceFile("__tests__/app.spec.js", schema.JavaScript, "it()\n", now),
		sourceFile("tests/widget_test.py", schema.Python, "assert True\n", now),
	}}

	finding := FindUntestedFiles(snap)
	assert.Zero(t, finding.Items)
}

func TestFindUntestedFilesIgnoresTestFilesThemselves(t *testing.T) {
	snap := &schema.Snapshot{Files: []schema.SourceFile{
		sourceFile("tests/test_util.py", schema.Python, "assert True\n", time.Now()),
	}}

	finding := FindUntestedFiles(snap)
	assert.Zero(t, finding.Items)
}

func TestFindUndocumentedPython(t *testing.T) {
	content := `def documented():
    """Has a docstring."""
    return 1

def naked():
    return 2

class Widget:
    pass
`
	snap := &schema.Snapshot{Files: []schema.SourceFile{
		sourceFile("app.py", schema.Python, content, time.Now()),
	}}

	finding := FindUndocumented(snap)

	assert.Equal(t, schema.Documentation, finding.Category)
	assert.Equal(t, 2, finding.Items)
	assert.Equal(t, map[string]int{"app.py": 2}, finding.PerFile)
	require.Len(t, finding.Files, 1)
	assert.Contains(t, finding.Files[0], "app.py (2 undocumented)")
}

func TestFindUndocumentedGo(t *testing.T) {
	content := `package server

// Start runs the server.
func Start() {}

func Stop() {}

type Options struct{}
`
	snap := &schema.Snapshot{Files: []schema.SourceFile{
		sourceFile("server.go", schema.Go, content, time.Now()),
	}}

	finding := FindUndocumented(snap)
	assert.Equal(t, 2, finding.Items, "Stop and Options lack doc comments")
}

func TestFindStaleFiles(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	old := now.Add(-400 * 24 * time.Hour)
	fresh := now.Add(-30 * 24 * time.Hour)

	snap := &schema.Snapshot{Files: []schema.SourceFile{
		sourceFile("old.py", schema.Python, "x = 1\n", old),
		sourceFile("fresh.py", schema.Python, "y = 2\n", fresh),
	}}

	finding := FindStaleFiles(snap, 12, now)

	assert.Equal(t, schema.Staleness, finding.Category)
	assert.Equal(t, 1, finding.Items)
	require.Len(t, finding.Files, 1)
	assert.Contains(t, finding.Files[0], "old.py")
}

func TestScoreDependencies(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	multipliers := schema.DefaultMultipliers()

	testCases := []struct {
		name          string
		manifests     []schema.ManifestStat
		expectedHours float64
		expectedSev   schema.Severity
	}{
		{
			name:          "no manifest at all",
			manifests:     nil,
			expectedHours: 8.0,
			expectedSev:   schema.CriticalSeverity,
		},
		{
			name: "fresh lock file",
			manifests: []schema.ManifestStat{
				{Path: "pyproject.toml", ModTime: now.Add(-10 * 24 * time.Hour)},
				{Path: "uv.lock", ModTime: now.Add(-10 * 24 * time.Hour), IsLock: true},
			},
			expectedHours: 5.0,
			expectedSev:   schema.LowSeverity,
		},
		{
			name: "aging lock file",
			manifests: []schema.ManifestStat{
				{Path: "package.json", ModTime: now},
				{Path: "package-lock.json", ModTime: now.Add(-120 * 24 * time.Hour), IsLock: true},
			},
			expectedHours: 5.0,
			expectedSev:   schema.MediumSeverity,
		},
		{
			name: "ancient lock file",
			manifests: []schema.ManifestStat{
				{Path: "requirements.txt", ModTime: now},
				{Path: "Pipfile.lock", ModTime: now.Add(-365 * 24 * time.Hour), IsLock: true},
			},
			expectedHours: 5.0,
			expectedSev:   schema.HighSeverity,
		},
		{
			name: "manifest without lock",
			manifests: []schema.ManifestStat{
				{Path: "setup.py", ModTime: now},
			},
			expectedHours: 5.0,
			expectedSev:   schema.LowSeverity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			snap := &schema.Snapshot{Manifests: tc.manifests}
			score := ScoreDependencies(snap, multipliers, now)
			assert.Equal(t, tc.expectedHours, score.Hours)
			assert.Equal(t, tc.expectedSev, score.Severity)
			assert.NotEmpty(t, score.Rationale)
		})
	}
}
