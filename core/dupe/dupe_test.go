package dupe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debtscan/schema"
)

// pyFile builds a Python source file from raw lines.
func pyFile(path string, lines ...string) schema.SourceFile {
	return schema.SourceFile{
		Path:      path,
		Language:  schema.Python,
		Lines:     lines,
		LineCount: len(lines),
	}
}

// codeLines generates n distinct statement lines with the given prefix.
func codeLines(prefix string, n int) []string {
	lines := make([]string, n)
	for i := range n {
		lines[i] = fmt.Sprintf("%s_%d = %d", prefix, i, i)
	}
	return lines
}

// unitsFor runs extraction over a file set with shared settings.
func unitsFor(files []schema.SourceFile, window, stride int) [][]schema.ComparisonUnit {
	units := make([][]schema.ComparisonUnit, len(files))
	for i, f := range files {
		units[i] = ExtractUnits(i, f, window, stride)
	}
	return units
}

func TestNormalize(t *testing.T) {
	file := pyFile("app.py",
		"  x = 1  ",
		"",
		"# comment only",
		`"""`,
		"inside docstring",
		`"""`,
		"y = 2",
	)

	normalized := Normalize(file)
	require.Len(t, normalized, 2)
	assert.Equal(t, "x = 1", normalized[0].Text)
	assert.Equal(t, 1, normalized[0].OrigLine)
	assert.Equal(t, "y = 2", normalized[1].Text)
	assert.Equal(t, 7, normalized[1].OrigLine)
}

func TestExtractUnitsShortFile(t *testing.T) {
	file := pyFile("short.py", codeLines("a", 9)...)
	assert.Nil(t, ExtractUnits(0, file, 10, 10))
}

func TestExtractUnitsStrideAlignment(t *testing.T) {
	file := pyFile("a.py", codeLines("a", 25)...)

	units := ExtractUnits(0, file, 10, 10)
	require.Len(t, units, 2, "windows at norm 0 and 10; the tail is not window-sized")
	assert.Equal(t, 0, units[0].NormIndex)
	assert.Equal(t, 10, units[1].NormIndex)
	assert.Equal(t, 1, units[0].StartLine)
	assert.Equal(t, 10, units[0].EndLine)

	denser := ExtractUnits(0, file, 10, 5)
	require.Len(t, denser, 4, "stride 5 yields windows at 0, 5, 10, 15")
}

func TestIndexDropsSingletons(t *testing.T) {
	files := []schema.SourceFile{
		pyFile("a.py", codeLines("a", 12)...),
		pyFile("b.py", codeLines("b", 12)...),
	}

	idx := BuildIndex(unitsFor(files, 10, 10))
	idx.Prune()

	assert.Zero(t, idx.RetainedCount(), "all windows are unique")
	assert.Empty(t, Cluster(idx, files, 10, 10))
}

func TestClusterTwelveLineDuplicate(t *testing.T) {
	// Two files sharing the same 12 statements: one window each at
	// norm 0, one merged block of span 10 across both locations.
	shared := codeLines("dup", 12)
	files := []schema.SourceFile{
		pyFile("first.py", shared...),
		pyFile("second.py", shared...),
	}

	idx := BuildIndex(unitsFor(files, 10, 10))
	idx.Prune()
	blocks := Cluster(idx, files, 10, 10)

	require.Len(t, blocks, 1)
	assert.Equal(t, 10, blocks[0].Span)
	require.Len(t, blocks[0].Locations, 2)
	assert.Equal(t, "first.py", blocks[0].Locations[0].Path)
	assert.Equal(t, 1, blocks[0].Locations[0].StartLine)
	assert.Equal(t, 10, blocks[0].Locations[0].EndLine)
	assert.Equal(t, "second.py", blocks[0].Locations[1].Path)
}

func TestClusterIdenticalFilesFullCoverage(t *testing.T) {
	shared := codeLines("dup", 30)
	files := []schema.SourceFile{
		pyFile("a.py", shared...),
		pyFile("b.py", shared...),
	}

	idx := BuildIndex(unitsFor(files, 10, 10))
	idx.Prune()
	blocks := Cluster(idx, files, 10, 10)

	require.Len(t, blocks, 1, "contiguous windows merge into one block")
	assert.Equal(t, 30, blocks[0].Span)
	assert.Equal(t, 1, blocks[0].Locations[0].StartLine)
	assert.Equal(t, 30, blocks[0].Locations[0].EndLine)
}

func TestClusterThreeWayDuplicate(t *testing.T) {
	shared := codeLines("dup", 10)
	files := []schema.SourceFile{
		pyFile("a.py", shared...),
		pyFile("b.py", shared...),
		pyFile("c.py", shared...),
	}

	idx := BuildIndex(unitsFor(files, 10, 10))
	idx.Prune()
	blocks := Cluster(idx, files, 10, 10)

	require.Len(t, blocks, 1, "pairwise matches of the same content coalesce")
	require.Len(t, blocks[0].Locations, 3)
	assert.Equal(t, "a.py", blocks[0].Locations[0].Path)
	assert.Equal(t, "b.py", blocks[0].Locations[1].Path)
	assert.Equal(t, "c.py", blocks[0].Locations[2].Path)
}

func TestClusterSameFileDuplicate(t *testing.T) {
	// The same 10 statements twice in one file, separated far enough
	// that the windows cannot overlap.
	shared := codeLines("dup", 10)
	lines := append([]string{}, shared...)
	lines = append(lines, codeLines("mid", 10)...)
	lines = append(lines, shared...)
	files := []schema.SourceFile{pyFile("solo.py", lines...)}

	idx := BuildIndex(unitsFor(files, 10, 10))
	idx.Prune()
	blocks := Cluster(idx, files, 10, 10)

	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Locations, 2)
	assert.Equal(t, 1, blocks[0].Locations[0].StartLine)
	assert.Equal(t, 21, blocks[0].Locations[1].StartLine)
}

func TestClusterSelfOverlapIgnored(t *testing.T) {
	// With stride 1, a run of identical lines makes every window of one
	// file match itself at small offsets. Same-file matches closer than
	// one window must not count.
	repeated := make([]string, 15)
	for i := range repeated {
		repeated[i] = "x = compute()"
	}
	files := []schema.SourceFile{pyFile("loop.py", repeated...)}

	idx := BuildIndex(unitsFor(files, 10, 1))
	idx.Prune()
	blocks := Cluster(idx, files, 10, 10)

	assert.Empty(t, blocks)
}

func TestClusterMinSpanFilter(t *testing.T) {
	shared := codeLines("dup", 12)
	files := []schema.SourceFile{
		pyFile("a.py", shared...),
		pyFile("b.py", shared...),
	}

	idx := BuildIndex(unitsFor(files, 10, 10))
	idx.Prune()

	assert.Len(t, Cluster(idx, files, 10, 10), 1)
	assert.Empty(t, Cluster(idx, files, 10, 11), "span 10 is below the raised minimum")
}

func TestClusterNormalizationBridgesFormatting(t *testing.T) {
	// Same statements with different indentation, blank lines and
	// comments still fingerprint identically.
	shared := codeLines("dup", 10)
	var noisy []string
	for i, line := range shared {
		noisy = append(noisy, "    "+line)
		if i%3 == 0 {
			noisy = append(noisy, "", "# filler")
		}
	}
	files := []schema.SourceFile{
		pyFile("clean.py", shared...),
		pyFile("noisy.py", noisy...),
	}

	idx := BuildIndex(unitsFor(files, 10, 10))
	idx.Prune()
	blocks := Cluster(idx, files, 10, 10)

	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0].Locations, 2)
}
