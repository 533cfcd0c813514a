package detect

import (
	"sort"
	"strings"

	"debtscan/schema"
)

// FindUntestedFiles flags source files that have no matching test or
// spec file anywhere in the snapshot. Matching is by extension-stripped
// path fragment, so "src/app.py" is covered by "tests/test_app.py".
func FindUntestedFiles(snap *schema.Snapshot) schema.Finding {
	var testFiles []string
	var sourceFiles []schema.SourceFile

	for _, file := range snap.Files {
		if schema.IsTestPath(file.Path) {
			testFiles = append(testFiles, file.Path)
		} else {
			sourceFiles = append(sourceFiles, file)
		}
	}

	var untested []string
	perFile := make(map[string]int)
	for _, src := range sourceFiles {
		if !hasMatchingTest(src.Path, testFiles) {
			untested = append(untested, src.Path)
			perFile[src.Path] = 1
		}
	}
	sort.Strings(untested)

	return schema.Finding{
		Category: schema.TestCoverage,
		Items:    len(untested),
		Files:    untested,
		PerFile:  perFile,
	}
}

// hasMatchingTest reports whether any test file targets the source
// file. The full extension-stripped path may appear anywhere in the
// test path; the bare file stem only matches when the test file's own
// name is that stem with a standard test affix, so "app" never counts
// "happy_test" as coverage.
func hasMatchingTest(sourcePath string, testFiles []string) bool {
	stem := stripExtension(sourcePath)
	base := strings.ToLower(stripExtension(baseName(sourcePath)))
	for _, testPath := range testFiles {
		if strings.Contains(testPath, stem) {
			return true
		}
		testStem := strings.ToLower(stripExtension(baseName(testPath)))
		if testStemTargets(testStem, base) {
			return true
		}
	}
	return false
}

// testStemTargets matches a test file's name stem against a source
// stem, anchored on the common test naming conventions.
func testStemTargets(testStem, base string) bool {
	switch testStem {
	case base,
		"test_" + base, "test-" + base, "test" + base,
		base + "_test", base + "-test", base + "test",
		base + ".test", base + ".spec":
		return true
	}
	return false
}

func stripExtension(path string) string {
	if i := strings.LastIndex(path, "."); i > 0 {
		return path[:i]
	}
	return path
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
