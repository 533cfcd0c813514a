// Package detect holds the per-category debt detectors. Every detector
// is a pure function over a snapshot; failures degrade to an empty
// finding upstream, they never abort a scan.
package detect

import (
	"strings"

	"debtscan/schema"
)

// CountCodeLines returns the number of code lines in a file: blank
// lines, comment-only lines and docstring bodies do not count.
func CountCodeLines(file schema.SourceFile) int {
	count := 0
	inDocstring := false
	for _, line := range file.Lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if file.Language.IsDocstringFence(trimmed) {
			inDocstring = !inDocstring
			continue
		}
		if inDocstring {
			continue
		}
		if file.Language.IsCommentOnly(trimmed) {
			continue
		}
		count++
	}
	return count
}
