// Package dupe implements the duplication engine: window extraction,
// fingerprint indexing, and duplicate clustering.
package dupe

import (
	"strings"

	"debtscan/schema"
)

// NormalizedLine is one surviving line after normalization, keeping its
// original 1-based position for reporting.
type NormalizedLine struct {
	Text     string
	OrigLine int
}

// Normalize reduces a file to the lines that participate in duplicate
// matching: whitespace is trimmed, blank lines and comment-only lines
// are dropped, and docstring bodies are skipped.
func Normalize(file schema.SourceFile) []NormalizedLine {
	normalized := make([]NormalizedLine, 0, len(file.Lines))
	inDocstring := false
	for i, line := range file.Lines {
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
		normalized = append(normalized, NormalizedLine{Text: trimmed, OrigLine: i + 1})
	}
	return normalized
}

// ExtractUnits slices a file's normalized lines into stride-aligned
// comparison windows. Files with fewer normalized lines than the window
// yield no units.
func ExtractUnits(fileID int, file schema.SourceFile, window, stride int) []schema.ComparisonUnit {
	normalized := Normalize(file)
	if len(normalized) < window {
		return nil
	}

	var units []schema.ComparisonUnit
	for start := 0; start+window <= len(normalized); start += stride {
		texts := make([]string, window)
		for k := range window {
			texts[k] = normalized[start+k].Text
		}
		units = append(units, schema.ComparisonUnit{
			FileID:    fileID,
			NormIndex: start,
			StartLine: normalized[start].OrigLine,
			EndLine:   normalized[start+window-1].OrigLine,
			Length:    window,
			Content:   strings.Join(texts, "\n"),
		})
	}
	return units
}
