// Package agg turns detector outputs into a scored debt report and a
// ranked hotspot view. No I/O happens here; everything is a pure
// function over already-collected inputs.
package agg

import (
	"fmt"
	"time"

	"debtscan/schema"
)

// Inputs carries everything the aggregator needs for one scan. The
// duplication category arrives as resolved blocks instead of a plain
// finding because block locations also feed the hotspot ranking.
type Inputs struct {
	Complexity    schema.Finding
	Duplication   []schema.DuplicateBlock
	TestCoverage  schema.Finding
	Documentation schema.Finding
	Staleness     schema.Finding
	Dependency    schema.DependencyScore

	// DuplicationCaveat is set when the duplication engine failed and
	// the category degraded to zero blocks.
	DuplicationCaveat string
}

// maxListedFiles caps the affected-file list embedded in a finding.
const maxListedFiles = 10

// BuildReport scores every category with the fixed multipliers, grades
// severities through the configured ladders, and sums the exact total.
// Running it twice over the same inputs yields identical reports.
func BuildReport(repoPath string, scannedAt time.Time, in Inputs,
	multipliers schema.Multipliers, ladders map[schema.Category]schema.SeverityLadder) *schema.DebtReport {

	findings := []schema.DebtFinding{
		countFinding(in.Complexity, multipliers.ComplexityHours, ladders,
			"Refactor %d overly complex files",
			"Break down large functions into smaller units",
			"Consider splitting large modules into submodules"),
		duplicationFinding(in, multipliers.DuplicationHours, ladders),
		countFinding(in.TestCoverage, multipliers.TestCoverageHours, ladders,
			"Add tests for %d untested source files",
			"Set a minimum code coverage threshold",
			"Add pre-commit hooks to check test coverage"),
		countFinding(in.Documentation, multipliers.DocumentationHours, ladders,
			"Add docstrings to %d functions and classes",
			"Document public API entry points",
			"Enforce documentation in code review"),
		countFinding(in.Staleness, multipliers.StalenessHours, ladders,
			"Audit %d stale code files",
			"Remove or archive dead code branches",
			"Establish a code maintenance policy"),
		dependencyFinding(in.Dependency),
	}

	total := 0.0
	for _, f := range findings {
		total += f.Hours
	}

	return &schema.DebtReport{
		RepoPath:   repoPath,
		ScannedAt:  scannedAt,
		Findings:   findings,
		TotalHours: total,
	}
}

// countFinding scores one count-based category: hours are items times
// the multiplier, severity comes from the category's ladder.
func countFinding(f schema.Finding, hoursPerItem float64,
	ladders map[schema.Category]schema.SeverityLadder, lead string, extra ...string) schema.DebtFinding {

	recommendations := append([]string{fmt.Sprintf(lead, f.Items)}, extra...)
	return schema.DebtFinding{
		Category:        f.Category,
		Items:           f.Items,
		Hours:           float64(f.Items) * hoursPerItem,
		Severity:        ladders[f.Category].Grade(f.Items),
		Files:           capList(f.Files),
		Rationale:       fmt.Sprintf("%d items found", f.Items),
		Caveat:          f.Caveat,
		Recommendations: recommendations,
	}
}

// duplicationFinding scores the duplication category from resolved
// blocks. Each block counts once no matter how many locations it has.
func duplicationFinding(in Inputs, hoursPerBlock float64,
	ladders map[schema.Category]schema.SeverityLadder) schema.DebtFinding {

	blocks := in.Duplication
	files := make([]string, 0, min(len(blocks), maxListedFiles))
	for i, b := range blocks {
		if i == maxListedFiles {
			break
		}
		files = append(files, fmt.Sprintf("%d lines across %d locations (first: %s:%d)",
			b.Span, len(b.Locations), b.Locations[0].Path, b.Locations[0].StartLine))
	}

	return schema.DebtFinding{
		Category:  schema.Duplication,
		Items:     len(blocks),
		Hours:     float64(len(blocks)) * hoursPerBlock,
		Severity:  ladders[schema.Duplication].Grade(len(blocks)),
		Files:     files,
		Rationale: fmt.Sprintf("%d duplicate blocks found", len(blocks)),
		Caveat:    in.DuplicationCaveat,
		Recommendations: []string{
			fmt.Sprintf("Extract %d duplicated code blocks into shared utilities", len(blocks)),
			"Run duplication scanning regularly in CI",
		},
	}
}

// dependencyFinding passes through the pre-scored dependency result.
func dependencyFinding(score schema.DependencyScore) schema.DebtFinding {
	return schema.DebtFinding{
		Category:  schema.Dependencies,
		Hours:     score.Hours,
		Severity:  score.Severity,
		Files:     score.Files,
		Rationale: score.Rationale,
		Caveat:    score.Caveat,
		Recommendations: []string{
			"Update dependencies to latest stable versions",
			"Automate dependency updates and audits",
		},
	}
}

// ZeroFinding produces the degraded finding for a category whose
// detector failed: zero hours, low severity, and the failure recorded
// as a caveat.
func ZeroFinding(category schema.Category, caveat string) schema.Finding {
	return schema.Finding{Category: category, Caveat: caveat}
}

func capList(files []string) []string {
	if len(files) > maxListedFiles {
		return files[:maxListedFiles]
	}
	return files
}
