package agg

import "debtscan/schema"

// fileDebt accumulates per-category hour attribution for one file.
type fileDebt struct {
	byCategory map[schema.Category]float64
	total      float64
}

// BuildHotspots merges per-file hour contributions across categories
// and ranks the worst offenders. Dependency debt is repository-level
// and never attributes to a file. The ranking is (hours desc, size
// desc, path asc) and therefore stable regardless of traversal order.
func BuildHotspots(in Inputs, multipliers schema.Multipliers, sizes map[string]int, top int) []schema.HotspotEntry {
	debts := make(map[string]*fileDebt)
	add := func(path string, category schema.Category, hours float64) {
		d, ok := debts[path]
		if !ok {
			d = &fileDebt{byCategory: make(map[schema.Category]float64)}
			debts[path] = d
		}
		d.byCategory[category] += hours
		d.total += hours
	}

	for path, items := range in.Complexity.PerFile {
		add(path, schema.Complexity, float64(items)*multipliers.ComplexityHours)
	}
	for path, items := range in.TestCoverage.PerFile {
		add(path, schema.TestCoverage, float64(items)*multipliers.TestCoverageHours)
	}
	for path, items := range in.Documentation.PerFile {
		add(path, schema.Documentation, float64(items)*multipliers.DocumentationHours)
	}
	for path, items := range in.Staleness.PerFile {
		add(path, schema.Staleness, float64(items)*multipliers.StalenessHours)
	}

	// Every file involved in a block carries that block's full cost:
	// the duplicate has to be unified wherever it lives.
	for _, block := range in.Duplication {
		seen := make(map[string]struct{}, len(block.Locations))
		for _, loc := range block.Locations {
			if _, dup := seen[loc.Path]; dup {
				continue
			}
			seen[loc.Path] = struct{}{}
			add(loc.Path, schema.Duplication, multipliers.DuplicationHours)
		}
	}

	entries := make([]schema.HotspotEntry, 0, len(debts))
	for path, debt := range debts {
		entries = append(entries, schema.HotspotEntry{
			Path:      path,
			Category:  dominantCategory(debt.byCategory),
			Hours:     debt.total,
			SizeLines: sizes[path],
		})
	}
	schema.SortHotspots(entries)

	if top > 0 && len(entries) > top {
		entries = entries[:top]
	}
	return entries
}

// dominantCategory picks the category contributing the most hours,
// breaking ties by fixed category order.
func dominantCategory(byCategory map[schema.Category]float64) schema.Category {
	best := schema.Category("")
	bestHours := -1.0
	for _, category := range schema.AllCategories {
		if hours, ok := byCategory[category]; ok {
			if hours > bestHours {
				best = category
				bestHours = hours
			}
		}
	}
	return best
}
