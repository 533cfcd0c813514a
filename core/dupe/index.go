package dupe

import (
	"sort"

	"debtscan/schema"
)

// Index maps a window fingerprint to the ordered list of places it
// occurred. Occurrence order is (FileID, NormIndex) ascending because
// units are inserted in file order.
type Index struct {
	occurrences  map[schema.Fingerprint][]schema.Occurrence
	fingerprints map[schema.Fingerprint][]schema.Occurrence // retained after Prune
}

// BuildIndex fingerprints every unit and groups occurrences. The input
// is indexed by file ID so the result is identical regardless of the
// order extraction finished in.
func BuildIndex(unitsPerFile [][]schema.ComparisonUnit) *Index {
	occ := make(map[schema.Fingerprint][]schema.Occurrence)
	for _, units := range unitsPerFile {
		for _, unit := range units {
			fp := schema.FingerprintOf(unit.Content)
			occ[fp] = append(occ[fp], schema.Occurrence{
				FileID:    unit.FileID,
				NormIndex: unit.NormIndex,
				StartLine: unit.StartLine,
				EndLine:   unit.EndLine,
			})
		}
	}
	return &Index{occurrences: occ}
}

// Prune drops fingerprints with a single occurrence. Only repeated
// fingerprints can ever contribute to a duplicate block.
func (idx *Index) Prune() {
	retained := make(map[schema.Fingerprint][]schema.Occurrence)
	for fp, occs := range idx.occurrences {
		if len(occs) > 1 {
			retained[fp] = occs
		}
	}
	idx.fingerprints = retained
}

// RetainedFingerprints returns the pruned fingerprints in bytewise
// order so downstream iteration is deterministic.
func (idx *Index) RetainedFingerprints() []schema.Fingerprint {
	fps := make([]schema.Fingerprint, 0, len(idx.fingerprints))
	for fp := range idx.fingerprints {
		fps = append(fps, fp)
	}
	sort.Slice(fps, func(i, j int) bool { return fps[i].Less(fps[j]) })
	return fps
}

// OccurrencesOf returns the occurrence list of a retained fingerprint.
func (idx *Index) OccurrencesOf(fp schema.Fingerprint) []schema.Occurrence {
	return idx.fingerprints[fp]
}

// RetainedCount returns how many fingerprints survived pruning.
func (idx *Index) RetainedCount() int {
	return len(idx.fingerprints)
}
