package dupe

import (
	"fmt"
	"sort"

	"debtscan/schema"
)

// pairKey identifies one lineage of matching windows: a file pair plus
// the normalized-index offset between the two sides. Windows from the
// same lineage that are contiguous or overlapping merge into one block.
type pairKey struct {
	aFile  int
	bFile  int
	offset int
}

// pairEntry is one matched window pair within a lineage.
type pairEntry struct {
	fp   schema.Fingerprint
	aOcc schema.Occurrence
	bOcc schema.Occurrence
}

// candidate is one merged run of window pairs, before multi-location
// coalescing.
type candidate struct {
	signature string // ordered fingerprint chain, identifies the content
	span      int    // normalized lines covered
	locA      schema.BlockLocation
	locB      schema.BlockLocation
}

// Cluster expands retained fingerprints into window pairs, merges
// contiguous or overlapping pairs of the same lineage into blocks,
// coalesces blocks holding identical content into multi-location
// blocks, and discards blocks below the minimum span.
func Cluster(idx *Index, files []schema.SourceFile, window, minSpan int) []schema.DuplicateBlock {
	groups := make(map[pairKey][]pairEntry)
	for _, fp := range idx.RetainedFingerprints() {
		occs := idx.OccurrencesOf(fp)
		for i := 0; i < len(occs); i++ {
			for j := i + 1; j < len(occs); j++ {
				a, b := occs[i], occs[j]
				// A window overlapping itself inside one file is not duplication.
				if a.FileID == b.FileID && b.NormIndex < a.NormIndex+window {
					continue
				}
				key := pairKey{aFile: a.FileID, bFile: b.FileID, offset: b.NormIndex - a.NormIndex}
				groups[key] = append(groups[key], pairEntry{fp: fp, aOcc: a, bOcc: b})
			}
		}
	}

	keys := make([]pairKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.aFile != b.aFile {
			return a.aFile < b.aFile
		}
		if a.bFile != b.bFile {
			return a.bFile < b.bFile
		}
		return a.offset < b.offset
	})

	var candidates []candidate
	for _, key := range keys {
		candidates = append(candidates, mergeLineage(key, groups[key], files, window)...)
	}

	return coalesce(candidates, minSpan)
}

// mergeLineage sorts one lineage's window pairs by position and merges
// runs of contiguous or overlapping windows into candidates.
func mergeLineage(key pairKey, entries []pairEntry, files []schema.SourceFile, window int) []candidate {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].aOcc.NormIndex < entries[j].aOcc.NormIndex
	})

	var out []candidate
	runStart := 0
	for i := 1; i <= len(entries); i++ {
		if i < len(entries) && entries[i].aOcc.NormIndex <= entries[i-1].aOcc.NormIndex+window {
			continue
		}
		out = append(out, buildCandidate(key, entries[runStart:i], files, window))
		runStart = i
	}
	return out
}

// buildCandidate turns one merged run into a candidate block with its
// content signature and both resolved locations.
func buildCandidate(key pairKey, run []pairEntry, files []schema.SourceFile, window int) candidate {
	first, last := run[0], run[len(run)-1]

	sig := make([]byte, 0, len(run)*len(first.fp))
	for _, e := range run {
		sig = append(sig, e.fp[:]...)
	}

	return candidate{
		signature: string(sig),
		span:      last.aOcc.NormIndex + window - first.aOcc.NormIndex,
		locA: schema.BlockLocation{
			Path:      files[key.aFile].Path,
			StartLine: first.aOcc.StartLine,
			EndLine:   last.aOcc.EndLine,
		},
		locB: schema.BlockLocation{
			Path:      files[key.bFile].Path,
			StartLine: first.bOcc.StartLine,
			EndLine:   last.bOcc.EndLine,
		},
	}
}

// coalesce merges candidates that carry identical content into one
// block with deduplicated locations, drops blocks below the minimum
// span, and orders everything deterministically.
func coalesce(candidates []candidate, minSpan int) []schema.DuplicateBlock {
	type blockAcc struct {
		span int
		locs map[string]schema.BlockLocation
	}

	bySig := make(map[string]*blockAcc)
	var sigOrder []string
	for _, c := range candidates {
		if c.span < minSpan {
			continue
		}
		acc, ok := bySig[c.signature]
		if !ok {
			acc = &blockAcc{span: c.span, locs: make(map[string]schema.BlockLocation)}
			bySig[c.signature] = acc
			sigOrder = append(sigOrder, c.signature)
		}
		for _, loc := range []schema.BlockLocation{c.locA, c.locB} {
			locKey := fmt.Sprintf("%s:%d:%d", loc.Path, loc.StartLine, loc.EndLine)
			acc.locs[locKey] = loc
		}
	}

	blocks := make([]schema.DuplicateBlock, 0, len(bySig))
	for _, sig := range sigOrder {
		acc := bySig[sig]
		locs := make([]schema.BlockLocation, 0, len(acc.locs))
		for _, loc := range acc.locs {
			locs = append(locs, loc)
		}
		sort.Slice(locs, func(i, j int) bool {
			if locs[i].Path != locs[j].Path {
				return locs[i].Path < locs[j].Path
			}
			return locs[i].StartLine < locs[j].StartLine
		})
		blocks = append(blocks, schema.DuplicateBlock{Span: acc.span, Locations: locs})
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i], blocks[j]
		if a.Span != b.Span {
			return a.Span > b.Span
		}
		if a.Locations[0].Path != b.Locations[0].Path {
			return a.Locations[0].Path < b.Locations[0].Path
		}
		return a.Locations[0].StartLine < b.Locations[0].StartLine
	})
	return blocks
}
