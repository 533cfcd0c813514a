// Package core has core logic for scanning, scoring and trend analysis.
package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"debtscan/core/agg"
	"debtscan/core/dupe"
	"debtscan/internal/contract"
	"debtscan/internal/detect"
	"debtscan/schema"
)

// analyzeSnapshot runs the full six-category pipeline over one
// snapshot and returns the scored report, hotspot ranking included,
// plus the raw detector inputs.
func analyzeSnapshot(ctx context.Context, cfg *contract.Config, snap *schema.Snapshot, scannedAt time.Time) (*schema.DebtReport, agg.Inputs, error) {
	blocks, err := detectDuplicates(ctx, cfg, snap)
	in := agg.Inputs{Duplication: blocks}
	if err != nil {
		if ctx.Err() != nil {
			return nil, agg.Inputs{}, err
		}
		// The engine failed without cancellation: degrade the category.
		contract.LogWarn("duplication analysis failed", err)
		in.Duplication = nil
		in.DuplicationCaveat = err.Error()
	}

	now := time.Now()
	in.Complexity = runDetector(schema.Complexity, func() schema.Finding {
		return detect.FindComplexFiles(snap, cfg.ComplexityThreshold)
	})
	in.TestCoverage = runDetector(schema.TestCoverage, func() schema.Finding {
		return detect.FindUntestedFiles(snap)
	})
	in.Documentation = runDetector(schema.Documentation, func() schema.Finding {
		return detect.FindUndocumented(snap)
	})
	in.Staleness = runDetector(schema.Staleness, func() schema.Finding {
		return detect.FindStaleFiles(snap, cfg.StaleMonths, now)
	})
	in.Dependency = detect.ScoreDependencies(snap, cfg.Multipliers, now)

	report := agg.BuildReport(snap.RepoPath, scannedAt, in, cfg.Multipliers, cfg.Ladders)
	report.Hotspots = agg.BuildHotspots(in, cfg.Multipliers, fileSizes(snap), cfg.Top)
	report.Warnings = snap.Warnings
	return report, in, nil
}

// runDetector guards one detector call. A panicking detector loses its
// category for this scan instead of killing the whole run.
func runDetector(category schema.Category, fn func() schema.Finding) (finding schema.Finding) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("detector panicked: %v", r)
			contract.LogWarn(fmt.Sprintf("%s analysis failed", category), err)
			finding = agg.ZeroFinding(category, err.Error())
		}
	}()
	return fn()
}

// detectDuplicates runs extraction and fingerprinting in parallel
// across files, then builds the index sequentially in file order so
// the result never depends on goroutine completion order.
func detectDuplicates(ctx context.Context, cfg *contract.Config, snap *schema.Snapshot) ([]schema.DuplicateBlock, error) {
	unitsPerFile := make([][]schema.ComparisonUnit, len(snap.Files))

	idxCh := make(chan int, len(snap.Files))
	var wg sync.WaitGroup
	for range cfg.Workers {
		wg.Go(func() {
			for i := range idxCh {
				if ctx.Err() != nil {
					return
				}
				unitsPerFile[i] = dupe.ExtractUnits(i, snap.Files[i], cfg.Window, cfg.Stride)
			}
		})
	}
	for i := range snap.Files {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	index := dupe.BuildIndex(unitsPerFile)
	index.Prune()
	return dupe.Cluster(index, snap.Files, cfg.Window, cfg.MinBlockSpan), nil
}

// fileSizes maps every snapshot file to its raw line count, for the
// hotspot size column and tie-breaking.
func fileSizes(snap *schema.Snapshot) map[string]int {
	sizes := make(map[string]int, len(snap.Files))
	for _, f := range snap.Files {
		sizes[f.Path] = f.LineCount
	}
	return sizes
}
