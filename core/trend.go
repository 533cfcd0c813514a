package core

import (
	"context"
	"fmt"

	"debtscan/internal/contract"
	"debtscan/internal/walk"
	"debtscan/schema"
)

// ComputeTrend materializes a snapshot per commit, oldest first, and
// reruns the full scan pipeline at each point. A commit whose snapshot
// cannot be materialized becomes a flagged skip, never a failure.
func ComputeTrend(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.TrendResult, error) {
	root, err := client.GetRepoRoot(ctx, cfg.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("trend requires a git repository: %w", err)
	}
	trendCfg := *cfg
	trendCfg.RepoPath = root

	commits, err := client.ListCommits(ctx, root, cfg.Commits)
	if err != nil {
		return nil, fmt.Errorf("cannot list commits: %w", err)
	}

	result := &schema.TrendResult{RepoPath: root}
	var prev *schema.DebtReport
	for _, commit := range commits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		point := schema.TrendPoint{Commit: commit.Hash, Timestamp: commit.Timestamp}

		snap, err := walk.SnapshotAtCommit(ctx, &trendCfg, client, commit.Hash)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			contract.LogWarn(fmt.Sprintf("skipping commit %s", shortHash(commit.Hash)), err)
			point.Skipped = true
			point.SkipReason = err.Error()
			result.Points = append(result.Points, point)
			continue
		}

		report, _, err := analyzeSnapshot(ctx, &trendCfg, snap, commit.Timestamp)
		if err != nil {
			return nil, err
		}

		point.Report = report
		if prev != nil {
			point.Deltas = computeDeltas(prev, report)
		}
		prev = report
		result.Points = append(result.Points, point)
	}
	return result, nil
}

// computeDeltas compares consecutive live points per category.
func computeDeltas(before, after *schema.DebtReport) []schema.TrendDelta {
	deltas := make([]schema.TrendDelta, 0, len(schema.AllCategories))
	for _, category := range schema.AllCategories {
		b := before.FindingFor(category)
		a := after.FindingFor(category)
		if b == nil || a == nil {
			continue
		}
		delta := schema.TrendDelta{Category: category, Before: b.Hours, After: a.Hours}
		switch {
		case a.Hours > b.Hours:
			delta.Change = schema.Regression
		case a.Hours < b.Hours:
			delta.Change = schema.Improvement
		default:
			delta.Change = schema.Flat
		}
		deltas = append(deltas, delta)
	}
	return deltas
}

// shortHash abbreviates a commit hash for log messages.
func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
