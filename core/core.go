package core

import (
	"context"
	"time"

	"debtscan/internal/contract"
	"debtscan/internal/outwriter"
	"debtscan/internal/walk"
	"debtscan/schema"
)

// GetScanReport runs the full scan over the working tree and returns
// the scored report. This is the shared entry point for the CLI and
// the MCP server.
func GetScanReport(ctx context.Context, cfg *contract.Config) (*schema.DebtReport, error) {
	snap, err := walk.LoadRepository(cfg)
	if err != nil {
		return nil, err
	}
	report, _, err := analyzeSnapshot(ctx, cfg, snap, time.Now())
	return report, err
}

// ExecuteScan runs the scan, records it to the history store when one
// is configured, and renders the report. It serves as the main entry
// point for the 'scan' command.
func ExecuteScan(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	report, err := GetScanReport(ctx, cfg)
	if err != nil {
		return err
	}

	if store != nil {
		if _, err := store.RecordScan(report); err != nil {
			contract.LogWarn("history recording failed", err)
		}
	}

	return outwriter.WriteReport(report, cfg)
}

// GetHotspots runs the scan and ranks the worst offender files.
func GetHotspots(ctx context.Context, cfg *contract.Config) ([]schema.HotspotEntry, error) {
	report, err := GetScanReport(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return report.Hotspots, nil
}

// ExecuteHotspots runs the hotspot ranking and renders it. It serves
// as the main entry point for the 'hotspots' command.
func ExecuteHotspots(ctx context.Context, cfg *contract.Config) error {
	entries, err := GetHotspots(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteHotspots(entries, cfg)
}

// ExecuteTrend runs the per-commit trend analysis and renders it. It
// serves as the main entry point for the 'trend' command.
func ExecuteTrend(ctx context.Context, cfg *contract.Config, client contract.GitClient) error {
	result, err := ComputeTrend(ctx, cfg, client)
	if err != nil {
		return err
	}
	return outwriter.WriteTrend(result, cfg)
}
