package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"debtscan/internal/contract"
	"debtscan/schema"
)

// WriteTrend outputs the per-commit trend, dispatching based on the
// output format configured.
func WriteTrend(result *schema.TrendResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendMarkdown(w, result)
		}, "Wrote markdown")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendCSV(w, result)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(w, result, cfg)
		}, "Wrote table")
	}
}

// writeTrendTable generates and writes the human-readable trend, oldest
// commit first.
func writeTrendTable(w io.Writer, result *schema.TrendResult, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Commit", "Date", "Total Hours", "Change"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range result.Points {
		data = append(data, []string{
			shortCommit(p.Commit),
			p.Timestamp.Format("2006-01-02"),
			trendTotal(p),
			trendChange(p),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Analyzed %d commits (%d skipped) in %s\n",
		len(result.Points), len(result.Points)-len(result.LivePoints()), result.RepoPath)
	return err
}

// writeTrendMarkdown writes the trend as a markdown document with a
// per-category delta breakdown for each live point.
func writeTrendMarkdown(w io.Writer, result *schema.TrendResult) error {
	if _, err := fmt.Fprintf(w, "# Debt Trend\n\n**Repository:** %s\n\n| Commit | Date | Total Hours | Change |\n|--------|------|-------------|--------|\n", result.RepoPath); err != nil {
		return err
	}
	for _, p := range result.Points {
		if _, err := fmt.Fprintf(w, "| `%s` | %s | %s | %s |\n",
			shortCommit(p.Commit), p.Timestamp.Format("2006-01-02"), trendTotal(p), trendChange(p)); err != nil {
			return err
		}
	}
	for _, p := range result.Points {
		if len(p.Deltas) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n## %s\n\n", shortCommit(p.Commit)); err != nil {
			return err
		}
		for _, d := range p.Deltas {
			if d.Change == schema.Flat {
				continue
			}
			if _, err := fmt.Fprintf(w, "- %s: %s -> %s (%s)\n",
				d.Category.Title(), fmtHours(d.Before), fmtHours(d.After), d.Change); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeTrendCSV writes one row per point in CSV format.
func writeTrendCSV(w io.Writer, result *schema.TrendResult) error {
	header := []string{"commit", "date", "total_hours", "skipped", "skip_reason"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, p := range result.Points {
			total := ""
			if p.Report != nil {
				total = fmtHours(p.Report.TotalHours)
			}
			rec := []string{
				p.Commit,
				p.Timestamp.Format("2006-01-02"),
				total,
				fmt.Sprintf("%t", p.Skipped),
				p.SkipReason,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// trendTotal formats a point's total hours; skipped points show a dash.
func trendTotal(p schema.TrendPoint) string {
	if p.Skipped || p.Report == nil {
		return "-"
	}
	return fmtHours(p.Report.TotalHours)
}

// trendChange summarizes a point's deltas against the previous live point.
func trendChange(p schema.TrendPoint) string {
	if p.Skipped {
		return "skipped"
	}
	if len(p.Deltas) == 0 {
		return "baseline"
	}
	var diff float64
	regressions, improvements := 0, 0
	for _, d := range p.Deltas {
		diff += d.After - d.Before
		switch d.Change {
		case schema.Regression:
			regressions++
		case schema.Improvement:
			improvements++
		}
	}
	if regressions == 0 && improvements == 0 {
		return "flat"
	}
	sign := "+"
	if diff < 0 {
		sign = "-"
		diff = -diff
	}
	return fmt.Sprintf("%s%sh (%d up, %d down)", sign, fmtHours(diff), regressions, improvements)
}

// shortCommit abbreviates a commit hash for display.
func shortCommit(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
