package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"debtscan/internal/contract"
	"debtscan/schema"
)

// maxTableFiles caps how many affected files appear in one table cell.
const maxTableFiles = 3

// maxDetailFiles caps how many affected files appear per detailed
// markdown finding.
const maxDetailFiles = 5

// WriteReport outputs the scan report, dispatching based on the output
// format configured.
func WriteReport(report *schema.DebtReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportMarkdown(w, report)
		}, "Wrote markdown")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(w, report, cfg)
		}, "Wrote table")
	}
}

// writeReportTable generates and writes the human-readable table.
func writeReportTable(w io.Writer, report *schema.DebtReport, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Hours", "Severity", "Top Affected"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignLeft
	})

	pathWidth := getMaxTablePathWidth(cfg)
	var data [][]string
	for _, f := range report.SortedFindings() {
		data = append(data, []string{
			f.Category.Title(),
			fmtHours(f.Hours),
			severityLabel(f.Severity, cfg),
			summarizeFiles(f.Files, maxTableFiles, pathWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Total estimated debt: %s developer-hours (scanned %s)\n",
		fmtHours(report.TotalHours), report.ScannedAt.Format("2006-01-02 15:04")); err != nil {
		return err
	}
	critical := report.SeverityCount(schema.CriticalSeverity)
	high := report.SeverityCount(schema.HighSeverity)
	if critical+high > 0 {
		if _, err := fmt.Fprintf(w, "Attention: %d critical and %d high severity areas\n", critical, high); err != nil {
			return err
		}
	}
	for _, f := range report.SortedFindings() {
		if len(f.Recommendations) == 0 || f.Hours == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "  - %s: %s\n", f.Category.Title(), f.Recommendations[0]); err != nil {
			return err
		}
	}
	return writeWarnings(w, report.Warnings)
}

// writeReportMarkdown writes the full report as a markdown document.
func writeReportMarkdown(w io.Writer, report *schema.DebtReport) error {
	var b strings.Builder

	b.WriteString("# Technical Debt Report\n\n")
	fmt.Fprintf(&b, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(&b, "**Analysis Date:** %s\n\n", report.ScannedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Total Estimated Debt:** %s developer-hours\n\n", fmtHours(report.TotalHours))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "Found debt across %d categories: %d critical, %d high, %d medium, %d low.\n\n",
		len(report.Findings),
		report.SeverityCount(schema.CriticalSeverity),
		report.SeverityCount(schema.HighSeverity),
		report.SeverityCount(schema.MediumSeverity),
		report.SeverityCount(schema.LowSeverity))

	b.WriteString("## Debt Categories\n\n")
	b.WriteString("| Category | Hours | Severity | Files |\n")
	b.WriteString("|----------|-------|----------|-------|\n")
	for _, f := range report.SortedFindings() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			f.Category.Title(), fmtHours(f.Hours), contract.GetPlainLabel(f.Severity),
			summarizeFiles(f.Files, maxTableFiles, 0))
	}
	b.WriteString("\n## Detailed Findings\n\n")
	for _, f := range report.SortedFindings() {
		fmt.Fprintf(&b, "### %s\n\n", f.Category.Title())
		fmt.Fprintf(&b, "- **Severity:** %s\n", contract.GetPlainLabel(f.Severity))
		fmt.Fprintf(&b, "- **Estimated Hours:** %s\n", fmtHours(f.Hours))
		if f.Rationale != "" {
			fmt.Fprintf(&b, "- **Rationale:** %s\n", f.Rationale)
		}
		if f.Caveat != "" {
			fmt.Fprintf(&b, "- **Caveat:** %s\n", f.Caveat)
		}
		if len(f.Files) > 0 {
			b.WriteString("- **Affected Files:**\n")
			for i, path := range f.Files {
				if i == maxDetailFiles {
					fmt.Fprintf(&b, "  - ...and %d more\n", len(f.Files)-maxDetailFiles)
					break
				}
				fmt.Fprintf(&b, "  - `%s`\n", path)
			}
		}
		if len(f.Recommendations) > 0 {
			b.WriteString("- **Recommendations:**\n")
			for _, rec := range f.Recommendations {
				fmt.Fprintf(&b, "  - %s\n", rec)
			}
		}
		b.WriteString("\n")
	}

	if len(report.Hotspots) > 0 {
		b.WriteString("## Debt Hotspots\n\n")
		b.WriteString("| Rank | Path | Hours | Dominant | Lines |\n")
		b.WriteString("|------|------|-------|----------|-------|\n")
		for i, h := range report.Hotspots {
			fmt.Fprintf(&b, "| %d | `%s` | %s | %s | %d |\n",
				i+1, h.Path, fmtHours(h.Hours), h.Category.Title(), h.SizeLines)
		}
		b.WriteString("\n")
	}

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, warn := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", warn)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeReportCSV writes the per-category findings in CSV format.
func writeReportCSV(w io.Writer, report *schema.DebtReport) error {
	header := []string{"category", "hours", "severity", "files", "rationale", "caveat"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, f := range report.SortedFindings() {
			rec := []string{
				string(f.Category),
				fmtHours(f.Hours),
				contract.GetPlainLabel(f.Severity),
				strings.Join(f.Files, "|"),
				f.Rationale,
				f.Caveat,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// summarizeFiles joins the first few file entries with a "+N more"
// suffix when truncated. A width of 0 disables path truncation.
func summarizeFiles(files []string, limit, pathWidth int) string {
	if len(files) == 0 {
		return "-"
	}
	shown := files
	if len(shown) > limit {
		shown = shown[:limit]
	}
	parts := make([]string, 0, len(shown)+1)
	for _, f := range shown {
		if pathWidth > 0 {
			f = contract.TruncatePath(f, pathWidth)
		}
		parts = append(parts, f)
	}
	if rest := len(files) - len(shown); rest > 0 {
		parts = append(parts, fmt.Sprintf("+%d more", rest))
	}
	return strings.Join(parts, ", ")
}

// writeWarnings appends recovered scan warnings after table output.
func writeWarnings(w io.Writer, warnings []string) error {
	for _, warn := range warnings {
		if _, err := fmt.Fprintf(w, "Warn %s\n", warn); err != nil {
			return err
		}
	}
	return nil
}
