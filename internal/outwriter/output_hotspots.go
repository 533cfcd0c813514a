package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"debtscan/internal/contract"
	"debtscan/schema"
)

// WriteHotspots outputs the ranked worst-offender files, dispatching
// based on the output format configured.
func WriteHotspots(entries []schema.HotspotEntry, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHotspotsJSON(w, entries)
		}, "Wrote JSON")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHotspotsMarkdown(w, entries)
		}, "Wrote markdown")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHotspotsCSV(w, entries)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHotspotsTable(w, entries, cfg)
		}, "Wrote table")
	}
}

// writeHotspotsTable generates and writes the human-readable ranking.
func writeHotspotsTable(w io.Writer, entries []schema.HotspotEntry, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Path", "Hours", "Dominant", "Lines"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	pathWidth := getMaxTablePathWidth(cfg)
	var data [][]string
	for i, e := range entries {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(e.Path, pathWidth),
			fmtHours(e.Hours),
			e.Category.Title(),
			strconv.Itoa(e.SizeLines),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing top %d debt hotspots\n", len(entries))
	return err
}

// writeHotspotsMarkdown writes the ranking as a markdown table.
func writeHotspotsMarkdown(w io.Writer, entries []schema.HotspotEntry) error {
	if _, err := fmt.Fprint(w, "# Debt Hotspots\n\n| Rank | Path | Hours | Dominant Category | Lines |\n|------|------|-------|-------------------|-------|\n"); err != nil {
		return err
	}
	for i, e := range entries {
		if _, err := fmt.Fprintf(w, "| %d | `%s` | %s | %s | %d |\n",
			i+1, e.Path, fmtHours(e.Hours), e.Category.Title(), e.SizeLines); err != nil {
			return err
		}
	}
	return nil
}

// writeHotspotsCSV writes the ranking in CSV format.
func writeHotspotsCSV(w io.Writer, entries []schema.HotspotEntry) error {
	header := []string{"rank", "path", "hours", "category", "size_lines"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, e := range entries {
			rec := []string{
				strconv.Itoa(i + 1),
				e.Path,
				fmtHours(e.Hours),
				string(e.Category),
				strconv.Itoa(e.SizeLines),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeHotspotsJSON writes the ranking in JSON format with rank added.
func writeHotspotsJSON(w io.Writer, entries []schema.HotspotEntry) error {
	type jsonHotspot struct {
		Rank int `json:"rank"`
		schema.HotspotEntry
	}
	output := make([]jsonHotspot, len(entries))
	for i, e := range entries {
		output[i] = jsonHotspot{Rank: i + 1, HotspotEntry: e}
	}
	return writeJSON(w, output)
}
