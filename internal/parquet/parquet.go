// Package parquet provides data structures and functions for exporting
// scan history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"debtscan/schema"
)

// Scan represents one persisted scan run. This struct maps to the
// debtscan_scans database table.
type Scan struct {
	// ScanID is the unique identifier for this scan
	ScanID int64 `parquet:"scan_id,snappy"`

	// RepoPath is the repository that was scanned
	RepoPath string `parquet:"repo_path,snappy"`

	// ScannedAt is when the scan ran (stored as TIMESTAMP with nanosecond precision)
	ScannedAt time.Time `parquet:"scanned_at,snappy"`

	// TotalHours is the estimated total debt in developer-hours
	TotalHours float64 `parquet:"total_hours,snappy"`
}

// ScanCategory represents one category result within a scan. This
// struct maps to the debtscan_scan_categories database table.
type ScanCategory struct {
	// ScanID references the parent scan
	ScanID int64 `parquet:"scan_id,snappy"`

	// Category is the debt category name
	Category string `parquet:"category,snappy"`

	// Hours is the estimated debt for this category
	Hours float64 `parquet:"hours,snappy"`

	// Severity is the graded urgency for this category
	Severity string `parquet:"severity,snappy"`

	// Items is the number of contributing items found
	Items int32 `parquet:"items,snappy"`
}

// WriteScansParquet writes a slice of Scan structs to a Parquet file.
func WriteScansParquet(data []Scan, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the Scan struct tags
	writer := parquet.NewGenericWriter[Scan](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteScanCategoriesParquet writes a slice of ScanCategory structs to a Parquet file.
func WriteScanCategoriesParquet(data []ScanCategory, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ScanCategory struct tags
	writer := parquet.NewGenericWriter[ScanCategory](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertScanRecords converts schema.ScanRecord to Scan for Parquet export.
func ConvertScanRecords(records []schema.ScanRecord) []Scan {
	result := make([]Scan, len(records))
	for i, record := range records {
		result[i] = Scan{
			ScanID:     record.ID,
			RepoPath:   record.RepoPath,
			ScannedAt:  record.ScannedAt,
			TotalHours: record.TotalHours,
		}
	}
	return result
}

// ConvertCategoryRecords flattens the per-scan category rows to
// ScanCategory for Parquet export.
func ConvertCategoryRecords(records []schema.ScanRecord) []ScanCategory {
	var result []ScanCategory
	for _, record := range records {
		for _, c := range record.Categories {
			result = append(result, ScanCategory{
				ScanID:   c.ScanID,
				Category: string(c.Category),
				Hours:    c.Hours,
				Severity: string(c.Severity),
				Items:    int32(c.Items),
			})
		}
	}
	return result
}
