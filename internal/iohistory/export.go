package iohistory

import (
	"errors"
	"fmt"

	"debtscan/internal/contract"
	"debtscan/internal/parquet"
	"debtscan/schema"
)

// exportScanLimit bounds one export pass. Large enough for years of
// daily scans.
const exportScanLimit = 100000

// ExecuteExport dumps all recorded scans to a pair of Parquet files for
// downstream analysis tooling.
func ExecuteExport(store contract.HistoryStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.ScanCount == 0 {
		return errors.New("no scan history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total scans: %d\n", status.ScanCount)

	records, err := store.ListScans(exportScanLimit)
	if err != nil {
		return fmt.Errorf("failed to retrieve scans: %w", err)
	}

	scans := parquet.ConvertScanRecords(records)
	categories := parquet.ConvertCategoryRecords(records)

	scansFile := outputFile + ".scans.parquet"
	if err := parquet.WriteScansParquet(scans, scansFile); err != nil {
		return fmt.Errorf("failed to write scans: %w", err)
	}
	fmt.Printf("Exported %d scans to: %s\n", len(scans), scansFile)

	categoriesFile := outputFile + ".scan_categories.parquet"
	if err := parquet.WriteScanCategoriesParquet(categories, categoriesFile); err != nil {
		return fmt.Errorf("failed to write scan categories: %w", err)
	}
	fmt.Printf("Exported %d category records to: %s\n", len(categories), categoriesFile)

	return nil
}

// PrintHistoryStatus prints history status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		return
	}
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Total Scans: %d\n", status.ScanCount)
	if status.ScanCount > 0 {
		fmt.Printf("Newest Scan: %s\n", status.NewestScan.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Scan: %s\n", status.OldestScan.Format("2006-01-02 15:04:05"))
	}
	if status.SizeBytes > 0 {
		fmt.Printf("Database Size: %d bytes\n", status.SizeBytes)
	}
}
