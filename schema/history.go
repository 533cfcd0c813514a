package schema

import "time"

// ScanRecord is one persisted scan run in the history store.
type ScanRecord struct {
	ID         int64
	RepoPath   string
	ScannedAt  time.Time
	TotalHours float64
	Categories []CategoryRecord
}

// CategoryRecord is one persisted category result within a scan run.
type CategoryRecord struct {
	ScanID   int64
	Category Category
	Hours    float64
	Severity Severity
	Items    int
}

// HistoryStatus holds status information about the scan-history store.
type HistoryStatus struct {
	Backend    DatabaseBackend
	Location   string
	ScanCount  int
	OldestScan time.Time
	NewestScan time.Time
	SizeBytes  int64
}
