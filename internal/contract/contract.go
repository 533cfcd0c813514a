// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"debtscan/schema"
)

// GitClient defines the necessary operations for trend analysis across
// commit history. This allows the core logic to be tested without
// needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns its stdout.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git
	// repository containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// ListCommits returns up to limit commits reachable from HEAD,
	// ordered oldest first.
	ListCommits(ctx context.Context, repoPath string, limit int) ([]schema.CommitInfo, error)

	// ListFilesAtRef returns all trackable file paths at a reference.
	ListFilesAtRef(ctx context.Context, repoPath string, ref string) ([]string, error)

	// ShowFileAtRef returns the content of one file at a reference.
	ShowFileAtRef(ctx context.Context, repoPath string, ref string, path string) ([]byte, error)

	// GetFileTimesAtRef returns the last-modified commit time of every
	// file as of the given reference.
	GetFileTimesAtRef(ctx context.Context, repoPath string, ref string) (map[string]time.Time, error)
}

// HistoryStore defines the interface for recording completed scans.
// This allows the persistence layer to be mocked for testing.
type HistoryStore interface {
	// RecordScan persists a finished report and returns its run ID.
	RecordScan(report *schema.DebtReport) (int64, error)

	// ListScans returns the most recent scan records, newest first.
	ListScans(limit int) ([]schema.ScanRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all recorded scans.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
