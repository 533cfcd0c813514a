// Package schema has models and shared constants for all parts of debtscan.
package schema

import "time"

// SourceFile is an immutable snapshot of one file at scan time.
// It holds the ordered line content plus the metadata the detectors need.
type SourceFile struct {
	Path      string    // Relative path to the file in the repository
	Language  Language  // Detected language tag
	Lines     []string  // Ordered file lines, without trailing newlines
	ModTime   time.Time // Last-modified timestamp at scan time
	LineCount int       // Total number of lines (len(Lines), cached for ranking)
}

// ManifestStat describes a dependency manifest or lock file found in the
// repository root. Content is never loaded; the dependency scorer only
// needs presence and age.
type ManifestStat struct {
	Path    string
	ModTime time.Time
	IsLock  bool
}

// Snapshot is the full set of analyzable inputs for one scan: the loaded
// source files, the dependency manifests, and any per-file warnings that
// were recovered locally (unreadable or binary files).
type Snapshot struct {
	RepoPath  string
	Files     []SourceFile
	Manifests []ManifestStat
	Warnings  []string
}

// ComparisonUnit is a fixed-size window of normalized lines, the atomic
// unit for duplication matching. FileID indexes into the owning
// Snapshot's Files slice so units stay lightweight (no back-pointers).
type ComparisonUnit struct {
	FileID    int    // Index into Snapshot.Files
	NormIndex int    // Index of the first normalized line in the window
	StartLine int    // Original 1-based line of the first normalized line
	EndLine   int    // Original 1-based line of the last normalized line
	Length    int    // Window length in normalized lines
	Content   string // Joined normalized window content
}

// Occurrence records where a fingerprinted unit occurred. Many
// occurrences may share one fingerprint; that is the duplicate signal.
type Occurrence struct {
	FileID    int
	NormIndex int
	StartLine int
	EndLine   int
}

// BlockLocation is one resolved occurrence of a duplicate block,
// expressed in original file coordinates for reporting.
type BlockLocation struct {
	Path      string `json:"path"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// DuplicateBlock is a merged, deduplicated span of matching content
// across two or more locations. Span counts normalized lines covered.
type DuplicateBlock struct {
	Span      int             `json:"span"`
	Locations []BlockLocation `json:"locations"`
}

// Finding is the uniform record every simple detector returns: a
// category tag, an item count, and the contributing file paths. PerFile
// carries per-file item counts when a category can have more than one
// item per file (documentation); nil means one item per listed file.
// Caveat is set when a detector failed and the category degraded to zero.
type Finding struct {
	Category Category
	Items    int
	Files    []string
	PerFile  map[string]int
	Caveat   string
}

// DependencyScore is the pre-scored dependency-debt input to the
// aggregator. Unlike the count-based categories it carries its own hours
// and severity, derived from manifest presence and lock-file age.
type DependencyScore struct {
	Hours     float64
	Severity  Severity
	Files     []string
	Rationale string
	Caveat    string
}

// DebtFinding is one scored category in a report. Produced once per
// category per scan; immutable after aggregation.
type DebtFinding struct {
	Category  Category `json:"category"`
	Items     int      `json:"items"`
	Hours     float64  `json:"hours"`
	Severity  Severity `json:"severity"`
	Files     []string `json:"files,omitempty"`
	Rationale string   `json:"rationale,omitempty"`
	Caveat    string   `json:"caveat,omitempty"`

	// Recommendations are short remediation pointers for the category.
	Recommendations []string `json:"recommendations,omitempty"`
}

// HotspotEntry is one file in the worst-offender ranking.
type HotspotEntry struct {
	Path      string   `json:"path"`
	Category  Category `json:"category"`
	Hours     float64  `json:"hours"`
	SizeLines int      `json:"size_lines"`
}

// DebtReport is the complete result of one scan invocation. TotalHours
// is the exact sum of category hours; rounding happens only at render
// time so repeated aggregation never drifts.
type DebtReport struct {
	RepoPath   string        `json:"repository"`
	ScannedAt  time.Time     `json:"scanned_at"`
	Findings   []DebtFinding `json:"findings"`
	TotalHours float64       `json:"total_hours"`
	Hotspots   []HotspotEntry `json:"hotspots,omitempty"`
	Warnings   []string      `json:"warnings,omitempty"`
}

// FindingFor returns the finding for the given category, or nil.
func (r *DebtReport) FindingFor(c Category) *DebtFinding {
	for i := range r.Findings {
		if r.Findings[i].Category == c {
			return &r.Findings[i]
		}
	}
	return nil
}

// SortedFindings returns the findings ordered by severity then hours,
// both descending, with category order as the final tie-break so the
// rendering is deterministic.
func (r *DebtReport) SortedFindings() []DebtFinding {
	sorted := make([]DebtFinding, len(r.Findings))
	copy(sorted, r.Findings)
	SortFindings(sorted)
	return sorted
}

// SeverityCount returns how many findings carry the given severity.
func (r *DebtReport) SeverityCount(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// CommitInfo identifies one commit in a trend run.
type CommitInfo struct {
	Hash      string
	Timestamp time.Time
}

// TrendDirection classifies a per-category delta between two points.
type TrendDirection string

// All trend directions supported.
const (
	Regression  TrendDirection = "regression"
	Improvement TrendDirection = "improvement"
	Flat        TrendDirection = "flat"
)

// TrendDelta is the per-category hour change between two consecutive
// live trend points.
type TrendDelta struct {
	Category Category       `json:"category"`
	Before   float64        `json:"before"`
	After    float64        `json:"after"`
	Change   TrendDirection `json:"change"`
}

// TrendPoint is one historical snapshot's full debt report. A point that
// could not be materialized is flagged Skipped with a reason instead of
// failing the whole run. Deltas compare against the previous live point.
type TrendPoint struct {
	Commit     string       `json:"commit"`
	Timestamp  time.Time    `json:"timestamp"`
	Report     *DebtReport  `json:"report,omitempty"`
	Skipped    bool         `json:"skipped,omitempty"`
	SkipReason string       `json:"skip_reason,omitempty"`
	Deltas     []TrendDelta `json:"deltas,omitempty"`
}

// TrendResult is the ordered sequence of points for one trend run,
// oldest first. Owned exclusively by the trend correlator for the
// lifetime of the run.
type TrendResult struct {
	RepoPath string       `json:"repository"`
	Points   []TrendPoint `json:"points"`
}

// LivePoints returns the points that were successfully materialized.
func (t *TrendResult) LivePoints() []TrendPoint {
	live := make([]TrendPoint, 0, len(t.Points))
	for _, p := range t.Points {
		if !p.Skipped {
			live = append(live, p)
		}
	}
	return live
}
