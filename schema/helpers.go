package schema

import (
	"crypto/sha256"
	"math"
	"sort"
)

// Fingerprint is the SHA-256 digest of a normalized comparison window.
type Fingerprint [sha256.Size]byte

// FingerprintOf computes the fingerprint of normalized window content.
func FingerprintOf(content string) Fingerprint {
	return sha256.Sum256([]byte(content))
}

// Less orders fingerprints bytewise so iteration over a fingerprint set
// can be made deterministic.
func (f Fingerprint) Less(other Fingerprint) bool {
	for i := range f {
		if f[i] != other[i] {
			return f[i] < other[i]
		}
	}
	return false
}

// SortFindings orders findings in place by severity then hours, both
// descending, then by fixed category order.
func SortFindings(findings []DebtFinding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		if a.Hours != b.Hours {
			return a.Hours > b.Hours
		}
		return a.Category.Order() < b.Category.Order()
	})
}

// SortHotspots orders hotspot entries in place by hours descending,
// then size descending, then path ascending. The ranking is stable
// regardless of the order files were discovered in.
func SortHotspots(entries []HotspotEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Hours != b.Hours {
			return a.Hours > b.Hours
		}
		if a.SizeLines != b.SizeLines {
			return a.SizeLines > b.SizeLines
		}
		return a.Path < b.Path
	})
}

// RoundHours rounds an hour figure to one decimal for display. Internal
// totals stay exact; only renderers call this.
func RoundHours(h float64) float64 {
	return math.Round(h*10) / 10
}
