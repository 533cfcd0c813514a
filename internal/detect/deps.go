package detect

import (
	"fmt"
	"time"

	"debtscan/schema"
)

// Lock-file age rungs in days.
const (
	lockAgeHighDays   = 180
	lockAgeMediumDays = 90
)

// ScoreDependencies grades dependency debt from manifest presence and
// lock-file age. Unlike the count-based detectors it returns a
// pre-scored result: a base hour cost always applies, a surcharge is
// added when no manifest exists at all, and severity follows the age
// of the freshest lock file.
func ScoreDependencies(snap *schema.Snapshot, multipliers schema.Multipliers, now time.Time) schema.DependencyScore {
	hasManifest := false
	hasLock := false
	var freshestLock time.Time
	var files []string

	for _, m := range snap.Manifests {
		files = append(files, m.Path)
		if m.IsLock {
			hasLock = true
			if m.ModTime.After(freshestLock) {
				freshestLock = m.ModTime
			}
		} else {
			hasManifest = true
		}
	}

	score := schema.DependencyScore{
		Hours: multipliers.DependencyBase,
		Files: files,
	}

	if !hasManifest {
		score.Hours += multipliers.DependencyMissing
		score.Severity = schema.CriticalSeverity
		score.Rationale = "no dependency manifest found"
		return score
	}

	if hasLock {
		ageDays := int(now.Sub(freshestLock).Hours() / 24)
		switch {
		case ageDays > lockAgeHighDays:
			score.Severity = schema.HighSeverity
		case ageDays > lockAgeMediumDays:
			score.Severity = schema.MediumSeverity
		default:
			score.Severity = schema.LowSeverity
		}
		score.Rationale = fmt.Sprintf("lock file is %d days old", ageDays)
		return score
	}

	score.Severity = schema.LowSeverity
	score.Rationale = "manifest present, no lock file"
	return score
}
