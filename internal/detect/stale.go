package detect

import (
	"fmt"
	"sort"
	"time"

	"debtscan/schema"
)

// staleMonth approximates one month of file age.
const staleMonth = 30 * 24 * time.Hour

// FindStaleFiles flags files whose last modification is older than the
// given number of months, relative to now. Oldest files come first.
func FindStaleFiles(snap *schema.Snapshot, months int, now time.Time) schema.Finding {
	cutoff := now.Add(-time.Duration(months) * staleMonth)

	var stale []schema.SourceFile
	perFile := make(map[string]int)
	for _, file := range snap.Files {
		if file.ModTime.Before(cutoff) {
			stale = append(stale, file)
			perFile[file.Path] = 1
		}
	}

	sort.Slice(stale, func(i, j int) bool {
		if !stale[i].ModTime.Equal(stale[j].ModTime) {
			return stale[i].ModTime.Before(stale[j].ModTime)
		}
		return stale[i].Path < stale[j].Path
	})

	files := make([]string, 0, len(stale))
	for _, f := range stale {
		files = append(files, fmt.Sprintf("%s (last: %s)", f.Path, f.ModTime.Format("2006-01-02")))
	}

	return schema.Finding{
		Category: schema.Staleness,
		Items:    len(stale),
		Files:    files,
		PerFile:  perFile,
	}
}
