package detect

import (
	"fmt"
	"sort"

	"debtscan/schema"
)

// FindComplexFiles flags files whose code line count exceeds the
// threshold. Affected files are ordered largest first.
func FindComplexFiles(snap *schema.Snapshot, threshold int) schema.Finding {
	type hit struct {
		path string
		loc  int
	}
	var hits []hit
	perFile := make(map[string]int)

	for _, file := range snap.Files {
		loc := CountCodeLines(file)
		if loc > threshold {
			hits = append(hits, hit{path: file.Path, loc: loc})
			perFile[file.Path] = 1
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].loc != hits[j].loc {
			return hits[i].loc > hits[j].loc
		}
		return hits[i].path < hits[j].path
	})

	files := make([]string, 0, len(hits))
	for _, h := range hits {
		files = append(files, fmt.Sprintf("%s (%d lines)", h.path, h.loc))
	}

	return schema.Finding{
		Category: schema.Complexity,
		Items:    len(hits),
		Files:    files,
		PerFile:  perFile,
	}
}
