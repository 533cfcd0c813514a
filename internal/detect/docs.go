package detect

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"debtscan/schema"
)

// Declaration patterns per language.
var (
	pythonDefPattern = regexp.MustCompile(`^(\s*)(def|class)\s+(\w+)\s*[\(:]`)
	pythonDocPattern = regexp.MustCompile(`^\s*("""|'''|r"""|r''')`)
	goDeclPattern    = regexp.MustCompile(`^(func|type)\s+(\(?[^)]*\)\s*)?([A-Z]\w*)`)
)

// docstringLookahead is how many lines after a Python declaration are
// checked for an opening docstring.
const docstringLookahead = 4

// FindUndocumented flags function and class declarations that carry no
// documentation. Python declarations need a docstring in the following
// lines; Go exported declarations need a doc comment directly above.
func FindUndocumented(snap *schema.Snapshot) schema.Finding {
	perFile := make(map[string]int)
	names := make(map[string][]string)

	for _, file := range snap.Files {
		var missing []string
		switch file.Language {
		case schema.Python:
			missing = undocumentedPython(file.Lines)
		case schema.Go:
			missing = undocumentedGo(file.Lines)
		}
		if len(missing) > 0 {
			perFile[file.Path] = len(missing)
			names[file.Path] = missing
		}
	}

	paths := make([]string, 0, len(perFile))
	for path := range perFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	total := 0
	files := make([]string, 0, len(paths))
	for _, path := range paths {
		total += perFile[path]
		files = append(files, fmt.Sprintf("%s (%d undocumented)", path, perFile[path]))
	}

	return schema.Finding{
		Category: schema.Documentation,
		Items:    total,
		Files:    files,
		PerFile:  perFile,
	}
}

// undocumentedPython returns names of def/class declarations whose next
// non-empty line within the lookahead is not a docstring.
func undocumentedPython(lines []string) []string {
	var missing []string
	for i, line := range lines {
		match := pythonDefPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		hasDocstring := false
		for j := i + 1; j < len(lines) && j <= i+docstringLookahead; j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				continue
			}
			hasDocstring = pythonDocPattern.MatchString(lines[j])
			break
		}
		if !hasDocstring {
			missing = append(missing, match[3])
		}
	}
	return missing
}

// undocumentedGo returns names of exported top-level func/type
// declarations without a comment line directly above.
func undocumentedGo(lines []string) []string {
	var missing []string
	for i, line := range lines {
		match := goDeclPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		documented := i > 0 && strings.HasPrefix(strings.TrimSpace(lines[i-1]), "//")
		if !documented {
			missing = append(missing, match[3])
		}
	}
	return missing
}
