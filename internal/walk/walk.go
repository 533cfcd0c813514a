// Package walk builds repository snapshots, from the working tree or
// from a commit through the git client.
package walk

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"debtscan/internal/contract"
	"debtscan/schema"
)

// binarySniffLen is how many leading bytes are checked for null bytes
// when deciding whether a file is binary.
const binarySniffLen = 8000

// LoadRepository walks the working tree under cfg.RepoPath and returns
// a snapshot of all recognized source files plus dependency manifest
// stats. Per-file read failures become warnings, never errors.
func LoadRepository(cfg *contract.Config) (*schema.Snapshot, error) {
	snap := &schema.Snapshot{RepoPath: cfg.RepoPath}

	err := filepath.WalkDir(cfg.RepoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			snap.Warnings = append(snap.Warnings, fmt.Sprintf("cannot access %s: %v", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if _, skip := schema.SkipDirs[d.Name()]; skip && path != cfg.RepoPath {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(cfg.RepoPath, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		// Root-level manifests feed the dependency scorer even when the
		// file itself is excluded from content analysis.
		if isLock, isManifest := schema.ManifestNames[rel]; isManifest {
			if info, statErr := d.Info(); statErr == nil {
				snap.Manifests = append(snap.Manifests, schema.ManifestStat{
					Path:    rel,
					ModTime: info.ModTime(),
					IsLock:  isLock,
				})
			}
		}

		if contract.ShouldIgnore(rel, cfg.Excludes) {
			return nil
		}

		lang, ok := schema.LanguageForPath(rel)
		if !ok {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			snap.Warnings = append(snap.Warnings, fmt.Sprintf("cannot read %s: %v", rel, err))
			return nil
		}
		if IsBinary(content) {
			snap.Warnings = append(snap.Warnings, fmt.Sprintf("skipping binary file %s", rel))
			return nil
		}

		info, err := d.Info()
		if err != nil {
			snap.Warnings = append(snap.Warnings, fmt.Sprintf("cannot stat %s: %v", rel, err))
			return nil
		}

		snap.Files = append(snap.Files, NewSourceFile(rel, lang, content, info.ModTime()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("repository walk failed: %w", err)
	}

	return snap, nil
}

// NewSourceFile splits raw content into lines and fills the metadata
// the detectors and the duplication engine need.
func NewSourceFile(rel string, lang schema.Language, content []byte, modTime time.Time) schema.SourceFile {
	lines := SplitLines(content)
	return schema.SourceFile{
		Path:      rel,
		Language:  lang,
		Lines:     lines,
		ModTime:   modTime,
		LineCount: len(lines),
	}
}

// SplitLines splits file content into lines without trailing newlines.
// A trailing newline does not produce a phantom empty last line.
func SplitLines(content []byte) []string {
	s := strings.ReplaceAll(string(content), "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// IsBinary reports whether content looks like a binary file, using the
// classic null-byte sniff over the leading bytes.
func IsBinary(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}
