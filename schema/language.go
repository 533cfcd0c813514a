package schema

import (
	"path/filepath"
	"strings"
)

// All recognized source languages.
const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Go         Language = "go"
)

// languageByExt maps file extensions to their language tag.
var languageByExt = map[string]Language{
	".py":  Python,
	".js":  JavaScript,
	".jsx": JavaScript,
	".ts":  TypeScript,
	".tsx": TypeScript,
	".go":  Go,
}

// LanguageForPath detects the language of a file from its extension.
// The second return is false for unrecognized files.
func LanguageForPath(path string) (Language, bool) {
	lang, ok := languageByExt[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// CommentPrefixes returns the single-line comment markers for a language.
func (l Language) CommentPrefixes() []string {
	switch l {
	case Python:
		return []string{"#"}
	case JavaScript, TypeScript, Go:
		return []string{"//"}
	default:
		return nil
	}
}

// HasDocstringFences reports whether the language uses triple-quoted
// string fences that should toggle comment state during normalization.
func (l Language) HasDocstringFences() bool {
	return l == Python
}

// IsDocstringFence reports whether a trimmed line opens or closes a
// docstring fence in this language.
func (l Language) IsDocstringFence(trimmed string) bool {
	if !l.HasDocstringFences() {
		return false
	}
	return strings.Contains(trimmed, `"""`) || strings.Contains(trimmed, "'''")
}

// IsCommentOnly reports whether a trimmed line consists solely of a
// single-line comment in this language.
func (l Language) IsCommentOnly(trimmed string) bool {
	for _, prefix := range l.CommentPrefixes() {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// IsTestPath reports whether a file path looks like a test or spec file.
func IsTestPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.Contains(lower, "test") || strings.Contains(lower, "spec")
}

// ManifestNames maps dependency manifest file names (repo root) to
// whether the file is a lock file.
var ManifestNames = map[string]bool{
	"requirements.txt":  false,
	"setup.py":          false,
	"pyproject.toml":    false,
	"package.json":      false,
	"go.mod":            false,
	"Pipfile.lock":      true,
	"package-lock.json": true,
	"yarn.lock":         true,
	"go.sum":            true,
}

// SkipDirs are directory names never descended into during traversal.
var SkipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"venv":         {},
	".venv":        {},
	"__pycache__":  {},
	"dist":         {},
	"build":        {},
	"vendor":       {},
}
