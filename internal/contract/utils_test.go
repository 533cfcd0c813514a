package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"debtscan/schema"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, "Critical", GetPlainLabel(schema.CriticalSeverity))
	assert.Equal(t, "High", GetPlainLabel(schema.HighSeverity))
	assert.Equal(t, "Medium", GetPlainLabel(schema.MediumSeverity))
	assert.Equal(t, "Low", GetPlainLabel(schema.LowSeverity))
}

func TestGetColorLabelContainsText(t *testing.T) {
	// Color codes may or may not be emitted depending on TTY detection,
	// but the plain text is always embedded.
	for _, s := range []schema.Severity{
		schema.CriticalSeverity, schema.HighSeverity, schema.MediumSeverity, schema.LowSeverity,
	} {
		assert.Contains(t, GetColorLabel(s), GetPlainLabel(s))
	}
}

func TestShouldIgnore(t *testing.T) {
	excludes := []string{"dist/", ".min.js", "*.pb.go", "go.sum"}

	testCases := []struct {
		path     string
		expected bool
	}{
		{"dist/bundle.js", true},
		{"src/app.min.js", true},
		{"api/service.pb.go", true},
		{"go.sum", true},
		{"src/app.py", false},
		{"distribution.py", false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.expected, ShouldIgnore(tc.path, excludes))
		})
	}
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.py", TruncatePath("short.py", 20))
	assert.Equal(t, "...d/deep/file.py", TruncatePath("some/very/nested/d/deep/file.py", 17))
	assert.Equal(t, "abcdef", TruncatePath("abcdef", 3), "tiny widths leave the path alone")
}

func TestParseBoolString(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"false", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseBoolString(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
