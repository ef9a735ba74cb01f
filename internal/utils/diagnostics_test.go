package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticSystem_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    DiagnosticLevel
		contains []string
		excludes []string
	}{
		{
			name:     "quiet shows only errors",
			level:    DiagnosticError,
			contains: []string{"[ERROR] broken"},
			excludes: []string{"[INFO]", "[WARN]", "[VERBOSE]"},
		},
		{
			name:     "info shows info and warnings",
			level:    DiagnosticInfo,
			contains: []string{"[ERROR] broken", "[WARN] careful", "[INFO] loading", "- item"},
			excludes: []string{"[VERBOSE]", "[DEBUG]"},
		},
		{
			name:     "debug shows everything",
			level:    DiagnosticDebug,
			contains: []string{"[VERBOSE] details", "[DEBUG] internals"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			d := NewDiagnosticSystem(tt.level)
			d.SetOutput(&buf)

			d.Error("broken")
			d.Warn("careful")
			d.Info("loading")
			d.List("item")
			d.Verbose("details")
			d.Debug("internals")

			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestDiagnosticSystem_IndentAndProgress(t *testing.T) {
	var buf bytes.Buffer
	d := NewVerboseDiagnostics()
	d.SetOutput(&buf)

	d.Indent()
	d.List("nested")
	d.Unindent()
	d.Unindent()
	d.List("top")

	d.StartProgress("Loading packages")
	d.EndProgress(true, "")

	out := buf.String()
	assert.Contains(t, out, "  - nested\n")
	assert.Contains(t, out, "- top\n")
	assert.Contains(t, out, "✓ Loading packages")
}

func TestDiagnosticSystem_Suggestions(t *testing.T) {
	var buf bytes.Buffer
	d := NewQuietDiagnostics()
	d.SetOutput(&buf)

	d.Suggestions([]string{"did you mean Len"})
	assert.Equal(t, "  hint: did you mean Len\n", buf.String())
}

func TestShouldUseColors(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("FORCE_COLOR", "1")
	assert.False(t, ShouldUseColors())

	t.Setenv("NO_COLOR", "")
	assert.True(t, ShouldUseColors())

	t.Setenv("FORCE_COLOR", "")
	t.Setenv("TERM", "dumb")
	assert.False(t, ShouldUseColors())
}

func TestDiagnosticSystem_SectionAndSummary(t *testing.T) {
	var buf bytes.Buffer
	d := NewVerboseDiagnostics()
	d.SetOutput(&buf)

	d.Section("Routes")
	d.Success("done")
	d.Summary("Package cache", map[string]interface{}{"misses": 1, "hits": 2})

	output := buf.String()
	assert.Contains(t, output, "Routes\n")
	assert.Contains(t, output, "done")
	assert.Contains(t, output, "\nPackage cache\n   hits: 2\n   misses: 1\n")
}
