package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/peek/internal/errors"
)

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(false)
	reporter.SetOutput(&buf)

	reporter.ReportWarning("config file ignored")
	assert.Contains(t, buf.String(), "! ")
	assert.Contains(t, buf.String(), "config file ignored\n")
}

func TestDiagnosticReporter_ReportError(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(false)
	reporter.SetOutput(&buf)

	err := errors.MethodNotFound("pkg.Oven", "Broil", []string{"Bake", "Boil"})
	reporter.ReportError(fmt.Errorf("lookup: %w", err))

	output := buf.String()
	assert.Contains(t, output, "Not Found\n---------\n")
	assert.Contains(t, output, "Message: lookup: undefined method 'Broil' for pkg.Oven")
	assert.Contains(t, output, "Context:\n   Method: Broil\n   Type: pkg.Oven\n")
	assert.Contains(t, output, "Suggestions:\n   1. did you mean one of: [Bake Boil]\n")
	assert.NotContains(t, output, "Error Chain:")
}

func TestDiagnosticReporter_Verbose(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(true)
	reporter.SetOutput(&buf)

	cause := fmt.Errorf("permission denied")
	reporter.ReportError(errors.WrapFileSystemError("read", "/etc/peek.yaml", cause))

	output := buf.String()
	assert.Contains(t, output, "File System Error")
	assert.Contains(t, output, "   Operation: read\n")
	assert.Contains(t, output, "Error Chain:\n")
	assert.Contains(t, output, "    2. permission denied\n")
}

func TestDiagnosticReporter_PlainError(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(false)
	reporter.SetOutput(&buf)

	reporter.ReportError(fmt.Errorf("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestFormatContextKey(t *testing.T) {
	assert.Equal(t, "Config Type", formatContextKey("config_type"))
	assert.Equal(t, "Column", formatContextKey("column"))
}
