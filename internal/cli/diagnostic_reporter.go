package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/peek/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{verbose: verbose, out: os.Stderr}
}

// SetOutput redirects the report
func (r *DiagnosticReporter) SetOutput(w io.Writer) {
	r.out = w
}

// ReportWarning prints a one-line warning
func (r *DiagnosticReporter) ReportWarning(message string) {
	color.New(color.FgYellow, color.Bold).Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints err with its code, context and suggestions when it
// carries them
func (r *DiagnosticReporter) ReportError(err error) {
	var peekErr errors.PeekError
	if !asPeekError(err, &peekErr) {
		fmt.Fprintf(r.out, "Error: %s\n", err)
		return
	}

	header := errorTitle(peekErr.ErrorCode())
	color.New(color.FgRed, color.Bold).Fprintf(r.out, "%s\n", header)
	fmt.Fprintf(r.out, "%s\n", strings.Repeat("-", len(header)))
	fmt.Fprintf(r.out, "Message: %s\n", err)

	if ctx := peekErr.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}
	if hints := peekErr.Suggestions(); len(hints) > 0 {
		r.printSuggestions(hints)
	}
	if r.verbose {
		r.printErrorChain(err)
	}
}

func asPeekError(err error, target *errors.PeekError) bool {
	for err != nil {
		if pe, ok := err.(errors.PeekError); ok {
			*target = pe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func errorTitle(code errors.ErrorCode) string {
	switch code {
	case errors.SyntaxErrorCode:
		return "Syntax Error"
	case errors.IntrospectionErrorCode:
		return "Introspection Error"
	case errors.NotFoundErrorCode:
		return "Not Found"
	case errors.ConfigurationErrorCode:
		return "Configuration Error"
	case errors.FileSystemErrorCode:
		return "File System Error"
	case errors.RenderErrorCode:
		return "Render Error"
	default:
		return "Error"
	}
}

// printContext prints context entries sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.out, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
	}
}

func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "Error Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.out, "    %d. %s\n", level, err.Error())
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
		level++
	}
}
