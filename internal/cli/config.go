package cli

import (
	"github.com/toyz/peek/internal/introspect"
	"github.com/toyz/peek/internal/render"
)

// Config holds the configuration for a CLI invocation
type Config struct {
	// Dir is the directory package patterns are resolved against
	Dir string

	// Visibility selects which methods "methods" lists
	Visibility introspect.Visibility

	// Options are the rendering options after flags were applied
	Options render.Options

	// Verbose enables detailed logging and error reporting
	Verbose bool
}
