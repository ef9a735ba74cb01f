package render

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/toyz/peek/internal/introspect"
)

// ColorMode controls when ANSI colors are emitted.
type ColorMode int

const (
	// ColorAuto colors output written to a terminal, and always colors
	// renderings returned as strings.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// String returns the configuration spelling of the mode.
func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, bool) {
	switch s {
	case "auto", "":
		return ColorAuto, true
	case "always", "force":
		return ColorAlways, true
	case "never", "off":
		return ColorNever, true
	}
	return ColorAuto, false
}

// Options controls a rendering.
type Options struct {
	Plain          bool
	Color          ColorMode
	HTML           bool
	Index          bool // prefix slice and method list entries with their index
	Indent         int  // spaces per level; negative left-aligns map keys
	Multiline      bool
	SortKeys       bool
	Sort           introspect.SortMode
	MaxDepth       int // 0 renders everything
	ShowUnexported bool
	Theme          Theme
	Formatters     *FormatterRegistry // nil uses DefaultFormatters
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		Color:          ColorAuto,
		Index:          true,
		Indent:         4,
		Multiline:      true,
		SortKeys:       true,
		Sort:           introspect.SortLexical,
		ShowUnexported: true,
		Theme:          DefaultTheme(),
	}
}

// Colorize reports whether a rendering written to w carries colors. A nil
// writer stands for a rendering returned as a string.
func (o Options) Colorize(w io.Writer) bool {
	if o.Plain {
		return false
	}
	switch o.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if o.HTML || w == nil {
		return true
	}
	return IsTerminal(w)
}

// Painter returns the painter for output written to w.
func (o Options) Painter(w io.Writer) Painter {
	theme := o.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	return NewPainter(theme, o.Colorize(w), o.HTML)
}

// IsTerminal reports whether w is a terminal that accepts colors.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if termenv.EnvNoColor() {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (o Options) indentWidth() int {
	if o.Indent < 0 {
		return -o.Indent
	}
	return o.Indent
}

func (o Options) formatters() *FormatterRegistry {
	if o.Formatters != nil {
		return o.Formatters
	}
	return DefaultFormatters
}
