package render

import (
	"html"

	"github.com/muesli/termenv"
)

var (
	csiReset = termenv.CSI + termenv.ResetSeq + "m"
)

// Painter decorates printed tokens.
type Painter interface {
	// Paint decorates text rendered in the given style.
	Paint(style Style, text string) string
	// Frame wraps a complete rendering.
	Frame(out string) string
}

// NewPainter returns the painter for theme. With html set the output is
// escaped and framed for a web page; colorize selects whether the theme
// is applied at all.
func NewPainter(theme Theme, colorize, html bool) Painter {
	var colors map[Style]color
	if colorize {
		colors = theme.resolve()
	}
	switch {
	case html:
		return htmlPainter{colors: colors}
	case colorize:
		return ansiPainter{colors: colors}
	default:
		return plainPainter{}
	}
}

type plainPainter struct{}

func (plainPainter) Paint(_ Style, text string) string { return text }
func (plainPainter) Frame(out string) string           { return out }

type ansiPainter struct {
	colors map[Style]color
}

func (p ansiPainter) Paint(style Style, text string) string {
	c, ok := p.colors[style]
	if !ok {
		return text
	}
	return termenv.CSI + c.sgr + "m" + text + csiReset
}

func (ansiPainter) Frame(out string) string { return out }

type htmlPainter struct {
	colors map[Style]color
}

func (p htmlPainter) Paint(style Style, text string) string {
	text = html.EscapeString(text)
	c, ok := p.colors[style]
	if !ok {
		return text
	}
	return `<kbd style="color:` + c.html + `">` + text + `</kbd>`
}

func (htmlPainter) Frame(out string) string {
	return "<pre>" + out + "</pre>"
}
