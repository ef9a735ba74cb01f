// Package selector parses type and method selectors of the form
// "path/to/pkg.Type" and "path/to/pkg.Type#Method".
package selector

import (
	stderrors "errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/peek/internal/errors"
)

// Selector names a type, and optionally one of its methods, inside a package.
type Selector struct {
	Package string // package pattern as given to go/packages, "." when omitted
	Type    string
	Method  string
}

// HasMethod reports whether the selector names a single method.
func (s Selector) HasMethod() bool {
	return s.Method != ""
}

// String renders the selector back to its canonical form.
func (s Selector) String() string {
	out := s.Package + "." + s.Type
	if s.Package == "." {
		out = s.Type
	}
	if s.HasMethod() {
		out += "#" + s.Method
	}
	return out
}

type expression struct {
	Path   []string `parser:"@Segment ( Slash @Segment )*"`
	Method string   `parser:"( Hash @Segment )?"`
}

var parser = participle.MustBuild[expression](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Segment", Pattern: `[A-Za-z0-9_\-~.]+`},
		{Name: "Slash", Pattern: `/`},
		{Name: "Hash", Pattern: `#`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
)

// Parse parses a selector. The type is the part of the last path segment
// after its final dot; a bare identifier refers to the package in the
// current directory.
func Parse(input string) (Selector, error) {
	expr, err := parser.ParseString("", input)
	if err != nil {
		column := 0
		var perr participle.Error
		if stderrors.As(err, &perr) {
			column = perr.Position().Column
		}
		return Selector{}, errors.NewSelectorError(input, column, err)
	}

	last := expr.Path[len(expr.Path)-1]
	dir := strings.Join(expr.Path[:len(expr.Path)-1], "/")

	sel := Selector{Method: expr.Method}
	dot := strings.LastIndex(last, ".")
	switch {
	case dot < 0 && len(expr.Path) == 1:
		sel.Package = "."
		sel.Type = last
	case dot < 0:
		return Selector{}, errors.NewSelectorError(input, len(input), fmt.Errorf("missing type name after %q", input))
	default:
		sel.Type = last[dot+1:]
		sel.Package = last[:dot]
		if dir != "" {
			sel.Package = dir + "/" + sel.Package
		}
		if sel.Package == "" {
			sel.Package = "."
		}
	}

	if !token.IsIdentifier(sel.Type) {
		column := dot + 2
		if dir != "" {
			column += len(dir) + 1
		}
		return Selector{}, errors.NewSelectorError(input, column, fmt.Errorf("%q is not a type name", sel.Type))
	}
	if sel.Method != "" && !token.IsIdentifier(sel.Method) {
		return Selector{}, errors.NewSelectorError(input, strings.LastIndex(input, "#")+2, fmt.Errorf("%q is not a method name", sel.Method))
	}
	return sel, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(input string) Selector {
	sel, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return sel
}
