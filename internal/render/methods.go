package render

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/toyz/peek/internal/introspect"
)

// Method renders a single method as Owner#name(args).
func Method(m introspect.Method, opts Options) string {
	return newPrinter(opts, opts.Painter(nil)).render(reflect.ValueOf(m))
}

// MethodList renders a method set as an aligned list.
func MethodList(set introspect.MethodSet, opts Options) string {
	return newPrinter(opts, opts.Painter(nil)).render(reflect.ValueOf(set))
}

func (p *Printer) method(m introspect.Method) string {
	return p.paint(StyleClass, OwnerLabel(m)) + "#" +
		p.paint(StyleMethod, m.Name) +
		p.paint(StyleArgs, Args(m.Arity))
}

func (p *Printer) methodList(set introspect.MethodSet) string {
	if set.Len() == 0 {
		return "[]"
	}
	if p.tooDeep() {
		return "..."
	}

	sorted := set
	sorted.Methods = append([]introspect.Method(nil), set.Methods...)
	sorted = introspect.Sort(sorted, p.opts.Sort)

	tuples := make([]methodTuple, len(sorted.Methods))
	nameWidth, argsWidth := 0, 0
	for i, m := range sorted.Methods {
		tuples[i] = tupleOf(m)
		nameWidth = max(nameWidth, width(tuples[i].name))
		argsWidth = max(argsWidth, width(tuples[i].args))
	}
	indexWidth := len(strconv.Itoa(len(tuples) - 1))

	lines := make([]string, len(tuples))
	for i, t := range tuples {
		prefix := p.indent()
		if p.opts.Index {
			prefix += "[" + padLeft(strconv.Itoa(i), indexWidth) + "]"
		}
		lines[i] = prefix + " " +
			p.paint(StyleMethod, padLeft(t.name, nameWidth)) +
			p.paint(StyleArgs, padRight(t.args, argsWidth)) + " " +
			p.paint(StyleClass, t.owner)
	}
	return "[\n" + strings.Join(lines, "\n") + "\n" + p.outdent() + "]"
}

// reflectMethod renders methods taken from a reflect.Type. Methods of
// interface types carry no receiver and render against "interface".
func (p *Printer) reflectMethod(m reflect.Method) string {
	if m.Func.IsValid() && m.Type.NumIn() > 0 {
		return p.method(introspect.FromReflect(m.Type.In(0), m, false))
	}
	return p.paint(StyleClass, "interface") + "#" +
		p.paint(StyleMethod, m.Name) +
		p.paint(StyleArgs, Args(funcArity(m.Type)))
}

func (p *Printer) typeValue(t reflect.Type) string {
	out := p.paint(StyleClass, introspect.TypeName(t))
	base := t
	for base.Kind() == reflect.Pointer && base.Name() == "" {
		base = base.Elem()
	}
	if base.Name() != "" && base.PkgPath() != "" {
		out += " < " + base.Kind().String()
	}
	return out
}

func funcArity(ft reflect.Type) int {
	n := ft.NumIn()
	if ft.IsVariadic() {
		return -n
	}
	return n
}
