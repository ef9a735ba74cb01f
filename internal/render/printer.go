// Package render turns Go values, method descriptors and method sets into
// indented, optionally colored or HTML-decorated text.
package render

import (
	"io"
	"reflect"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/toyz/peek/internal/errors"
	"github.com/toyz/peek/internal/introspect"
)

var (
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
	typeType    = reflect.TypeOf((*reflect.Type)(nil)).Elem()
	methodType  = reflect.TypeOf((*introspect.Method)(nil)).Elem()
	setType     = reflect.TypeOf((*introspect.MethodSet)(nil)).Elem()
	rMethodType = reflect.TypeOf((*reflect.Method)(nil)).Elem()
)

// Printer holds the state of one rendering. It is not safe for concurrent use.
type Printer struct {
	opts        Options
	painter     Painter
	formatters  *FormatterRegistry
	indentation int
	depth       int
	visited     map[visit]bool
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

func newPrinter(opts Options, painter Painter) *Printer {
	return &Printer{
		opts:       opts,
		painter:    painter,
		formatters: opts.formatters(),
	}
}

// Sprint renders v. Colors follow opts.Color, with ColorAuto treated as
// colored since the result is not bound to a terminal.
func Sprint(v any, opts Options) string {
	return newPrinter(opts, opts.Painter(nil)).render(reflect.ValueOf(v))
}

// Fprint renders v to w followed by a newline. ColorAuto colors only
// terminals.
func Fprint(w io.Writer, v any, opts Options) error {
	out := newPrinter(opts, opts.Painter(w)).render(reflect.ValueOf(v))
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return errors.WrapRenderError("output", err)
	}
	return nil
}

func (p *Printer) render(v reflect.Value) string {
	p.indentation = p.opts.indentWidth()
	p.depth = 0
	p.visited = make(map[visit]bool)

	return p.painter.Frame(p.awesome(addressable(v)))
}

func (p *Printer) awesome(v reflect.Value) string {
	if !v.IsValid() {
		return p.paint(StyleNil, "nil")
	}
	v = exposed(v)

	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return p.paint(StyleNil, "nil")
		}
		return p.awesome(v.Elem())
	}

	if v.CanInterface() {
		if out, ok := p.special(v); ok {
			return out
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return p.paint(StyleTrue, "true")
		}
		return p.paint(StyleFalse, "false")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return p.paint(StyleInt, strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return p.paint(StyleInt, strconv.FormatUint(v.Uint(), 10))
	case reflect.Uintptr:
		return p.paint(StyleInt, "0x"+strconv.FormatUint(v.Uint(), 16))
	case reflect.Float32:
		return p.paint(StyleFloat, strconv.FormatFloat(v.Float(), 'g', -1, 32))
	case reflect.Float64:
		return p.paint(StyleFloat, strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Complex64:
		return p.paint(StyleFloat, strconv.FormatComplex(v.Complex(), 'g', -1, 64))
	case reflect.Complex128:
		return p.paint(StyleFloat, strconv.FormatComplex(v.Complex(), 'g', -1, 128))
	case reflect.String:
		return p.paint(StyleString, strconv.Quote(v.String()))
	case reflect.Pointer:
		return p.pointer(v)
	case reflect.Slice, reflect.Array:
		return p.array(v)
	case reflect.Map:
		return p.hash(v)
	case reflect.Struct:
		return p.structure(v, "")
	case reflect.Func:
		return p.function(v)
	case reflect.UnsafePointer:
		return p.paint(StyleInt, "0x"+strconv.FormatUint(uint64(v.Pointer()), 16))
	default:
		if (v.Kind() == reflect.Chan) && v.IsNil() {
			return p.paint(StyleNil, "nil")
		}
		return p.paint(StyleClass, v.Type().String())
	}
}

// special handles descriptors, registered formatters and errors.
func (p *Printer) special(v reflect.Value) (string, bool) {
	switch v.Type() {
	case methodType:
		return p.method(v.Interface().(introspect.Method)), true
	case setType:
		return p.methodList(v.Interface().(introspect.MethodSet)), true
	case rMethodType:
		return p.reflectMethod(v.Interface().(reflect.Method)), true
	}
	if v.Type().Implements(typeType) && !isNilValue(v) {
		return p.typeValue(v.Interface().(reflect.Type)), true
	}

	if format, ok := p.formatters.Lookup(v.Type()); ok {
		text, style := format(v)
		return p.paint(style, text), true
	}

	if v.Type().Implements(errorType) {
		if isNilValue(v) {
			return p.paint(StyleNil, "nil"), true
		}
		if msg, ok := errorMessage(v); ok {
			return p.paint(StyleClass, v.Type().String()) + "(" + p.paint(StyleString, strconv.Quote(msg)) + ")", true
		}
	}
	return "", false
}

func (p *Printer) pointer(v reflect.Value) string {
	if v.IsNil() {
		return p.paint(StyleNil, "nil")
	}
	elem := v.Elem()
	if elem.Kind() == reflect.Struct && elem.CanInterface() {
		if out, ok := p.special(elem); ok {
			return out
		}
	}

	key := visit{v.Pointer(), v.Type()}
	if p.visited[key] {
		return "{...}"
	}
	p.visited[key] = true
	defer delete(p.visited, key)
	if elem.Kind() != reflect.Struct {
		return p.awesome(elem)
	}
	return p.structure(elem, "&")
}

func (p *Printer) array(v reflect.Value) string {
	if v.Len() == 0 {
		return "[]"
	}
	if v.Kind() == reflect.Slice {
		key := visit{v.Pointer(), v.Type()}
		if p.visited[key] {
			return "[...]"
		}
		p.visited[key] = true
		defer delete(p.visited, key)
	}
	if p.tooDeep() {
		return "..."
	}
	p.depth++
	defer func() { p.depth-- }()

	if !p.opts.Multiline {
		items := make([]string, v.Len())
		for i := range items {
			items[i] = p.awesome(v.Index(i))
		}
		return "[ " + strings.Join(items, ", ") + " ]"
	}

	indexWidth := len(strconv.Itoa(v.Len() - 1))
	items := make([]string, v.Len())
	for i := range items {
		index := p.indent()
		if p.opts.Index {
			index += p.paint(StyleArray, "["+padLeft(strconv.Itoa(i), indexWidth)+"] ")
		}
		p.indented(func() {
			items[i] = index + p.awesome(v.Index(i))
		})
	}
	return "[\n" + strings.Join(items, ",\n") + "\n" + p.outdent() + "]"
}

type entry struct {
	key   string
	value reflect.Value
}

func (p *Printer) hash(v reflect.Value) string {
	if v.Len() == 0 {
		return "{}"
	}
	key := visit{v.Pointer(), v.Type()}
	if p.visited[key] {
		return "{...}"
	}
	p.visited[key] = true
	defer delete(p.visited, key)
	if p.tooDeep() {
		return "..."
	}

	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: p.plainSingleLine(addressable(iter.Key())), value: addressable(iter.Value())})
	}
	if p.opts.SortKeys {
		sort.SliceStable(entries, func(i, j int) bool {
			return p.opts.Sort.Less(entries[i].key, entries[j].key)
		})
	}

	p.depth++
	defer func() { p.depth-- }()
	return p.pairs(entries, func(k string) string { return k }, StyleHash, " => ", "{", "}")
}

func (p *Printer) structure(v reflect.Value, prefix string) string {
	header := p.paint(StyleClass, prefix+structName(v.Type()))
	if p.tooDeep() {
		return header + " ..."
	}

	t := v.Type()
	entries := make([]entry, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() && !p.opts.ShowUnexported {
			continue
		}
		entries = append(entries, entry{key: f.Name, value: v.Field(i)})
	}
	if len(entries) == 0 {
		return header + " {}"
	}

	p.depth++
	defer func() { p.depth-- }()
	paintField := func(k string) string { return p.paint(StyleVariable, k) }
	return header + " " + p.pairs(entries, paintField, StyleStruct, ": ", "{", "}")
}

// pairs lays out key/value entries. Keys are right-justified to the widest
// key plus the current indentation, or left-aligned for a zero or negative
// indent.
func (p *Printer) pairs(entries []entry, paintKey func(string) string, sepStyle Style, sep, open, close string) string {
	keyWidth := 0
	for _, e := range entries {
		keyWidth = max(keyWidth, width(e.key))
	}
	if p.opts.Indent > 0 {
		keyWidth += p.indentation
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		p.indented(func() {
			lines[i] = p.align(e.key, keyWidth, paintKey) + p.paint(sepStyle, sep) + p.awesome(e.value)
		})
	}

	if !p.opts.Multiline {
		return open + " " + strings.Join(lines, ", ") + " " + close
	}
	return open + "\n" + strings.Join(lines, ",\n") + "\n" + p.outdent() + close
}

func (p *Printer) align(key string, keyWidth int, paintKey func(string) string) string {
	if !p.opts.Multiline {
		return paintKey(key)
	}
	fill := strings.Repeat(" ", max(0, keyWidth-width(key)))
	switch {
	case p.opts.Indent > 0:
		return fill + paintKey(key)
	case p.opts.Indent == 0:
		return p.indent() + paintKey(key) + fill
	default:
		lead := max(0, p.indentation+p.opts.Indent)
		return strings.Repeat(" ", lead) + paintKey(key) + fill
	}
}

func (p *Printer) function(v reflect.Value) string {
	if v.IsNil() {
		return p.paint(StyleNil, "nil")
	}
	return p.paint(StyleMethod, funcName(v.Pointer())) + p.paint(StyleArgs, Args(funcArity(v.Type())))
}

// plainSingleLine renders map keys without colors on one line.
func (p *Printer) plainSingleLine(v reflect.Value) string {
	painter, multiline := p.painter, p.opts.Multiline
	if _, ok := painter.(htmlPainter); ok {
		p.painter = htmlPainter{}
	} else {
		p.painter = plainPainter{}
	}
	p.opts.Multiline = false
	defer func() {
		p.painter, p.opts.Multiline = painter, multiline
	}()
	return p.awesome(v)
}

func (p *Printer) paint(style Style, text string) string {
	return p.painter.Paint(style, text)
}

func (p *Printer) indented(fn func()) {
	p.indentation += p.opts.indentWidth()
	defer func() { p.indentation -= p.opts.indentWidth() }()
	fn()
}

func (p *Printer) indent() string {
	return strings.Repeat(" ", p.indentation)
}

func (p *Printer) outdent() string {
	return strings.Repeat(" ", max(0, p.indentation-p.opts.indentWidth()))
}

func (p *Printer) tooDeep() bool {
	return p.opts.MaxDepth > 0 && p.depth >= p.opts.MaxDepth
}

// addressable copies v when needed so unexported fields reach formatters.
func addressable(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanAddr() {
		return v
	}
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	return cp
}

// exposed makes values read through unexported fields usable with Interface.
func exposed(v reflect.Value) reflect.Value {
	if v.CanInterface() || !v.CanAddr() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func errorMessage(v reflect.Value) (msg string, ok bool) {
	defer func() {
		if recover() != nil {
			msg, ok = "", false
		}
	}()
	return v.Interface().(error).Error(), true
}

func structName(t reflect.Type) string {
	if t.Name() == "" {
		return "struct"
	}
	return t.String()
}

func funcName(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "func"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func padLeft(s string, n int) string {
	return strings.Repeat(" ", max(0, n-width(s))) + s
}

func padRight(s string, n int) string {
	return s + strings.Repeat(" ", max(0, n-width(s)))
}
