// Package peek renders Go values, method descriptors and method sets as
// indented, optionally colorized text.
//
//	peek.Print(user)
//	fmt.Println(peek.Inspect(peek.Methods(user), peek.WithPlain()))
//
// Defaults come from the user's config file and environment (see
// internal/config) and are resolved once per process. Options passed to a
// call always win.
package peek

import (
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/toyz/peek/internal/config"
	"github.com/toyz/peek/internal/introspect"
	"github.com/toyz/peek/internal/render"
)

type (
	Options   = render.Options
	Theme     = render.Theme
	Style     = render.Style
	ColorMode = render.ColorMode
	Method    = introspect.Method
	MethodSet = introspect.MethodSet

	FormatterRegistry = render.FormatterRegistry
)

const (
	ColorAuto   = render.ColorAuto
	ColorAlways = render.ColorAlways
	ColorNever  = render.ColorNever
)

const (
	StyleClass    = render.StyleClass
	StyleMethod   = render.StyleMethod
	StyleArgs     = render.StyleArgs
	StyleString   = render.StyleString
	StyleInt      = render.StyleInt
	StyleFloat    = render.StyleFloat
	StyleTime     = render.StyleTime
	StyleVariable = render.StyleVariable
)

// DefaultTheme and LightTheme return copies of the built-in themes.
var (
	DefaultTheme = render.DefaultTheme
	LightTheme   = render.LightTheme
)

var defaults struct {
	once sync.Once
	opts render.Options
	err  error
}

// Defaults returns the process-wide options: built-in values overlaid with
// the config file and the environment. An unreadable config falls back to
// the built-in values, still overlaid with the environment; ConfigError
// reports why.
func Defaults() Options {
	defaults.once.Do(func() {
		defaults.opts, defaults.err = loadDefaults()
	})
	return defaults.opts
}

func loadDefaults() (Options, error) {
	opts, err := config.Load()
	if err == nil {
		return opts, nil
	}
	opts, _ = config.ApplyEnv(render.DefaultOptions(), os.LookupEnv)
	return opts, err
}

// ConfigError returns the error hit while loading the defaults, if any.
func ConfigError() error {
	Defaults()
	return defaults.err
}

// Inspect renders v. Colors are on unless disabled by options, config or
// NO_COLOR.
func Inspect(v any, opts ...Option) string {
	return render.Sprint(v, resolve(opts))
}

// Fprint writes v and a trailing newline to w. With ColorAuto, colors are
// used only when w is a terminal.
func Fprint(w io.Writer, v any, opts ...Option) error {
	return render.Fprint(w, v, resolve(opts))
}

// Print writes v to standard output.
func Print(v any, opts ...Option) error {
	return Fprint(os.Stdout, v, opts...)
}

// Methods returns the bound methods of v's dynamic type, sorted by name.
func Methods(v any) MethodSet {
	return introspect.Methods(v)
}

// PublicMethods returns the exported bound methods of v.
func PublicMethods(v any) MethodSet {
	return introspect.PublicMethods(v)
}

// InstanceMethods returns the unbound methods of t.
func InstanceMethods(t reflect.Type) MethodSet {
	return introspect.InstanceMethods(t)
}

// PublicInstanceMethods returns the exported unbound methods of t.
func PublicInstanceMethods(t reflect.Type) MethodSet {
	return introspect.PublicInstanceMethods(t)
}

// MethodOf looks up a bound method of v by name.
func MethodOf(v any, name string) (Method, error) {
	return introspect.MethodOf(v, name)
}

// InstanceMethodOf looks up an unbound method of t by name.
func InstanceMethodOf(t reflect.Type, name string) (Method, error) {
	return introspect.InstanceMethodOf(t, name)
}

// TypeOf returns the reflect.Type of T, which may be an interface.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Signature renders a single method as "Receiver#name(args)".
func Signature(m Method, opts ...Option) string {
	return render.Method(m, resolve(opts))
}

// List renders a method set as an aligned, optionally indexed list.
func List(set MethodSet, opts ...Option) string {
	return render.MethodList(set, resolve(opts))
}

// NewFormatters returns a copy of the built-in formatter registry for use
// with WithFormatters.
func NewFormatters() *FormatterRegistry {
	return render.DefaultFormatters.Clone()
}

// RegisterFormatter installs a formatter for values of type T, used by every
// call that does not bring its own registry.
func RegisterFormatter[T any](style Style, fn func(T) string) error {
	return render.RegisterFormatter(render.DefaultFormatters, style, fn)
}
