package render

import (
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/peek/internal/utils"
)

// Formatter renders a value of one concrete type as a single token.
type Formatter func(v reflect.Value) (text string, style Style)

// FormatterRegistry maps concrete types to their formatters.
type FormatterRegistry struct {
	*utils.BaseRegistry[reflect.Type, Formatter]
}

// NewFormatterRegistry creates an empty registry.
func NewFormatterRegistry() *FormatterRegistry {
	r := &FormatterRegistry{
		BaseRegistry: utils.NewBaseRegistry[reflect.Type, Formatter]("formatter", "formatter type"),
	}
	r.SetValidator(utils.NotNilValidator[reflect.Type, Formatter]("formatter", func(f Formatter) bool { return f == nil }))
	return r
}

// Lookup returns the formatter registered for exactly t.
func (r *FormatterRegistry) Lookup(t reflect.Type) (Formatter, bool) {
	if r == nil {
		return nil, false
	}
	return r.Get(t)
}

// Clone returns an independent copy of the registry.
func (r *FormatterRegistry) Clone() *FormatterRegistry {
	out := NewFormatterRegistry()
	for _, t := range r.List() {
		if f, ok := r.Get(t); ok {
			_ = out.Register(t, f)
		}
	}
	return out
}

// RegisterFormatter registers fn for values of type T.
func RegisterFormatter[T any](r *FormatterRegistry, style Style, fn func(T) string) error {
	if fn == nil {
		return r.Register(reflect.TypeOf((*T)(nil)).Elem(), nil)
	}
	return r.Register(reflect.TypeOf((*T)(nil)).Elem(), func(v reflect.Value) (string, Style) {
		return fn(v.Interface().(T)), style
	})
}

// DefaultFormatters holds the built-in formatters used when Options carries
// no registry of its own.
var DefaultFormatters = builtinFormatters()

func builtinFormatters() *FormatterRegistry {
	r := NewFormatterRegistry()
	_ = RegisterFormatter(r, StyleTime, func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05.999999999 -0700 MST")
	})
	_ = RegisterFormatter(r, StyleTime, func(d time.Duration) string {
		return d.String()
	})
	_ = RegisterFormatter(r, StyleTime, func(loc *time.Location) string {
		return loc.String()
	})
	_ = RegisterFormatter(r, StyleString, func(id uuid.UUID) string {
		return id.String()
	})
	return r
}
