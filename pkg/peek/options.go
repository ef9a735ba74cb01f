package peek

import (
	"github.com/toyz/peek/internal/introspect"
)

// Option adjusts the options of a single call.
type Option func(*Options)

func resolve(opts []Option) Options {
	o := Defaults()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithOptions replaces every option at once.
func WithOptions(o Options) Option {
	return func(dst *Options) { *dst = o }
}

// WithPlain disables colors.
func WithPlain() Option {
	return func(o *Options) { o.Plain = true }
}

// WithColor sets the color mode.
func WithColor(mode ColorMode) Option {
	return func(o *Options) {
		o.Plain = false
		o.Color = mode
	}
}

// WithHTML escapes output and wraps colors in <kbd> tags inside a <pre>.
func WithHTML() Option {
	return func(o *Options) { o.HTML = true }
}

// WithIndex toggles the [i] prefix on list items.
func WithIndex(on bool) Option {
	return func(o *Options) { o.Index = on }
}

// WithIndent sets the indentation width. A negative width left-aligns map
// keys.
func WithIndent(n int) Option {
	return func(o *Options) { o.Indent = n }
}

// WithMultiline toggles one-item-per-line layout.
func WithMultiline(on bool) Option {
	return func(o *Options) { o.Multiline = on }
}

// WithSortKeys toggles map key sorting.
func WithSortKeys(on bool) Option {
	return func(o *Options) { o.SortKeys = on }
}

// WithNaturalSort orders names and keys so that "m2" precedes "m10".
func WithNaturalSort() Option {
	return func(o *Options) { o.Sort = introspect.SortNatural }
}

// WithMaxDepth limits nesting; 0 means unlimited.
func WithMaxDepth(n int) Option {
	return func(o *Options) { o.MaxDepth = n }
}

// WithUnexported toggles unexported struct fields.
func WithUnexported(on bool) Option {
	return func(o *Options) { o.ShowUnexported = on }
}

// WithTheme sets the color theme.
func WithTheme(t Theme) Option {
	return func(o *Options) { o.Theme = t }
}

// WithFormatters replaces the formatter registry for the call.
func WithFormatters(r *FormatterRegistry) Option {
	return func(o *Options) { o.Formatters = r }
}
