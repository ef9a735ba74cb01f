// Package config resolves default rendering options from built-in values,
// the user's YAML config file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"

	"github.com/toyz/peek/internal/errors"
	"github.com/toyz/peek/internal/introspect"
	"github.com/toyz/peek/internal/render"
)

const (
	// EnvConfig overrides the config file location.
	EnvConfig = "PEEK_CONFIG"
	EnvIndent = "PEEK_INDENT"
	EnvIndex  = "PEEK_INDEX"

	relPath = "peek/config.yaml"
)

// File is the on-disk configuration. Unset fields keep the value below them.
type File struct {
	Plain          *bool             `yaml:"plain"`
	Color          string            `yaml:"color"`
	HTML           *bool             `yaml:"html"`
	Index          *bool             `yaml:"index"`
	Indent         *int              `yaml:"indent"`
	Multiline      *bool             `yaml:"multiline"`
	SortKeys       *bool             `yaml:"sort_keys"`
	Sort           string            `yaml:"sort"`
	MaxDepth       *int              `yaml:"max_depth"`
	ShowUnexported *bool             `yaml:"show_unexported"`
	Theme          string            `yaml:"theme"`
	Colors         map[string]string `yaml:"colors"`
}

// Path returns the config file location: $PEEK_CONFIG when set, otherwise
// peek/config.yaml under the XDG config directories.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	if p, err := xdg.SearchConfigFile(relPath); err == nil {
		return p
	}
	return filepath.Join(xdg.ConfigHome, filepath.FromSlash(relPath))
}

// Load resolves options from defaults, the config file and the environment.
// A missing config file is not an error.
func Load() (render.Options, error) {
	opts := render.DefaultOptions()

	path := Path()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if opts, err = Decode(data, opts); err != nil {
			return render.DefaultOptions(), errors.WrapConfigurationError(path, "load", err)
		}
	case !os.IsNotExist(err):
		return render.DefaultOptions(), errors.WrapFileSystemError("read", path, err)
	}

	return ApplyEnv(opts, os.LookupEnv)
}

// Decode applies a YAML document on top of base.
func Decode(data []byte, base render.Options) (render.Options, error) {
	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return base, errors.WrapParseError("config file", err)
	}
	return f.Apply(base)
}

// Apply overlays the fields set in f onto base.
func (f File) Apply(base render.Options) (render.Options, error) {
	opts := base
	setBool(&opts.Plain, f.Plain)
	setBool(&opts.HTML, f.HTML)
	setBool(&opts.Index, f.Index)
	setBool(&opts.Multiline, f.Multiline)
	setBool(&opts.SortKeys, f.SortKeys)
	setBool(&opts.ShowUnexported, f.ShowUnexported)
	if f.Indent != nil {
		opts.Indent = *f.Indent
	}
	if f.MaxDepth != nil {
		if *f.MaxDepth < 0 {
			return base, errors.ConfigurationError("max_depth", "must not be negative")
		}
		opts.MaxDepth = *f.MaxDepth
	}

	if f.Color != "" {
		mode, ok := render.ParseColorMode(f.Color)
		if !ok {
			return base, errors.ConfigurationError("color", fmt.Sprintf("unknown mode %q", f.Color)).
				WithSuggestion("use one of: auto, always, never")
		}
		opts.Color = mode
	}

	if f.Sort != "" {
		mode, err := ParseSortMode(f.Sort)
		if err != nil {
			return base, err
		}
		opts.Sort = mode
	}

	theme, err := f.theme(base.Theme)
	if err != nil {
		return base, err
	}
	opts.Theme = theme
	return opts, nil
}

func (f File) theme(current render.Theme) (render.Theme, error) {
	theme := current
	if f.Theme != "" {
		named, err := render.LookupTheme(f.Theme)
		if err != nil {
			names := render.Themes.List()
			sort.Strings(names)
			return nil, errors.ConfigurationError("theme", err.Error()).
				WithSuggestion("available themes: " + strings.Join(names, ", "))
		}
		theme = named
	}
	if len(f.Colors) == 0 {
		return theme, nil
	}

	overrides := make(map[render.Style]string, len(f.Colors))
	for style, value := range f.Colors {
		overrides[render.Style(style)] = value
	}
	if theme == nil {
		theme = render.DefaultTheme()
	}
	theme = theme.With(overrides)
	if err := theme.Validate(); err != nil {
		return nil, errors.ConfigurationError("colors", err.Error())
	}
	return theme, nil
}

// ParseSortMode parses "lexical" or "natural".
func ParseSortMode(s string) (introspect.SortMode, error) {
	switch strings.ToLower(s) {
	case "lexical", "":
		return introspect.SortLexical, nil
	case "natural":
		return introspect.SortNatural, nil
	}
	return introspect.SortLexical, errors.ConfigurationError("sort", fmt.Sprintf("unknown sort mode %q", s)).
		WithSuggestion("use lexical or natural")
}

// ApplyEnv overlays NO_COLOR, FORCE_COLOR, PEEK_INDENT and PEEK_INDEX.
// NO_COLOR wins over FORCE_COLOR.
func ApplyEnv(opts render.Options, lookup func(string) (string, bool)) (render.Options, error) {
	if v, ok := lookup("FORCE_COLOR"); ok && v != "" && v != "0" {
		opts.Color = render.ColorAlways
	}
	if v, ok := lookup("NO_COLOR"); ok && v != "" {
		opts.Color = render.ColorNever
	}

	if v, ok := lookup(EnvIndent); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.WrapConfigurationError(EnvIndent, "parse", err)
		}
		opts.Indent = n
	}
	if v, ok := lookup(EnvIndex); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.WrapConfigurationError(EnvIndex, "parse", err)
		}
		opts.Index = b
	}
	return opts, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
