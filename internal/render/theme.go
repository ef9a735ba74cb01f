package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/toyz/peek/internal/utils"
)

// Style names a kind of token the printer colors.
type Style string

const (
	StyleClass    Style = "class"
	StyleMethod   Style = "method"
	StyleArgs     Style = "args"
	StyleArray    Style = "array"
	StyleHash     Style = "hash"
	StyleStruct   Style = "struct"
	StyleString   Style = "string"
	StyleInt      Style = "int"
	StyleFloat    Style = "float"
	StyleTrue     Style = "true"
	StyleFalse    Style = "false"
	StyleNil      Style = "nil"
	StyleTime     Style = "time"
	StyleVariable Style = "variable"
)

// Theme maps styles to color names. A color is one of the palette names
// (gray, red, green, yellow, blue, purple, cyan, white), the same names
// suffixed with "ish" for the non-bold variant, "black" and "pale", a
// 256-color index, or a "#rrggbb" hex value.
type Theme map[Style]string

var palette = []string{"gray", "red", "green", "yellow", "blue", "purple", "cyan", "white"}

// DefaultTheme returns the colors used when no theme is configured.
func DefaultTheme() Theme {
	return Theme{
		StyleClass:    "yellow",
		StyleMethod:   "purple",
		StyleArgs:     "pale",
		StyleArray:    "white",
		StyleHash:     "pale",
		StyleStruct:   "pale",
		StyleString:   "yellowish",
		StyleInt:      "blue",
		StyleFloat:    "blue",
		StyleTrue:     "green",
		StyleFalse:    "red",
		StyleNil:      "red",
		StyleTime:     "greenish",
		StyleVariable: "cyanish",
	}
}

// LightTheme returns colors readable on a light background.
func LightTheme() Theme {
	return Theme{
		StyleClass:    "26",
		StyleMethod:   "90",
		StyleArgs:     "240",
		StyleArray:    "black",
		StyleHash:     "240",
		StyleStruct:   "240",
		StyleString:   "88",
		StyleInt:      "28",
		StyleFloat:    "28",
		StyleTrue:     "28",
		StyleFalse:    "160",
		StyleNil:      "160",
		StyleTime:     "21",
		StyleVariable: "27",
	}
}

// Themes holds the named themes selectable from configuration.
var Themes = newThemeRegistry()

func newThemeRegistry() *utils.BaseRegistry[string, Theme] {
	r := utils.NewBaseRegistry[string, Theme]("theme", "theme name")
	r.SetValidator(utils.ChainValidators(
		utils.NotNilValidator[string, Theme]("theme", func(t Theme) bool { return t == nil }),
		func(_ string, t Theme, _ map[string]Theme) error { return t.Validate() },
	))
	_ = r.Register("default", DefaultTheme())
	_ = r.Register("light", LightTheme())
	return r
}

// LookupTheme returns a copy of the registered theme called name.
func LookupTheme(name string) (Theme, error) {
	t, err := Themes.GetOrError(name)
	if err != nil {
		return nil, err
	}
	return t.With(nil), nil
}

// With returns a copy of t with the given styles replaced.
func (t Theme) With(overrides map[Style]string) Theme {
	out := make(Theme, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Validate reports the first color in t that cannot be resolved.
func (t Theme) Validate() error {
	styles := make([]string, 0, len(t))
	for s := range t {
		styles = append(styles, string(s))
	}
	sort.Strings(styles)
	for _, s := range styles {
		if _, err := parseColor(t[Style(s)]); err != nil {
			return fmt.Errorf("style %s: %w", s, err)
		}
	}
	return nil
}

// color is a resolved theme entry.
type color struct {
	sgr  string // SGR parameters, e.g. "1;33"
	html string // CSS color value
}

func parseColor(value string) (color, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "":
		return color{}, nil
	case "black":
		value = "grayish"
	case "pale":
		value = "whiteish"
	}

	name, ish := strings.CutSuffix(value, "ish")
	for i, p := range palette {
		if p != name {
			continue
		}
		weight := termenv.BoldSeq
		if ish {
			weight = termenv.ResetSeq
		}
		return color{
			sgr:  weight + ";" + termenv.ANSIColor(i).Sequence(false),
			html: name,
		}, nil
	}

	if hex, ok := strings.CutPrefix(value, "#"); ok {
		if len(hex) != 6 {
			return color{}, fmt.Errorf("invalid hex color %q", value)
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return color{}, fmt.Errorf("invalid hex color %q", value)
		}
		return color{
			sgr:  termenv.ResetSeq + ";" + termenv.RGBColor(value).Sequence(false),
			html: value,
		}, nil
	}

	if n, err := strconv.Atoi(value); err == nil && n >= 0 && n <= 255 {
		c := termenv.ANSI256Color(n)
		return color{
			sgr:  termenv.ResetSeq + ";" + c.Sequence(false),
			html: termenv.ConvertToRGB(c).Hex(),
		}, nil
	}

	return color{}, fmt.Errorf("unknown color %q", value)
}

// resolve converts every valid entry of t, dropping the ones that fail.
func (t Theme) resolve() map[Style]color {
	out := make(map[Style]color, len(t))
	for style, value := range t {
		if c, err := parseColor(value); err == nil && c.sgr != "" {
			out[style] = c
		}
	}
	return out
}
