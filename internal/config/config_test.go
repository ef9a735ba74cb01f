package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/peek/internal/errors"
	"github.com/toyz/peek/internal/introspect"
	"github.com/toyz/peek/internal/render"
)

func noEnv(string) (string, bool) { return "", false }

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDecode(t *testing.T) {
	doc := []byte(`
plain: true
index: false
indent: -2
sort: natural
max_depth: 3
color: never
theme: light
colors:
  class: cyan
`)
	opts, err := Decode(doc, render.DefaultOptions())
	require.NoError(t, err)

	assert.True(t, opts.Plain)
	assert.False(t, opts.Index)
	assert.Equal(t, -2, opts.Indent)
	assert.Equal(t, introspect.SortNatural, opts.Sort)
	assert.Equal(t, 3, opts.MaxDepth)
	assert.Equal(t, render.ColorNever, opts.Color)
	assert.Equal(t, "cyan", opts.Theme[render.StyleClass])
	assert.Equal(t, render.LightTheme()[render.StyleString], opts.Theme[render.StyleString])

	assert.True(t, opts.Multiline, "unset fields keep their defaults")
	assert.True(t, opts.ShowUnexported)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		code    errors.ErrorCode
		message string
	}{
		{name: "malformed yaml", doc: "indent: [", code: errors.SyntaxErrorCode},
		{name: "unknown field", doc: "colour: always", code: errors.SyntaxErrorCode},
		{name: "bad color mode", doc: "color: sometimes", code: errors.ConfigurationErrorCode, message: "unknown mode"},
		{name: "bad sort", doc: "sort: random", code: errors.ConfigurationErrorCode, message: "unknown sort mode"},
		{name: "unknown theme", doc: "theme: neon", code: errors.ConfigurationErrorCode, message: "neon"},
		{name: "bad color", doc: "colors:\n  int: sparkly", code: errors.ConfigurationErrorCode, message: "sparkly"},
		{name: "negative depth", doc: "max_depth: -1", code: errors.ConfigurationErrorCode, message: "max_depth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), render.DefaultOptions())
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.Code(err))
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestDecode_UnknownThemeSuggestsNames(t *testing.T) {
	_, err := Decode([]byte("theme: neon"), render.DefaultOptions())
	var peekErr errors.PeekError
	require.ErrorAs(t, err, &peekErr)
	require.NotEmpty(t, peekErr.Suggestions())
	assert.Contains(t, peekErr.Suggestions()[0], "default, light")
}

func TestApplyEnv(t *testing.T) {
	opts, err := ApplyEnv(render.DefaultOptions(), envOf(map[string]string{
		"FORCE_COLOR": "1",
		EnvIndent:     "2",
		EnvIndex:      "false",
	}))
	require.NoError(t, err)
	assert.Equal(t, render.ColorAlways, opts.Color)
	assert.Equal(t, 2, opts.Indent)
	assert.False(t, opts.Index)

	opts, err = ApplyEnv(render.DefaultOptions(), envOf(map[string]string{"FORCE_COLOR": "1", "NO_COLOR": "1"}))
	require.NoError(t, err)
	assert.Equal(t, render.ColorNever, opts.Color)

	opts, err = ApplyEnv(render.DefaultOptions(), envOf(map[string]string{"FORCE_COLOR": "0"}))
	require.NoError(t, err)
	assert.Equal(t, render.ColorAuto, opts.Color)

	_, err = ApplyEnv(render.DefaultOptions(), envOf(map[string]string{EnvIndent: "wide"}))
	assert.Equal(t, errors.ConfigurationErrorCode, errors.Code(err))

	_, err = ApplyEnv(render.DefaultOptions(), envOf(map[string]string{EnvIndex: "maybe"}))
	assert.Equal(t, errors.ConfigurationErrorCode, errors.Code(err))

	opts, err = ApplyEnv(render.DefaultOptions(), noEnv)
	require.NoError(t, err)
	assert.Equal(t, render.DefaultOptions().Indent, opts.Indent)
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indent: 2\nindex: false\nmultiline: false\n"), 0644))

	t.Setenv(EnvConfig, path)
	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")
	t.Setenv(EnvIndent, "6")
	t.Setenv(EnvIndex, "")

	opts, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6, opts.Indent, "environment beats the file")
	assert.False(t, opts.Index, "file beats defaults")
	assert.False(t, opts.Multiline)
	assert.True(t, opts.SortKeys, "defaults fill the rest")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")
	t.Setenv(EnvIndent, "")
	t.Setenv(EnvIndex, "")

	opts, err := Load()
	require.NoError(t, err)
	assert.Equal(t, render.DefaultOptions().Indent, opts.Indent)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sort: sideways\n"), 0644))
	t.Setenv(EnvConfig, path)

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.Code(err))
	assert.Contains(t, err.Error(), path)
}

func TestPath_XDG(t *testing.T) {
	home := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()

	assert.Equal(t, filepath.Join(home, "peek", "config.yaml"), Path())

	require.NoError(t, os.MkdirAll(filepath.Join(home, "peek"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "peek", "config.yaml"), []byte("indent: 8\n"), 0644))
	assert.Equal(t, filepath.Join(home, "peek", "config.yaml"), Path())
}
