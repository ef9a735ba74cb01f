package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		spec string
		sgr  string
		html string
	}{
		{"gray", "1;30", "gray"},
		{"black", "0;30", "gray"},
		{"yellow", "1;33", "yellow"},
		{"yellowish", "0;33", "yellow"},
		{"purple", "1;35", "purple"},
		{"pale", "0;37", "white"},
		{" Cyan ", "1;36", "cyan"},
		{"#00ff00", "0;38;2;0;255;0", "#00ff00"},
		{"196", "0;38;5;196", "#ff0000"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			c, err := parseColor(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.sgr, c.sgr)
			assert.Equal(t, tt.html, c.html)
		})
	}

	for _, bad := range []string{"mauve", "#12", "#gggggg", "256", "-1"} {
		_, err := parseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestTheme_Validate(t *testing.T) {
	assert.NoError(t, DefaultTheme().Validate())
	assert.NoError(t, LightTheme().Validate())

	err := Theme{StyleClass: "yellow", StyleInt: "sparkly"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "style int")
}

func TestTheme_With(t *testing.T) {
	base := DefaultTheme()
	custom := base.With(map[Style]string{StyleClass: "cyan"})

	assert.Equal(t, "cyan", custom[StyleClass])
	assert.Equal(t, "yellow", base[StyleClass])
	assert.Equal(t, base[StyleMethod], custom[StyleMethod])
}

func TestLookupTheme(t *testing.T) {
	light, err := LookupTheme("light")
	require.NoError(t, err)
	assert.Equal(t, "26", light[StyleClass])

	light[StyleClass] = "red"
	again, _ := LookupTheme("light")
	assert.Equal(t, "26", again[StyleClass], "lookups return copies")

	_, err = LookupTheme("neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme name 'neon' is not registered")

	assert.Error(t, Themes.Register("broken", Theme{StyleNil: "sparkly"}))
	_, ok := Themes.Get("broken")
	assert.False(t, ok)
}
