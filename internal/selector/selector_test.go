package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/peek/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Selector
	}{
		{
			name:  "nested package with method",
			input: "a/b/pkg.T#M",
			want:  Selector{Package: "a/b/pkg", Type: "T", Method: "M"},
		},
		{
			name:  "standard library type",
			input: "strings.Builder",
			want:  Selector{Package: "strings", Type: "Builder"},
		},
		{
			name:  "relative package",
			input: "./internal/render.Options#Apply",
			want:  Selector{Package: "./internal/render", Type: "Options", Method: "Apply"},
		},
		{
			name:  "module path with dotted host",
			input: "github.com/toyz/peek/internal/introspect.Loader",
			want:  Selector{Package: "github.com/toyz/peek/internal/introspect", Type: "Loader"},
		},
		{
			name:  "bare type in current package",
			input: "Hello#world",
			want:  Selector{Package: ".", Type: "Hello", Method: "world"},
		},
		{
			name:  "surrounding whitespace",
			input: "  net/http.Client # Do ",
			want:  Selector{Package: "net/http", Type: "Client", Method: "Do"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "empty", input: ""},
		{name: "dangling hash", input: "strings.Builder#"},
		{name: "dangling slash", input: "net/"},
		{name: "directory without type", input: "net/http", message: "missing type name"},
		{name: "trailing dot", input: "strings.", message: "is not a type name"},
		{name: "numeric type", input: "pkg.1T", message: "is not a type name"},
		{name: "method with dot", input: "pkg.T#a.b", message: "is not a method name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.Equal(t, errors.SyntaxErrorCode, errors.Code(err))

			var selErr *errors.SelectorError
			require.ErrorAs(t, err, &selErr)
			assert.Equal(t, tt.input, selErr.Input)
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestParse_ErrorColumn(t *testing.T) {
	_, err := Parse("a/b.9x")
	var selErr *errors.SelectorError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, 5, selErr.Column)
}

func TestSelector_String(t *testing.T) {
	assert.Equal(t, "a/b/pkg.T#M", MustParse("a/b/pkg.T#M").String())
	assert.Equal(t, "Hello", MustParse("Hello").String())
	assert.False(t, MustParse("Hello").HasMethod())
	assert.Panics(t, func() { MustParse("#") })
}
