package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoModParser_Resolve(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "internal", "render")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/demo\n\ngo 1.22\n"), 0644))

	parser := NewGoModParser()

	t.Run("walks up from nested directory", func(t *testing.T) {
		info, err := parser.Resolve(nested)
		require.NoError(t, err)
		assert.Equal(t, "example.com/demo", info.Path)
		assert.Equal(t, "1.22", info.Version)

		expectedRoot, err := filepath.Abs(root)
		require.NoError(t, err)
		assert.Equal(t, expectedRoot, info.Root)
	})

	t.Run("parse module name", func(t *testing.T) {
		name, err := parser.ParseModuleName(filepath.Join(root, "go.mod"))
		require.NoError(t, err)
		assert.Equal(t, "example.com/demo", name)
	})

	t.Run("rejects non go.mod file", func(t *testing.T) {
		_, err := parser.ParseModuleName(filepath.Join(root, "README.md"))
		assert.Error(t, err)
	})
}

func TestGoModParser_MissingModuleDirective(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("go 1.22\n"), 0644))

	_, err := NewGoModParser().Resolve(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no module declaration")
}

func TestModuleInfo_RelativeImport(t *testing.T) {
	info := &ModuleInfo{Path: "example.com/demo"}

	assert.Equal(t, "example.com/demo", info.RelativeImport("."))
	assert.Equal(t, "example.com/demo/pkg/peek", info.RelativeImport("./pkg/peek"))
	assert.Equal(t, "strings", info.RelativeImport("strings"))
	assert.Equal(t, "github.com/x/y", info.RelativeImport("github.com/x/y"))
}
