package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/peek/internal/utils"
)

// ModuleResolver handles resolving Go module information for selectors
type ModuleResolver struct {
	parser *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{parser: utils.NewGoModParser()}
}

// Resolve returns the module enclosing dir, or nil when dir is outside any
// module. Static lookups still work for standard library packages then.
func (r *ModuleResolver) Resolve(dir string) *utils.ModuleInfo {
	info, err := r.parser.Resolve(dir)
	if err != nil {
		return nil
	}
	return info
}

// ImportPath returns the full import path a package pattern refers to when
// resolved from dir: "." and "./sub" patterns become paths inside the
// module, anything else is already an import path.
func (r *ModuleResolver) ImportPath(info *utils.ModuleInfo, dir, pattern string) (string, error) {
	if info == nil || (pattern != "." && !strings.HasPrefix(pattern, "./") && !strings.HasPrefix(pattern, "../")) {
		return pattern, nil
	}

	absDir, err := filepath.Abs(filepath.Join(dir, filepath.FromSlash(pattern)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve package directory: %w", err)
	}
	root, err := filepath.Abs(info.Root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve module root: %w", err)
	}

	relPath, err := filepath.Rel(root, absDir)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return "", fmt.Errorf("package directory %s is outside module %s", absDir, info.Path)
	}
	if relPath == "." {
		return info.Path, nil
	}
	return info.RelativeImport("./" + filepath.ToSlash(relPath)), nil
}
