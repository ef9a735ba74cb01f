package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// ModuleInfo describes the module enclosing a directory
type ModuleInfo struct {
	Path    string // module path from the module directive
	Root    string // directory holding go.mod
	GoMod   string // absolute path of go.mod
	Version string // go directive, empty when absent
}

// GoModParser locates and parses go.mod files
type GoModParser struct{}

// NewGoModParser creates a new go.mod parser
func NewGoModParser() *GoModParser {
	return &GoModParser{}
}

// ParseModuleName extracts the module name from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	file, err := p.parse(goModPath)
	if err != nil {
		return "", err
	}
	return file.Module.Mod.Path, nil
}

// FindGoModFile searches for go.mod starting from the given directory and walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if stat, err := os.Stat(goModPath); err == nil && !stat.IsDir() {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found above %s", startDir)
}

// Resolve finds the module enclosing startDir
func (p *GoModParser) Resolve(startDir string) (*ModuleInfo, error) {
	goModPath, err := p.FindGoModFile(startDir)
	if err != nil {
		return nil, err
	}

	file, err := p.parse(goModPath)
	if err != nil {
		return nil, err
	}

	info := &ModuleInfo{
		Path:  file.Module.Mod.Path,
		Root:  filepath.Dir(goModPath),
		GoMod: goModPath,
	}
	if file.Go != nil {
		info.Version = file.Go.Version
	}
	return info, nil
}

// RelativeImport turns a module-relative directory pattern such as ./pkg/peek
// into an import path inside the module. Other patterns are returned unchanged.
func (m *ModuleInfo) RelativeImport(pattern string) string {
	if pattern == "." {
		return m.Path
	}
	if !strings.HasPrefix(pattern, "./") {
		return pattern
	}
	return m.Path + "/" + strings.TrimPrefix(filepath.ToSlash(pattern), "./")
}

func (p *GoModParser) parse(goModPath string) (*modfile.File, error) {
	cleanPath := filepath.Clean(goModPath)
	if !strings.HasSuffix(cleanPath, "go.mod") {
		return nil, fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod file: %w", err)
	}

	file, err := modfile.ParseLax(cleanPath, content, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod file: %w", err)
	}

	if file.Module == nil {
		return nil, fmt.Errorf("no module declaration found in go.mod")
	}

	return file, nil
}
