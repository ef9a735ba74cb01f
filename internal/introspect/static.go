package introspect

import (
	"context"
	"fmt"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/toyz/peek/internal/errors"
	"github.com/toyz/peek/internal/utils"
)

const loadMode = packages.NeedName | packages.NeedTypes | packages.NeedTypesSizes

// Loader introspects types from source using go/packages. Static method sets
// are unbound and include unexported methods.
type Loader struct {
	dir   string
	goMod string
	cache *utils.Cache[string, []*packages.Package]
}

// NewLoader creates a loader resolving package patterns relative to dir.
// When dir lives inside a module, cached packages are dropped whenever its
// go.mod changes.
func NewLoader(dir string) *Loader {
	l := &Loader{
		dir:   dir,
		cache: utils.NewCache[string, []*packages.Package](),
	}
	if goMod, err := utils.NewGoModParser().FindGoModFile(dir); err == nil {
		l.goMod = goMod
	}
	return l
}

// Dir returns the directory patterns are resolved against.
func (l *Loader) Dir() string {
	return l.dir
}

// CacheStats reports package cache usage.
func (l *Loader) CacheStats() utils.CacheStats {
	return l.cache.GetStats()
}

// Load loads the packages matching pattern, reusing earlier results.
func (l *Loader) Load(ctx context.Context, pattern string) ([]*packages.Package, error) {
	key := filepath.Clean(l.dir) + "\x00" + pattern
	if pkgs, ok := l.cache.GetFresh(key, l.goMod); ok {
		return pkgs, nil
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     l.dir,
		Mode:    loadMode,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, errors.WrapIntrospectionError(pattern, err)
	}

	var loadErrs *errors.MultipleErrors
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			errors.AddToMultiple(&loadErrs, errors.WrapIntrospectionError(pkg.PkgPath, pkgErr))
		}
	}
	if err := loadErrs.ErrorOrNil(); err != nil {
		return nil, err
	}

	if l.goMod != "" {
		if err := l.cache.SetStamped(key, pkgs, l.goMod); err != nil {
			l.cache.Set(key, pkgs)
		}
	} else {
		l.cache.Set(key, pkgs)
	}
	return pkgs, nil
}

// TypeMethods returns the unbound methods of typeName declared in the
// package matching pattern, filtered by visibility.
func (l *Loader) TypeMethods(ctx context.Context, pattern, typeName string, vis Visibility) (MethodSet, error) {
	named, err := l.lookupType(ctx, pattern, typeName)
	if err != nil {
		return MethodSet{}, err
	}
	return Sort(staticMethods(named).Filter(vis), SortLexical), nil
}

// TypeMethod returns one unbound method of typeName.
func (l *Loader) TypeMethod(ctx context.Context, pattern, typeName, name string) (Method, error) {
	named, err := l.lookupType(ctx, pattern, typeName)
	if err != nil {
		return Method{}, err
	}
	set := staticMethods(named)
	if m, ok := set.Lookup(name); ok {
		return m, nil
	}
	return Method{}, errors.MethodNotFound(set.Origin, name, closestNames(set, name))
}

func (l *Loader) lookupType(ctx context.Context, pattern, typeName string) (types.Type, error) {
	pkgs, err := l.Load(ctx, pattern)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, errors.NewIntrospectionError(typeName, fmt.Sprintf("no packages match %q", pattern))
	}

	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		if tn, ok := pkg.Types.Scope().Lookup(typeName).(*types.TypeName); ok {
			return tn.Type(), nil
		}
	}
	return nil, errors.TypeNotFound(pkgs[0].PkgPath, typeName)
}

// staticMethods lists the method set of *T (or of T for interfaces), which is
// every method callable on an addressable T.
func staticMethods(t types.Type) MethodSet {
	receiver := qualifiedName(t)
	set := MethodSet{Origin: receiver}

	var mset *types.MethodSet
	if types.IsInterface(t) {
		mset = types.NewMethodSet(t)
	} else {
		mset = types.NewMethodSet(types.NewPointer(t))
	}

	for i := 0; i < mset.Len(); i++ {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok {
			continue
		}
		sig := fn.Type().(*types.Signature)

		arity := sig.Params().Len()
		if sig.Variadic() {
			arity = -arity
		}

		owner := receiver
		if recv := sig.Recv(); recv != nil {
			owner = qualifiedName(recv.Type())
		}
		// methods of unnamed interfaces report the literal type
		if strings.HasPrefix(owner, "interface") {
			owner = receiver
		}

		set.Methods = append(set.Methods, Method{
			Name:     fn.Name(),
			Arity:    arity,
			Receiver: receiver,
			Owner:    owner,
			Exported: fn.Exported(),
		})
	}
	return set
}

func qualifiedName(t types.Type) string {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		t = named.Origin()
	}
	return types.TypeString(t, func(p *types.Package) string {
		return p.Name()
	})
}
