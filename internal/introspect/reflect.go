package introspect

import (
	"reflect"
	"runtime"

	"github.com/toyz/peek/internal/errors"
)

// compiler-generated wrappers (promoted methods, pointer shims) report this file
const autogenerated = "<autogenerated>"

// Methods returns the bound methods of the dynamic type of v.
func Methods(v any) MethodSet {
	if v == nil {
		return MethodSet{Origin: "nil", Bound: true}
	}
	return collect(reflect.TypeOf(v), true)
}

// PublicMethods returns the exported bound methods of v. Reflection only
// exposes exported methods, so this matches Methods.
func PublicMethods(v any) MethodSet {
	return Methods(v).Filter(Exported)
}

// InstanceMethods returns the unbound methods of t.
func InstanceMethods(t reflect.Type) MethodSet {
	if t == nil {
		return MethodSet{Origin: "nil"}
	}
	return collect(t, false)
}

// PublicInstanceMethods returns the exported unbound methods of t.
func PublicInstanceMethods(t reflect.Type) MethodSet {
	return InstanceMethods(t).Filter(Exported)
}

// MethodOf returns the bound method name of v.
func MethodOf(v any, name string) (Method, error) {
	if v == nil {
		return Method{}, errors.NewIntrospectionError("nil", "cannot look up method '"+name+"' on nil")
	}
	return lookup(reflect.TypeOf(v), name, true)
}

// InstanceMethodOf returns the unbound method name of t.
func InstanceMethodOf(t reflect.Type, name string) (Method, error) {
	if t == nil {
		return Method{}, errors.NewIntrospectionError("nil", "cannot look up method '"+name+"' on a nil type")
	}
	return lookup(t, name, false)
}

// FromReflect converts a reflect.Method obtained from t.
func FromReflect(t reflect.Type, m reflect.Method, bound bool) Method {
	return newResolver(t).describe(m, bound)
}

// TypeName returns the display name of t with pointers stripped from named types.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return baseType(t).String()
}

func lookup(t reflect.Type, name string, bound bool) (Method, error) {
	m, ok := t.MethodByName(name)
	if !ok {
		return Method{}, errors.MethodNotFound(TypeName(t), name, closestNames(collect(t, bound), name))
	}
	return newResolver(t).describe(m, bound), nil
}

func collect(t reflect.Type, bound bool) MethodSet {
	set := MethodSet{Origin: TypeName(t), Bound: bound}
	r := newResolver(t)
	for i := 0; i < t.NumMethod(); i++ {
		set.Methods = append(set.Methods, r.describe(t.Method(i), bound))
	}
	return Sort(set, SortLexical)
}

type resolver struct {
	base  reflect.Type
	iface bool
}

func newResolver(t reflect.Type) *resolver {
	return &resolver{
		base:  baseType(t),
		iface: t.Kind() == reflect.Interface,
	}
}

func (r *resolver) describe(m reflect.Method, bound bool) Method {
	return Method{
		Name:     m.Name,
		Arity:    arityOf(m.Type, !r.iface),
		Receiver: r.base.String(),
		Owner:    r.owner(m.Name).String(),
		Bound:    bound,
		Exported: m.IsExported(),
	}
}

// owner finds the type that declares name, following Go's promotion depth rules.
func (r *resolver) owner(name string) reflect.Type {
	if r.base.Kind() != reflect.Struct || declaredOn(r.base, name) {
		return r.base
	}
	if t := declaringEmbed(r.base, name); t != nil {
		return t
	}
	return r.base
}

func arityOf(ft reflect.Type, receiver bool) int {
	n := ft.NumIn()
	if receiver {
		n--
	}
	if ft.IsVariadic() {
		return -n
	}
	return n
}

// declaringEmbed walks embedded fields breadth first. At each depth the unique
// type declaring name wins; two declarers at the same depth are ambiguous.
// When no declarer can be identified the shallowest unique provider is used.
func declaringEmbed(base reflect.Type, name string) reflect.Type {
	level := []reflect.Type{base}
	seen := map[reflect.Type]bool{base: true}
	var fallback reflect.Type

	for len(level) > 0 {
		var declarers, providers, next []reflect.Type
		for _, t := range level {
			for i := 0; i < t.NumField(); i++ {
				f := t.Field(i)
				if !f.Anonymous {
					continue
				}
				inner := baseType(f.Type)
				if provides(inner, name) {
					providers = append(providers, inner)
					if declares(inner, name) {
						declarers = append(declarers, inner)
					}
				}
				if inner.Kind() == reflect.Struct && !seen[inner] {
					seen[inner] = true
					next = append(next, inner)
				}
			}
		}
		switch {
		case len(declarers) == 1:
			return declarers[0]
		case len(declarers) > 1:
			return nil
		}
		if fallback == nil && len(providers) == 1 {
			fallback = providers[0]
		}
		level = next
	}
	return fallback
}

func provides(t reflect.Type, name string) bool {
	if t.Kind() == reflect.Interface {
		_, ok := t.MethodByName(name)
		return ok
	}
	_, ok := reflect.PointerTo(t).MethodByName(name)
	return ok
}

func declares(t reflect.Type, name string) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Struct:
		return declaredOn(t, name)
	default:
		return true
	}
}

// declaredOn reports whether t itself declares name, as opposed to reaching
// it through an embedded field. Promoted methods are compiler wrappers.
func declaredOn(t reflect.Type, name string) bool {
	for _, candidate := range []reflect.Type{t, reflect.PointerTo(t)} {
		m, ok := candidate.MethodByName(name)
		if !ok || !m.Func.IsValid() {
			continue
		}
		fn := runtime.FuncForPC(m.Func.Pointer())
		if fn == nil {
			continue
		}
		if file, _ := fn.FileLine(fn.Entry()); file != autogenerated {
			return true
		}
	}
	return false
}

func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	return t
}
