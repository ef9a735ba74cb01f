// Package introspect builds method descriptors from Go types, either at run
// time through reflect or statically through go/packages.
package introspect

import (
	"sort"

	"github.com/maruel/natural"
)

// Method describes one callable member of a type.
type Method struct {
	Name     string
	Arity    int    // negative for variadic methods: -N where N is the declared parameter count
	Receiver string // inspected type, pointer stripped
	Owner    string // declaring type, differs from Receiver for promoted methods
	Bound    bool   // obtained from a value rather than from a type
	Exported bool
}

// Variadic reports whether the method accepts a variable number of arguments.
func (m Method) Variadic() bool {
	return m.Arity < 0
}

// Mixin reports whether the method is provided by an embedded type rather
// than declared on the receiver.
func (m Method) Mixin() bool {
	return m.Owner != "" && m.Owner != m.Receiver
}

// MethodSet is a sorted collection of methods tagged with the type that produced it.
type MethodSet struct {
	Origin  string
	Bound   bool
	Methods []Method
}

// Len returns the number of methods in the set.
func (s MethodSet) Len() int {
	return len(s.Methods)
}

// Names returns the method names in set order.
func (s MethodSet) Names() []string {
	names := make([]string, len(s.Methods))
	for i, m := range s.Methods {
		names[i] = m.Name
	}
	return names
}

// Lookup returns the method with the given name.
func (s MethodSet) Lookup(name string) (Method, bool) {
	for _, m := range s.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// Filter returns a new set holding the methods matching the visibility.
func (s MethodSet) Filter(v Visibility) MethodSet {
	out := MethodSet{Origin: s.Origin, Bound: s.Bound}
	for _, m := range s.Methods {
		if v.matches(m) {
			out.Methods = append(out.Methods, m)
		}
	}
	return out
}

// Visibility selects exported, unexported or all methods.
type Visibility int

const (
	Exported Visibility = iota
	Unexported
	AllVisibility
)

func (v Visibility) matches(m Method) bool {
	switch v {
	case Exported:
		return m.Exported
	case Unexported:
		return !m.Exported
	default:
		return true
	}
}

// SortMode selects how names are ordered.
type SortMode int

const (
	SortLexical SortMode = iota
	SortNatural
)

// Less compares two names under the sort mode.
func (mode SortMode) Less(a, b string) bool {
	if mode == SortNatural {
		return natural.Less(a, b)
	}
	return a < b
}

// Sort orders the set by method name in place and returns it.
func Sort(s MethodSet, mode SortMode) MethodSet {
	sort.SliceStable(s.Methods, func(i, j int) bool {
		return mode.Less(s.Methods[i].Name, s.Methods[j].Name)
	})
	return s
}

// closestNames returns up to three names sharing the longest prefix with name.
func closestNames(s MethodSet, name string) []string {
	type scored struct {
		name  string
		score int
	}
	var candidates []scored
	for _, m := range s.Methods {
		n := commonPrefix(m.Name, name)
		if n > 0 {
			candidates = append(candidates, scored{m.Name, n})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	var out []string
	for i := 0; i < len(candidates) && i < 3; i++ {
		out = append(out, candidates[i].name)
	}
	return out
}

func commonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
