package render

import (
	"strconv"
	"strings"

	"github.com/toyz/peek/internal/introspect"
)

// Args renders the argument placeholder list for an arity. Variadic
// signatures collapse into a single splat placeholder.
func Args(arity int) string {
	switch {
	case arity == 0:
		return "()"
	case arity < 0:
		return "(*arg1)"
	}
	var b strings.Builder
	b.WriteByte('(')
	for i := 1; i <= arity; i++ {
		if i > 1 {
			b.WriteString(", ")
		}
		b.WriteString("arg")
		b.WriteString(strconv.Itoa(i))
	}
	b.WriteByte(')')
	return b.String()
}

// OwnerLabel renders the receiver, the declaring type when the method is
// promoted, and the unbound marker.
func OwnerLabel(m introspect.Method) string {
	label := m.Receiver
	if m.Mixin() {
		label += " (" + m.Owner + ")"
	}
	if !m.Bound {
		label += " (unbound)"
	}
	return label
}

type methodTuple struct {
	name, args, owner string
}

func tupleOf(m introspect.Method) methodTuple {
	return methodTuple{name: m.Name, args: Args(m.Arity), owner: OwnerLabel(m)}
}
