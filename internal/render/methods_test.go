package render

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/peek/internal/introspect"
)

type Base struct{}

func (Base) Greet(name string) string { return name }

type Hello struct {
	Base
}

func (Hello) World(a, b int) {}

func plain() Options {
	opts := DefaultOptions()
	opts.Plain = true
	return opts
}

func colored() Options {
	opts := DefaultOptions()
	opts.Color = ColorAlways
	return opts
}

func TestArgs(t *testing.T) {
	tests := []struct {
		arity int
		want  string
	}{
		{0, "()"},
		{1, "(arg1)"},
		{2, "(arg1, arg2)"},
		{4, "(arg1, arg2, arg3, arg4)"},
		{-1, "(*arg1)"},
		{-3, "(*arg1)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Args(tt.arity), "arity %d", tt.arity)
	}
}

func TestMethod(t *testing.T) {
	upcase := introspect.Method{Name: "upcase", Receiver: "String", Owner: "String", Bound: true, Exported: true}
	include := introspect.Method{Name: "include?", Arity: 1, Receiver: "String", Owner: "String", Bound: true}
	tr := introspect.Method{Name: "tr", Arity: 2, Receiver: "String", Owner: "String", Bound: true}
	split := introspect.Method{Name: "split", Arity: -1, Receiver: "String", Owner: "String", Bound: true}
	isA := introspect.Method{Name: "is_a?", Arity: 1, Receiver: "String", Owner: "Kernel", Bound: true}
	world := introspect.Method{Name: "world", Arity: 0, Receiver: "Hello", Owner: "Hello"}
	world2 := introspect.Method{Name: "world", Arity: 2, Receiver: "Hello", Owner: "Hello"}

	tests := []struct {
		name   string
		method introspect.Method
		plain  string
		color  string
	}{
		{
			name:   "no arguments",
			method: upcase,
			plain:  "String#upcase()",
			color:  "\x1b[1;33mString\x1b[0m#\x1b[1;35mupcase\x1b[0m\x1b[0;37m()\x1b[0m",
		},
		{
			name:   "one argument",
			method: include,
			plain:  "String#include?(arg1)",
			color:  "\x1b[1;33mString\x1b[0m#\x1b[1;35minclude?\x1b[0m\x1b[0;37m(arg1)\x1b[0m",
		},
		{
			name:   "two arguments",
			method: tr,
			plain:  "String#tr(arg1, arg2)",
			color:  "\x1b[1;33mString\x1b[0m#\x1b[1;35mtr\x1b[0m\x1b[0;37m(arg1, arg2)\x1b[0m",
		},
		{
			name:   "variadic",
			method: split,
			plain:  "String#split(*arg1)",
			color:  "\x1b[1;33mString\x1b[0m#\x1b[1;35msplit\x1b[0m\x1b[0;37m(*arg1)\x1b[0m",
		},
		{
			name:   "promoted from embedded type",
			method: isA,
			plain:  "String (Kernel)#is_a?(arg1)",
			color:  "\x1b[1;33mString (Kernel)\x1b[0m#\x1b[1;35mis_a?\x1b[0m\x1b[0;37m(arg1)\x1b[0m",
		},
		{
			name:   "unbound",
			method: world,
			plain:  "Hello (unbound)#world()",
			color:  "\x1b[1;33mHello (unbound)\x1b[0m#\x1b[1;35mworld\x1b[0m\x1b[0;37m()\x1b[0m",
		},
		{
			name:   "unbound with arguments",
			method: world2,
			plain:  "Hello (unbound)#world(arg1, arg2)",
			color:  "\x1b[1;33mHello (unbound)\x1b[0m#\x1b[1;35mworld\x1b[0m\x1b[0;37m(arg1, arg2)\x1b[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.plain, Method(tt.method, plain()))
			assert.Equal(t, tt.color, Method(tt.method, colored()))
		})
	}
}

func TestMethod_DefaultColorsStrings(t *testing.T) {
	m := introspect.Method{Name: "upcase", Receiver: "String", Owner: "String", Bound: true}
	assert.Equal(t, "\x1b[1;33mString\x1b[0m#\x1b[1;35mupcase\x1b[0m\x1b[0;37m()\x1b[0m", Method(m, DefaultOptions()))
}

func TestMethod_UnboundMixin(t *testing.T) {
	m := introspect.Method{Name: "Greet", Arity: 1, Receiver: "pkg.Outer", Owner: "pkg.Base"}
	assert.Equal(t, "pkg.Outer (pkg.Base) (unbound)#Greet(arg1)", Method(m, plain()))
}

func TestMethod_FromReflection(t *testing.T) {
	m, err := introspect.MethodOf(Hello{}, "World")
	assert.NoError(t, err)
	assert.Equal(t, "render.Hello#World(arg1, arg2)", Method(m, plain()))

	greet, err := introspect.MethodOf(Hello{}, "Greet")
	assert.NoError(t, err)
	assert.Equal(t, "render.Hello (render.Base)#Greet(arg1)", Method(greet, plain()))
}

func TestMethodList(t *testing.T) {
	t.Run("indexed", func(t *testing.T) {
		set := introspect.MethodSet{Origin: "Hello", Bound: true, Methods: []introspect.Method{
			{Name: "m1", Receiver: "Hello", Owner: "Hello", Bound: true},
			{Name: "m2", Receiver: "Hello", Owner: "Hello", Bound: true},
		}}
		assert.Equal(t, "[\n    [0] m1() Hello\n    [1] m2() Hello\n]", MethodList(set, plain()))
	})

	t.Run("without index", func(t *testing.T) {
		set := introspect.MethodSet{Origin: "Hello", Bound: true, Methods: []introspect.Method{
			{Name: "m3", Arity: 2, Receiver: "Hello", Owner: "Hello", Bound: true},
		}}
		opts := plain()
		opts.Index = false
		assert.Equal(t, "[\n     m3(arg1, arg2) Hello\n]", MethodList(set, opts))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "[]", MethodList(introspect.MethodSet{Origin: "Hello"}, plain()))
	})

	t.Run("aligned columns", func(t *testing.T) {
		set := introspect.InstanceMethods(reflect.TypeOf(Hello{}))
		want := "[\n" +
			"    [0] Greet(arg1)       render.Hello (render.Base) (unbound)\n" +
			"    [1] World(arg1, arg2) render.Hello (unbound)\n" +
			"]"
		assert.Equal(t, want, MethodList(set, plain()))
	})

	t.Run("index padding", func(t *testing.T) {
		set := introspect.MethodSet{Origin: "T", Bound: true}
		for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
			set.Methods = append(set.Methods, introspect.Method{Name: name, Receiver: "T", Owner: "T", Bound: true})
		}
		lines := strings.Split(MethodList(set, plain()), "\n")
		assert.Equal(t, "    [ 0] a() T", lines[1])
		assert.Equal(t, "    [10] k() T", lines[11])
	})

	t.Run("natural order", func(t *testing.T) {
		set := introspect.MethodSet{Origin: "T", Bound: true, Methods: []introspect.Method{
			{Name: "m10", Receiver: "T", Owner: "T", Bound: true},
			{Name: "m2", Receiver: "T", Owner: "T", Bound: true},
		}}
		opts := plain()
		opts.Sort = introspect.SortNatural
		assert.Equal(t, "[\n    [0]  m2() T\n    [1] m10() T\n]", MethodList(set, opts))
		assert.Equal(t, "m10", set.Methods[0].Name, "input set is not reordered")
	})

	t.Run("colored", func(t *testing.T) {
		set := introspect.MethodSet{Origin: "Hello", Bound: true, Methods: []introspect.Method{
			{Name: "m1", Receiver: "Hello", Owner: "Hello", Bound: true},
		}}
		want := "[\n    [0] \x1b[1;35mm1\x1b[0m\x1b[0;37m()\x1b[0m \x1b[1;33mHello\x1b[0m\n]"
		assert.Equal(t, want, MethodList(set, colored()))
	})
}

func TestReflectMethodAndType(t *testing.T) {
	rm, _ := reflect.TypeOf(Hello{}).MethodByName("World")
	assert.Equal(t, "render.Hello (unbound)#World(arg1, arg2)", Sprint(rm, plain()))

	iface := reflect.TypeOf((*interface{ Close() error })(nil)).Elem()
	assert.Equal(t, "interface#Close()", Sprint(iface.Method(0), plain()))

	assert.Equal(t, "render.Hello < struct", Sprint(reflect.TypeOf(&Hello{}), plain()))
	assert.Equal(t, "[]int", Sprint(reflect.TypeOf([]int{}), plain()))
}
