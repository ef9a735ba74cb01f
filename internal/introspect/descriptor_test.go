package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setOf(names ...string) MethodSet {
	set := MethodSet{Origin: "T"}
	for _, n := range names {
		set.Methods = append(set.Methods, Method{Name: n, Receiver: "T", Owner: "T", Exported: n[0] >= 'A' && n[0] <= 'Z'})
	}
	return set
}

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		mode SortMode
		in   []string
		want []string
	}{
		{
			name: "lexical",
			mode: SortLexical,
			in:   []string{"m10", "m2", "m1"},
			want: []string{"m1", "m10", "m2"},
		},
		{
			name: "natural",
			mode: SortNatural,
			in:   []string{"m10", "m2", "m1"},
			want: []string{"m1", "m2", "m10"},
		},
		{
			name: "exported before unexported",
			mode: SortLexical,
			in:   []string{"reset", "Len", "Add"},
			want: []string{"Add", "Len", "reset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted := Sort(setOf(tt.in...), tt.mode)
			assert.Equal(t, tt.want, sorted.Names())

			again := Sort(sorted, tt.mode)
			assert.Equal(t, tt.want, again.Names())
		})
	}
}

func TestMethodSet_Filter(t *testing.T) {
	set := setOf("Add", "reset", "Len")

	assert.Equal(t, []string{"Add", "Len"}, set.Filter(Exported).Names())
	assert.Equal(t, []string{"reset"}, set.Filter(Unexported).Names())
	assert.Equal(t, 3, set.Filter(AllVisibility).Len())
	assert.Equal(t, "T", set.Filter(Exported).Origin)
}

func TestMethodSet_Lookup(t *testing.T) {
	set := setOf("Add", "Len")

	m, ok := set.Lookup("Len")
	assert.True(t, ok)
	assert.Equal(t, "Len", m.Name)

	_, ok = set.Lookup("Cap")
	assert.False(t, ok)
}

func TestMethod_Predicates(t *testing.T) {
	m := Method{Name: "Printf", Arity: -2, Receiver: "log.Logger", Owner: "log.Logger"}
	assert.True(t, m.Variadic())
	assert.False(t, m.Mixin())

	m.Owner = "io.Writer"
	assert.True(t, m.Mixin())

	assert.False(t, Method{Arity: 0}.Variadic())
	assert.False(t, Method{Receiver: "T"}.Mixin())
}

func TestClosestNames(t *testing.T) {
	set := setOf("Reset", "Read", "ReadByte", "ReadRune", "Write")

	assert.Equal(t, []string{"Read", "ReadByte", "ReadRune"}, closestNames(set, "Reax"))
	assert.Equal(t, []string{"Write"}, closestNames(set, "Wr"))
	assert.Empty(t, closestNames(set, "Close"))
}
