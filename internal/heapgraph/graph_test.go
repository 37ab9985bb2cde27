package heapgraph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viperproject/viper-ide-sub004/internal/model"
	"github.com/viperproject/viper-ide-sub004/internal/symbex"
)

var (
	refSort = model.NewSort("Ref")
	intSort = model.NewSort("Int")
	write   = model.Literal{Sort: model.NewSort("Perm"), Value: "W"}
	half    = model.Literal{Sort: model.NewSort("Perm"), Value: "1/2"}
	x       = model.Variable{ID: "x@1", Sort: refSort}
	y       = model.Variable{ID: "y@2", Sort: refSort}
	z       = model.Variable{ID: "z@3", Sort: refSort}
	three   = model.Literal{Sort: intSort, Value: "3"}
)

func field(name string, recv, snap, perm model.Term) model.FieldChunk {
	s, _ := model.SortOf(snap)
	return model.FieldChunk{Field: name, Sort: s, Receiver: recv, Snapshot: snap, Permission: perm}
}

func listState() *symbex.State {
	return &symbex.State{
		Heap: []model.HeapChunk{
			field("next", x, y, write),
			field("next", y, z, half),
			field("val", y, three, write),
			model.PredicateChunk{Predicate: "list", Args: []model.Term{z}, Snapshot: y, Permission: write},
		},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	hg, err := Build(listState())
	require.NoError(t, err)

	assert.Equal(t, 4, hg.Order())
	assert.Equal(t, []string{"3", "z@3"}, hg.Successors("y@2"))
	assert.Equal(t, []string{"y@2"}, hg.Successors("x@1"))
	assert.Empty(t, hg.Successors("z@3"))
	assert.Equal(t, []string{"next (1/2)"}, hg.Labels("y@2", "z@3"))
	assert.Nil(t, hg.Labels("z@3", "x@1"))

	n, ok := hg.Node("3")
	require.True(t, ok)
	assert.Equal(t, three, n.Term)
	_, ok = hg.Node("w@9")
	assert.False(t, ok)
}

func TestBuild_SharedEdge(t *testing.T) {
	t.Parallel()

	s := &symbex.State{Heap: []model.HeapChunk{
		field("left", x, y, write),
		field("right", x, y, half),
	}}
	hg, err := Build(s)
	require.NoError(t, err)

	assert.Equal(t, 2, hg.Order())
	assert.Equal(t, []string{"left (W)", "right (1/2)"}, hg.Labels("x@1", "y@2"))
}

func TestBuild_EmptyHeap(t *testing.T) {
	t.Parallel()

	hg, err := Build(&symbex.State{})
	require.NoError(t, err)
	assert.Equal(t, 0, hg.Order())
}

func TestReachable(t *testing.T) {
	t.Parallel()

	hg, err := Build(listState())
	require.NoError(t, err)

	tests := []struct {
		name string
		from string
		want []string
	}{
		{"from head", "x@1", []string{"x@1", "y@2", "3", "z@3"}},
		{"from middle", "y@2", []string{"y@2", "3", "z@3"}},
		{"from leaf", "z@3", []string{"z@3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := hg.Reachable(tt.from)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
			assert.Equal(t, tt.from, got[0])
		})
	}

	_, err = hg.Reachable("missing")
	assert.Error(t, err)
}

func TestWriteDOT(t *testing.T) {
	t.Parallel()

	hg, err := Build(listState())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, hg.WriteDOT(&buf))

	out := buf.String()
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, `"x@1"`)
	assert.Contains(t, out, "next (W)")
	assert.Contains(t, out, "x@1: Ref")
}
