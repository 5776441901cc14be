package edgestore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/edgestore"
)

func edges(pairs ...[2]core.Node) []core.Edge {
	out := make([]core.Edge, len(pairs))
	for i, p := range pairs {
		out[i] = core.NewEdge(p[0], p[1])
	}
	return out
}

func TestNewVectorRejectsUnsorted(t *testing.T) {
	_, err := edgestore.NewVector(edges([2]core.Node{2, 3}, [2]core.Node{0, 1}))
	require.Error(t, err)
}

func TestNewVectorRejectsDuplicates(t *testing.T) {
	_, err := edgestore.NewVector(edges([2]core.Node{0, 1}, [2]core.Node{0, 1}))
	require.Error(t, err)
}

func TestVectorAtAndReader(t *testing.T) {
	v, err := edgestore.NewVector(edges([2]core.Node{0, 1}, [2]core.Node{1, 2}, [2]core.Node{2, 3}))
	require.NoError(t, err)
	require.Equal(t, 3, v.Len())

	e, err := v.At(1)
	require.NoError(t, err)
	require.Equal(t, core.NewEdge(1, 2), e)

	r := v.Reader()
	var seen []core.Edge
	for !r.Empty() {
		seen = append(seen, r.Current())
		r.Advance()
	}
	require.Equal(t, v.Snapshot(), seen)
}

func TestVectorAtOutOfRange(t *testing.T) {
	v, err := edgestore.NewVector(edges([2]core.Node{0, 1}))
	require.NoError(t, err)
	_, err = v.At(5)
	require.Error(t, err)
}

func TestVectorRewriteValidatesInvariants(t *testing.T) {
	v, err := edgestore.NewVector(edges([2]core.Node{0, 1}, [2]core.Node{2, 3}))
	require.NoError(t, err)

	require.NoError(t, v.Rewrite(edges([2]core.Node{0, 2}, [2]core.Node{1, 3})))
	require.Equal(t, edges([2]core.Node{0, 2}, [2]core.Node{1, 3}), v.Snapshot())

	err = v.Rewrite(edges([2]core.Node{1, 3}, [2]core.Node{0, 2}))
	require.Error(t, err)

	err = v.Rewrite(edges([2]core.Node{0, 1}))
	require.Error(t, err)
}

func TestStreamPushRewindToVector(t *testing.T) {
	s := edgestore.NewStream()
	require.NoError(t, s.Push(core.NewEdge(3, 4)))
	require.NoError(t, s.Push(core.NewEdge(0, 1)))
	require.NoError(t, s.Push(core.NewEdge(2, 3)))
	require.Equal(t, 3, s.Size())
	require.False(t, s.Sorted())

	v, err := s.ToVector()
	require.NoError(t, err)
	require.Equal(t, edges([2]core.Node{0, 1}, [2]core.Node{2, 3}, [2]core.Node{3, 4}), v.Snapshot())
}

func TestStreamRewindIterates(t *testing.T) {
	s := edgestore.NewStream()
	require.NoError(t, s.Push(core.NewEdge(0, 1)))
	require.NoError(t, s.Push(core.NewEdge(1, 2)))
	s.Rewind()

	var got []core.Edge
	for !s.Empty() {
		got = append(got, s.Current())
		s.Advance()
	}
	require.Equal(t, edges([2]core.Node{0, 1}, [2]core.Node{1, 2}), got)
}
