package swapsource_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/swapsource"
)

func TestSourceProducesDistinctAscendingIds(t *testing.T) {
	s := swapsource.NewSource(1, 100)
	for i := 0; i < 1000; i++ {
		sw := s.Next()
		require.True(t, sw.Edge1 < sw.Edge2)
		require.GreaterOrEqual(t, int64(sw.Edge1), int64(0))
		require.Less(t, int64(sw.Edge2), int64(100))
	}
	require.Equal(t, int64(1000), s.Generated())
}

func TestSourceDeterministicForSameSeed(t *testing.T) {
	a := swapsource.NewSource(42, 50)
	b := swapsource.NewSource(42, 50)
	for i := 0; i < 200; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
}

func TestSourceDifferentSeedsDiverge(t *testing.T) {
	a := swapsource.NewSource(1, 50)
	b := swapsource.NewSource(2, 50)
	same := true
	for i := 0; i < 50; i++ {
		if a.Next() != b.Next() {
			same = false
		}
	}
	require.False(t, same)
}

type sliceReader struct {
	edges []core.Edge
	pos   int
}

func (r *sliceReader) Empty() bool        { return r.pos >= len(r.edges) }
func (r *sliceReader) Current() core.Edge { return r.edges[r.pos] }
func (r *sliceReader) Advance()           { r.pos++ }

type sliceWriter struct {
	edges []core.Edge
}

func (w *sliceWriter) Push(e core.Edge) error {
	w.edges = append(w.edges, e)
	return nil
}

func TestEdgesToSwapsFlagsDuplicatesAndLoops(t *testing.T) {
	in := &sliceReader{edges: []core.Edge{
		core.NewEdge(0, 1),
		core.NewEdge(0, 1), // duplicate of previous
		core.NewEdge(2, 2), // loop
		core.NewEdge(3, 4),
	}}
	out := &sliceWriter{}

	swaps, err := swapsource.EdgesToSwaps(in, out, 4, 7)
	require.NoError(t, err)
	require.Equal(t, in.edges, out.edges)
	require.Len(t, swaps, 2)
	for _, sw := range swaps {
		require.True(t, sw.Edge1 < sw.Edge2)
	}
}

func TestEdgesToSwapsNoDegeneraciesYieldsNoSwaps(t *testing.T) {
	in := &sliceReader{edges: []core.Edge{core.NewEdge(0, 1), core.NewEdge(1, 2), core.NewEdge(2, 3)}}
	out := &sliceWriter{}
	swaps, err := swapsource.EdgesToSwaps(in, out, 3, 1)
	require.NoError(t, err)
	require.Empty(t, swaps)
}
