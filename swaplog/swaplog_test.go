package swaplog_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/swaplog"
)

func TestAppendAndAt(t *testing.T) {
	l := swaplog.New()
	r0 := core.SwapResult{Edges: [2]core.Edge{core.NewEdge(0, 1), core.NewEdge(2, 3)}, Performed: true}
	r1 := core.SwapResult{Loop: true}

	l.Append(0, r0)
	l.Append(1, r1)

	require.Equal(t, 2, l.Len())
	require.Equal(t, core.SwapId(0), l.At(0).SwapID)
	require.Equal(t, r0, l.At(0).Result)
	require.Equal(t, r1, l.At(1).Result)
}

func TestRoundTripThroughWriter(t *testing.T) {
	l := swaplog.New()
	l.Append(0, core.SwapResult{Edges: [2]core.Edge{core.NewEdge(0, 3), core.NewEdge(1, 2)}, Performed: true})
	l.Append(1, core.SwapResult{Edges: [2]core.Edge{core.NewEdge(3, 3), core.NewEdge(0, 0)}, Loop: true})
	l.Append(2, core.SwapResult{Edges: [2]core.Edge{core.NewEdge(0, 1), core.NewEdge(2, 3)}, ConflictDetected: [2]bool{true, false}})

	var buf bytes.Buffer
	n, err := l.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	got, err := swaplog.ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, l.Entries(), got.Entries())
}

func TestReadFromEmptyYieldsEmptyLog(t *testing.T) {
	got, err := swaplog.ReadFrom(bytes.NewReader(nil))
	require.NoError(t, err)
	require.Equal(t, 0, got.Len())
}
