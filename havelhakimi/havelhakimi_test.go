package havelhakimi_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamgraph/emswap/degseq"
	"github.com/streamgraph/emswap/havelhakimi"
)

func TestIMGenerateRealizesFixedSequence(t *testing.T) {
	seq, err := degseq.Fixed(4, 2)
	require.NoError(t, err)

	s, err := havelhakimi.IMGenerate(seq)
	require.NoError(t, err)

	v, err := s.ToVector()
	require.NoError(t, err)
	require.Equal(t, 4, v.Len())

	deg := make(map[int]int)
	for _, e := range v.Snapshot() {
		deg[int(e.First)]++
		deg[int(e.Second)]++
	}
	for node, d := range deg {
		require.Equal(t, 2, d, "node %d", node)
	}
}

func TestIMGenerateRejectsUnrealizableSequence(t *testing.T) {
	seq, err := degseq.Fixed(2, 2)
	require.NoError(t, err)

	_, err = havelhakimi.IMGenerate(seq)
	require.Error(t, err)
}

func TestRIMGenerateRealizesFixedSequence(t *testing.T) {
	seq, err := degseq.Fixed(6, 3)
	require.NoError(t, err)

	s, err := havelhakimi.RIMGenerate(seq, 99)
	require.NoError(t, err)

	v, err := s.ToVector()
	require.NoError(t, err)

	deg := make(map[int]int)
	for _, e := range v.Snapshot() {
		deg[int(e.First)]++
		deg[int(e.Second)]++
	}
	for node, d := range deg {
		require.Equal(t, 3, d, "node %d", node)
	}
}

func TestRIMGenerateIsDeterministicForSameSeed(t *testing.T) {
	seqA, err := degseq.Fixed(6, 3)
	require.NoError(t, err)
	seqB, err := degseq.Fixed(6, 3)
	require.NoError(t, err)

	sa, err := havelhakimi.RIMGenerate(seqA, 123)
	require.NoError(t, err)
	sb, err := havelhakimi.RIMGenerate(seqB, 123)
	require.NoError(t, err)

	va, err := sa.ToVector()
	require.NoError(t, err)
	vb, err := sb.ToVector()
	require.NoError(t, err)
	require.Equal(t, va.Snapshot(), vb.Snapshot())
}
