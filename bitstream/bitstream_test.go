package bitstream_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamgraph/emswap/bitstream"
)

func readAll(t *testing.T, s *bitstream.Stream) []bool {
	t.Helper()
	var out []bool
	for !s.Empty() {
		out = append(out, s.Current())
		s.Advance()
	}
	return out
}

func TestRoundTripSmall(t *testing.T) {
	want := []bool{true, false, false, true, true}
	s := bitstream.New()
	for _, b := range want {
		s.Push(b)
	}
	s.Consume()
	require.Equal(t, want, readAll(t, s))
}

func TestRoundTripExactWordBoundary(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var want []bool
	for i := 0; i < 128; i++ {
		want = append(want, rng.Intn(2) == 1)
	}
	s := bitstream.New()
	for _, b := range want {
		s.Push(b)
	}
	s.Consume()
	require.Equal(t, want, readAll(t, s))
	require.EqualValues(t, 128, s.Size())
}

func TestRoundTripWithSpill(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var want []bool
	for i := 0; i < 10000; i++ {
		want = append(want, rng.Intn(2) == 1)
	}
	s := bitstream.New(bitstream.WithRAMBudget(3))
	defer func() { require.NoError(t, s.Close()) }()
	for _, b := range want {
		s.Push(b)
	}
	s.Consume()
	require.Equal(t, want, readAll(t, s))
}

func TestEmptyStream(t *testing.T) {
	s := bitstream.New()
	s.Consume()
	require.True(t, s.Empty())
}

func TestPushAfterConsumePanics(t *testing.T) {
	s := bitstream.New()
	s.Consume()
	require.Panics(t, func() { s.Push(true) })
}

func TestAdvanceBeforeConsumePanics(t *testing.T) {
	s := bitstream.New()
	require.Panics(t, func() { s.Advance() })
}
