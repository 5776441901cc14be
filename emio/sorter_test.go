package emio_test

import (
	"encoding/binary"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamgraph/emswap/emio"
)

func int64Codec() emio.Codec[int64] {
	return emio.Codec[int64]{
		Encode: func(v int64, w io.Writer) error {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], uint64(v))
			_, err := w.Write(b[:])
			return err
		},
		Decode: func(r io.Reader) (int64, error) {
			var b [8]byte
			if _, err := io.ReadFull(r, b[:]); err != nil {
				return 0, err
			}
			return int64(binary.BigEndian.Uint64(b[:])), nil
		},
	}
}

func drain(t *testing.T, s *emio.Sorter[int64]) []int64 {
	t.Helper()
	require.NoError(t, s.Sort())
	var out []int64
	for !s.Empty() {
		out = append(out, s.Current())
		require.NoError(t, s.Advance())
	}
	return out
}

func TestSorterInMemoryNeverSpills(t *testing.T) {
	s := emio.NewSorter(func(a, b int64) bool { return a < b }, int64Codec())
	for _, v := range []int64{5, 3, 8, 1, 9, 2} {
		require.NoError(t, s.Push(v))
	}
	require.Equal(t, []int64{1, 2, 3, 5, 8, 9}, drain(t, s))
}

func TestSorterSpillsAndMerges(t *testing.T) {
	s := emio.NewSorter(
		func(a, b int64) bool { return a < b },
		int64Codec(),
		emio.WithRAMBudget[int64](8),
	)
	defer func() { require.NoError(t, s.Close()) }()

	rng := rand.New(rand.NewSource(42))
	var want []int64
	for i := 0; i < 500; i++ {
		v := rng.Int63n(10000)
		want = append(want, v)
		require.NoError(t, s.Push(v))
	}

	got := drain(t, s)
	require.Len(t, got, len(want))
	for i := 1; i < len(got); i++ {
		require.LessOrEqual(t, got[i-1], got[i])
	}

	sortedWant := append([]int64(nil), want...)
	for i := 0; i < len(sortedWant); i++ {
		for j := i + 1; j < len(sortedWant); j++ {
			if sortedWant[j] < sortedWant[i] {
				sortedWant[i], sortedWant[j] = sortedWant[j], sortedWant[i]
			}
		}
	}
	require.Equal(t, sortedWant, got)
}

func TestSorterEmptyInput(t *testing.T) {
	s := emio.NewSorter(func(a, b int64) bool { return a < b }, int64Codec())
	require.Empty(t, drain(t, s))
}
