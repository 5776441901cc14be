package formats_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/emerr"
	"github.com/streamgraph/emswap/formats"
)

func TestVarintRoundTripsAcrossRange(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 16384, 1 << 40, ^uint64(0)}
	for _, v := range values {
		encoded := formats.EncodeVarint(v)
		got, err := formats.DecodeVarint(bytes.NewReader(encoded))
		require.NoError(t, err)
		require.Equal(t, v, got, "value %d", v)
	}
}

func TestDecodeVarintRejectsOverflowingTenthByte(t *testing.T) {
	// Nine continuation bytes of 0xff followed by a tenth byte whose
	// payload exceeds the single legal bit.
	buf := bytes.Repeat([]byte{0xff}, 9)
	buf = append(buf, 0x02)
	_, err := formats.DecodeVarint(bytes.NewReader(buf))
	require.Error(t, err)
	require.True(t, errors.Is(err, emerr.ErrOverflow))
}

func TestDecodeVarintPropagatesEOF(t *testing.T) {
	_, err := formats.DecodeVarint(bytes.NewReader(nil))
	require.True(t, errors.Is(err, io.EOF))
}

func TestThrillBinaryRoundTrips(t *testing.T) {
	adjacency := [][]core.Node{
		{1, 2, 3},
		{0},
		{0},
		{0},
	}
	var buf bytes.Buffer
	require.NoError(t, formats.WriteThrillBinary(&buf, adjacency))

	got, err := formats.ReadThrillBinary(&buf)
	require.NoError(t, err)
	require.Equal(t, adjacency, got)
}

func TestThrillBinaryRoundTripsEmptyAdjacency(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formats.WriteThrillBinary(&buf, nil))

	got, err := formats.ReadThrillBinary(&buf)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMetisRoundTrips(t *testing.T) {
	adjacency := [][]core.Node{
		{1, 2},
		{0, 2},
		{0, 1},
	}
	var buf bytes.Buffer
	require.NoError(t, formats.WriteMetis(&buf, adjacency))
	require.Equal(t, "3 3 0\n2 3\n1 3\n1 2\n", buf.String())

	got, err := formats.ReadMetis(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, adjacency, got)
}

func TestReadMetisRejectsMalformedHeader(t *testing.T) {
	_, err := formats.ReadMetis(bytes.NewReader([]byte("not a header\n")))
	require.Error(t, err)
	require.True(t, errors.Is(err, emerr.ErrInvalidInput))
}

func TestReadMetisRejectsTruncatedBody(t *testing.T) {
	_, err := formats.ReadMetis(bytes.NewReader([]byte("2 1 0\n2\n")))
	require.Error(t, err)
	require.True(t, errors.Is(err, emerr.ErrInvalidInput))
}

func TestPartitionRoundTrips(t *testing.T) {
	assignment := map[core.Node]int{0: 2, 1: 0, 5: 7, 3: 3}
	var buf bytes.Buffer
	require.NoError(t, formats.WritePartition(&buf, assignment))

	got, err := formats.ReadPartition(&buf)
	require.NoError(t, err)
	require.Equal(t, assignment, got)
}
