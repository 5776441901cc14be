package formats

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/emerr"
)

// WriteThrillBinary writes adjacency, one record per source node in
// increasing order: a varint degree followed by that many 32-bit
// little-endian neighbor ids.
func WriteThrillBinary(w io.Writer, adjacency [][]core.Node) error {
	bw := bufio.NewWriter(w)
	var buf [4]byte
	for _, neighbors := range adjacency {
		if _, err := bw.Write(EncodeVarint(uint64(len(neighbors)))); err != nil {
			return fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
		}
		for _, n := range neighbors {
			binary.LittleEndian.PutUint32(buf[:], uint32(n))
			if _, err := bw.Write(buf[:]); err != nil {
				return fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
			}
		}
	}
	return bw.Flush()
}

// ReadThrillBinary parses the format WriteThrillBinary produces, reading
// until r is exhausted, and returns one neighbor slice per source node in
// file order.
func ReadThrillBinary(r io.Reader) ([][]core.Node, error) {
	br := bufio.NewReader(r)
	var out [][]core.Node
	var buf [4]byte
	for {
		if _, err := br.Peek(1); err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
		}

		deg, err := DecodeVarint(br)
		if err != nil {
			return nil, err
		}
		neighbors := make([]core.Node, deg)
		for i := range neighbors {
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return nil, fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
			}
			neighbors[i] = core.Node(int32(binary.LittleEndian.Uint32(buf[:])))
		}
		out = append(out, neighbors)
	}
}
