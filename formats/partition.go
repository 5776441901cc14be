package formats

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/emerr"
)

// WritePartition writes assignment as a packed sequence of (u uint32,
// partition uint32) pairs in native byte order, sorted by u so the output
// is deterministic regardless of map iteration order.
func WritePartition(w io.Writer, assignment map[core.Node]int) error {
	nodes := make([]core.Node, 0, len(assignment))
	for n := range assignment {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	bw := bufio.NewWriter(w)
	var buf [8]byte
	for _, n := range nodes {
		binary.NativeEndian.PutUint32(buf[0:4], uint32(n))
		binary.NativeEndian.PutUint32(buf[4:8], uint32(assignment[n]))
		if _, err := bw.Write(buf[:]); err != nil {
			return fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
		}
	}
	return bw.Flush()
}

// ReadPartition parses the format WritePartition produces.
func ReadPartition(r io.Reader) (map[core.Node]int, error) {
	out := make(map[core.Node]int)
	var buf [8]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
		}
		u := core.Node(binary.NativeEndian.Uint32(buf[0:4]))
		p := int(int32(binary.NativeEndian.Uint32(buf[4:8])))
		out[u] = p
	}
}
