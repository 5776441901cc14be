package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/emerr"
)

// WriteMetis writes adjacency as a Metis text graph: header line "N M 0"
// followed by one line per node listing its neighbors as 1-based ids
// separated by single spaces. M counts each undirected edge once, so
// adjacency must already be symmetric.
func WriteMetis(w io.Writer, adjacency [][]core.Node) error {
	m := 0
	for _, nbrs := range adjacency {
		m += len(nbrs)
	}
	m /= 2

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d 0\n", len(adjacency), m); err != nil {
		return fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
	}
	parts := make([]string, 0, 8)
	for _, nbrs := range adjacency {
		parts = parts[:0]
		for _, n := range nbrs {
			parts = append(parts, strconv.Itoa(int(n)+1))
		}
		if _, err := fmt.Fprintln(bw, strings.Join(parts, " ")); err != nil {
			return fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
		}
	}
	return bw.Flush()
}

// ReadMetis parses the format WriteMetis produces. The header's declared
// edge count is not cross-checked against the parsed lists; a caller that
// cares can recompute and compare it.
func ReadMetis(r io.Reader) ([][]core.Node, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	if !sc.Scan() {
		return nil, fmt.Errorf("%w: metis: missing header", emerr.ErrInvalidInput)
	}
	header := strings.Fields(sc.Text())
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: metis: malformed header %q", emerr.ErrInvalidInput, sc.Text())
	}
	n, err := strconv.Atoi(header[0])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: metis: invalid node count %q", emerr.ErrInvalidInput, header[0])
	}

	out := make([][]core.Node, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: metis: expected %d adjacency lines, found %d", emerr.ErrInvalidInput, n, i)
		}
		fields := strings.Fields(sc.Text())
		nbrs := make([]core.Node, len(fields))
		for j, f := range fields {
			id, err := strconv.Atoi(f)
			if err != nil || id < 1 {
				return nil, fmt.Errorf("%w: metis: invalid neighbor id %q", emerr.ErrInvalidInput, f)
			}
			nbrs[j] = core.Node(id - 1)
		}
		out[i] = nbrs
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
	}
	return out, nil
}
