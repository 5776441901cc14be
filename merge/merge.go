package merge

import (
	"fmt"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/emerr"
)

// Merge combines base (filtered by keep) with the sorted updates stream,
// producing the next sorted edge vector. keep must have exactly one entry
// per base edge. base and updates must each individually already be sorted
// ascending by core.Edge.Less.
func Merge(base []core.Edge, keep []bool, updates []core.Edge) ([]core.Edge, error) {
	if len(keep) != len(base) {
		return nil, fmt.Errorf("%w: keep bit count %d does not match edge vector length %d", emerr.ErrInvalidInput, len(keep), len(base))
	}

	out := make([]core.Edge, 0, len(base))
	bi, ui := 0, 0
	skipDropped := func() {
		for bi < len(base) && !keep[bi] {
			bi++
		}
	}
	skipDropped()

	var havePrev bool
	var prev core.Edge

	for bi < len(base) || ui < len(updates) {
		var cur core.Edge
		switch {
		case bi >= len(base):
			cur = updates[ui]
			ui++
		case ui >= len(updates):
			cur = base[bi]
			bi++
			skipDropped()
		case updates[ui].Less(base[bi]):
			cur = updates[ui]
			ui++
		case base[bi].Less(updates[ui]):
			cur = base[bi]
			bi++
			skipDropped()
		default:
			return nil, emerr.NewInvariantError("merge.Merge", fmt.Sprintf("duplicate edge %s introduced by rewrite", base[bi]))
		}

		if havePrev && !prev.Less(cur) {
			return nil, emerr.NewInvariantError("merge.Merge", "merge output not strictly increasing; inputs were not sorted")
		}
		prev, havePrev = cur, true
		out = append(out, cur)
	}

	return out, nil
}
