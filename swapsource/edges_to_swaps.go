package swapsource

import (
	"math/rand"

	"github.com/streamgraph/emswap/core"
)

// EdgeReader is the minimal capability EdgesToSwaps needs from an upstream
// edge sequence (edgestore.Stream and edgestore.VectorReader both satisfy
// it).
type EdgeReader interface {
	Empty() bool
	Current() core.Edge
	Advance()
}

// EdgeWriter is the minimal capability EdgesToSwaps needs from a downstream
// edge sink.
type EdgeWriter interface {
	Push(core.Edge) error
}

// EdgesToSwaps copies every edge from in to out unchanged, and for every
// duplicate-incoming or loop edge additionally emits a SwapDescriptor
// pairing it with a uniformly random partner edge id — used to randomize a
// freshly materialized Havel–Hakimi edge stream before the first real
// swap batch runs.
func EdgesToSwaps(in EdgeReader, out EdgeWriter, numEdges int64, seed int64) ([]core.SwapDescriptor, error) {
	rng := rand.New(rand.NewSource(seed))
	var swaps []core.SwapDescriptor

	prev := core.Edge{First: -1, Second: -1}
	havePrev := false

	var count int64
	for !in.Empty() {
		curr := in.Current()
		if err := out.Push(curr); err != nil {
			return nil, err
		}

		if (havePrev && curr == prev) || curr.IsLoop() {
			partner := count
			for partner == count {
				partner = rng.Int63n(numEdges)
			}
			a, b := count, partner
			if a > b {
				a, b = b, a
			}
			swaps = append(swaps, core.SwapDescriptor{
				Edge1:     core.EdgeId(a),
				Edge2:     core.EdgeId(b),
				Direction: rng.Intn(2) == 1,
			})
		}

		prev = curr
		havePrev = true
		count++
		in.Advance()
	}

	return swaps, nil
}
