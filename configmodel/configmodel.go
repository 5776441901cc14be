package configmodel

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/degseq"
	"github.com/streamgraph/emswap/edgestore"
	"github.com/streamgraph/emswap/emerr"
	"github.com/streamgraph/emswap/randtree"
)

// Result is the output of Generate: the sorted edge vector, the number of
// corrective rounds run, and the number of defective edges left when the
// rounds ran out. Only loops can remain in Vector; leftover parallel edges
// make Generate return an error instead of a Result.
type Result struct {
	Vector          *edgestore.Vector
	CorrectiveSwap  int
	RemainingDefect int
}

// Generate builds a graph realizing seq via the configuration model:
// half-edges are paired off by randtree-weighted sampling without
// replacement (so nodes with more remaining half-edges are proportionally
// more likely to be paired next), then repeated local 2-swaps remove loops
// and parallel edges.
//
// The swap engines (internalswap/tfp) require their starting edge vector to
// already be simple, so the corrective pass here runs directly against the
// raw pairing rather than through Run: it applies the identical swap rule
// (recombine two edges' endpoints, keep the result only if it introduces no
// new defect) by hand, bounded by maxRounds. If loops remain when the rounds
// run out, they are kept in the vector and counted in RemainingDefect; if
// parallel edges remain, edgestore.NewVector rejects the duplicates and
// Generate returns that error.
func Generate(seq *degseq.Sequence, seed uint64, maxRounds int) (*Result, error) {
	var stubs []core.Node
	for i := core.Node(0); !seq.Empty(); i++ {
		for k := int64(0); k < seq.Current(); k++ {
			stubs = append(stubs, i)
		}
		seq.Advance()
	}
	if len(stubs)%2 != 0 {
		return nil, fmt.Errorf("%w: configmodel.Generate: odd total degree", emerr.ErrInvalidInput)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeefcafef00d))

	weights := make([]int64, len(stubs))
	for i := range weights {
		weights[i] = 1
	}
	tree, err := randtree.New(weights)
	if err != nil {
		return nil, err
	}

	edges := make([]core.Edge, 0, len(stubs)/2)
	for tree.TotalWeight() > 1 {
		a := tree.GetLeaf(rng.Int64N(tree.TotalWeight()))
		tree.DecreaseLeaf(a)
		b := tree.GetLeaf(rng.Int64N(tree.TotalWeight()))
		tree.DecreaseLeaf(b)
		edges = append(edges, core.NewEdge(stubs[a], stubs[b]))
	}

	rounds, remaining := repair(edges, rng, maxRounds)

	sort.Slice(edges, func(i, j int) bool { return edges[i].Less(edges[j]) })
	v, err := edgestore.NewVector(edges)
	if err != nil {
		return nil, err
	}

	return &Result{Vector: v, CorrectiveSwap: rounds, RemainingDefect: remaining}, nil
}

// defects reports, for each edge index, whether it is a loop or a parallel
// duplicate of another edge in the slice.
func defects(edges []core.Edge) []int {
	count := make(map[core.Edge]int, len(edges))
	for _, e := range edges {
		count[e]++
	}
	var out []int
	for i, e := range edges {
		if e.IsLoop() || count[e] > 1 {
			out = append(out, i)
		}
	}
	return out
}

// repair mutates edges in place, applying random 2-swaps between a defect
// edge and a freshly chosen partner whenever the swap removes the defect
// without introducing a new one, for up to maxRounds passes over the
// current defect list.
func repair(edges []core.Edge, rng *rand.Rand, maxRounds int) (rounds, remaining int) {
	if len(edges) < 2 {
		return 0, len(defects(edges))
	}

	for rounds = 0; rounds < maxRounds; rounds++ {
		bad := defects(edges)
		if len(bad) == 0 {
			return rounds, 0
		}

		live := make(map[core.Edge]int, len(edges))
		for _, e := range edges {
			live[e]++
		}

		for _, i := range bad {
			j := rng.IntN(len(edges))
			for j == i {
				j = rng.IntN(len(edges))
			}
			direction := rng.IntN(2) == 0
			t0, t1 := core.TargetPair(edges[i], edges[j], direction)
			if t0.IsLoop() || t1.IsLoop() {
				continue
			}
			if (live[t0] > 0 && t0 != edges[i] && t0 != edges[j]) || (live[t1] > 0 && t1 != edges[i] && t1 != edges[j]) {
				continue
			}

			live[edges[i]]--
			live[edges[j]]--
			edges[i], edges[j] = t0, t1
			live[t0]++
			live[t1]++
		}
	}
	return maxRounds, len(defects(edges))
}
