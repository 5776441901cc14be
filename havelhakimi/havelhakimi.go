package havelhakimi

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

type node struct {
	id  core.Node
	deg int64
}

func collect(seq *degseq.Sequence) []node {
	var out []node
	for i := int64(0); !seq.Empty(); i++ {
		out = append(out, node{id: core.Node(i), deg: seq.Current()})
		seq.Advance()
	}
	return out
}

// IMGenerate materializes seq via the classic Havel-Hakimi construction:
// at each step, the node with the highest remaining degree connects to the
// next highest-remaining-degree nodes. Ties are broken deterministically by
// node id, since this variant makes no randomization promise.
func IMGenerate(seq *degseq.Sequence) (*edgestore.Stream, error) {
	nodes := collect(seq)
	s := edgestore.NewStream()

	for {
		sort.Slice(nodes, func(i, j int) bool {
			if nodes[i].deg != nodes[j].deg {
				return nodes[i].deg > nodes[j].deg
			}
			return nodes[i].id < nodes[j].id
		})
		if nodes[0].deg == 0 {
			break
		}
		r := nodes[0].deg
		if int(r) >= len(nodes) {
			return nil, fmt.Errorf("%w: havelhakimi: degree sequence not realizable", emerr.ErrInvalidInput)
		}
		for i := 1; i <= int(r); i++ {
			if nodes[i].deg == 0 {
				return nil, fmt.Errorf("%w: havelhakimi: degree sequence not realizable", emerr.ErrInvalidInput)
			}
			nodes[i].deg--
			if err := s.Push(core.NewEdge(nodes[0].id, nodes[i].id)); err != nil {
				return nil, err
			}
		}
		nodes[0].deg = 0
	}
	return s, nil
}

// RIMGenerate is the randomized variant: identical to IMGenerate except
// that whenever the cut between "connect to this node" and "do not" falls
// in the middle of a group of nodes sharing the same remaining degree, the
// group members actually connected are drawn uniformly at random (without
// replacement) via a randtree instead of the deterministic by-id order
// IMGenerate uses.
func RIMGenerate(seq *degseq.Sequence, seed uint64) (*edgestore.Stream, error) {
	nodes := collect(seq)
	s := edgestore.NewStream()
	rng := rand.New(rand.NewPCG(seed, seed^0xa5a5a5a5a5a5a5a5))

	for {
		sort.Slice(nodes, func(i, j int) bool {
			if nodes[i].deg != nodes[j].deg {
				return nodes[i].deg > nodes[j].deg
			}
			return nodes[i].id < nodes[j].id
		})
		if nodes[0].deg == 0 {
			break
		}
		r := int(nodes[0].deg)
		if r >= len(nodes) {
			return nil, fmt.Errorf("%w: havelhakimi: degree sequence not realizable", emerr.ErrInvalidInput)
		}

		candidates := nodes[1:]
		boundaryDeg := candidates[r-1].deg

		groupStart := r - 1
		for groupStart > 0 && candidates[groupStart-1].deg == boundaryDeg {
			groupStart--
		}
		groupEnd := r
		for groupEnd < len(candidates) && candidates[groupEnd].deg == boundaryDeg {
			groupEnd++
		}
		group := candidates[groupStart:groupEnd]
		need := r - groupStart

		chosen := make(map[int]bool, need)
		if len(group) > 0 && need > 0 {
			weights := make([]int64, len(group))
			for i := range weights {
				weights[i] = 1
			}
			tree, err := randtree.New(weights)
			if err != nil {
				return nil, err
			}
			for i := 0; i < need; i++ {
				leaf := tree.GetLeaf(rng.Int64N(tree.TotalWeight()))
				chosen[groupStart+int(leaf)] = true
				tree.DecreaseLeaf(leaf)
			}
		}

		for i := 0; i < groupStart; i++ {
			chosen[i] = true
		}

		for i := range candidates {
			if !chosen[i] {
				continue
			}
			if candidates[i].deg == 0 {
				return nil, fmt.Errorf("%w: havelhakimi: degree sequence not realizable", emerr.ErrInvalidInput)
			}
			candidates[i].deg--
			if err := s.Push(core.NewEdge(nodes[0].id, candidates[i].id)); err != nil {
				return nil, err
			}
		}
		nodes[0].deg = 0
	}
	return s, nil
}
