package lfr

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/degseq"
	"github.com/streamgraph/emswap/edgestore"
	"github.com/streamgraph/emswap/emerr"
	"github.com/streamgraph/emswap/swapsource"
)

// ErrInsufficientUnconstrainedNodes reports that the requested community
// sizes cannot seat every node in the degree sequence: the sum of sizes
// falls short of the node count, so AssignCommunities returns this instead
// of silently truncating the assignment.
type ErrInsufficientUnconstrainedNodes struct {
	Needed    int
	Available int
}

func (e *ErrInsufficientUnconstrainedNodes) Error() string {
	return fmt.Sprintf("emswap: lfr: %d nodes need a community but only %d slots are available", e.Needed, e.Available)
}

// Is lets errors.Is(err, emerr.ErrInvalidInput) match this type, since an
// undersized community plan is a form of invalid input.
func (e *ErrInsufficientUnconstrainedNodes) Is(target error) bool {
	return target == emerr.ErrInvalidInput
}

// CommunitySizes draws a power-law distributed partition of n nodes into
// communities of size in [minSize, maxSize], via the same rejection-sampling
// strategy degseq.PowerLaw uses for degrees. The final community absorbs
// whatever remainder is left once the running total would otherwise exceed
// n, so it may fall under minSize; callers that need every community to meet
// minSize should pad n accordingly before calling.
func CommunitySizes(seed uint64, n int, gamma float64, minSize, maxSize int) ([]int, error) {
	if n <= 0 || minSize <= 0 || maxSize < minSize {
		return nil, fmt.Errorf("%w: lfr.CommunitySizes: invalid range [%d,%d]", emerr.ErrInvalidInput, minSize, maxSize)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0xd6e8feb86659fd93))
	maxDensity := math.Pow(float64(minSize), -gamma)

	var sizes []int
	remaining := n
	for remaining > 0 {
		size := minSize
		for {
			x := minSize + int(rng.Float64()*float64(maxSize-minSize+1))
			if x > maxSize {
				x = maxSize
			}
			density := math.Pow(float64(x), -gamma)
			if rng.Float64()*maxDensity <= density {
				size = x
				break
			}
		}
		if size > remaining {
			size = remaining
		}
		sizes = append(sizes, size)
		remaining -= size
	}
	return sizes, nil
}

// Assignment maps every node to a 0-based community id and records the
// community sizes the assignment was built from.
type Assignment struct {
	Community map[core.Node]int
	Sizes     []int
}

type weightedNode struct {
	node   core.Node
	degree int64
}

// AssignCommunities distributes the nodes named by seq across the given
// communities with a degree-aware binning strategy: nodes are visited
// highest-degree first, and communities are offered to them in decreasing
// size order, round-robin, so that high-degree nodes spread across the
// largest communities rather than clustering in whichever community fills
// first. A seed breaks ties among equal-degree nodes.
//
// If the communities cannot seat every node, AssignCommunities returns an
// *ErrInsufficientUnconstrainedNodes instead of assigning a partial result.
func AssignCommunities(seq *degseq.Sequence, sizes []int, seed uint64) (*Assignment, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: lfr.AssignCommunities: no communities given", emerr.ErrInvalidInput)
	}
	n := int(seq.Len())
	total := 0
	for _, s := range sizes {
		total += s
	}
	if total < n {
		return nil, &ErrInsufficientUnconstrainedNodes{Needed: n, Available: total}
	}

	nodes := make([]weightedNode, 0, n)
	for idx := 0; !seq.Empty(); idx++ {
		nodes = append(nodes, weightedNode{node: core.Node(idx), degree: seq.Current()})
		seq.Advance()
	}

	rng := rand.New(rand.NewPCG(seed, seed^0xa0761d6478bd642f))
	rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].degree > nodes[j].degree })

	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return sizes[order[i]] > sizes[order[j]] })
	remaining := append([]int{}, sizes...)

	assignment := make(map[core.Node]int, n)
	ci := 0
	for _, wn := range nodes {
		start := ci
		for remaining[order[ci]] == 0 {
			ci = (ci + 1) % len(order)
			if ci == start {
				seated := 0
				for id := range assignment {
					_ = id
					seated++
				}
				return nil, &ErrInsufficientUnconstrainedNodes{Needed: n, Available: seated}
			}
		}
		cid := order[ci]
		assignment[wn.node] = cid
		remaining[cid]--
		ci = (ci + 1) % len(order)
	}

	return &Assignment{Community: assignment, Sizes: append([]int{}, sizes...)}, nil
}

// Mode selects which side of the community boundary Restrict keeps swaps
// confined to.
type Mode int

const (
	// WithinCommunity keeps both recombined edges intra-community: the
	// source edges must each already connect two nodes of the same
	// community, and that community must match across both edges.
	WithinCommunity Mode = iota
	// BetweenCommunity requires the source edges to each cross a community
	// boundary. The recombined edges are not checked and may fall inside a
	// single community.
	BetweenCommunity
)

// Restricted decorates a swapsource.Source so it only emits descriptors
// whose two source edges satisfy a community-membership constraint. This is
// the integration point that lets the standard internalswap/tfp engines
// drive LFR rewiring unchanged: they see an ordinary swapsource.Source-
// shaped stream and have no idea community structure exists.
type Restricted struct {
	inner      *swapsource.Source
	vector     *edgestore.Vector
	assignment *Assignment
	mode       Mode
	maxRetries int
}

// Restrict wraps inner so every descriptor it yields satisfies mode against
// vector, the frozen edge vector the descriptor's ids are resolved against,
// and assignment, the node-to-community map. A descriptor that still fails
// the constraint after maxRetries attempts (set to 64) is returned anyway
// rather than blocking forever, since a small fraction of the requested
// batch drifting off-constraint is preferable to a stalled generator.
func Restrict(inner *swapsource.Source, vector *edgestore.Vector, assignment *Assignment, mode Mode) *Restricted {
	return &Restricted{inner: inner, vector: vector, assignment: assignment, mode: mode, maxRetries: 64}
}

func (r *Restricted) classify(e core.Edge) (community int, intra bool) {
	ca := r.assignment.Community[e.First]
	cb := r.assignment.Community[e.Second]
	return ca, ca == cb
}

func (r *Restricted) satisfies(d core.SwapDescriptor) bool {
	e1, err1 := r.vector.At(d.Edge1)
	e2, err2 := r.vector.At(d.Edge2)
	if err1 != nil || err2 != nil {
		return false
	}
	c1, intra1 := r.classify(e1)
	c2, intra2 := r.classify(e2)
	switch r.mode {
	case WithinCommunity:
		return intra1 && intra2 && c1 == c2
	case BetweenCommunity:
		return !intra1 && !intra2
	default:
		return false
	}
}

// Next draws the next constraint-satisfying descriptor.
func (r *Restricted) Next() core.SwapDescriptor {
	var d core.SwapDescriptor
	for i := 0; i < r.maxRetries; i++ {
		d = r.inner.Next()
		if r.satisfies(d) {
			return d
		}
	}
	return d
}

// Batch draws n consecutive constraint-satisfying descriptors.
func (r *Restricted) Batch(n int) []core.SwapDescriptor {
	out := make([]core.SwapDescriptor, n)
	for i := range out {
		out[i] = r.Next()
	}
	return out
}
