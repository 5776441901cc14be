package core

import "fmt"

// Node is a signed 32-bit vertex identifier in [0, N).
type Node int32

// EdgeId is a non-negative 64-bit index into the current edge vector. It is
// stable for the duration of one batch and freed once the batch commits.
type EdgeId int64

// InvalidEdgeId marks a SwapDescriptor side that references no edge (the
// sentinel id used by §8's boundary-behavior tests).
const InvalidEdgeId EdgeId = -1

// SwapId is the dense 0-based index of a swap within one batch's submission
// order. It defines the total order dependency resolution relies on.
type SwapId int64

// Edge is an unordered pair of nodes, normalized so First <= Second. A loop
// has First == Second. Two edges are parallel iff they are equal after
// normalization.
type Edge struct {
	First  Node
	Second Node
}

// NewEdge returns the normalized Edge{u,v}.
func NewEdge(u, v Node) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{First: u, Second: v}
}

// IsLoop reports whether the edge connects a node to itself.
func (e Edge) IsLoop() bool {
	return e.First == e.Second
}

// Less orders edges ascending by (First, Second), the sort order the edge
// vector invariant (§3) requires at every batch boundary.
func (e Edge) Less(o Edge) bool {
	if e.First != o.First {
		return e.First < o.First
	}
	return e.Second < o.Second
}

func (e Edge) String() string {
	return fmt.Sprintf("(%d,%d)", e.First, e.Second)
}

// SwapDescriptor names two edges by id and the direction used to recombine
// them. e1 must be strictly less than e2.
//
// Given E[e1]=(a,b) and E[e2]=(c,d), the candidate target pair is
//
//	direction == false: (a,c), (b,d)
//	direction == true:  (a,d), (b,c)
//
// each endpoint pair normalized afterwards.
type SwapDescriptor struct {
	Edge1     EdgeId
	Edge2     EdgeId
	Direction bool
}

// SemiLoadedSwapDescriptor is a SwapDescriptor whose first side is given by
// value rather than by id — used when the edge was chosen fresh and has not
// yet been indexed into a store.
type SemiLoadedSwapDescriptor struct {
	FirstEdge Edge
	Edge2     EdgeId
	Direction bool
}

// Swap unifies both descriptor shapes as a tagged variant so downstream code
// can match on provenance at the load boundary instead of juggling two
// parallel call paths.
type Swap struct {
	BothByIDs   *SwapDescriptor
	FirstByValu *SemiLoadedSwapDescriptor
}

// FromIDs wraps a fully-indexed swap descriptor.
func FromIDs(e1, e2 EdgeId, direction bool) Swap {
	return Swap{BothByIDs: &SwapDescriptor{Edge1: e1, Edge2: e2, Direction: direction}}
}

// FromValue wraps a semi-loaded swap descriptor.
func FromValue(first Edge, e2 EdgeId, direction bool) Swap {
	return Swap{FirstByValu: &SemiLoadedSwapDescriptor{FirstEdge: first, Edge2: e2, Direction: direction}}
}

// TargetPair computes the two candidate edges a swap would produce given its
// two current source edges, applying the direction rule and normalizing both
// results.
func TargetPair(a, b Edge, direction bool) (Edge, Edge) {
	if !direction {
		return NewEdge(a.First, b.First), NewEdge(a.Second, b.Second)
	}
	return NewEdge(a.First, b.Second), NewEdge(a.Second, b.First)
}

// SwapResult is the normalized outcome of evaluating one swap.
type SwapResult struct {
	Edges            [2]Edge
	Loop             bool
	ConflictDetected [2]bool
	Performed        bool
}

// Normalize reorders Edges so Edges[0] <= Edges[1], matching the ordering
// the swap-result log (C9) expects for round-trip comparisons.
func (r *SwapResult) Normalize() {
	if r.Edges[1].Less(r.Edges[0]) {
		r.Edges[0], r.Edges[1] = r.Edges[1], r.Edges[0]
		r.ConflictDetected[0], r.ConflictDetected[1] = r.ConflictDetected[1], r.ConflictDetected[0]
	}
}
