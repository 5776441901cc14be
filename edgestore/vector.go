package edgestore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/emerr"
)

// Vector is a random-access, sorted, duplicate-free edge vector addressable
// by core.EdgeId (loops are not rejected). It is single-writer: readers may run concurrently with each
// other but never with a Rewrite.
type Vector struct {
	mu    sync.RWMutex
	edges []core.Edge
}

// NewVector validates that edges is sorted and duplicate-free, then wraps it.
func NewVector(edges []core.Edge) (*Vector, error) {
	if !sort.SliceIsSorted(edges, func(i, j int) bool { return edges[i].Less(edges[j]) }) {
		return nil, fmt.Errorf("%w: edge vector is not sorted", emerr.ErrInvalidInput)
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] == edges[i-1] {
			return nil, fmt.Errorf("%w: duplicate edge %s", emerr.ErrInvalidInput, edges[i])
		}
	}
	return &Vector{edges: edges}, nil
}

// Len reports the number of edges.
func (v *Vector) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.edges)
}

// At returns the edge at id. Valid for the duration of one batch; ids are
// not stable across a Rewrite.
func (v *Vector) At(id core.EdgeId) (core.Edge, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if id < 0 || int(id) >= len(v.edges) {
		return core.Edge{}, fmt.Errorf("%w: edge id %d out of range", emerr.ErrInvalidInput, id)
	}
	return v.edges[id], nil
}

// Snapshot returns a defensive copy of the current edge vector in vector
// order, for generators and tests that need the whole graph.
func (v *Vector) Snapshot() []core.Edge {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]core.Edge, len(v.edges))
	copy(out, v.edges)
	return out
}

// Reader returns a bulk read-only iterator over the vector in id order.
func (v *Vector) Reader() *VectorReader {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return &VectorReader{edges: v.edges}
}

// Rewrite atomically replaces the backing slice after re-validating the
// sorted-simple invariant. Commit phases are the only callers.
func (v *Vector) Rewrite(edges []core.Edge) error {
	if !sort.SliceIsSorted(edges, func(i, j int) bool { return edges[i].Less(edges[j]) }) {
		return emerr.NewInvariantError("rewrite", "edge vector not sorted after merge")
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] == edges[i-1] {
			return emerr.NewInvariantError("rewrite", fmt.Sprintf("duplicate edge %s", edges[i]))
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if len(edges) != len(v.edges) {
		return emerr.NewInvariantError("rewrite", "edge count changed across rewrite")
	}
	v.edges = edges
	return nil
}

// VectorReader walks a Vector snapshot in ascending id order. It observes
// the slice as it was at the moment Reader() was called.
type VectorReader struct {
	edges []core.Edge
	pos   int
}

// Empty reports whether every edge has been read.
func (r *VectorReader) Empty() bool { return r.pos >= len(r.edges) }

// Current returns the edge at the reader's position.
func (r *VectorReader) Current() core.Edge { return r.edges[r.pos] }

// Advance moves to the next edge.
func (r *VectorReader) Advance() { r.pos++ }
