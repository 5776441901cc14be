package edgestore

import (
	"fmt"
	"sort"

	"github.com/streamgraph/emswap/core"
)

type streamMode int

const (
	streamWriting streamMode = iota
	streamReading
)

// Stream is an append-only edge sequence for generators that cannot
// guarantee sorted order (Havel–Hakimi, the configuration model). Push adds
// edges in write mode; Rewind flips it into a sequential read-only
// iterator.
type Stream struct {
	mode  streamMode
	edges []core.Edge
	pos   int
}

// NewStream returns an empty Stream in write mode.
func NewStream() *Stream {
	return &Stream{mode: streamWriting}
}

// Push appends e. Valid only in write mode.
func (s *Stream) Push(e core.Edge) error {
	if s.mode != streamWriting {
		return fmt.Errorf("edgestore: Push called after Rewind")
	}
	s.edges = append(s.edges, e)
	return nil
}

// Size returns the number of edges pushed.
func (s *Stream) Size() int { return len(s.edges) }

// Rewind switches the Stream into read mode, positioned at the first edge.
func (s *Stream) Rewind() {
	s.mode = streamReading
	s.pos = 0
}

// Empty reports whether every edge has been read.
func (s *Stream) Empty() bool { return s.mode == streamReading && s.pos >= len(s.edges) }

// Current returns the edge at the reader's position.
func (s *Stream) Current() core.Edge { return s.edges[s.pos] }

// Advance moves to the next edge.
func (s *Stream) Advance() { s.pos++ }

// Sorted reports whether the edges currently held are already in the
// sorted-simple order a Vector requires, without mutating the Stream.
func (s *Stream) Sorted() bool {
	for i := 1; i < len(s.edges); i++ {
		if !s.edges[i-1].Less(s.edges[i]) {
			return false
		}
	}
	return true
}

// ToVector sorts a copy of the stream's edges and wraps them as a Vector.
// Loops and duplicate edges must already have been removed by the caller
// (typically via one or more internalswap/tfp randomization passes) —
// ToVector only establishes order, it does not strip parallel edges.
func (s *Stream) ToVector() (*Vector, error) {
	edges := make([]core.Edge, len(s.edges))
	copy(edges, s.edges)
	sort.Slice(edges, func(i, j int) bool { return edges[i].Less(edges[j]) })
	return NewVector(edges)
}
