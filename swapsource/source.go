package swapsource

import (
	"math/rand"

	"github.com/streamgraph/emswap/core"
)

// Source is an infinite, seeded generator of SwapDescriptors over the edge
// ids [0, numEdges). Each descriptor names two distinct edges in ascending
// order and a uniformly random direction bit.
type Source struct {
	rng       *rand.Rand
	numEdges  int64
	seed      int64
	generated int64
}

// NewSource constructs a Source over edge ids [0, numEdges) seeded with
// seed. Identical seed and numEdges reproduce an identical swap sequence.
// Source does not log its seed; Seed returns it for callers to record.
func NewSource(seed int64, numEdges int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed)), numEdges: numEdges, seed: seed}
}

// Seed returns the seed this Source was constructed with.
func (s *Source) Seed() int64 { return s.seed }

// Generated reports how many descriptors have been drawn so far.
func (s *Source) Generated() int64 { return s.generated }

// Next draws the next swap descriptor.
func (s *Source) Next() core.SwapDescriptor {
	e1 := s.rng.Int63n(s.numEdges)
	e2 := e1
	for e2 == e1 {
		e2 = s.rng.Int63n(s.numEdges)
	}
	if e1 > e2 {
		e1, e2 = e2, e1
	}
	s.generated++
	return core.SwapDescriptor{
		Edge1:     core.EdgeId(e1),
		Edge2:     core.EdgeId(e2),
		Direction: s.rng.Intn(2) == 1,
	}
}

// Batch draws n consecutive swap descriptors.
func (s *Source) Batch(n int) []core.SwapDescriptor {
	out := make([]core.SwapDescriptor, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}
