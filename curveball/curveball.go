package curveball

import (
	"math/rand/v2"
	"sort"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/edgestore"
)

// Adjacency is an in-memory neighbor-set representation, the data model
// Curveball operates on instead of the swap engines' flat edge vector.
type Adjacency map[core.Node]map[core.Node]bool

// FromVector builds an Adjacency from a sorted edge vector.
func FromVector(v *edgestore.Vector) Adjacency {
	adj := make(Adjacency)
	for _, e := range v.Snapshot() {
		addNeighbor(adj, e.First, e.Second)
		addNeighbor(adj, e.Second, e.First)
	}
	return adj
}

func addNeighbor(adj Adjacency, u, v core.Node) {
	if adj[u] == nil {
		adj[u] = make(map[core.Node]bool)
	}
	adj[u][v] = true
}

// ToVector flattens adj back into a sorted, deduplicated edge vector.
func (adj Adjacency) ToVector() (*edgestore.Vector, error) {
	seen := make(map[core.Edge]bool)
	var edges []core.Edge
	for u, nbrs := range adj {
		for v := range nbrs {
			e := core.NewEdge(u, v)
			if e.IsLoop() || seen[e] {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Less(edges[j]) })
	return edgestore.NewVector(edges)
}

// Trade performs one Curveball trade between nodes u and v: their shared
// neighbors stay put, and their exclusive neighbors (every neighbor of
// exactly one of the two) are reshuffled and re-split between u and v,
// keeping deg(u) and deg(v) exactly as they were. rng drives the random
// repartition.
func Trade(adj Adjacency, u, v core.Node, rng *rand.Rand) {
	if u == v {
		return
	}
	connected := adj[u][v]

	var shared, exclusiveA, exclusiveB []core.Node
	for n := range adj[u] {
		if n == v {
			continue
		}
		if adj[v][n] {
			shared = append(shared, n)
		} else {
			exclusiveA = append(exclusiveA, n)
		}
	}
	for n := range adj[v] {
		if n == u || adj[u][n] {
			continue
		}
		exclusiveB = append(exclusiveB, n)
	}

	pool := append(append([]core.Node{}, exclusiveA...), exclusiveB...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	newA := make(map[core.Node]bool, len(shared)+len(exclusiveA))
	newB := make(map[core.Node]bool, len(shared)+len(exclusiveB))
	for _, n := range shared {
		newA[n] = true
		newB[n] = true
	}
	for i, n := range pool {
		if i < len(exclusiveA) {
			newA[n] = true
		} else {
			newB[n] = true
		}
	}
	if connected {
		newA[v] = true
		newB[u] = true
	}

	adj[u] = newA
	adj[v] = newB
	for n := range newA {
		if adj[n] == nil {
			adj[n] = make(map[core.Node]bool)
		}
		adj[n][u] = true
	}
	for n := range newB {
		if adj[n] == nil {
			adj[n] = make(map[core.Node]bool)
		}
		adj[n][v] = true
	}

	removeStale(adj, u, exclusiveA, newA)
	removeStale(adj, v, exclusiveB, newB)
}

// removeStale drops the reverse edge for every node that used to be
// adjacent to hub but no longer is after a trade.
func removeStale(adj Adjacency, hub core.Node, old []core.Node, current map[core.Node]bool) {
	for _, n := range old {
		if !current[n] && n != hub {
			delete(adj[n], hub)
		}
	}
}

// Shuffle applies rounds random Curveball trades between uniformly chosen
// node pairs, a standard global randomization sweep.
func Shuffle(adj Adjacency, rounds int, rng *rand.Rand) {
	nodes := make([]core.Node, 0, len(adj))
	for n := range adj {
		nodes = append(nodes, n)
	}
	if len(nodes) < 2 {
		return
	}
	for i := 0; i < rounds; i++ {
		u := nodes[rng.IntN(len(nodes))]
		v := nodes[rng.IntN(len(nodes))]
		Trade(adj, u, v, rng)
	}
}
