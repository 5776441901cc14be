// Package merge implements the edge-update merger (C8): given the current
// sorted edge vector, a same-length keep/drop bit for each of its entries,
// and a sorted stream of freshly produced replacement edges, it produces
// the next sorted, duplicate-free edge vector in one linear merge pass.
//
// Grounded in EdgeVectorUpdateStream.hpp: the kept subsequence of the base
// vector and the replacement stream are both already sorted, so the merge
// is a straight two-way comparison; a value appearing in both inputs is a
// fatal invariant violation (a swap produced an edge the graph already
// has), not an ordinary conflict — ordinary conflicts are filtered out
// before a replacement ever reaches this stage.
package merge
