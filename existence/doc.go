// Package existence implements the existence-information scoreboard shared
// by the swap engines (C5): for every swap in a batch, zero or more "does
// this edge exist" queries are registered up front, answered concurrently in
// any order by existence lookups against the edge store, and a later phase
// blocks until all of a swap's answers have arrived before consulting them.
//
// The type is grounded in EdgeExistenceInformation from the original
// extmem-lfr sources: a start-index slab addressed per swap plus a pair of
// atomic counters (missing, existing) replaces per-swap allocation, and
// WaitForMissing spin-yields rather than blocking on a condition variable,
// matching the original's lock-free design.
package existence
