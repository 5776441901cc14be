// Package swapsource produces the lazy swap-descriptor sequence the engines
// consume (C4). Source draws independent, uniformly random swaps over a
// fixed edge-id range from a seeded PRNG — no graph state is read.
//
// EdgesToSwaps implements the complementary "edges-to-swaps" pass used to
// randomize a freshly materialized Havel–Hakimi edge stream: as it copies an
// edge stream through unchanged, it additionally emits one swap against a
// random partner for every duplicate-incoming or loop edge it sees, so a
// later internalswap/tfp run can resolve those degeneracies.
package swapsource
