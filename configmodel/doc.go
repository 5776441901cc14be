// Package configmodel builds a graph directly from a degree sequence using
// the configuration-model construction: each node contributes deg(v) half-
// edges to a shared pool, half-edges are paired off by weighted sampling
// without replacement, and loops and parallel edges in the resulting
// (possibly non-simple) multigraph are then removed by a bounded number of
// corrective 2-swaps applied directly to the raw pairing, not through the
// swap engines.
//
// Grounded on original_source/test/TestConfigurationModel.cpp.
package configmodel
