// Package lfr implements the generation half of LFR community-structured
// graphs: community-size sampling and node-to-community assignment. The
// within/between-community rewiring step itself is expressed as a
// swapsource.Source decorator elsewhere (see Restrict in this package),
// which is what lets the standard internalswap/tfp engines do the actual
// randomization.
//
// Grounded on original_source/LFR/GlobalRewiringSwapGenerator.cpp and
// LFR/LFRCommunityAssignBenchmark.{h,cpp}. Reduced scope: only the
// generation path is implemented, not the full benchmark/statistics suite.
package lfr
