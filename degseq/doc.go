// Package degseq produces degree sequences for graph generation: a lazy,
// seeded source of non-negative degrees consumed by havelhakimi and
// configmodel.
//
// Grounded on original_source/test/TestPowerlawDegreeSequence.cpp,
// TestMonotonicPowerlawRandomStream.cpp and
// TestMonotonicUniformRandomStream.cpp.
package degseq
