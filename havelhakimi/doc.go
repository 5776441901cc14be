// Package havelhakimi materializes a degree sequence into a simple graph's
// edge list using the Havel-Hakimi construction: repeatedly connect the
// node with the highest remaining degree to the next highest-remaining-
// degree nodes.
//
// Grounded on original_source/test/TestHavelHakimiGenerator.cpp,
// TestHavelHakimiIMGenerator.cpp and TestHavelHakimiRIMGenerator.cpp. Both
// variants emit into an edgestore.Stream (C3's append-only variant), since
// neither guarantees sorted output as it runs.
package havelhakimi
