// Package curveball implements the Curveball neighbor-set-exchange
// randomization strategy: an alternative to edge-swapping that operates
// directly on pairs of adjacency sets rather than on individual edges, and
// so does not reuse the swap engines' dependency-tracking machinery.
//
// Grounded on original_source's Curveball collaborator headers referenced
// alongside the main EdgeSwaps sources.
package curveball
