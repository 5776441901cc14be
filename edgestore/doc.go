// Package edgestore implements the two edge-vector representations the
// swap engines read and rewrite (C3):
//
//   - Vector: a random-access, indexed slice of core.Edge, addressable by
//     core.EdgeId, with a bulk reader that walks it in vector order. Rewrites
//     replace the whole backing slice; there is no incremental random-access
//     mutation outside a batch commit.
//   - Stream: an append-only sequence used when a generator (Havel–Hakimi,
//     the configuration model) cannot guarantee sorted order up front. Stream
//     supports Push while writing and Rewind to flip into a read-only
//     sequential iterator.
//
// Vector holds its edges ascending by (First, Second) with no duplicate
// entries: NewVector and Rewrite reject anything else. Neither checks for
// loops, so a loop passed in is stored like any other edge.
package edgestore
