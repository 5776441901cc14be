// Package core defines the data model shared by every edge-swap component:
// Node, Edge, EdgeId, SwapId, SwapDescriptor and SwapResult.
//
// Every other package in this module — bitstream, emio, edgestore, tfp,
// internalswap, and the rest — operates on these types by value. There is no
// pointer graph here: edges live in flat vectors elsewhere and are addressed
// by EdgeId, never by reference. That keeps the swap engines free of cyclic
// structures and lets a batch's state be trivially serialized, sorted, or
// merged.
//
// All types in this package are immutable value types with no internal
// locking; concurrency safety is the responsibility of the containers that
// hold them (edgestore, existence, pipeline).
package core
