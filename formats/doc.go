// Package formats implements the three on-disk interchange formats the data
// path reads and writes: the Thrill-compatible varint-prefixed binary edge
// list, the Metis text adjacency format, and the packed partition-assignment
// file. None of these formats are swap-engine concerns, so no engine package
// imports this one; no other package in the module, cmd/emswap included,
// calls it either.
//
// Grounded in Utils/export_metis.h, Utils/export_thrill_binary.h and
// Utils/ThrillBinaryReader.h.
package formats
