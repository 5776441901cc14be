// Package tfp implements the fully out-of-core swap engine (C7): the
// streaming counterpart to internalswap that answers existence queries by
// walking the sorted base edge vector instead of holding a full live-edge
// set in RAM.
//
// Two properties distinguish it from internalswap:
//
//   - Existence is tracked as a delta over the frozen base vector
//     (base count plus a signed adjustment per touched edge value) rather
//     than a full copy of the live edge set, so memory stays proportional
//     to the number of edges a batch actually touches, not graph size.
//   - Swaps whose two source ids are each referenced exactly once by the
//     batch's id-based swaps have their target existence resolved against
//     the base vector concurrently, ahead of the sequential commit walk, via
//     an existence.Buffer. Semi-loaded swaps are not counted, so if one of
//     them has already rewritten such a swap's edge, the commit walk ignores
//     the prefetched answer and searches the base vector directly. Swaps that reuse an
//     id (a later swap reads a value an earlier swap just wrote) still
//     commit strictly in submission order, since that is where the actual
//     dependency lives.
//
// Run is required to be observationally equivalent to internalswap.Run for
// any input: same submission order, same source resolution rules, same
// conflict semantics. equivalence_test.go checks this directly by running
// identical batches through both engines.
package tfp
