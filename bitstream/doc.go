// Package bitstream implements the append-only, then single-pass-readable
// packed boolean sequence used throughout the swap engines as a compact
// side-channel (successor bits, valid/drop markers, direction flags) (C1).
//
// A Stream starts in write mode. Push appends one bit at a time into a
// 64-bit word accumulator; full words are queued. Consume flushes the
// partial word — left-aligned, zero-padded in the low bits — and switches
// the Stream to read mode, where Advance/Current/Empty walk the bits back
// out MSB-first in push order.
//
// Using a mode exactly once, in exactly one direction, is a contract: Push
// after Consume, or Advance before Consume, panics rather than silently
// returning wrong bits.
package bitstream
