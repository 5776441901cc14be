// Package emio implements the external-memory sort and priority-queue
// abstractions every streaming phase in this module is built from (C2).
//
// A Sorter accepts records through Push, then Sort transitions it into a
// read-only streaming state that yields records in ascending comparator
// order. Runs larger than the configured RAM budget are spilled to a
// temporary file, zstd-compressed via github.com/klauspost/compress/zstd,
// and merged back in via a k-way heap merge on read — the
// O((n/B) log_{M/B}(n/B)) I/O bound from the design calls for.
//
// PQ is a bounded priority queue used where results arrive out of order and
// must be drained in a different order (SwapId order, most commonly): push
// whenever an answer arrives, pop to re-establish the expected order.
// Excess elements beyond the RAM budget wait in an in-memory overflow buffer
// that is sorted and drawn from once the heap drains.
//
// Both types are single-owner: ownership transfers between pipeline phases,
// it is never shared for concurrent mutation.
package emio
