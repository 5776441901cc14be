package existence

import (
	"runtime"
	"sync/atomic"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/emerr"
)

// swapInfo tracks one swap's slice of the shared edges slab plus its two
// lock-free counters. startIndex is fixed once FinishInitialization runs and
// never changes afterwards.
type swapInfo struct {
	startIndex int64
	missing    atomic.Int32
	existing   atomic.Int32
}

// Buffer is the existence-information scoreboard for one batch of numSwaps
// swaps. The call sequence is fixed:
//
//  1. StartInitialization
//  2. AddPossible for every query a swap might raise, any number of times
//  3. FinishInitialization, exactly once
//  4. concurrently: PushExists / PushMissing for every query raised in (2)
//  5. WaitForMissing(id) before Exists(id, ...) is ever called
//
// A Buffer is safe for concurrent use by multiple goroutines once
// FinishInitialization has returned.
type Buffer struct {
	info  []swapInfo
	edges []core.Edge
}

// NewBuffer allocates a Buffer sized for numSwaps swaps.
func NewBuffer(numSwaps int64) *Buffer {
	return &Buffer{info: make([]swapInfo, numSwaps)}
}

// StartInitialization resets every counter to zero. Call once before the
// AddPossible pass for a fresh batch.
func (b *Buffer) StartInitialization() {
	for i := range b.info {
		b.info[i].missing.Store(0)
		b.info[i].existing.Store(0)
	}
}

// AddPossible registers numEdges additional existence queries that swap id
// may raise. Safe to call concurrently across different swap ids; calls for
// the same id race-free via the atomic add.
func (b *Buffer) AddPossible(id core.SwapId, numEdges int32) {
	b.info[id].missing.Add(numEdges)
}

// FinishInitialization computes each swap's offset into the shared edges
// slab from the totals AddPossible recorded, and allocates the slab. Call
// exactly once, after every AddPossible call for this batch has returned and
// before any PushExists/PushMissing call.
func (b *Buffer) FinishInitialization() {
	var sum int64
	for i := range b.info {
		b.info[i].startIndex = sum
		sum += int64(b.info[i].missing.Load())
	}
	b.edges = make([]core.Edge, sum)
}

// PushExists records that e exists and answers one of swap id's pending
// queries. Safe for concurrent use across distinct ids; concurrent calls for
// the same id serialize only on the atomic counters, not on a lock.
func (b *Buffer) PushExists(id core.SwapId, e core.Edge) {
	si := &b.info[id]
	i := si.existing.Add(1) - 1
	b.edges[si.startIndex+int64(i)] = e
	si.missing.Add(-1)
}

// PushMissing answers one of swap id's pending queries with "does not
// exist".
func (b *Buffer) PushMissing(id core.SwapId) {
	b.info[id].missing.Add(-1)
}

// WaitForMissing spin-yields until every query raised against swap id has
// been answered. Must return before Exists is called for the same id.
func (b *Buffer) WaitForMissing(id core.SwapId) {
	for b.info[id].missing.Load() > 0 {
		runtime.Gosched()
	}
}

// Exists reports whether e was recorded as existing for swap id. Callers
// must have called WaitForMissing(id) first; Exists panics via an
// InvariantError-wrapped message if queries are still outstanding, since a
// query result consulted early is a correctness bug rather than a
// recoverable condition.
func (b *Buffer) Exists(id core.SwapId, e core.Edge) bool {
	si := &b.info[id]
	if si.missing.Load() != 0 {
		panic(emerr.NewInvariantError("existence.Exists", "queried before WaitForMissing completed"))
	}
	n := int64(si.existing.Load())
	for i := int64(0); i < n; i++ {
		if b.edges[si.startIndex+i] == e {
			return true
		}
	}
	return false
}
