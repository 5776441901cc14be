package internalswap

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/edgestore"
	"github.com/streamgraph/emswap/emerr"
)

// Option configures a Run call.
type Option func(*options)

type options struct {
	runID  string
	logger *log.Logger
}

// WithRunID tags the batch's log lines with an explicit run id instead of a
// freshly generated one.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

// WithLogger overrides the default charmbracelet/log logger (useful for
// routing batch logs through a CLI's configured output/rotation).
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Run commits a batch of swaps against edges, in swap-submission order, and
// returns the post-batch edge vector alongside one SwapResult per swap
// (index-aligned with swaps). edges must already satisfy the §3 invariants:
// sorted, no duplicates.
//
// Duplicate-edge-id swaps, swaps referencing an out-of-range or invalid edge
// id, and semi-loaded swaps whose by-value edge no longer matches any
// current edge are skipped silently: the corresponding SwapResult reports
// Performed=false with both conflict flags clear.
func Run(edges []core.Edge, swaps []core.Swap, opts ...Option) (*edgestore.Vector, []core.SwapResult, error) {
	cfg := options{runID: uuid.NewString(), logger: log.Default()}
	for _, o := range opts {
		o(&cfg)
	}
	logger := cfg.logger.With("run_id", cfg.runID, "phase", "internalswap", "swaps", len(swaps))
	start := time.Now()
	logger.Info("batch start")

	work := make([]core.Edge, len(edges))
	copy(work, edges)

	idOf := make(map[core.Edge]core.EdgeId, len(work))
	live := make(map[core.Edge]bool, len(work))
	for i, e := range work {
		if live[e] {
			return nil, nil, emerr.NewInvariantError("internalswap.Run", "duplicate edge in initial vector")
		}
		idOf[e] = core.EdgeId(i)
		live[e] = true
	}

	results := make([]core.SwapResult, len(swaps))

	var performed, conflicts, loops int
	for sid, sw := range swaps {
		srcA, srcB, idA, idB, direction, ok := resolve(sw, work, idOf)
		if !ok {
			continue
		}

		t0, t1 := core.TargetPair(srcA, srcB, direction)
		var r core.SwapResult
		r.Edges = [2]core.Edge{t0, t1}
		r.Loop = t0.IsLoop() || t1.IsLoop()

		if !r.Loop {
			r.ConflictDetected[0] = live[t0]
			r.ConflictDetected[1] = live[t1]
		}
		r.Performed = !r.Loop && !r.ConflictDetected[0] && !r.ConflictDetected[1]

		if r.Performed {
			delete(live, srcA)
			delete(live, srcB)
			delete(idOf, srcA)
			delete(idOf, srcB)

			work[idA] = t0
			work[idB] = t1
			live[t0] = true
			live[t1] = true
			idOf[t0] = idA
			idOf[t1] = idB

			performed++
		}
		if r.ConflictDetected[0] || r.ConflictDetected[1] {
			conflicts++
		}
		if r.Loop {
			loops++
		}

		r.Normalize()
		results[sid] = r
	}

	sort.Slice(work, func(i, j int) bool { return work[i].Less(work[j]) })
	v, err := edgestore.NewVector(work)
	if err != nil {
		return nil, nil, err
	}

	logger.With("performed", performed, "conflicts", conflicts, "loops", loops, "duration", time.Since(start)).
		Info("batch done")

	return v, results, nil
}

// resolve extracts the two source edges, their current ids, and the
// direction bit a swap descriptor names, reporting ok=false for any swap
// that must be silently skipped.
func resolve(sw core.Swap, work []core.Edge, idOf map[core.Edge]core.EdgeId) (srcA, srcB core.Edge, idA, idB core.EdgeId, direction bool, ok bool) {
	switch {
	case sw.BothByIDs != nil:
		d := sw.BothByIDs
		idA, idB, direction = d.Edge1, d.Edge2, d.Direction
		if !validID(idA, work) || !validID(idB, work) || idA == idB {
			return core.Edge{}, core.Edge{}, 0, 0, false, false
		}
		return work[idA], work[idB], idA, idB, direction, true

	case sw.FirstByValu != nil:
		d := sw.FirstByValu
		direction = d.Direction
		resolvedA, present := idOf[d.FirstEdge]
		if !present || !validID(d.Edge2, work) || resolvedA == d.Edge2 {
			return core.Edge{}, core.Edge{}, 0, 0, false, false
		}
		return d.FirstEdge, work[d.Edge2], resolvedA, d.Edge2, direction, true

	default:
		return core.Edge{}, core.Edge{}, 0, 0, false, false
	}
}

func validID(id core.EdgeId, work []core.Edge) bool {
	return id >= 0 && int64(id) < int64(len(work))
}
