package tfp

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/streamgraph/emswap/bitstream"
	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/edgestore"
	"github.com/streamgraph/emswap/emerr"
	"github.com/streamgraph/emswap/emio"
	"github.com/streamgraph/emswap/existence"
	"github.com/streamgraph/emswap/merge"
	"github.com/streamgraph/emswap/pipeline"
)

// Option configures a Run call.
type Option func(*options)

type options struct {
	runID          string
	logger         *log.Logger
	prefetchBudget int64
	sortRAMBudget  int
}

// WithRunID tags the batch's log lines with an explicit run id instead of a
// freshly generated one.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

// WithLogger overrides the default charmbracelet/log logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPrefetchBudget bounds how many independent existence lookups run
// concurrently during the prefetch phase. Defaults to 8.
func WithPrefetchBudget(n int64) Option {
	return func(o *options) { o.prefetchBudget = n }
}

// WithSortRAMBudget bounds how many touched edges the commit phase's
// emio.Sorter holds in memory per run before spilling to disk. Zero (the
// default) leaves the run entirely in memory.
func WithSortRAMBudget(n int) Option {
	return func(o *options) { o.sortRAMBudget = n }
}

var edgeCodec = emio.Codec[core.Edge]{
	Encode: func(e core.Edge, w io.Writer) error {
		var b [8]byte
		b[0] = byte(e.First >> 24)
		b[1] = byte(e.First >> 16)
		b[2] = byte(e.First >> 8)
		b[3] = byte(e.First)
		b[4] = byte(e.Second >> 24)
		b[5] = byte(e.Second >> 16)
		b[6] = byte(e.Second >> 8)
		b[7] = byte(e.Second)
		_, err := w.Write(b[:])
		return err
	},
	Decode: func(r io.Reader) (core.Edge, error) {
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return core.Edge{}, err
		}
		first := core.Node(int32(b[0])<<24 | int32(b[1])<<16 | int32(b[2])<<8 | int32(b[3]))
		second := core.Node(int32(b[4])<<24 | int32(b[5])<<16 | int32(b[6])<<8 | int32(b[7]))
		return core.Edge{First: first, Second: second}, nil
	},
}

// Run commits a batch of swaps against edges, in swap-submission order, and
// returns the post-batch edge vector alongside one SwapResult per swap
// (index-aligned with swaps). edges must already satisfy the §3 invariants:
// sorted, no duplicates.
//
// Skip rules match internalswap.Run exactly: duplicate-edge-id swaps,
// out-of-range ids, and semi-loaded swaps whose by-value edge no longer
// matches any current edge are skipped silently.
func Run(edges []core.Edge, swaps []core.Swap, opts ...Option) (*edgestore.Vector, []core.SwapResult, error) {
	cfg := options{runID: uuid.NewString(), logger: log.Default(), prefetchBudget: 8}
	for _, o := range opts {
		o(&cfg)
	}
	logger := cfg.logger.With("run_id", cfg.runID, "phase", "tfp", "swaps", len(swaps))
	start := time.Now()
	logger.Info("batch start")

	base := make([]core.Edge, len(edges))
	copy(base, edges)
	for i := 1; i < len(base); i++ {
		if !base[i-1].Less(base[i]) {
			return nil, nil, emerr.NewInvariantError("tfp.Run", "initial edge vector not strictly sorted")
		}
	}

	valueToID := make(map[core.Edge]core.EdgeId, len(base))
	for i, e := range base {
		valueToID[e] = core.EdgeId(i)
	}

	touchCount := make(map[core.EdgeId]int, len(swaps)*2)
	for _, sw := range swaps {
		if d := sw.BothByIDs; d != nil && validRange(d.Edge1, len(base)) && validRange(d.Edge2, len(base)) && d.Edge1 != d.Edge2 {
			touchCount[d.Edge1]++
			touchCount[d.Edge2]++
		}
	}

	simple := make([]bool, len(swaps))
	for sid, sw := range swaps {
		if d := sw.BothByIDs; d != nil && touchCount[d.Edge1] == 1 && touchCount[d.Edge2] == 1 {
			simple[sid] = true
		}
	}

	buf := existence.NewBuffer(int64(len(swaps)))
	buf.StartInitialization()
	for sid := range swaps {
		if simple[sid] {
			buf.AddPossible(core.SwapId(sid), 2)
		}
	}
	buf.FinishInitialization()

	successors := bitstream.New()
	lastTouch := make(map[core.EdgeId]int, len(touchCount))
	for sid, sw := range swaps {
		if d := sw.BothByIDs; d != nil {
			lastTouch[d.Edge1] = sid
			lastTouch[d.Edge2] = sid
		}
	}

	if err := pipeline.RunPhases(context.Background(),
		pipeline.Phase{
			Name: "existence-prefetch",
			Run: func(ctx context.Context) error {
				return prefetchExistence(ctx, cfg.prefetchBudget, base, swaps, simple, buf)
			},
		},
		pipeline.Phase{
			Name: "successor-bits",
			Run: func(ctx context.Context) error {
				for sid, sw := range swaps {
					d := sw.BothByIDs
					if d == nil {
						continue
					}
					successors.Push(lastTouch[d.Edge1] != sid)
					successors.Push(lastTouch[d.Edge2] != sid)
				}
				return nil
			},
		},
	); err != nil {
		return nil, nil, err
	}

	current := make(map[core.EdgeId]core.Edge)
	delta := make(map[core.Edge]int)
	results := make([]core.SwapResult, len(swaps))

	var performed, conflicts, loops int
	for sid, sw := range swaps {
		srcA, srcB, idA, idB, direction, ok := resolveLive(sw, base, current, valueToID)
		if !ok {
			continue
		}

		t0, t1 := core.TargetPair(srcA, srcB, direction)
		var r core.SwapResult
		r.Edges = [2]core.Edge{t0, t1}
		r.Loop = t0.IsLoop() || t1.IsLoop()

		if !r.Loop {
			var base0, base1 bool
			// The prefetched answers were computed from both ids' base values;
			// an earlier semi-loaded swap may have rewritten one of them.
			if simple[sid] && srcA == base[idA] && srcB == base[idB] {
				buf.WaitForMissing(core.SwapId(sid))
				base0 = buf.Exists(core.SwapId(sid), t0)
				base1 = buf.Exists(core.SwapId(sid), t1)
			} else {
				base0 = existsInBase(base, t0)
				base1 = existsInBase(base, t1)
			}
			r.ConflictDetected[0] = combined(base0, delta, t0)
			r.ConflictDetected[1] = combined(base1, delta, t1)
		}
		r.Performed = !r.Loop && !r.ConflictDetected[0] && !r.ConflictDetected[1]

		if r.Performed {
			delta[srcA]--
			delta[srcB]--
			delta[t0]++
			delta[t1]++

			current[idA] = t0
			current[idB] = t1

			delete(valueToID, srcA)
			delete(valueToID, srcB)
			valueToID[t0] = idA
			valueToID[t1] = idB

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

	finalEdges, err := commit(base, current, cfg.sortRAMBudget)
	if err != nil {
		return nil, nil, err
	}

	v, err := edgestore.NewVector(finalEdges)
	if err != nil {
		return nil, nil, err
	}

	var successorTrue uint64
	successors.Consume()
	for !successors.Empty() {
		if successors.Current() {
			successorTrue++
		}
		successors.Advance()
	}

	logger.With("performed", performed, "conflicts", conflicts, "loops", loops,
		"chained_halves", successorTrue, "duration", time.Since(start)).
		Info("batch done")

	return v, results, nil
}

// prefetchExistence concurrently resolves base-vector existence for every
// target edge a "simple" swap (both source ids touched exactly once in the
// whole batch) would produce, since that answer never depends on any other
// swap's outcome. Results land in buf, ready for the sequential commit walk
// to read back via WaitForMissing/Exists.
func prefetchExistence(ctx context.Context, budgetSize int64, base []core.Edge, swaps []core.Swap, simple []bool, buf *existence.Buffer) error {
	budget := pipeline.NewBudget(budgetSize)

	g := make(chan error, len(swaps))
	pending := 0
	for sid, sw := range swaps {
		if !simple[sid] {
			continue
		}
		d := sw.BothByIDs
		sid := sid
		pending++
		go func() {
			if err := budget.Acquire(ctx, 1); err != nil {
				g <- err
				return
			}
			defer budget.Release(1)

			t0, t1 := core.TargetPair(base[d.Edge1], base[d.Edge2], d.Direction)
			pushExistence(buf, core.SwapId(sid), t0, base)
			pushExistence(buf, core.SwapId(sid), t1, base)
			g <- nil
		}()
	}
	for i := 0; i < pending; i++ {
		if err := <-g; err != nil {
			return err
		}
	}
	return nil
}

func pushExistence(buf *existence.Buffer, sid core.SwapId, e core.Edge, base []core.Edge) {
	if existsInBase(base, e) {
		buf.PushExists(sid, e)
	} else {
		buf.PushMissing(sid)
	}
}

// existsInBase binary-searches the frozen, sorted base vector.
func existsInBase(base []core.Edge, e core.Edge) bool {
	i := sort.Search(len(base), func(i int) bool { return !base[i].Less(e) })
	return i < len(base) && base[i] == e
}

// combined folds a base-vector existence answer with the live delta
// accumulated by the swaps already committed, reproducing the same
// current-live-set membership internalswap tracks directly.
func combined(baseExists bool, delta map[core.Edge]int, e core.Edge) bool {
	n := 0
	if baseExists {
		n = 1
	}
	return n+delta[e] > 0
}

func currentValue(id core.EdgeId, current map[core.EdgeId]core.Edge, base []core.Edge) core.Edge {
	if v, ok := current[id]; ok {
		return v
	}
	return base[id]
}

// resolveLive extracts the two source edges, their ids, and the direction
// bit a swap descriptor names, reporting ok=false for any swap that must be
// silently skipped. Semi-loaded swaps resolve their by-value side against
// valueToID as it stands at the time this swap is reached in submission
// order, exactly as internalswap does.
func resolveLive(sw core.Swap, base []core.Edge, current map[core.EdgeId]core.Edge, valueToID map[core.Edge]core.EdgeId) (srcA, srcB core.Edge, idA, idB core.EdgeId, direction bool, ok bool) {
	switch {
	case sw.BothByIDs != nil:
		d := sw.BothByIDs
		idA, idB, direction = d.Edge1, d.Edge2, d.Direction
		if !validRange(idA, len(base)) || !validRange(idB, len(base)) || idA == idB {
			return core.Edge{}, core.Edge{}, 0, 0, false, false
		}
		return currentValue(idA, current, base), currentValue(idB, current, base), idA, idB, direction, true

	case sw.FirstByValu != nil:
		d := sw.FirstByValu
		direction = d.Direction
		resolvedA, present := valueToID[d.FirstEdge]
		if !present || !validRange(d.Edge2, len(base)) || resolvedA == d.Edge2 {
			return core.Edge{}, core.Edge{}, 0, 0, false, false
		}
		return d.FirstEdge, currentValue(d.Edge2, current, base), resolvedA, d.Edge2, direction, true

	default:
		return core.Edge{}, core.Edge{}, 0, 0, false, false
	}
}

func validRange(id core.EdgeId, n int) bool {
	return id >= 0 && int(id) < n
}

// commit sorts the touched-id replacement values through an emio.Sorter and
// folds them back into base via merge.Merge, producing the next sorted edge
// vector without ever materializing a second full copy of the untouched
// bulk of the graph.
func commit(base []core.Edge, current map[core.EdgeId]core.Edge, ramBudget int) ([]core.Edge, error) {
	keep := make([]bool, len(base))
	for i := range keep {
		keep[i] = true
	}

	sorterOpts := []emio.SorterOption[core.Edge]{}
	if ramBudget > 0 {
		sorterOpts = append(sorterOpts, emio.WithRAMBudget[core.Edge](ramBudget))
	}
	sorter := emio.NewSorter(func(a, b core.Edge) bool { return a.Less(b) }, edgeCodec, sorterOpts...)
	for id, e := range current {
		keep[id] = false
		if err := sorter.Push(e); err != nil {
			return nil, err
		}
	}
	if err := sorter.Sort(); err != nil {
		return nil, err
	}
	defer sorter.Close()

	updates := make([]core.Edge, 0, len(current))
	for !sorter.Empty() {
		updates = append(updates, sorter.Current())
		if err := sorter.Advance(); err != nil {
			return nil, err
		}
	}

	return merge.Merge(base, keep, updates)
}
