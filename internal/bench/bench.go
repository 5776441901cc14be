package bench

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/edgestore"
	"github.com/streamgraph/emswap/emerr"
	"github.com/streamgraph/emswap/internalswap"
	"github.com/streamgraph/emswap/metrics"
	"github.com/streamgraph/emswap/swapsource"
	"github.com/streamgraph/emswap/tfp"
)

// SweepConfig names the iteration range and per-iteration batch size a
// Sweep call runs.
//
// The min/max/steps triple is silent on exact semantics in the interface it
// implements; this package resolves it as: run every iteration from 0
// through Max, applying SwapsPerIteration swaps each time, and report a
// StepResult at Steps checkpoints spaced across [Min, Max].
type SweepConfig struct {
	Min               int
	Max               int
	Steps             int
	SwapsPerIteration int
	// SortRAMBudget bounds tfp's commit-phase emio.Sorter in-memory run size;
	// zero leaves the run entirely in memory. Unused by the internal engine.
	SortRAMBudget int
}

// StepResult reports one reported checkpoint's outcome for one engine.
type StepResult struct {
	Engine    string
	Iteration int
	Swaps     int
	Performed int
	Conflicts int
	Loops     int
	Duration  time.Duration
}

// Sweep runs cfg.Max+1 iterations of cfg.SwapsPerIteration-sized batches,
// drawn from source, against initial, separately for each named engine
// ("internal" or "tfp") — every engine restarts from the same initial
// vector. It returns one StepResult per (engine, checkpoint) pair, in
// engine-major, iteration-ascending order. A nil logger leaves each engine's
// own default logger in place.
func Sweep(initial *edgestore.Vector, source *swapsource.Source, cfg SweepConfig, engines []string, m *metrics.Metrics, runID string, logger *log.Logger) ([]StepResult, error) {
	checkpoints := checkpointSet(cfg.Min, cfg.Max, cfg.Steps)

	var out []StepResult
	for _, engine := range engines {
		vec := initial
		for iter := 0; iter <= cfg.Max; iter++ {
			descriptors := source.Batch(cfg.SwapsPerIteration)
			swaps := make([]core.Swap, len(descriptors))
			for i, d := range descriptors {
				swaps[i] = core.FromIDs(d.Edge1, d.Edge2, d.Direction)
			}

			start := time.Now()
			var results []core.SwapResult
			var err error
			vec, results, err = runEngine(engine, vec, swaps, runID, cfg.SortRAMBudget, logger)
			if err != nil {
				return nil, err
			}
			duration := time.Since(start)

			performed, conflicts, loops := tally(results)
			if m != nil {
				m.ObserveResults(engine, performed, conflicts, loops)
				m.BatchDuration.WithLabelValues(engine).Observe(duration.Seconds())
			}

			if iter >= cfg.Min && checkpoints[iter] {
				out = append(out, StepResult{
					Engine: engine, Iteration: iter, Swaps: len(swaps),
					Performed: performed, Conflicts: conflicts, Loops: loops,
					Duration: duration,
				})
			}
		}
	}
	return out, nil
}

func runEngine(engine string, vec *edgestore.Vector, swaps []core.Swap, runID string, sortRAMBudget int, logger *log.Logger) (*edgestore.Vector, []core.SwapResult, error) {
	switch engine {
	case "internal":
		opts := []internalswap.Option{internalswap.WithRunID(runID)}
		if logger != nil {
			opts = append(opts, internalswap.WithLogger(logger))
		}
		return internalswap.Run(vec.Snapshot(), swaps, opts...)
	case "tfp":
		opts := []tfp.Option{tfp.WithRunID(runID)}
		if sortRAMBudget > 0 {
			opts = append(opts, tfp.WithSortRAMBudget(sortRAMBudget))
		}
		if logger != nil {
			opts = append(opts, tfp.WithLogger(logger))
		}
		return tfp.Run(vec.Snapshot(), swaps, opts...)
	default:
		return nil, nil, fmt.Errorf("%w: bench: unknown engine %q", emerr.ErrInvalidInput, engine)
	}
}

func tally(results []core.SwapResult) (performed, conflicts, loops int) {
	for _, r := range results {
		switch {
		case r.Performed:
			performed++
		case r.Loop:
			loops++
		case r.ConflictDetected[0] || r.ConflictDetected[1]:
			conflicts++
		}
	}
	return performed, conflicts, loops
}

// checkpointSet returns the iteration numbers in [min, max] to report,
// spaced as evenly as steps allows.
func checkpointSet(min, max, steps int) map[int]bool {
	out := make(map[int]bool, steps)
	if steps <= 1 || max <= min {
		out[max] = true
		return out
	}
	span := max - min
	for i := 0; i < steps; i++ {
		out[min+span*i/(steps-1)] = true
	}
	return out
}
