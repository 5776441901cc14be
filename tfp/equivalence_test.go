package tfp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/internalswap"
	"github.com/streamgraph/emswap/tfp"
)

func mustVec(t *testing.T, es ...[2]core.Node) []core.Edge {
	t.Helper()
	out := make([]core.Edge, len(es))
	for i, e := range es {
		out[i] = core.NewEdge(e[0], e[1])
	}
	return out
}

// runBoth feeds the same edges/swaps through both engines and asserts they
// agree on the final vector and every per-swap result.
func runBoth(t *testing.T, edges []core.Edge, swaps []core.Swap) ([]core.Edge, []core.SwapResult) {
	t.Helper()

	wantVec, wantResults, err := internalswap.Run(edges, swaps)
	require.NoError(t, err)

	gotVec, gotResults, err := tfp.Run(edges, swaps)
	require.NoError(t, err)

	require.Equal(t, wantVec.Snapshot(), gotVec.Snapshot())
	require.Equal(t, wantResults, gotResults)
	return gotVec.Snapshot(), gotResults
}

func TestTFPMatchesInternalSwapOnNonConflictingSwap(t *testing.T) {
	edges := mustVec(t, [2]core.Node{0, 1}, [2]core.Node{2, 3})
	swaps := []core.Swap{core.FromIDs(0, 1, false)}

	vec, results := runBoth(t, edges, swaps)
	require.True(t, results[0].Performed)
	require.Equal(t, mustVec(t, [2]core.Node{0, 2}, [2]core.Node{1, 3}), vec)
}

func TestTFPMatchesInternalSwapOnLoop(t *testing.T) {
	edges := mustVec(t, [2]core.Node{0, 1}, [2]core.Node{1, 2})
	swaps := []core.Swap{core.FromIDs(0, 1, true)}

	vec, results := runBoth(t, edges, swaps)
	require.False(t, results[0].Performed)
	require.True(t, results[0].Loop)
	require.Equal(t, edges, vec)
}

func TestTFPMatchesInternalSwapOnConflict(t *testing.T) {
	edges := mustVec(t, [2]core.Node{0, 1}, [2]core.Node{0, 2}, [2]core.Node{1, 2})
	swaps := []core.Swap{core.FromIDs(0, 2, false)}

	vec, results := runBoth(t, edges, swaps)
	require.False(t, results[0].Performed)
	require.True(t, results[0].ConflictDetected[0])
	require.True(t, results[0].ConflictDetected[1])
	require.Equal(t, edges, vec)
}

func TestTFPMatchesInternalSwapOnDuplicateAndOutOfRangeIDs(t *testing.T) {
	edges := mustVec(t, [2]core.Node{0, 1}, [2]core.Node{2, 3})
	swaps := []core.Swap{
		core.FromIDs(0, 0, false),
		core.FromIDs(0, 5, false),
	}

	vec, results := runBoth(t, edges, swaps)
	for _, r := range results {
		require.False(t, r.Performed)
	}
	require.Equal(t, edges, vec)
}

func TestTFPMatchesInternalSwapOnSemiLoaded(t *testing.T) {
	edges := mustVec(t, [2]core.Node{0, 1}, [2]core.Node{2, 3})
	swaps := []core.Swap{core.FromValue(core.NewEdge(0, 1), 1, false)}

	vec, results := runBoth(t, edges, swaps)
	require.True(t, results[0].Performed)
	require.Equal(t, mustVec(t, [2]core.Node{0, 2}, [2]core.Node{1, 3}), vec)
}

func TestTFPMatchesInternalSwapOnUnresolvableSemiLoaded(t *testing.T) {
	edges := mustVec(t, [2]core.Node{0, 1}, [2]core.Node{2, 3})
	swaps := []core.Swap{core.FromValue(core.NewEdge(5, 6), 1, false)}

	vec, results := runBoth(t, edges, swaps)
	require.False(t, results[0].Performed)
	require.Equal(t, edges, vec)
}

func TestTFPMatchesInternalSwapPreservesClique(t *testing.T) {
	edges := mustVec(t,
		[2]core.Node{0, 1}, [2]core.Node{0, 2}, [2]core.Node{0, 3},
		[2]core.Node{1, 2}, [2]core.Node{1, 3}, [2]core.Node{2, 3},
	)
	swaps := []core.Swap{
		core.FromIDs(0, 5, false),
		core.FromIDs(1, 4, true),
		core.FromIDs(2, 3, false),
	}

	vec, results := runBoth(t, edges, swaps)
	for _, r := range results {
		require.False(t, r.Performed)
	}
	require.Equal(t, edges, vec)
}

// TestTFPMatchesInternalSwapOnChainedSwaps exercises the sequential-commit
// path specifically: every id here is touched by two swaps of the batch, so
// none of them qualify for the concurrent prefetch fast path and every
// existence check must see the live delta from the swaps before it.
func TestTFPMatchesInternalSwapOnChainedSwaps(t *testing.T) {
	edges := mustVec(t,
		[2]core.Node{0, 1}, [2]core.Node{1, 3}, [2]core.Node{2, 3}, [2]core.Node{3, 4},
	)
	swaps := []core.Swap{
		core.FromIDs(0, 2, true),
		core.FromIDs(0, 3, true),
		core.FromIDs(2, 3, false),
	}

	_, _ = runBoth(t, edges, swaps)
}

// TestTFPMatchesInternalSwapOnScenario4ExistencePropagation is spec.md §8
// Scenario 4 transcribed literally (see internalswap/engine_test.go and
// DESIGN.md's "internalswap commit model" entry for why the other five
// scenarios are not).
func TestTFPMatchesInternalSwapOnScenario4ExistencePropagation(t *testing.T) {
	edges := mustVec(t, [2]core.Node{0, 2}, [2]core.Node{1, 2}, [2]core.Node{2, 3}, [2]core.Node{4, 5})
	swaps := []core.Swap{
		core.FromIDs(2, 3, true),
		core.FromIDs(0, 1, true),
	}

	vec, results := runBoth(t, edges, swaps)
	require.True(t, results[0].Performed)
	require.False(t, results[1].Performed)
	require.Equal(t, mustVec(t, [2]core.Node{0, 2}, [2]core.Node{1, 2}, [2]core.Node{2, 5}, [2]core.Node{3, 4}), vec)
}

// TestTFPAgreesWithSequentialOnMixedFastPathAndFallbackBatch combines, in a
// single tfp.Run batch, a swap whose ids appear nowhere else (so it takes
// the concurrent existence-prefetch fast path) with spec.md §8 Scenario 2's
// four-swap chain (two swaps followed by two more reusing those same edge
// ids), which touches every one of its ids twice and so never qualifies for
// the fast path — exactly the combination spec.md §9 flags as needing its
// own anchor beyond Scenario 4. A literal replay of Scenario 2 alone would
// not do this: since every id in that chain is touched by two swaps,
// classification is global to the whole batch and none of them are simple
// on their own (see DESIGN.md).
func TestTFPAgreesWithSequentialOnMixedFastPathAndFallbackBatch(t *testing.T) {
	edges := mustVec(t,
		[2]core.Node{0, 1}, [2]core.Node{2, 3}, [2]core.Node{4, 5},
		[2]core.Node{6, 7}, [2]core.Node{8, 9}, [2]core.Node{10, 11},
	)
	swaps := []core.Swap{
		core.FromIDs(4, 5, true), // untouched elsewhere: fast path
		core.FromIDs(0, 1, true), // Scenario 2's chain: ids 0-3 each touched twice
		core.FromIDs(2, 3, true),
		core.FromIDs(0, 2, true),
		core.FromIDs(1, 3, true),
	}

	_, results := runBoth(t, edges, swaps)
	require.True(t, results[0].Performed)
}

// TestTFPFastPathAgreesWithSequentialOnIndependentSwaps drives a batch made
// entirely of mutually independent swaps (every id touched exactly once),
// so the whole batch takes the concurrent prefetch path, and checks the
// result against a hand-computed expectation as well as internalswap.
func TestTFPFastPathAgreesWithSequentialOnIndependentSwaps(t *testing.T) {
	edges := mustVec(t,
		[2]core.Node{0, 1}, [2]core.Node{2, 3}, [2]core.Node{4, 5}, [2]core.Node{6, 7},
	)
	swaps := []core.Swap{
		core.FromIDs(0, 1, false),
		core.FromIDs(2, 3, false),
	}

	vec, results := runBoth(t, edges, swaps)
	require.True(t, results[0].Performed)
	require.True(t, results[1].Performed)
	require.Equal(t, mustVec(t,
		[2]core.Node{0, 2}, [2]core.Node{1, 3}, [2]core.Node{4, 6}, [2]core.Node{5, 7},
	), vec)
}
