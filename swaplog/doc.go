// Package swaplog implements the optional append-only swap-result log
// (C9): one Entry per swap submitted to a batch, indexed by core.SwapId and
// written in submission order, so a later audit or replay can recover
// exactly which swaps performed, conflicted, or produced a loop without
// re-running the engine.
package swaplog
