// Package bench drives the repeated-batch sweep cmd/emswap reports timing
// and throughput statistics for: apply swapsPerIteration-sized batches
// against a running vector for each selected engine, sampling a handful of
// checkpoints across the requested iteration range.
package bench
