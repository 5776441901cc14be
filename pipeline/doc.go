// Package pipeline supplies the small concurrency runtime the streaming
// engines are built on (C11): RunPhases executes a fixed set of named
// phases concurrently and propagates the first failure; AsyncStream and
// AsyncPusher collapse the source-of-truth thread-pool-plus-future design
// from the original engine into a single abstraction — a bounded channel
// with a spawned adapter goroutine on one end and the narrow
// {Empty,Current,Advance} / {Push,Close} capability set a streaming phase
// consumes on the other. tfp uses RunPhases and NewBudget; nothing in the
// module calls AsyncStream or AsyncPusher.
package pipeline
