// Package emerr defines the error kinds every component in this module
// propagates, per the error handling design:
//
//   - InvalidInput: degree sequence not realizable, unsorted edge input when
//     sortedness was promised, odd total degree.
//   - InvariantViolation: merged output not strictly monotone, existence
//     information negative, swap references a deleted edge id after load.
//   - IOFailure: underlying EM store read/write failure.
//   - Overflow: varint exceeds 64 bits, edge count exceeds representable range.
//
// Ordinary swap conflicts and loops are deliberately NOT errors — they are
// expected conditions reported only through a swaplog.Entry / core.SwapResult.
// Every other kind here propagates as a fatal batch failure: the batch is
// discarded, the caller gets the error, and the pre-batch edge vector is left
// untouched.
package emerr
