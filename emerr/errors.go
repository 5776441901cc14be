package emerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the InvalidInput, IOFailure and Overflow kinds.
var (
	// ErrInvalidInput indicates a degree sequence is not realizable, an edge
	// input promised to be sorted was not, or the total degree is odd.
	ErrInvalidInput = errors.New("emswap: invalid input")

	// ErrIOFailure indicates an underlying external-memory store read or
	// write failed.
	ErrIOFailure = errors.New("emswap: I/O failure")

	// ErrOverflow indicates a varint exceeded 64 bits, or an edge count
	// exceeded the representable range.
	ErrOverflow = errors.New("emswap: overflow")
)

// InvariantError reports an InvariantViolation: a correctness contract the
// engine itself is responsible for upholding was broken. It names the phase
// in which the violation was detected and, in development builds, the
// offending record; release builds should construct it with an empty
// Record so the detail does not leak into user-visible output.
type InvariantError struct {
	Phase  string
	Record string
}

func (e *InvariantError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("emswap: invariant violated in phase %q", e.Phase)
	}
	return fmt.Sprintf("emswap: invariant violated in phase %q: %s", e.Phase, e.Record)
}

// Is lets errors.Is(err, ErrInvariantViolation) match any *InvariantError.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// ErrInvariantViolation is the sentinel matched by every *InvariantError via
// errors.Is; construct the concrete error with NewInvariantError.
var ErrInvariantViolation = errors.New("emswap: invariant violation")

// NewInvariantError builds an InvariantError for the given phase. Pass an
// empty record in release builds so the error's Error() string never
// includes the offending data.
func NewInvariantError(phase, record string) *InvariantError {
	return &InvariantError{Phase: phase, Record: record}
}
