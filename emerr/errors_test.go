package emerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamgraph/emswap/emerr"
)

func TestInvariantErrorMatchesSentinel(t *testing.T) {
	err := emerr.NewInvariantError("rewrite", "duplicate edge (1,2)")
	require.True(t, errors.Is(err, emerr.ErrInvariantViolation))
	require.Contains(t, err.Error(), "rewrite")
	require.Contains(t, err.Error(), "duplicate edge (1,2)")
}

func TestInvariantErrorReleaseHidesRecord(t *testing.T) {
	err := emerr.NewInvariantError("commit", "")
	require.NotContains(t, err.Error(), ":  ")
	require.Contains(t, err.Error(), "commit")
}

func TestSentinelsAreDistinct(t *testing.T) {
	require.False(t, errors.Is(emerr.ErrInvalidInput, emerr.ErrIOFailure))
	require.False(t, errors.Is(emerr.ErrOverflow, emerr.ErrInvalidInput))
}
