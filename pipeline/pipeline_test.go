package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamgraph/emswap/pipeline"
)

func TestRunPhasesAllSucceed(t *testing.T) {
	var a, b int
	err := pipeline.RunPhases(context.Background(),
		pipeline.Phase{Name: "a", Run: func(ctx context.Context) error { a = 1; return nil }},
		pipeline.Phase{Name: "b", Run: func(ctx context.Context) error { b = 2; return nil }},
	)
	require.NoError(t, err)
	require.Equal(t, 1, a)
	require.Equal(t, 2, b)
}

func TestRunPhasesPropagatesFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := pipeline.RunPhases(context.Background(),
		pipeline.Phase{Name: "ok", Run: func(ctx context.Context) error { return nil }},
		pipeline.Phase{Name: "bad", Run: func(ctx context.Context) error { return boom }},
	)
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
}

func TestAsyncStreamDeliversInOrder(t *testing.T) {
	s := pipeline.NewAsyncStream(context.Background(), 2, func(push func(int) error) error {
		for i := 0; i < 5; i++ {
			if err := push(i); err != nil {
				return err
			}
		}
		return nil
	})

	var got []int
	for !s.Empty() {
		got = append(got, s.Current())
		s.Advance()
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, got)
	require.NoError(t, s.Err())
}

func TestAsyncStreamPropagatesProducerError(t *testing.T) {
	boom := errors.New("boom")
	s := pipeline.NewAsyncStream(context.Background(), 1, func(push func(int) error) error {
		if err := push(1); err != nil {
			return err
		}
		return boom
	})

	for !s.Empty() {
		s.Advance()
	}
	require.ErrorIs(t, s.Err(), boom)
}

func TestAsyncPusherForwardsValues(t *testing.T) {
	var got []int
	p := pipeline.NewAsyncPusher(4, func(v int) error {
		got = append(got, v)
		return nil
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Push(ctx, i))
	}
	require.NoError(t, p.Close())
	require.Equal(t, []int{0, 1, 2}, got)
}

func TestAsyncPusherReportsConsumeError(t *testing.T) {
	boom := errors.New("boom")
	p := pipeline.NewAsyncPusher(2, func(v int) error {
		return boom
	})

	ctx := context.Background()
	require.NoError(t, p.Push(ctx, 1))
	require.NoError(t, p.Push(ctx, 2))
	require.ErrorIs(t, p.Close(), boom)
}
