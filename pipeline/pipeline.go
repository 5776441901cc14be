package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Phase is one named, independently runnable stage of a streaming engine
// run.
type Phase struct {
	Name string
	Run  func(ctx context.Context) error
}

// RunPhases runs every phase concurrently, cancelling the rest as soon as
// one returns an error, and returns the first error wrapped with the
// failing phase's name.
func RunPhases(ctx context.Context, phases ...Phase) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range phases {
		p := p
		g.Go(func() error {
			if err := p.Run(gctx); err != nil {
				return fmt.Errorf("phase %q: %w", p.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// NewBudget returns a weighted semaphore of size n for bounding concurrent
// work; tfp uses it to cap how many existence lookups run at once.
func NewBudget(n int64) *semaphore.Weighted {
	return semaphore.NewWeighted(n)
}

// AsyncStream adapts a producer function running on its own goroutine to
// the engines' {Empty,Current,Advance} stream-source capability. The
// producer is started eagerly and the first value is fetched immediately,
// so a freshly constructed AsyncStream is ready to read from.
type AsyncStream[T any] struct {
	ch      chan T
	errCh   chan error
	current T
	has     bool
	err     error
}

// NewAsyncStream starts produce on its own goroutine, feeding values through
// a channel of capacity bufSize. produce should call push for every value in
// order and return a non-nil error only on failure; pushing returns
// ctx.Err() once ctx is cancelled so a stuck consumer cannot wedge the
// producer forever.
func NewAsyncStream[T any](ctx context.Context, bufSize int, produce func(push func(T) error) error) *AsyncStream[T] {
	s := &AsyncStream[T]{ch: make(chan T, bufSize), errCh: make(chan error, 1)}
	go func() {
		defer close(s.ch)
		push := func(v T) error {
			select {
			case s.ch <- v:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		s.errCh <- produce(push)
	}()
	s.Advance()
	return s
}

// Empty reports whether the stream has been fully drained.
func (s *AsyncStream[T]) Empty() bool { return !s.has }

// Current returns the value at the stream's current position.
func (s *AsyncStream[T]) Current() T { return s.current }

// Advance fetches the next value, blocking until the producer delivers one
// or finishes.
func (s *AsyncStream[T]) Advance() {
	v, ok := <-s.ch
	if !ok {
		s.has = false
		s.err = <-s.errCh
		return
	}
	s.current, s.has = v, true
}

// Err returns the producer's terminal error, if any, once the stream is
// Empty.
func (s *AsyncStream[T]) Err() error { return s.err }

// AsyncPusher adapts a consume function running on its own goroutine to a
// bounded {Push,Close} sink.
type AsyncPusher[T any] struct {
	ch   chan T
	done chan error
}

// NewAsyncPusher starts consume on its own goroutine, reading values pushed
// through a channel of capacity bufSize. Once consume returns an error,
// every subsequent value is read but discarded so the channel never blocks
// the pushing side; Close reports that first error.
func NewAsyncPusher[T any](bufSize int, consume func(v T) error) *AsyncPusher[T] {
	p := &AsyncPusher[T]{ch: make(chan T, bufSize), done: make(chan error, 1)}
	go func() {
		var err error
		for v := range p.ch {
			if err == nil {
				err = consume(v)
			}
		}
		p.done <- err
	}()
	return p
}

// Push enqueues v, blocking until there is room or ctx is cancelled.
func (p *AsyncPusher[T]) Push(ctx context.Context, v T) error {
	select {
	case p.ch <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close signals no more values are coming and waits for the consumer to
// finish draining, returning its terminal error.
func (p *AsyncPusher[T]) Close() error {
	close(p.ch)
	return <-p.done
}
