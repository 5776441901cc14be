package emio

import (
	"container/heap"
	"fmt"
	"sort"
)

type sorterMode int

const (
	modeWriting sorterMode = iota
	modeReading
)

// Sorter accepts records via Push, then Sort() transitions it into a
// read-only streaming state that produces records in ascending Less order.
// Runs larger than RAMBudget records are spilled to disk and merged back in
// via a k-way heap merge, bounding peak memory to O(RAMBudget) regardless of
// total input size.
type Sorter[T any] struct {
	less      func(a, b T) bool
	codec     Codec[T]
	ramBudget int
	spillDir  string

	mode sorterMode

	buf  []T
	runs []*run[T]

	merge *mergeHeap[T]
}

// SorterOption configures a Sorter before use.
type SorterOption[T any] func(*Sorter[T])

// WithRAMBudget bounds the number of records held in memory per run before
// spilling. The zero value (unset) never spills.
func WithRAMBudget[T any](n int) SorterOption[T] {
	return func(s *Sorter[T]) { s.ramBudget = n }
}

// WithSpillDir sets the directory spilled run files are created in. Defaults
// to the OS temp directory.
func WithSpillDir[T any](dir string) SorterOption[T] {
	return func(s *Sorter[T]) { s.spillDir = dir }
}

// NewSorter constructs a Sorter ordered by less, using codec to frame
// records that spill to disk.
func NewSorter[T any](less func(a, b T) bool, codec Codec[T], opts ...SorterOption[T]) *Sorter[T] {
	s := &Sorter[T]{less: less, codec: codec}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push appends a record. Valid only before Sort is called.
func (s *Sorter[T]) Push(v T) error {
	if s.mode != modeWriting {
		return fmt.Errorf("emio: Push called after Sort")
	}
	s.buf = append(s.buf, v)
	if s.ramBudget > 0 && len(s.buf) >= s.ramBudget {
		if err := s.flushRun(); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of records pushed so far that have not yet been
// flushed into a spilled run (write mode only; approximate once reading).
func (s *Sorter[T]) Len() int {
	return len(s.buf)
}

func (s *Sorter[T]) flushRun() error {
	sort.Slice(s.buf, func(i, j int) bool { return s.less(s.buf[i], s.buf[j]) })
	r, err := spillRun(s.spillDir, s.codec, s.buf)
	if err != nil {
		return err
	}
	s.runs = append(s.runs, r)
	s.buf = nil
	return nil
}

// Sort transitions the Sorter into read mode: the last partial run is sorted
// in place (spilling only if earlier runs already spilled, so a
// fits-in-memory input never touches disk), and a k-way merge is set up
// across all runs.
func (s *Sorter[T]) Sort() error {
	if s.mode == modeReading {
		return nil
	}
	s.mode = modeReading

	if len(s.buf) > 0 {
		sort.Slice(s.buf, func(i, j int) bool { return s.less(s.buf[i], s.buf[j]) })
		if len(s.runs) == 0 {
			s.runs = append(s.runs, newMemRun(s.buf))
			s.buf = nil
		} else if err := s.flushRun(); err != nil {
			return err
		}
	}

	mh := newMergeHeap(s.less, s.runs)
	s.merge = mh
	return nil
}

// Empty reports whether the stream is exhausted. Valid only after Sort.
func (s *Sorter[T]) Empty() bool {
	return s.merge == nil || s.merge.empty()
}

// Current returns the smallest remaining record without consuming it.
func (s *Sorter[T]) Current() T {
	return s.merge.top()
}

// Advance consumes the current record and moves to the next smallest.
func (s *Sorter[T]) Advance() error {
	return s.merge.pop()
}

// Close releases every spilled run's backing file.
func (s *Sorter[T]) Close() error {
	var first error
	for _, r := range s.runs {
		if err := r.close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// mergeHeap drives a k-way merge across a set of already-sorted runs,
// always surfacing the globally smallest remaining record.
type mergeHeap[T any] struct {
	less func(a, b T) bool
	runs []*run[T]
	idx  []int // indices into runs, heap-ordered by run[i].peek()
}

func newMergeHeap[T any](less func(a, b T) bool, runs []*run[T]) *mergeHeap[T] {
	mh := &mergeHeap[T]{less: less, runs: runs}
	for i, r := range runs {
		if !r.empty() {
			mh.idx = append(mh.idx, i)
		}
	}
	heap.Init(mh)
	return mh
}

func (mh *mergeHeap[T]) empty() bool { return len(mh.idx) == 0 }

func (mh *mergeHeap[T]) top() T { return mh.runs[mh.idx[0]].peek() }

func (mh *mergeHeap[T]) pop() error {
	top := mh.idx[0]
	if err := mh.runs[top].advance(); err != nil {
		return err
	}
	if mh.runs[top].empty() {
		heap.Remove(mh, 0)
	} else {
		heap.Fix(mh, 0)
	}
	return nil
}

// heap.Interface
func (mh *mergeHeap[T]) Len() int { return len(mh.idx) }
func (mh *mergeHeap[T]) Less(i, j int) bool {
	return mh.less(mh.runs[mh.idx[i]].peek(), mh.runs[mh.idx[j]].peek())
}
func (mh *mergeHeap[T]) Swap(i, j int) { mh.idx[i], mh.idx[j] = mh.idx[j], mh.idx[i] }
func (mh *mergeHeap[T]) Push(x any)    { mh.idx = append(mh.idx, x.(int)) }
func (mh *mergeHeap[T]) Pop() any {
	n := len(mh.idx)
	v := mh.idx[n-1]
	mh.idx = mh.idx[:n-1]
	return v
}
