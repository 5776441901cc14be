package randtree

import (
	"fmt"
	"math/bits"

	"github.com/streamgraph/emswap/emerr"
)

// Tree is a complete binary tree over a fixed number of leaves, each
// internal node caching the total weight of its left subtree so a weighted
// draw or a unit decrement both cost O(log n).
type Tree struct {
	layers uint
	offset uint64
	data   []int64
	total  int64
}

// New builds a Tree from the given leaf weights. Weights must be
// non-negative.
func New(leaves []int64) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("%w: randtree requires at least one leaf", emerr.ErrInvalidInput)
	}
	layers := ceilLog2(len(leaves))
	offset := uint64(1) << layers

	t := &Tree{layers: layers, offset: offset, data: make([]int64, offset)}
	for i, w := range leaves {
		if w < 0 {
			return nil, fmt.Errorf("%w: randtree leaf weight must be non-negative, got %d", emerr.ErrInvalidInput, w)
		}
		t.total += w

		idx := uint64(i) + offset
		for l := uint(0); l < layers; l++ {
			parent := idx >> 1
			if idx&1 == 0 {
				t.data[parent] += w
			}
			idx = parent
		}
	}
	return t, nil
}

// TotalWeight returns the sum of all current leaf weights.
func (t *Tree) TotalWeight() int64 { return t.total }

// GetLeaf returns the 0-based leaf index whose weight interval contains
// weight, where weight is drawn from [0, TotalWeight()). Callers typically
// pass rng.Int63n(t.TotalWeight()).
func (t *Tree) GetLeaf(weight int64) uint64 {
	idx := uint64(1)
	for l := uint(0); l < t.layers; l++ {
		toRight := weight >= t.data[idx]
		if toRight {
			weight -= t.data[idx]
		}
		idx = 2*idx + b2u64(toRight)
	}
	return idx - t.offset
}

// DecreaseLeaf lowers leaf leafIdx's weight by exactly one.
func (t *Tree) DecreaseLeaf(leafIdx uint64) {
	idx := leafIdx + t.offset
	t.total--
	for l := uint(0); l < t.layers; l++ {
		isRight := idx & 1
		idx /= 2
		if isRight == 0 {
			t.data[idx]--
		}
	}
}

func b2u64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// ceilLog2 returns the smallest k such that 2^k >= n, for n >= 1.
func ceilLog2(n int) uint {
	if n <= 1 {
		return 0
	}
	return uint(bits.Len(uint(n - 1)))
}
