package degseq

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/streamgraph/emswap/emerr"
)

// Sequence is a sequential, one-pass source of non-negative degrees.
type Sequence struct {
	degrees []int64
	pos     int
}

// Empty reports whether every degree has been consumed.
func (s *Sequence) Empty() bool { return s.pos >= len(s.degrees) }

// Current returns the degree at the current position.
func (s *Sequence) Current() int64 { return s.degrees[s.pos] }

// Advance moves to the next degree.
func (s *Sequence) Advance() { s.pos++ }

// Len reports the total number of degrees in the sequence.
func (s *Sequence) Len() int64 { return int64(len(s.degrees)) }

// TotalDegree sums every degree in the sequence.
func (s *Sequence) TotalDegree() int64 {
	var total int64
	for _, d := range s.degrees {
		total += d
	}
	return total
}

// Fixed returns a constant degree sequence of n nodes each with degree d.
func Fixed(n int, d int64) (*Sequence, error) {
	if n < 0 || d < 0 {
		return nil, fmt.Errorf("%w: degseq.Fixed: n and d must be non-negative", emerr.ErrInvalidInput)
	}
	total := int64(n) * d
	if total%2 != 0 {
		return nil, fmt.Errorf("%w: degseq.Fixed: total degree %d is odd", emerr.ErrInvalidInput, total)
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = d
	}
	return &Sequence{degrees: out}, nil
}

// PowerLaw draws n degrees from a power-law distribution with exponent
// gamma, clamped to [minDeg, maxDeg], via Monte-Carlo rejection sampling.
// If the resulting total degree is odd, the last drawn degree is nudged by
// one (increased if possible, otherwise decreased) to restore parity,
// since a freshly sampled sequence can absorb that correction without
// materially changing its distribution.
func PowerLaw(seed uint64, n int, gamma float64, minDeg, maxDeg int64) (*Sequence, error) {
	if n < 0 || minDeg < 0 || maxDeg < minDeg {
		return nil, fmt.Errorf("%w: degseq.PowerLaw: invalid range [%d,%d]", emerr.ErrInvalidInput, minDeg, maxDeg)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	// Rejection sampling against the unnormalized density x^-gamma over
	// [minDeg, maxDeg], using maxDensity = minDeg^-gamma as the envelope.
	maxDensity := math.Pow(float64(max64(minDeg, 1)), -gamma)

	out := make([]int64, n)
	for i := range out {
		for {
			x := minDeg + int64(rng.Float64()*float64(maxDeg-minDeg+1))
			if x > maxDeg {
				x = maxDeg
			}
			density := math.Pow(float64(max64(x, 1)), -gamma)
			if rng.Float64()*maxDensity <= density {
				out[i] = x
				break
			}
		}
	}

	s := &Sequence{degrees: out}
	if total := s.TotalDegree(); total%2 != 0 && n > 0 {
		if out[n-1] < maxDeg {
			out[n-1]++
		} else {
			out[n-1]--
		}
	}
	return s, nil
}

// FromReader reads one non-negative integer degree per line.
func FromReader(r io.Reader) (*Sequence, error) {
	var out []int64
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		d, err := strconv.ParseInt(line, 10, 64)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: degseq.FromReader: invalid degree %q", emerr.ErrInvalidInput, line)
		}
		out = append(out, d)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
	}
	s := &Sequence{degrees: out}
	if s.TotalDegree()%2 != 0 {
		return nil, fmt.Errorf("%w: degseq.FromReader: total degree %d is odd", emerr.ErrInvalidInput, s.TotalDegree())
	}
	return s, nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
