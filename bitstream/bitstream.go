package bitstream

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

type mode int

const (
	writing mode = iota
	reading
)

const wordBits = 64

// Stream is a packed boolean sequence: append-only in write mode, then a
// single-pass MSB-first iterator in read mode.
type Stream struct {
	mode mode

	// RAM budget, in words, before the backing queue spills to disk. Zero
	// means unbounded (never spills) — the common case for the small
	// per-batch successor/valid-bit streams this package mostly carries.
	ramBudget int

	queued    []uint64 // in-memory FIFO of complete words, oldest first
	spillFile *os.File
	spillEnc  *zstd.Encoder
	spillDec  *zstd.Decoder
	spillR    *bufio.Reader
	spilled   bool

	word      uint64 // write-mode accumulator
	fillBits  uint   // number of bits already placed in word, MSB-first
	itemCount uint64 // total bits pushed

	// read mode
	current      uint64
	remaining    uint // bits remaining in the current word, counted down
	remainingAll uint64
}

// Option configures a Stream before use.
type Option func(*Stream)

// WithRAMBudget bounds the number of complete words kept in memory before
// the Stream spills older words to a temporary zstd-compressed file.
func WithRAMBudget(words int) Option {
	return func(s *Stream) { s.ramBudget = words }
}

// New constructs an empty Stream in write mode.
func New(opts ...Option) *Stream {
	s := &Stream{mode: writing}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push appends one bit. Valid only in write mode.
func (s *Stream) Push(v bool) {
	if s.mode != writing {
		panic("bitstream: Push called after Consume")
	}
	s.word <<= 1
	if v {
		s.word |= 1
	}
	s.fillBits++
	s.itemCount++

	if s.fillBits == wordBits {
		s.queueWord(s.word)
		s.word = 0
		s.fillBits = 0
	}
}

func (s *Stream) queueWord(w uint64) {
	s.queued = append(s.queued, w)
	if s.ramBudget > 0 && len(s.queued) > s.ramBudget {
		s.spillOldest()
	}
}

// spillOldest writes the single oldest buffered word to the spill file,
// keeping the Stream's resident set bounded by ramBudget.
func (s *Stream) spillOldest() {
	if s.spillFile == nil {
		f, err := os.CreateTemp("", "bitstream-*.zst")
		if err != nil {
			panic(fmt.Sprintf("bitstream: create spill file: %v", err))
		}
		enc, err := zstd.NewWriter(f)
		if err != nil {
			panic(fmt.Sprintf("bitstream: create zstd writer: %v", err))
		}
		s.spillFile = f
		s.spillEnc = enc
		s.spilled = true
	}

	oldest := s.queued[0]
	s.queued = s.queued[1:]

	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(oldest >> (56 - 8*i))
	}
	if _, err := s.spillEnc.Write(b[:]); err != nil {
		panic(fmt.Sprintf("bitstream: write spill word: %v", err))
	}
}

// Consume flushes the partial word — left-aligned, zero-padded in the low
// bits — and switches the Stream to read mode.
func (s *Stream) Consume() {
	if s.mode != writing {
		panic("bitstream: Consume called twice")
	}
	if s.fillBits > 0 {
		s.queueWord(s.word << (wordBits - s.fillBits))
	}
	s.mode = reading
	s.remainingAll = s.itemCount

	if s.spilled {
		if err := s.spillEnc.Close(); err != nil {
			panic(fmt.Sprintf("bitstream: close spill writer: %v", err))
		}
		if _, err := s.spillFile.Seek(0, io.SeekStart); err != nil {
			panic(fmt.Sprintf("bitstream: rewind spill file: %v", err))
		}
		dec, err := zstd.NewReader(s.spillFile)
		if err != nil {
			panic(fmt.Sprintf("bitstream: create zstd reader: %v", err))
		}
		s.spillDec = dec
		s.spillR = bufio.NewReader(dec)
	}

	if s.remainingAll > 0 {
		s.fetchWord()
	}
}

// fetchWord loads the next word (spilled first, then in-memory) into
// current, setting remaining to the number of unread bits it holds.
func (s *Stream) fetchWord() {
	if s.spillR != nil {
		var b [8]byte
		if _, err := io.ReadFull(s.spillR, b[:]); err == nil {
			var w uint64
			for i := 0; i < 8; i++ {
				w = (w << 8) | uint64(b[i])
			}
			s.current = w
			s.remaining = wordBits
			return
		}
		// spill exhausted; fall through to in-memory queue
		s.spillR = nil
		_ = s.spillDec
	}

	s.current = s.queued[0]
	s.queued = s.queued[1:]
	s.remaining = wordBits
}

// Empty reports whether any unread bits remain. Valid only in read mode.
func (s *Stream) Empty() bool {
	if s.mode != reading {
		panic("bitstream: Empty called before Consume")
	}
	return s.remainingAll == 0
}

// Current returns the next unread bit without consuming it.
func (s *Stream) Current() bool {
	if s.mode != reading {
		panic("bitstream: Current called before Consume")
	}
	if s.Empty() {
		panic("bitstream: Current called on exhausted Stream")
	}
	return s.current&(uint64(1)<<(s.remaining-1)) != 0
}

// Advance consumes the current bit and moves to the next one.
func (s *Stream) Advance() {
	if s.mode != reading {
		panic("bitstream: Advance called before Consume")
	}
	if s.Empty() {
		panic("bitstream: Advance called on exhausted Stream")
	}
	s.remaining--
	s.remainingAll--
	if s.remaining == 0 && s.remainingAll > 0 {
		s.fetchWord()
	}
}

// Size returns the total number of bits pushed.
func (s *Stream) Size() uint64 {
	return s.itemCount
}

// Close releases the Stream's spill file, if one was created.
func (s *Stream) Close() error {
	if s.spillDec != nil {
		s.spillDec.Close()
	}
	if s.spillFile != nil {
		name := s.spillFile.Name()
		if err := s.spillFile.Close(); err != nil {
			return err
		}
		return os.Remove(name)
	}
	return nil
}
