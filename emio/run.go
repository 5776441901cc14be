package emio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/streamgraph/emswap/emerr"
)

// run is one sorted, already-flushed chunk of records. A run is either held
// entirely in memory (small inputs never spill) or backed by a
// zstd-compressed temporary file that a k-way merge streams back in.
type run[T any] struct {
	codec Codec[T]

	// in-memory path
	mem    []T
	memPos int

	// spilled path
	file    *os.File
	decoder *zstd.Decoder
	reader  *bufio.Reader

	current T
	isEmpty bool
}

// newMemRun wraps an already-sorted in-memory slice as a run.
func newMemRun[T any](sorted []T) *run[T] {
	r := &run[T]{mem: sorted}
	r.isEmpty = len(sorted) == 0
	if !r.isEmpty {
		r.current = sorted[0]
	}
	return r
}

// spillRun writes a sorted slice to a temporary file, zstd-compressed, and
// returns a run that streams it back in ascending order.
func spillRun[T any](dir string, codec Codec[T], sorted []T) (*run[T], error) {
	f, err := os.CreateTemp(dir, "emio-run-*.zst")
	if err != nil {
		return nil, fmt.Errorf("emio: create spill file: %w", err)
	}
	// The writer half closes over f; once filled we reopen f for reading.
	enc, err := zstd.NewWriter(f)
	if err != nil {
		return nil, fmt.Errorf("emio: create zstd writer: %w", err)
	}
	bw := bufio.NewWriter(enc)
	for _, v := range sorted {
		if err := writeFramed(bw, codec, v); err != nil {
			_ = enc.Close()
			_ = f.Close()
			return nil, err
		}
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("emio: flush spill buffer: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("emio: close zstd writer: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("emio: rewind spill file: %w", err)
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("emio: create zstd reader: %w", err)
	}

	r := &run[T]{
		codec:   codec,
		file:    f,
		decoder: dec,
		reader:  bufio.NewReader(dec),
	}
	if err := r.advance(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *run[T]) empty() bool { return r.isEmpty }

func (r *run[T]) peek() T { return r.current }

// advance moves the run to its next record, setting isEmpty once exhausted.
func (r *run[T]) advance() error {
	if r.file == nil {
		r.memPos++
		if r.memPos >= len(r.mem) {
			r.isEmpty = true
			return nil
		}
		r.current = r.mem[r.memPos]
		return nil
	}

	v, err := readFramed(r.reader, r.codec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.isEmpty = true
			return nil
		}
		return fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
	}
	r.current = v
	return nil
}

// close releases the run's backing file, if any.
func (r *run[T]) close() error {
	if r.file == nil {
		return nil
	}
	r.decoder.Close()
	return r.file.Close()
}
