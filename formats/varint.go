package formats

import (
	"fmt"
	"io"

	"github.com/streamgraph/emswap/emerr"
)

// EncodeVarint returns v encoded 7 payload bits per byte, most-significant
// bit set on every byte but the last.
func EncodeVarint(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		out = append(out, b)
		return out
	}
}

// DecodeVarint reads one varint from r. A value needing more than 10 bytes,
// or whose 10th byte carries more than its single legal payload bit, is
// emerr.ErrOverflow: the first 9 bytes carry 63 payload bits, leaving only
// bit 63 of a uint64 for the 10th byte, so that byte may only ever set bit 0
// and must not set the continuation bit.
func DecodeVarint(r io.ByteReader) (uint64, error) {
	var result uint64
	for i := 0; i < 10; i++ {
		b, err := r.ReadByte()
		if err == io.EOF {
			return 0, err
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
		}
		payload := uint64(b & 0x7f)
		if i == 9 && (payload > 1 || b&0x80 != 0) {
			return 0, fmt.Errorf("%w: varint exceeds 64 bits", emerr.ErrOverflow)
		}
		result |= payload << uint(7*i)
		if b&0x80 == 0 {
			return result, nil
		}
	}
	return 0, fmt.Errorf("%w: varint exceeds 10 bytes", emerr.ErrOverflow)
}
