package swaplog

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/streamgraph/emswap/core"
	"github.com/streamgraph/emswap/emerr"
)

// Entry is one swap's logged outcome.
type Entry struct {
	SwapID core.SwapId
	Result core.SwapResult
}

// Log is an append-only, in-order collection of Entry records.
type Log struct {
	entries []Entry
}

// New returns an empty Log.
func New() *Log {
	return &Log{}
}

// Append records id's result. Callers append in increasing SwapId order.
func (l *Log) Append(id core.SwapId, result core.SwapResult) {
	l.entries = append(l.entries, Entry{SwapID: id, Result: result})
}

// Len reports the number of logged entries.
func (l *Log) Len() int { return len(l.entries) }

// At returns the entry at position i in append order.
func (l *Log) At(i int) Entry { return l.entries[i] }

// Entries returns a defensive copy of every logged entry.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

type wireEntry struct {
	SwapID               int64
	E0First, E0Second    int32
	E1First, E1Second    int32
	Loop                 bool
	Conflict0, Conflict1 bool
	Performed            bool
}

// WriteTo encodes the log as a sequence of fixed-size big-endian records.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, e := range l.entries {
		wv := wireEntry{
			SwapID:     int64(e.SwapID),
			E0First:    int32(e.Result.Edges[0].First),
			E0Second:   int32(e.Result.Edges[0].Second),
			E1First:    int32(e.Result.Edges[1].First),
			E1Second:   int32(e.Result.Edges[1].Second),
			Loop:       e.Result.Loop,
			Conflict0:  e.Result.ConflictDetected[0],
			Conflict1:  e.Result.ConflictDetected[1],
			Performed:  e.Result.Performed,
		}
		if err := binary.Write(w, binary.BigEndian, wv); err != nil {
			return n, fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
		}
		n += wireEntrySize
	}
	return n, nil
}

const wireEntrySize = 8 + 4*4 + 4

// ReadFrom decodes a log previously produced by WriteTo, in swap-submission
// order.
func ReadFrom(r io.Reader) (*Log, error) {
	l := New()
	for {
		var wv wireEntry
		if err := binary.Read(r, binary.BigEndian, &wv); err != nil {
			if err == io.EOF {
				return l, nil
			}
			return nil, fmt.Errorf("%w: %v", emerr.ErrIOFailure, err)
		}
		l.Append(core.SwapId(wv.SwapID), core.SwapResult{
			Edges:            [2]core.Edge{core.NewEdge(core.Node(wv.E0First), core.Node(wv.E0Second)), core.NewEdge(core.Node(wv.E1First), core.Node(wv.E1Second))},
			Loop:             wv.Loop,
			ConflictDetected: [2]bool{wv.Conflict0, wv.Conflict1},
			Performed:        wv.Performed,
		})
	}
}
