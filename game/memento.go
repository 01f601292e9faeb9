package game

import (
	"fmt"
	"sync"

	"github.com/pthm-cable/menagerie/telemetry"
)

// History keeps the most recent world snapshots as encoded blobs, so a stored
// snapshot never shares memory with the live world or with a restored one.
type History struct {
	mu      sync.Mutex
	limit   int
	entries [][]byte
	seq     uint64
}

// NewHistory creates a history holding at most limit snapshots.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{limit: limit}
}

// Capture snapshots the world and appends it, evicting the oldest entry
// on overflow. On error the history is unchanged.
func (h *History) Capture(w *World) (*telemetry.Snapshot, error) {
	s := w.Capture()

	h.mu.Lock()
	defer h.mu.Unlock()

	s.Seq = h.seq + 1
	data, err := telemetry.EncodeSnapshot(s)
	if err != nil {
		return nil, fmt.Errorf("capturing snapshot: %w", err)
	}
	h.seq = s.Seq

	h.entries = append(h.entries, data)
	if len(h.entries) > h.limit {
		h.entries[0] = nil
		h.entries = h.entries[1:]
	}
	return s, nil
}

// Restore consumes the newest snapshot and rebuilds the world from it.
// With no snapshot it returns ErrEmptyHistory and touches nothing.
func (h *History) Restore(w *World) (*telemetry.Snapshot, error) {
	s, err := h.pop()
	if err != nil {
		return nil, err
	}
	w.Replace(s)
	return s, nil
}

// pop decodes the newest entry and removes it only once decoding succeeded.
func (h *History) pop() (*telemetry.Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.entries)
	if n == 0 {
		return nil, ErrEmptyHistory
	}
	s, err := telemetry.DecodeSnapshot(h.entries[n-1])
	if err != nil {
		return nil, fmt.Errorf("restoring snapshot: %w", err)
	}
	h.entries[n-1] = nil
	h.entries = h.entries[:n-1]
	return s, nil
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Seqs returns the sequence numbers of stored snapshots, oldest first.
func (h *History) Seqs() []uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	seqs := make([]uint64, 0, len(h.entries))
	for _, data := range h.entries {
		if s, err := telemetry.DecodeSnapshot(data); err == nil {
			seqs = append(seqs, s.Seq)
		}
	}
	return seqs
}
