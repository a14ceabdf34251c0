package journal

import (
	"sync"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// Capacity is the default maximum number of entries retained.
// 300 covers a long scrolling session while bounding memory; when full,
// the oldest entry is dropped first.
const Capacity = 300

// Option configures a Journal.
type Option func(*Journal)

// WithCapacity overrides the retention limit. Values below one fall
// back to the default.
func WithCapacity(n int) Option {
	return func(j *Journal) {
		if n > 0 {
			j.buf = make([]model.LogEntry, n)
		}
	}
}

// Journal is a bounded, append-only record of classification events.
// It is safe for concurrent use: scans append while exporters snapshot.
type Journal struct {
	mu    sync.Mutex
	buf   []model.LogEntry
	next  int
	count int
}

// New creates an empty Journal retaining Capacity entries unless an
// option says otherwise.
func New(opts ...Option) *Journal {
	j := &Journal{buf: make([]model.LogEntry, Capacity)}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Append records one entry, dropping the oldest when full.
func (j *Journal) Append(e model.LogEntry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.buf[j.next] = e
	j.next = (j.next + 1) % len(j.buf)
	if j.count < len(j.buf) {
		j.count++
	}
}

// Entries returns a copy of the retained entries, oldest first.
func (j *Journal) Entries() []model.LogEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	start := 0
	if j.count == len(j.buf) {
		start = j.next
	}
	out := make([]model.LogEntry, 0, j.count)
	for i := 0; i < j.count; i++ {
		out = append(out, j.buf[(start+i)%len(j.buf)])
	}
	return out
}

// Len returns the number of retained entries.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.count
}

// Clear discards all retained entries.
func (j *Journal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.next = 0
	j.count = 0
}
