// Package sink implements the output side of the pipeline: a Sink
// contract that record fields are printed through, and a bounded,
// drop-oldest queue that decouples the ingest/decode goroutine from
// however slow a sink's Write turns out to be.
package sink

import (
	"sync"

	"github.com/sdrcore/rfsense/record"
)

// Sink is the output contract a concrete writer (KV, JSON, ...)
// implements. PrintRecord is the only method the pipeline calls
// directly; the Print* methods exist so a Sink's own formatting logic
// can be reused recursively for nested/array field values.
type Sink interface {
	PrintRecord(r *record.Record) error
	PrintInt(key string, v int64) string
	PrintDouble(key string, v float64, formatHint string) string
	PrintString(key string, v string) string
	PrintArray(key string, vs []record.Value) string
	Close() error
}

// Queue is a bounded, single-producer/single-consumer FIFO of
// records. When full, Push drops the oldest queued record rather than
// blocking the ingest goroutine, incrementing Dropped.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	buf     []*record.Record
	cap     int
	closed  bool
	Dropped int
}

// NewQueue creates a Queue holding at most capacity records.
func NewQueue(capacity int) *Queue {
	q := &Queue{buf: make([]*record.Record, 0, capacity), cap: capacity}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues r, dropping the oldest entry first if the queue is at
// capacity.
func (q *Queue) Push(r *record.Record) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	if len(q.buf) >= q.cap {
		q.buf = q.buf[1:]
		q.Dropped++
	}
	q.buf = append(q.buf, r)
	q.cond.Signal()
}

// Pop blocks until a record is available or the queue is closed,
// returning (nil, false) in the latter case once drained.
func (q *Queue) Pop() (*record.Record, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.buf) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.buf) == 0 {
		return nil, false
	}
	r := q.buf[0]
	q.buf = q.buf[1:]
	return r, true
}

// Close marks the queue closed; blocked Pop calls wake and drain
// whatever remains before returning false.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
