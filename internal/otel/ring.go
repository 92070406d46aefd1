package otel

import "sync"

// DefaultRingSize is the default ring capacity.
const DefaultRingSize = 512

// Ring keeps the most recent events for the debug overlay, with per-kind
// counts maintained as events enter and leave. Goroutine-safe.
type Ring struct {
	mu     sync.Mutex
	buf    []Event
	head   int // next write position
	count  int
	counts map[EventKind]int
}

// NewRing creates a ring with the given capacity (DefaultRingSize if <= 0).
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{buf: make([]Event, size), counts: make(map[EventKind]int)}
}

// Push adds an event, evicting the oldest when full. The Extra map is
// copied so later mutation by the caller is not visible here.
func (r *Ring) Push(e Event) {
	if e.Extra != nil {
		cp := make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			cp[k] = v
		}
		e.Extra = cp
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == len(r.buf) {
		old := r.buf[r.head].Kind
		if r.counts[old]--; r.counts[old] == 0 {
			delete(r.counts, old)
		}
	} else {
		r.count++
	}
	r.buf[r.head] = e
	r.head = (r.head + 1) % len(r.buf)
	r.counts[e.Kind]++
}

// Last returns up to n most recent events, oldest first.
func (r *Ring) Last(n int) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || r.count == 0 {
		return nil
	}
	if n > r.count {
		n = r.count
	}
	out := make([]Event, n)
	start := (r.head - n + len(r.buf)) % len(r.buf)
	for i := range out {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}
	return out
}

// Stats returns a copy of the per-kind counts over the buffered events.
func (r *Ring) Stats() map[EventKind]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[EventKind]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

// Len returns the number of buffered events.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the capacity.
func (r *Ring) Cap() int { return len(r.buf) }
