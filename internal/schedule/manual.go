package schedule

import (
	"sort"
	"sync"
	"time"
)

// Manual is a fake clock. Time only moves when Advance is called, and due
// callbacks run synchronously inside Advance in due order (ties in
// scheduling order).
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	next  Token
	tasks map[Token]manualTask
}

type manualTask struct {
	due time.Duration
	fn  func()
}

// NewManual creates a fake clock at t=0.
func NewManual() *Manual {
	return &Manual{tasks: make(map[Token]manualTask)}
}

// Schedule implements Scheduler.
func (m *Manual) Schedule(d time.Duration, fn func()) Token {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.next++
	m.tasks[m.next] = manualTask{due: m.now + d, fn: fn}
	return m.next
}

// Cancel implements Scheduler.
func (m *Manual) Cancel(tok Token) {
	m.mu.Lock()
	delete(m.tasks, tok)
	m.mu.Unlock()
}

// Now returns the time elapsed since the clock was created.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of scheduled callbacks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// NextDue reports when the earliest pending callback fires.
func (m *Manual) NextDue() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tok, ok := m.earliestLocked()
	if !ok {
		return 0, false
	}
	return m.tasks[tok].due, true
}

// Advance moves the clock forward by d, running every callback that
// becomes due, including ones scheduled by callbacks along the way.
func (m *Manual) Advance(d time.Duration) {
	m.AdvanceTo(m.Now() + d)
}

// AdvanceTo moves the clock to the absolute time t.
func (m *Manual) AdvanceTo(t time.Duration) {
	for {
		m.mu.Lock()
		tok, ok := m.earliestLocked()
		if !ok || m.tasks[tok].due > t {
			if t > m.now {
				m.now = t
			}
			m.mu.Unlock()
			return
		}
		task := m.tasks[tok]
		delete(m.tasks, tok)
		if task.due > m.now {
			m.now = task.due
		}
		m.mu.Unlock()

		task.fn()
	}
}

func (m *Manual) earliestLocked() (Token, bool) {
	if len(m.tasks) == 0 {
		return 0, false
	}
	toks := make([]Token, 0, len(m.tasks))
	for tok := range m.tasks {
		toks = append(toks, tok)
	}
	sort.Slice(toks, func(i, j int) bool {
		a, b := m.tasks[toks[i]], m.tasks[toks[j]]
		if a.due != b.due {
			return a.due < b.due
		}
		return toks[i] < toks[j]
	})
	return toks[0], true
}
