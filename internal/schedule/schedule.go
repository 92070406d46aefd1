// Package schedule provides cancellable one-shot timers.
//
// Every Schedule returns a Token that can be passed to Cancel. Two
// implementations exist: Loop, which delivers expirations to the Bubble Tea
// event loop so callbacks run inside Update, and Manual, a fake clock for
// tests.
package schedule

import (
	"sync"
	"time"
)

// Token identifies a scheduled callback. The zero Token is never issued.
type Token uint64

// Scheduler arms one-shot callbacks.
type Scheduler interface {
	// Schedule runs fn once after d unless cancelled first.
	Schedule(d time.Duration, fn func()) Token
	// Cancel drops a pending callback. Unknown or already-fired tokens are ignored.
	Cancel(t Token)
}

// Fired is the message a Loop sends when a timer expires. The receiver must
// hand it back to Loop.Dispatch on the event loop goroutine.
type Fired struct {
	Token Token
}

// Loop is a Scheduler backed by time.AfterFunc. Timer goroutines never call
// the callback directly; they send a Fired message and the callback runs
// when the event loop dispatches it, so callbacks never race with Update.
type Loop struct {
	mu      sync.Mutex
	send    func(msg interface{})
	next    Token
	pending map[Token]*loopEntry
}

type loopEntry struct {
	timer *time.Timer
	fn    func()
}

// NewLoop creates a Loop. Attach must be called before any timer can fire.
func NewLoop() *Loop {
	return &Loop{pending: make(map[Token]*loopEntry)}
}

// Attach sets the function used to post Fired messages, normally
// (*tea.Program).Send.
func (l *Loop) Attach(send func(msg interface{})) {
	l.mu.Lock()
	l.send = send
	l.mu.Unlock()
}

// Schedule implements Scheduler.
func (l *Loop) Schedule(d time.Duration, fn func()) Token {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	tok := l.next
	e := &loopEntry{fn: fn}
	e.timer = time.AfterFunc(d, func() { l.post(tok) })
	l.pending[tok] = e
	return tok
}

func (l *Loop) post(tok Token) {
	l.mu.Lock()
	_, ok := l.pending[tok]
	send := l.send
	l.mu.Unlock()

	if ok && send != nil {
		send(Fired{Token: tok})
	}
}

// Cancel implements Scheduler.
func (l *Loop) Cancel(tok Token) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.pending[tok]; ok {
		e.timer.Stop()
		delete(l.pending, tok)
	}
}

// Dispatch runs the callback for a Fired message. It returns false when the
// token was cancelled after the message was posted.
func (l *Loop) Dispatch(msg Fired) bool {
	l.mu.Lock()
	e, ok := l.pending[msg.Token]
	if ok {
		delete(l.pending, msg.Token)
	}
	l.mu.Unlock()

	if !ok {
		return false
	}
	e.fn()
	return true
}

// Pending returns the number of armed timers.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Stop cancels every pending timer.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for tok, e := range l.pending {
		e.timer.Stop()
		delete(l.pending, tok)
	}
}
