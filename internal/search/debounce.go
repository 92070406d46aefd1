// Package search implements search-as-you-type suggestions.
package search

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/schedule"
)

// Suggestions is the result of a suggestion lookup. Seq identifies the
// input it answers; compare with Debouncer.Current before showing it.
type Suggestions struct {
	Seq    uint64
	Query  string
	Movies []catalog.Movie
	Err    error
}

// Debouncer waits for typing to pause before asking for suggestions.
// Every Input cancels the pending timer and invalidates earlier lookups.
// Like the carousel it must be driven from one goroutine.
type Debouncer struct {
	sched    schedule.Scheduler
	delay    time.Duration
	minChars int
	fire     func(query string, seq uint64)

	tok schedule.Token
	seq uint64
}

// NewDebouncer calls fire with the trimmed query once delay passes without
// further input, provided the query has at least minChars characters.
func NewDebouncer(sched schedule.Scheduler, delay time.Duration, minChars int, fire func(query string, seq uint64)) *Debouncer {
	return &Debouncer{sched: sched, delay: delay, minChars: minChars, fire: fire}
}

// Input records the latest text. It reports whether a lookup is pending.
func (d *Debouncer) Input(text string) bool {
	d.Cancel()

	q := strings.TrimSpace(text)
	if utf8.RuneCountInString(q) < d.minChars {
		return false
	}
	seq := d.seq
	d.tok = d.sched.Schedule(d.delay, func() {
		d.tok = 0
		d.fire(q, seq)
	})
	return true
}

// Cancel drops any pending lookup and invalidates in-flight ones.
func (d *Debouncer) Cancel() {
	d.seq++
	if d.tok != 0 {
		d.sched.Cancel(d.tok)
		d.tok = 0
	}
}

// Current reports whether seq belongs to the latest input.
func (d *Debouncer) Current(seq uint64) bool { return seq == d.seq }

// Pending reports whether a lookup is waiting on the timer.
func (d *Debouncer) Pending() bool { return d.tok != 0 }

// Suggest searches src and keeps the top max results.
func Suggest(ctx context.Context, src catalog.Source, query string, seq uint64, max int) Suggestions {
	page, err := src.Search(ctx, query, 1)
	if err != nil {
		return Suggestions{Seq: seq, Query: query, Err: err}
	}
	return Suggestions{Seq: seq, Query: query, Movies: catalog.Top(page.Results, max)}
}
