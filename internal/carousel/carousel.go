// Package carousel implements an auto-advancing slideshow.
//
// A Carousel shows one slide at a time and moves between slides through a
// two-state machine:
//
//	Idle --AdvanceTo--> Transitioning --transition timer--> Idle
//
// While Idle with auto-advance on, a dwell timer calls Next. Manual
// navigation goes through the same AdvanceTo entry point and cancels the
// dwell timer first, so at most one transition is ever in flight. All
// timers come from a schedule.Scheduler and are cancelled by Close.
//
// A Carousel is not safe for concurrent use; drive it from one goroutine
// (the Bubble Tea Update loop).
package carousel

import (
	"errors"
	"fmt"
	"time"

	"github.com/abelbrown/marquee/internal/schedule"
)

// ErrIndexOutOfRange is returned by AdvanceTo for an index outside the slides.
var ErrIndexOutOfRange = errors.New("carousel: index out of range")

// Default timings.
const (
	DefaultDwell      = 8 * time.Second
	DefaultTransition = 600 * time.Millisecond
)

// Phase is the transition state.
type Phase int

const (
	Idle Phase = iota
	Transitioning
)

func (p Phase) String() string {
	if p == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// Direction is the visual direction of a transition.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Slide is one carousel entry.
type Slide struct {
	ID         int
	ImageRef   string
	Title      string
	Summary    string
	LinkTarget string
}

// State is a snapshot of the carousel. Previous is -1 unless Phase is
// Transitioning.
type State struct {
	Slides      []Slide
	Current     int
	Previous    int
	Phase       Phase
	Direction   Direction
	AutoAdvance bool
}

// Options configures a Carousel. Zero durations use the defaults.
type Options struct {
	Dwell       time.Duration
	Transition  time.Duration
	AutoAdvance bool
	// OnChange, if set, is called after every state change.
	OnChange func(State)
}

// Carousel is the slideshow engine.
type Carousel struct {
	sched schedule.Scheduler
	opts  Options

	slides   []Slide
	current  int
	previous int
	phase    Phase
	dir      Direction
	auto     bool

	dwellTok schedule.Token
	transTok schedule.Token
	started  bool
	closed   bool
}

// New creates a carousel positioned on the first slide. No timer is armed
// until Start.
func New(slides []Slide, sched schedule.Scheduler, opts Options) *Carousel {
	if opts.Dwell <= 0 {
		opts.Dwell = DefaultDwell
	}
	if opts.Transition <= 0 {
		opts.Transition = DefaultTransition
	}
	return &Carousel{
		sched:    sched,
		opts:     opts,
		slides:   slides,
		previous: -1,
		auto:     opts.AutoAdvance,
	}
}

// Start mounts the carousel and arms the first dwell timer.
func (c *Carousel) Start() {
	if c.closed {
		return
	}
	c.started = true
	c.armDwell()
}

// AdvanceTo begins a transition to index. It reports whether a transition
// started; it is a no-op when index is already current, while another
// transition is running, or after Close.
func (c *Carousel) AdvanceTo(index int, dir Direction) (bool, error) {
	if c.closed {
		return false, nil
	}
	if index < 0 || index >= len(c.slides) {
		return false, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(c.slides))
	}
	if index == c.current || c.phase == Transitioning {
		return false, nil
	}

	c.cancelDwell()
	c.previous = c.current
	c.current = index
	c.phase = Transitioning
	c.dir = dir
	c.transTok = c.sched.Schedule(c.opts.Transition, c.completeTransition)
	c.notify()
	return true, nil
}

// Next advances to the following slide, wrapping at the end.
func (c *Carousel) Next() bool {
	n := len(c.slides)
	if n == 0 {
		return false
	}
	ok, _ := c.AdvanceTo((c.current+1)%n, Forward)
	return ok
}

// Previous moves to the preceding slide, wrapping at the start.
func (c *Carousel) Previous() bool {
	n := len(c.slides)
	if n == 0 {
		return false
	}
	ok, _ := c.AdvanceTo((c.current-1+n)%n, Backward)
	return ok
}

// SetAutoAdvance pauses or resumes automatic advance. Resuming while idle
// arms a fresh dwell timer.
func (c *Carousel) SetAutoAdvance(on bool) {
	if c.closed || c.auto == on {
		return
	}
	c.auto = on
	if on {
		c.armDwell()
	} else {
		c.cancelDwell()
	}
	c.notify()
}

// SetSlides replaces the slide list and resets to the first slide,
// abandoning any running transition.
func (c *Carousel) SetSlides(slides []Slide) {
	if c.closed {
		return
	}
	c.cancelDwell()
	c.cancelTransition()
	c.slides = slides
	c.current = 0
	c.previous = -1
	c.phase = Idle
	c.dir = Forward
	c.armDwell()
	c.notify()
}

// Close cancels every pending timer. Later calls are no-ops.
func (c *Carousel) Close() {
	if c.closed {
		return
	}
	c.cancelDwell()
	c.cancelTransition()
	c.closed = true
}

// State returns a snapshot.
func (c *Carousel) State() State {
	return State{
		Slides:      c.slides,
		Current:     c.current,
		Previous:    c.previous,
		Phase:       c.phase,
		Direction:   c.dir,
		AutoAdvance: c.auto,
	}
}

// Current returns the slide on display.
func (c *Carousel) Current() (Slide, bool) {
	if len(c.slides) == 0 {
		return Slide{}, false
	}
	return c.slides[c.current], true
}

// Len returns the number of slides.
func (c *Carousel) Len() int { return len(c.slides) }

// Transition returns the configured transition duration.
func (c *Carousel) Transition() time.Duration { return c.opts.Transition }

func (c *Carousel) completeTransition() {
	c.transTok = 0
	if c.closed {
		return
	}
	c.phase = Idle
	c.previous = -1
	c.armDwell()
	c.notify()
}

// armDwell (re)arms the dwell timer. One slide never arms: Next would be a
// no-op.
func (c *Carousel) armDwell() {
	c.cancelDwell()
	if !c.started || c.closed || !c.auto || c.phase != Idle || len(c.slides) < 2 {
		return
	}
	c.dwellTok = c.sched.Schedule(c.opts.Dwell, func() {
		c.dwellTok = 0
		c.Next()
	})
}

func (c *Carousel) cancelDwell() {
	if c.dwellTok != 0 {
		c.sched.Cancel(c.dwellTok)
		c.dwellTok = 0
	}
}

func (c *Carousel) cancelTransition() {
	if c.transTok != 0 {
		c.sched.Cancel(c.transTok)
		c.transTok = 0
	}
}

func (c *Carousel) notify() {
	if c.opts.OnChange != nil {
		c.opts.OnChange(c.State())
	}
}
