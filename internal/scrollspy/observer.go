// Package scrollspy infers the current section from viewport position in
// Continuous mode and feeds it to the navigation controller.
//
// Samples are cheap to push and are coalesced; the section scan runs at
// most once per animation frame. The observer never moves the viewport.
package scrollspy

import (
	"log"
	"time"

	"github.com/ziadkadry99/autodeck/internal/nav"
)

// DefaultSettleDelay is how long the scroll signal must stay quiet before a
// programmatic scroll is considered settled.
const DefaultSettleDelay = 150 * time.Millisecond

// Writer is the controller surface the observer needs.
type Writer interface {
	State() nav.State
	Phase() nav.Phase
	Observe(index int) (bool, error)
	ScrollSettled() bool
}

// Sample is one scroll-position reading: the viewport-relative top offset
// of every section, indexed by ordinal.
type Sample struct {
	Tops []int
	At   time.Time
}

// Options tune the observer.
type Options struct {
	// Threshold is the activation line: a section whose top is at or above
	// this offset from the viewport top has been reached.
	Threshold int
	// SettleDelay is the idle time that ends a programmatic scroll.
	SettleDelay time.Duration
}

// Observer batches scroll samples and writes candidates through the
// controller's observer path.
type Observer struct {
	w    Writer
	opts Options

	pending  []int
	dirty    bool
	lastSeen time.Time

	inFlight bool
	arrived  bool
	stopped  bool
}

// New returns an observer writing to w.
func New(w Writer, opts Options) *Observer {
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	return &Observer{w: w, opts: opts}
}

// Push records the latest sample. Only the most recent sample before a
// frame is evaluated. Samples are dropped outside Continuous mode.
func (o *Observer) Push(s Sample) {
	if o.stopped || o.w.State().Mode != nav.Continuous {
		return
	}
	o.pending = append(o.pending[:0], s.Tops...)
	o.dirty = true
	if s.At.After(o.lastSeen) {
		o.lastSeen = s.At
	}
}

// Arrived tells the observer the viewport reached a programmatic scroll
// target, so the scroll settles at the next frame without waiting.
func (o *Observer) Arrived() {
	o.arrived = true
}

// Pending reports whether the observer still needs frames: a sample is
// waiting or a programmatic scroll has not settled.
func (o *Observer) Pending() bool {
	if o.stopped {
		return false
	}
	return o.dirty || o.w.Phase() == nav.ProgrammaticScroll
}

// Frame runs one animation-frame step and reports whether the controller
// index changed.
func (o *Observer) Frame(now time.Time) bool {
	if o.stopped || o.w.State().Mode != nav.Continuous {
		o.reset()
		return false
	}

	if o.w.Phase() == nav.ProgrammaticScroll {
		if !o.inFlight {
			// Start the idle clock when the scroll is first seen.
			o.inFlight = true
			if now.After(o.lastSeen) {
				o.lastSeen = now
			}
		}
		if o.arrived || now.Sub(o.lastSeen) >= o.opts.SettleDelay {
			o.w.ScrollSettled()
			o.reset()
		}
		// Samples taken during the programmatic scroll are its own echo.
		o.dirty = false
		return false
	}
	o.inFlight = false
	o.arrived = false

	if !o.dirty {
		return false
	}
	o.dirty = false

	changed, err := o.w.Observe(Candidate(o.pending, o.opts.Threshold))
	if err != nil {
		log.Printf("scrollspy: %v", err)
		return false
	}
	return changed
}

// Stop disables the observer for good.
func (o *Observer) Stop() {
	o.stopped = true
	o.reset()
	o.pending = nil
}

func (o *Observer) reset() {
	o.dirty = false
	o.inFlight = false
	o.arrived = false
}

// Candidate returns the highest ordinal whose top is at or above threshold.
// When no section qualifies (scrolled above the first section) it returns 0.
func Candidate(tops []int, threshold int) int {
	for i := len(tops) - 1; i >= 0; i-- {
		if tops[i] <= threshold {
			return i
		}
	}
	return 0
}

// Relative converts document positions of section starts into
// viewport-relative tops for a viewport scrolled to offset.
func Relative(starts []int, offset int) []int {
	tops := make([]int, len(starts))
	for i, s := range starts {
		tops[i] = s - offset
	}
	return tops
}
