package nav

import (
	"github.com/ziadkadry99/autodeck/internal/deck"
)

// Listener receives navigation events synchronously.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Controller is the sole owner and mutator of the navigation state.
// It is not safe for concurrent use; every call is expected to come from
// the single event loop that owns the view.
type Controller struct {
	sections []deck.Section
	state    State
	phase    Phase

	subs   []subscription
	nextID int
	closed bool
}

// New creates a controller at section 0 in Continuous mode.
func New(sections []deck.Section) (*Controller, error) {
	if len(sections) == 0 {
		return nil, deck.ErrEmpty
	}
	return &Controller{
		sections: append([]deck.Section(nil), sections...),
		state:    State{Index: 0, Mode: Continuous},
		phase:    Idle,
	}, nil
}

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// Phase returns the Continuous-mode sub-state. It is always Idle in
// Presentation mode.
func (c *Controller) Phase() Phase { return c.phase }

// Len returns the number of sections.
func (c *Controller) Len() int { return len(c.sections) }

// Current returns the current section.
func (c *Controller) Current() deck.Section { return c.sections[c.state.Index] }

// Advance moves to the next section. It reports false at the last section.
func (c *Controller) Advance() bool {
	return c.step(c.state.Index + 1)
}

// Retreat moves to the previous section. It reports false at the first section.
func (c *Controller) Retreat() bool {
	return c.step(c.state.Index - 1)
}

func (c *Controller) step(target int) bool {
	target = min(max(target, 0), len(c.sections)-1)
	if target == c.state.Index {
		return false
	}
	c.commit(State{Index: target, Mode: c.state.Mode}, SourceCommand)
	return true
}

// JumpTo sets the current section to index. An index outside [0, N) is
// rejected with a *RangeError and leaves the state unchanged. A valid jump
// always publishes, even to the current section, so the view re-anchors.
func (c *Controller) JumpTo(index int) error {
	if err := c.check(index); err != nil {
		return err
	}
	c.commit(State{Index: index, Mode: c.state.Mode}, SourceCommand)
	return nil
}

// Observe is the scroll observer's write path. It is inert in Presentation
// mode and while a programmatic scroll is in flight, and it never asks the
// viewport to scroll. It reports whether the index changed.
func (c *Controller) Observe(index int) (bool, error) {
	if c.state.Mode != Continuous || c.phase == ProgrammaticScroll {
		return false, nil
	}
	if err := c.check(index); err != nil {
		return false, err
	}
	if index == c.state.Index {
		return false, nil
	}
	c.commit(State{Index: index, Mode: Continuous}, SourceObserver)
	return true, nil
}

// ScrollSettled ends a programmatic scroll. It reports whether one was in flight.
func (c *Controller) ScrollSettled() bool {
	if c.phase != ProgrammaticScroll {
		return false
	}
	c.phase = Idle
	return true
}

// SetMode switches viewing mode, keeping the current index. It reports
// whether the mode changed.
func (c *Controller) SetMode(m Mode) bool {
	if !m.valid() || m == c.state.Mode {
		return false
	}
	c.commit(State{Index: c.state.Index, Mode: m}, SourceMode)
	return true
}

// ExitPresentation returns to Continuous mode.
func (c *Controller) ExitPresentation() bool {
	return c.SetMode(Continuous)
}

// HandleKey applies a presentation key. Keys are inert outside
// Presentation mode; it reports whether the key was consumed.
func (c *Controller) HandleKey(k Key) bool {
	if c.state.Mode != Presentation {
		return false
	}
	switch k {
	case KeyDown, KeyRight:
		c.Advance()
	case KeyUp, KeyLeft:
		c.Retreat()
	case KeyEscape:
		c.ExitPresentation()
	default:
		return false
	}
	return true
}

// Subscribe registers fn for every future event and returns a function
// that removes it. Subscribing to a closed controller is a no-op.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	if c.closed || fn == nil {
		return func() {}
	}
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscription{id: id, fn: fn})
	return func() { c.unsubscribe(id) }
}

func (c *Controller) unsubscribe(id int) {
	for i, s := range c.subs {
		if s.id == id {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return
		}
	}
}

// Close drops every subscriber. The controller keeps enforcing its
// invariants afterwards but publishes nothing.
func (c *Controller) Close() {
	c.closed = true
	c.subs = nil
}

func (c *Controller) check(index int) error {
	if index < 0 || index >= len(c.sections) {
		return &RangeError{Index: index, Len: len(c.sections)}
	}
	return nil
}

// commit installs next, picks the view intent and publishes.
func (c *Controller) commit(next State, src Source) {
	prev := c.state
	c.state = next

	intent := IntentNone
	switch {
	case src == SourceObserver:
	case next.Mode == Continuous:
		intent = IntentScroll
		c.phase = ProgrammaticScroll
	default:
		intent = IntentSwap
		c.phase = Idle
	}

	c.publish(Event{
		State:   next,
		Prev:    prev,
		Source:  src,
		Intent:  intent,
		Section: c.sections[next.Index],
	})
}

func (c *Controller) publish(ev Event) {
	// Copy so listeners may unsubscribe while being notified.
	subs := append([]subscription(nil), c.subs...)
	for _, s := range subs {
		s.fn(ev)
	}
}
