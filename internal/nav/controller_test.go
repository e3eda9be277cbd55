package nav

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/ziadkadry99/autodeck/internal/deck"
)

func sections(n int) []deck.Section {
	out := make([]deck.Section, n)
	for i := range out {
		out[i] = deck.Section{ID: fmt.Sprintf("s%d", i), Ordinal: i}
	}
	return out
}

func newController(t *testing.T, n int) *Controller {
	t.Helper()
	c, err := New(sections(n))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// recorder collects published events.
type recorder struct {
	events []Event
}

func (r *recorder) listen(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) last(t *testing.T) Event {
	t.Helper()
	if len(r.events) == 0 {
		t.Fatal("no events published")
	}
	return r.events[len(r.events)-1]
}

func TestNewInitialState(t *testing.T) {
	c := newController(t, 9)
	if got := c.State(); got != (State{Index: 0, Mode: Continuous}) {
		t.Errorf("initial state = %+v", got)
	}
	if c.Phase() != Idle {
		t.Errorf("initial phase = %v", c.Phase())
	}
	if _, err := New(nil); !errors.Is(err, deck.ErrEmpty) {
		t.Errorf("New(nil) = %v, want ErrEmpty", err)
	}
}

func TestClampingInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 12; n++ {
		c := newController(t, n)
		for step := 0; step < 200; step++ {
			if rng.Intn(2) == 0 {
				c.Advance()
			} else {
				c.Retreat()
			}
			if i := c.State().Index; i < 0 || i >= n {
				t.Fatalf("n=%d step=%d: index %d escaped [0,%d)", n, step, i, n)
			}
		}
	}
}

func TestBoundariesAreIdempotent(t *testing.T) {
	c := newController(t, 3)
	rec := &recorder{}
	c.Subscribe(rec.listen)

	if c.Retreat() {
		t.Error("Retreat at 0 should report no change")
	}
	if len(rec.events) != 0 {
		t.Errorf("Retreat at 0 published %d events", len(rec.events))
	}

	if err := c.JumpTo(2); err != nil {
		t.Fatal(err)
	}
	before := c.State()
	published := len(rec.events)
	if c.Advance() {
		t.Error("Advance at N-1 should report no change")
	}
	if c.State() != before || len(rec.events) != published {
		t.Error("Advance at N-1 changed state or published")
	}
}

func TestSingleSectionDeck(t *testing.T) {
	c := newController(t, 1)
	c.Advance()
	c.Retreat()
	if c.State().Index != 0 {
		t.Errorf("index = %d, want 0", c.State().Index)
	}
	if err := c.JumpTo(1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("JumpTo(1) = %v", err)
	}
}

func TestJumpTo(t *testing.T) {
	c := newController(t, 9)
	for _, i := range []int{5, 0, 8, 3, 3} {
		if err := c.JumpTo(i); err != nil {
			t.Fatalf("JumpTo(%d): %v", i, err)
		}
		if c.State().Index != i {
			t.Errorf("JumpTo(%d) left index %d", i, c.State().Index)
		}
	}
}

func TestJumpToOutOfRange(t *testing.T) {
	c := newController(t, 9)
	if err := c.JumpTo(4); err != nil {
		t.Fatal(err)
	}
	c.ScrollSettled()
	rec := &recorder{}
	c.Subscribe(rec.listen)
	before, phase := c.State(), c.Phase()

	for _, i := range []int{9, -1, 100} {
		err := c.JumpTo(i)
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("JumpTo(%d) = %v, want ErrOutOfRange", i, err)
		}
		var re *RangeError
		if !errors.As(err, &re) || re.Index != i || re.Len != 9 {
			t.Errorf("JumpTo(%d) error detail = %+v", i, re)
		}
	}
	if c.State() != before || c.Phase() != phase {
		t.Errorf("state changed: %+v/%v -> %+v/%v", before, phase, c.State(), c.Phase())
	}
	if len(rec.events) != 0 {
		t.Errorf("rejected jumps published %d events", len(rec.events))
	}
}

func TestModeRoundTripRestoresIndex(t *testing.T) {
	c := newController(t, 9)
	if err := c.JumpTo(6); err != nil {
		t.Fatal(err)
	}
	c.SetMode(Presentation)
	c.SetMode(Continuous)
	if got := c.State(); got != (State{Index: 6, Mode: Continuous}) {
		t.Errorf("state after round trip = %+v", got)
	}
}

func TestSetModeSameModeIsNoop(t *testing.T) {
	c := newController(t, 3)
	rec := &recorder{}
	c.Subscribe(rec.listen)
	if c.SetMode(Continuous) {
		t.Error("SetMode(Continuous) in Continuous reported a change")
	}
	if c.SetMode(Mode(42)) {
		t.Error("unknown mode should be ignored")
	}
	if len(rec.events) != 0 {
		t.Errorf("published %d events", len(rec.events))
	}
}

func TestIntents(t *testing.T) {
	c := newController(t, 5)
	rec := &recorder{}
	c.Subscribe(rec.listen)

	c.JumpTo(2)
	ev := rec.last(t)
	if ev.Intent != IntentScroll || ev.Source != SourceCommand || ev.Section.ID != "s2" {
		t.Errorf("continuous jump event = %+v", ev)
	}
	if ev.Prev.Index != 0 || ev.State.Index != 2 {
		t.Errorf("prev/next = %d/%d", ev.Prev.Index, ev.State.Index)
	}
	if c.Phase() != ProgrammaticScroll {
		t.Errorf("phase after continuous jump = %v", c.Phase())
	}

	c.SetMode(Presentation)
	if ev := rec.last(t); ev.Intent != IntentSwap || ev.Source != SourceMode {
		t.Errorf("enter presentation event = %+v", ev)
	}
	if c.Phase() != Idle {
		t.Error("entering presentation should cancel the programmatic scroll")
	}

	c.Advance()
	if ev := rec.last(t); ev.Intent != IntentSwap || ev.State.Index != 3 {
		t.Errorf("presentation advance event = %+v", ev)
	}

	c.ExitPresentation()
	ev = rec.last(t)
	if ev.Intent != IntentScroll || ev.State != (State{Index: 3, Mode: Continuous}) {
		t.Errorf("exit presentation event = %+v", ev)
	}
}

func TestExplicitJumpToCurrentRepublishes(t *testing.T) {
	c := newController(t, 3)
	rec := &recorder{}
	c.Subscribe(rec.listen)
	c.JumpTo(0)
	if len(rec.events) != 1 || rec.events[0].Intent != IntentScroll {
		t.Errorf("events = %+v", rec.events)
	}
}

func TestObserveSuppression(t *testing.T) {
	c := newController(t, 9)
	rec := &recorder{}
	c.Subscribe(rec.listen)

	changed, err := c.Observe(3)
	if err != nil || !changed {
		t.Fatalf("Observe(3) = %v, %v", changed, err)
	}
	if ev := rec.last(t); ev.Intent != IntentNone || ev.Source != SourceObserver {
		t.Errorf("observer event = %+v", ev)
	}
	if c.Phase() != Idle {
		t.Error("observer writes must not start a programmatic scroll")
	}

	c.JumpTo(7)
	if changed, _ := c.Observe(5); changed {
		t.Error("Observe during programmatic scroll should be inert")
	}
	if c.State().Index != 7 {
		t.Errorf("index = %d, want 7", c.State().Index)
	}

	if !c.ScrollSettled() {
		t.Error("ScrollSettled should report the in-flight scroll")
	}
	if c.ScrollSettled() {
		t.Error("second ScrollSettled should report nothing")
	}
	if changed, _ := c.Observe(5); !changed {
		t.Error("Observe after settle should apply")
	}
	if changed, _ := c.Observe(5); changed {
		t.Error("Observe of the current index should not publish")
	}

	if _, err := c.Observe(9); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Observe(9) err = %v", err)
	}
}

func TestObserveInertInPresentation(t *testing.T) {
	c := newController(t, 9)
	c.JumpTo(2)
	c.SetMode(Presentation)
	for _, i := range []int{0, 4, 8, 9, -3} {
		changed, err := c.Observe(i)
		if changed || err != nil {
			t.Errorf("Observe(%d) in presentation = %v, %v", i, changed, err)
		}
	}
	if got := c.State(); got != (State{Index: 2, Mode: Presentation}) {
		t.Errorf("state = %+v", got)
	}
}

func TestHandleKeyInertInContinuous(t *testing.T) {
	c := newController(t, 9)
	for _, k := range []Key{KeyDown, KeyRight, KeyUp, KeyLeft, KeyEscape} {
		if c.HandleKey(k) {
			t.Errorf("HandleKey(%v) consumed in continuous mode", k)
		}
	}
	if c.State().Index != 0 {
		t.Errorf("index = %d", c.State().Index)
	}
}

func TestPresentationScenario(t *testing.T) {
	c := newController(t, 9)

	c.HandleKey(ParseKey("down"))
	if c.State().Index != 0 {
		t.Fatal("keys must be inert before presentation")
	}

	if err := c.JumpTo(5); err != nil {
		t.Fatal(err)
	}
	c.SetMode(Presentation)
	if got := c.State(); got != (State{Index: 5, Mode: Presentation}) {
		t.Fatalf("after toggle = %+v", got)
	}

	c.HandleKey(ParseKey("ArrowDown"))
	c.HandleKey(ParseKey("down"))
	if c.State().Index != 7 {
		t.Fatalf("after two downs = %d, want 7", c.State().Index)
	}

	for i := 0; i < 4; i++ {
		c.HandleKey(KeyDown)
	}
	if c.State().Index != 8 {
		t.Fatalf("after clamping = %d, want 8", c.State().Index)
	}

	c.HandleKey(ParseKey("Escape"))
	if got := c.State(); got != (State{Index: 8, Mode: Continuous}) {
		t.Fatalf("after escape = %+v", got)
	}
}

func TestRetreatKeys(t *testing.T) {
	c := newController(t, 4)
	c.JumpTo(3)
	c.SetMode(Presentation)
	c.HandleKey(KeyUp)
	c.HandleKey(KeyLeft)
	if c.State().Index != 1 {
		t.Errorf("index = %d, want 1", c.State().Index)
	}
	if c.HandleKey(KeyNone) {
		t.Error("KeyNone should not be consumed")
	}
}

func TestSubscribeOrderAndUnsubscribe(t *testing.T) {
	c := newController(t, 3)
	var order []string
	unA := c.Subscribe(func(Event) { order = append(order, "a") })
	c.Subscribe(func(Event) { order = append(order, "b") })

	c.Advance()
	unA()
	unA()
	c.Advance()

	if got := fmt.Sprint(order); got != "[a b b]" {
		t.Errorf("order = %s", got)
	}
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	c := newController(t, 3)
	calls := 0
	var un func()
	un = c.Subscribe(func(Event) {
		calls++
		un()
	})
	c.Advance()
	c.Advance()
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestClose(t *testing.T) {
	c := newController(t, 3)
	rec := &recorder{}
	c.Subscribe(rec.listen)
	c.Close()
	c.Subscribe(rec.listen)

	c.Advance()
	if len(rec.events) != 0 {
		t.Errorf("closed controller published %d events", len(rec.events))
	}
	if c.State().Index != 1 {
		t.Errorf("closed controller should still move, index = %d", c.State().Index)
	}
	if err := c.JumpTo(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("closed controller JumpTo(3) = %v", err)
	}
}

func TestParseKey(t *testing.T) {
	tests := map[string]Key{
		"down": KeyDown, "ArrowRight": KeyRight, "up": KeyUp, "left": KeyLeft,
		"esc": KeyEscape, "Escape": KeyEscape, "q": KeyNone, "": KeyNone,
	}
	for name, want := range tests {
		if got := ParseKey(name); got != want {
			t.Errorf("ParseKey(%q) = %v, want %v", name, got, want)
		}
	}
}
