package present

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/autodeck/internal/deck"
	"github.com/ziadkadry99/autodeck/internal/nav"
	"github.com/ziadkadry99/autodeck/internal/scrollspy"
)

type harness struct {
	t     *testing.T
	m     *Model
	clock time.Time
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	d, err := deck.Parse(deck.Sample())
	if err != nil {
		t.Fatalf("sample deck: %v", err)
	}
	m, err := New(d, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h := &harness{t: t, m: m, clock: time.Unix(1000, 0)}
	m.now = func() time.Time { return h.clock }
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return h
}

func (h *harness) key(k tea.KeyMsg) tea.Cmd {
	_, cmd := h.m.Update(k)
	return cmd
}

func (h *harness) runes(s string) {
	for _, r := range s {
		h.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// frames advances the clock one frame at a time until nothing is pending.
func (h *harness) frames() {
	h.t.Helper()
	for i := 0; i < 500; i++ {
		if !h.m.needsFrame() {
			return
		}
		h.clock = h.clock.Add(16 * time.Millisecond)
		h.m.ticking = false
		h.m.Update(frameMsg(h.clock))
	}
	h.t.Fatal("frames never settled")
}

func (h *harness) state() nav.State { return h.m.Controller().State() }

func TestPresenterScenario(t *testing.T) {
	h := newHarness(t, Options{Threshold: 1})

	h.key(tea.KeyMsg{Type: tea.KeyRight})
	h.frames()
	if h.state().Index != 0 {
		t.Fatalf("arrow keys must not navigate in continuous mode, index = %d", h.state().Index)
	}

	h.runes("6")
	if got := h.state(); got != (nav.State{Index: 5, Mode: nav.Continuous}) {
		t.Fatalf("after nav click = %+v", got)
	}
	h.frames()

	h.runes("p")
	if got := h.state(); got != (nav.State{Index: 5, Mode: nav.Presentation}) {
		t.Fatalf("after toggle = %+v", got)
	}

	h.key(tea.KeyMsg{Type: tea.KeyDown})
	h.key(tea.KeyMsg{Type: tea.KeyDown})
	if h.state().Index != 7 {
		t.Fatalf("after two downs = %d", h.state().Index)
	}
	for i := 0; i < 4; i++ {
		h.key(tea.KeyMsg{Type: tea.KeyDown})
	}
	if h.state().Index != 8 {
		t.Fatalf("after clamping = %d", h.state().Index)
	}

	h.key(tea.KeyMsg{Type: tea.KeyEscape})
	if got := h.state(); got != (nav.State{Index: 8, Mode: nav.Continuous}) {
		t.Fatalf("after escape = %+v", got)
	}
	h.frames()
	if h.m.offset != h.m.clampOffset(h.m.layout.starts[8]) {
		t.Errorf("exit should scroll to the last section, offset = %d", h.m.offset)
	}
	if h.state().Index != 8 {
		t.Errorf("settling changed the index to %d", h.state().Index)
	}
}

func TestProgrammaticScrollIsNotEchoed(t *testing.T) {
	h := newHarness(t, Options{Threshold: 1})

	h.runes("5")
	if h.m.Controller().Phase() != nav.ProgrammaticScroll {
		t.Fatal("jump should start a programmatic scroll")
	}
	h.frames()

	want := h.m.clampOffset(h.m.layout.starts[4])
	if h.m.offset != want {
		t.Fatalf("offset = %d, want %d", h.m.offset, want)
	}
	if h.state().Index != 4 {
		t.Errorf("index = %d, want 4: intermediate sections leaked through", h.state().Index)
	}
	if h.m.Controller().Phase() != nav.Idle {
		t.Error("scroll should have settled")
	}
}

func TestUserScrollUpdatesIndex(t *testing.T) {
	h := newHarness(t, Options{Threshold: 1})

	h.key(tea.KeyMsg{Type: tea.KeyEnd})
	h.frames()

	want := scrollspy.Candidate(scrollspy.Relative(h.m.layout.starts, h.m.offset), 1)
	if want == 0 {
		t.Fatal("sample deck should be taller than the terminal")
	}
	if h.state().Index != want {
		t.Errorf("index = %d, want %d", h.state().Index, want)
	}

	h.key(tea.KeyMsg{Type: tea.KeyHome})
	h.frames()
	if h.state().Index != 0 || h.m.offset != 0 {
		t.Errorf("home: index = %d offset = %d", h.state().Index, h.m.offset)
	}
}

func TestUserScrollInterruptsProgrammaticScroll(t *testing.T) {
	h := newHarness(t, Options{Threshold: 1})

	h.runes("9")
	h.m.ticking = false
	h.clock = h.clock.Add(16 * time.Millisecond)
	h.m.Update(frameMsg(h.clock))

	h.key(tea.KeyMsg{Type: tea.KeyHome})
	if h.m.target != -1 {
		t.Error("user scroll should cancel the animation")
	}
	if h.m.Controller().Phase() != nav.Idle {
		t.Error("user scroll should settle the programmatic scroll")
	}
	h.frames()
	if h.state().Index != 0 {
		t.Errorf("index = %d, want 0 after scrolling home", h.state().Index)
	}
}

func TestRailClickJumps(t *testing.T) {
	h := newHarness(t, Options{})

	h.m.Update(tea.MouseMsg{
		X:      3,
		Y:      headerLines + railItemFirst + 2,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	if h.state().Index != 2 {
		t.Fatalf("index = %d, want 2", h.state().Index)
	}

	h.m.Update(tea.MouseMsg{X: 3, Y: headerLines + 40, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if h.state().Index != 2 {
		t.Errorf("click below the rail items changed the index to %d", h.state().Index)
	}
}

func TestOutOfRangeDigitIsIgnored(t *testing.T) {
	d, err := deck.New("", "", []deck.Section{
		{ID: "a", Body: []byte("# A")},
		{ID: "b", Body: []byte("# B")},
	})
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'7'}})
	if m.Controller().State().Index != 0 {
		t.Errorf("index = %d", m.Controller().State().Index)
	}
}

func TestViews(t *testing.T) {
	h := newHarness(t, Options{})

	view := h.m.View()
	for _, want := range []string{"Developer Success", "Strategy", "Thanks", "v2025.4", "▸", "1-9 jump"} {
		if !strings.Contains(view, want) {
			t.Errorf("continuous view missing %q", want)
		}
	}
	if got := strings.Count(view, "\n") + 1; got > 30 {
		t.Errorf("continuous view has %d lines, terminal has 30", got)
	}

	h.runes("4p")
	view = h.m.View()
	for _, want := range []string{"4 / 9", "WORKING WITH AI", "↑↓ navigate • esc exit"} {
		if !strings.Contains(view, want) {
			t.Errorf("presentation view missing %q", want)
		}
	}
	if strings.Contains(view, "TEAM WORK") {
		t.Error("presentation view should show a single slide")
	}
}

func TestStartOptions(t *testing.T) {
	h := newHarness(t, Options{StartSection: 3, StartPresenting: true})
	if got := h.state(); got != (nav.State{Index: 3, Mode: nav.Presentation}) {
		t.Errorf("start state = %+v", got)
	}

	d, _ := deck.Parse(deck.Sample())
	if _, err := New(d, Options{StartSection: 42}); err == nil {
		t.Error("expected error for an out-of-range start section")
	}
}

func TestQuitTearsDown(t *testing.T) {
	h := newHarness(t, Options{})
	cmd := h.key(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}

	calls := 0
	h.m.Controller().Subscribe(func(nav.Event) { calls++ })
	h.m.Controller().Advance()
	if calls != 0 {
		t.Error("controller should be closed after quit")
	}
}

func TestEaseStep(t *testing.T) {
	tests := map[int]int{0: 0, 1: 1, -1: -1, 3: 1, -3: -1, 8: 2, -40: -10}
	for d, want := range tests {
		if got := easeStep(d); got != want {
			t.Errorf("easeStep(%d) = %d, want %d", d, got, want)
		}
	}
}
