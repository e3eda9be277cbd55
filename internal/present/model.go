// Package present is the terminal presenter: it renders a deck in
// Continuous or Presentation mode, turns keyboard, mouse and scroll input
// into navigation requests, and moves the viewport on the controller's
// behalf.
package present

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/autodeck/internal/deck"
	"github.com/ziadkadry99/autodeck/internal/nav"
	"github.com/ziadkadry99/autodeck/internal/scrollspy"
)

// Options tune the presenter.
type Options struct {
	Threshold       int           // scroll-spy activation line, in rows
	SettleDelay     time.Duration // idle time ending a programmatic scroll
	FrameInterval   time.Duration // animation frame length
	ScrollStep      int           // rows per mouse wheel notch
	StartSection    int
	StartPresenting bool
}

func (o Options) withDefaults() Options {
	if o.FrameInterval <= 0 {
		o.FrameInterval = 16 * time.Millisecond
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = scrollspy.DefaultSettleDelay
	}
	if o.ScrollStep <= 0 {
		o.ScrollStep = 3
	}
	return o
}

type frameMsg time.Time

// Model is the bubbletea model. It owns the controller and observer for
// one presenting session.
type Model struct {
	deck   *deck.Deck
	ctrl   *nav.Controller
	spy    *scrollspy.Observer
	opts   Options
	styles Styles
	keys   keyMap
	help   help.Model
	vp     viewport.Model

	unsubscribe func()

	width, height int
	layout        layout
	offset        int
	target        int // programmatic scroll target line, -1 when none
	ticking       bool
	now           func() time.Time
}

// New builds a presenter for d.
func New(d *deck.Deck, opts Options) (*Model, error) {
	ctrl, err := nav.New(d.Sections)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	m := &Model{
		deck:   d,
		ctrl:   ctrl,
		opts:   opts,
		styles: DefaultStyles(),
		keys:   defaultKeyMap(),
		width:  80,
		height: 24,
		target: -1,
		now:    time.Now,
	}
	m.help = newHelp(&m.styles)
	m.vp = viewport.New(m.width, m.viewHeight())
	m.spy = scrollspy.New(ctrl, scrollspy.Options{
		Threshold:   opts.Threshold,
		SettleDelay: opts.SettleDelay,
	})
	m.unsubscribe = ctrl.Subscribe(m.onNavigate)
	m.relayout()

	if opts.StartSection != 0 {
		if err := ctrl.JumpTo(opts.StartSection); err != nil {
			m.teardown()
			return nil, fmt.Errorf("start section: %w", err)
		}
	}
	if opts.StartPresenting {
		ctrl.SetMode(nav.Presentation)
	}
	return m, nil
}

// Controller exposes the navigation controller, mainly for tests and
// embedding hosts.
func (m *Model) Controller() *nav.Controller { return m.ctrl }

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, m.tick()

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case frameMsg:
		m.ticking = false
		m.frame(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

// onNavigate is the viewport collaborator: it turns controller intents
// into viewport movement.
func (m *Model) onNavigate(ev nav.Event) {
	switch ev.Intent {
	case nav.IntentScroll:
		m.target = m.clampOffset(m.layout.starts[ev.State.Index])
	case nav.IntentSwap:
		m.target = -1
	}
	log.Printf("present: %s %s -> %d (%s)", ev.State.Mode, ev.Intent, ev.State.Index, ev.Section.ID)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.teardown()
		return tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		if m.ctrl.State().Mode == nav.Presentation {
			m.ctrl.SetMode(nav.Continuous)
		} else {
			m.ctrl.SetMode(nav.Presentation)
		}
		return m.tick()
	case key.Matches(msg, m.keys.Jump):
		m.jump(int(msg.String()[0] - '1'))
		return m.tick()
	}

	if m.ctrl.State().Mode == nav.Presentation {
		m.ctrl.HandleKey(nav.ParseKey(msg.String()))
		return m.tick()
	}

	page := m.viewHeight()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.userScroll(-1)
	case key.Matches(msg, m.keys.Down):
		m.userScroll(1)
	case key.Matches(msg, m.keys.PageUp):
		m.userScroll(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.userScroll(page)
	case key.Matches(msg, m.keys.HalfUp):
		m.userScroll(-page / 2)
	case key.Matches(msg, m.keys.HalfDown):
		m.userScroll(page / 2)
	case key.Matches(msg, m.keys.Top):
		m.userScroll(-m.offset)
	case key.Matches(msg, m.keys.Bottom):
		m.userScroll(m.maxOffset() - m.offset)
	}
	return m.tick()
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.ctrl.State().Mode != nav.Continuous {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.userScroll(-m.opts.ScrollStep)
	case tea.MouseButtonWheelDown:
		m.userScroll(m.opts.ScrollStep)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || msg.X >= railWidth {
			return nil
		}
		row := msg.Y - headerLines
		if row == 0 {
			// The deck title scrolls back to the top like any user scroll.
			m.userScroll(-m.offset)
		} else if i := sectionAtRailRow(row, m.deck.Len()); i >= 0 {
			m.jump(i)
		}
	}
	return m.tick()
}

func (m *Model) jump(i int) {
	if err := m.ctrl.JumpTo(i); err != nil {
		log.Printf("present: jump ignored: %v", err)
	}
}

// userScroll moves the viewport on behalf of the user. It takes over from
// any programmatic scroll still in flight.
func (m *Model) userScroll(delta int) {
	if m.target >= 0 {
		m.target = -1
		m.ctrl.ScrollSettled()
	}
	m.scrollTo(m.offset+delta, m.now())
}

// scrollTo moves the viewport and emits a scroll sample when it moved.
func (m *Model) scrollTo(offset int, at time.Time) {
	offset = m.clampOffset(offset)
	if offset == m.offset {
		return
	}
	m.offset = offset
	m.vp.SetYOffset(offset)
	m.spy.Push(scrollspy.Sample{
		Tops: scrollspy.Relative(m.layout.starts, m.offset),
		At:   at,
	})
}

func (m *Model) frame(now time.Time) {
	if m.target >= 0 && m.ctrl.State().Mode == nav.Continuous {
		m.scrollTo(m.offset+easeStep(m.target-m.offset), now)
		if m.offset == m.target {
			m.target = -1
			m.spy.Arrived()
		}
	}
	m.spy.Frame(now)
}

// easeStep covers a quarter of the remaining distance, at least one row.
func easeStep(d int) int {
	step := d / 4
	if step == 0 && d != 0 {
		if d > 0 {
			return 1
		}
		return -1
	}
	return step
}

func (m *Model) needsFrame() bool {
	return m.target >= 0 || m.spy.Pending()
}

func (m *Model) tick() tea.Cmd {
	if m.ticking || !m.needsFrame() {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.opts.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) relayout() {
	m.layout = buildLayout(m.deck, m.width, &m.styles)
	m.vp.Width = max(m.width-railWidth-railGutter, 1)
	m.vp.Height = m.viewHeight()
	m.vp.SetContent(strings.Join(m.layout.doc, "\n"))
	// Reflow keeps the current section at the top of the viewport.
	m.offset = m.clampOffset(m.layout.starts[m.ctrl.State().Index])
	m.vp.SetYOffset(m.offset)
	if m.target >= 0 {
		m.target = m.offset
	}
}

func (m *Model) viewHeight() int {
	return max(m.height-headerLines-footerLines, 1)
}

func (m *Model) maxOffset() int {
	return max(len(m.layout.doc)-m.viewHeight(), 0)
}

func (m *Model) clampOffset(v int) int {
	return min(max(v, 0), m.maxOffset())
}

// teardown stops the observer and releases every subscription. It is safe
// to call more than once.
func (m *Model) teardown() {
	m.spy.Stop()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.ctrl.Close()
}

func (m *Model) View() string {
	if m.ctrl.State().Mode == nav.Presentation {
		return m.presentationView()
	}
	return m.continuousView()
}

func (m *Model) continuousView() string {
	h := m.viewHeight()

	bar := progressBar(m.vp.ScrollPercent(), m.width, &m.styles)

	rail := renderRail(m.deck, m.ctrl.State().Index, h, &m.styles)
	body := lipgloss.JoinHorizontal(lipgloss.Top, rail, strings.Repeat(" ", railGutter), m.vp.View())

	hints := m.help.View(continuousHelp(m.keys))
	return strings.Join([]string{bar, body, hints}, "\n")
}

func (m *Model) presentationView() string {
	st := m.ctrl.State()
	n := m.ctrl.Len()

	bar := progressBar(float64(st.Index+1)/float64(n), m.width, &m.styles)

	exit := m.styles.Hint.Render("esc exit")
	counter := m.styles.Counter.Render(fmt.Sprintf("%d / %d", st.Index+1, n))
	gap := max(m.width-lipgloss.Width(exit)-lipgloss.Width(counter), 1)
	top := exit + strings.Repeat(" ", gap) + counter

	hints := m.help.View(presentationHelp(m.keys))

	bodyHeight := max(m.height-3, 1)
	slide := strings.Join(m.layout.slides[st.Index], "\n")
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, slide)

	return strings.Join([]string{bar, top, body, hints}, "\n")
}
