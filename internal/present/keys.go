package present

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit   key.Binding
	Toggle key.Binding
	Jump   key.Binding

	// Continuous mode scrolling.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	// Presentation mode hints. The keys themselves are interpreted by the
	// navigation controller.
	Navigate key.Binding
	Exit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "present"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f", " "),
			key.WithHelp("PgDn", "page down"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Navigate: key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("↑↓", "navigate"),
		),
		Exit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit"),
		),
	}
}

// continuousHelp and presentationHelp adapt the key map to help.KeyMap.
type continuousHelp keyMap

func (k continuousHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Toggle, k.Jump, k.Top, k.Quit}
}

func (k continuousHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Jump},
		{k.Toggle, k.Quit},
	}
}

type presentationHelp keyMap

func (k presentationHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigate, k.Exit}
}

func (k presentationHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Navigate, k.Exit, k.Jump, k.Quit}}
}

func newHelp(st *Styles) help.Model {
	h := help.New()
	h.Styles.ShortKey = st.Hint.Bold(true)
	h.Styles.ShortDesc = st.Hint
	h.Styles.ShortSeparator = st.Hint
	return h
}
