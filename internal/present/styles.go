package present

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1a1aff", Dark: "#7d7dff"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#d9480f", Dark: "#ffb347"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#868e96", Dark: "#6c757d"}
	colorText    = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#e9ecef"}
)

// Styles groups every lipgloss style the presenter draws with.
type Styles struct {
	H1        lipgloss.Style
	H2        lipgloss.Style
	Text      lipgloss.Style
	Bold      lipgloss.Style
	Italic    lipgloss.Style
	Code      lipgloss.Style
	CodeBlock lipgloss.Style
	Link      lipgloss.Style
	Quote     lipgloss.Style
	Rule      lipgloss.Style

	RailTitle   lipgloss.Style
	RailItem    lipgloss.Style
	RailActive  lipgloss.Style
	RailVersion lipgloss.Style

	Bar      lipgloss.Style
	BarTrack lipgloss.Style
	Counter  lipgloss.Style
	Hint     lipgloss.Style
}

// DefaultStyles returns the built-in theme.
func DefaultStyles() Styles {
	return Styles{
		H1:        lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		H2:        lipgloss.NewStyle().Bold(true).Foreground(colorText),
		Text:      lipgloss.NewStyle().Foreground(colorText),
		Bold:      lipgloss.NewStyle().Bold(true),
		Italic:    lipgloss.NewStyle().Italic(true),
		Code:      lipgloss.NewStyle().Foreground(colorAccent),
		CodeBlock: lipgloss.NewStyle().Foreground(colorAccent).PaddingLeft(2),
		Link:      lipgloss.NewStyle().Underline(true).Foreground(colorPrimary),
		Quote:     lipgloss.NewStyle().Foreground(colorMuted),
		Rule:      lipgloss.NewStyle().Foreground(colorMuted),

		RailTitle:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		RailItem:    lipgloss.NewStyle().Foreground(colorMuted),
		RailActive:  lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(colorPrimary),
		RailVersion: lipgloss.NewStyle().Faint(true),

		Bar:      lipgloss.NewStyle().Foreground(colorAccent),
		BarTrack: lipgloss.NewStyle().Foreground(colorMuted).Faint(true),
		Counter:  lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1),
		Hint:     lipgloss.NewStyle().Foreground(colorMuted),
	}
}
