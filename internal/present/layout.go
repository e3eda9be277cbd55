package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/autodeck/internal/deck"
)

const (
	railWidth     = 18
	railGutter    = 1
	headerLines   = 1 // progress bar
	footerLines   = 1 // key hints
	railItemFirst = 2 // rail row of the first section: title, blank, items
	maxSlideWidth = 100
)

// layout is the rendered deck for one terminal size.
type layout struct {
	doc    []string   // continuous document, all sections
	starts []int      // first doc line of each section
	slides [][]string // one rendering per section for presentation mode
}

func buildLayout(d *deck.Deck, width int, st *Styles) layout {
	docWidth := width - railWidth - railGutter - 1
	slideWidth := min(width-8, maxSlideWidth)

	l := layout{
		starts: make([]int, d.Len()),
		slides: make([][]string, d.Len()),
	}
	rule := st.Rule.Render(strings.Repeat("─", max(docWidth, minTextWidth)))
	for i, s := range d.Sections {
		l.starts[i] = len(l.doc)
		l.doc = append(l.doc, renderMarkdown(s.Body, docWidth, st)...)
		l.doc = append(l.doc, "", rule, "")
		l.slides[i] = renderMarkdown(s.Body, slideWidth, st)
	}
	return l
}

// sectionAtRailRow maps a rail row (relative to the rail top) to a section
// ordinal, or -1.
func sectionAtRailRow(row, n int) int {
	i := row - railItemFirst
	if i < 0 || i >= n {
		return -1
	}
	return i
}

func renderRail(d *deck.Deck, current, height int, st *Styles) string {
	lines := make([]string, 0, d.Len()+4)

	title := d.Title
	if title == "" {
		title = "autodeck"
	}
	lines = append(lines, st.RailTitle.Render(truncate(title, railWidth)), "")

	for i, s := range d.Sections {
		item := truncate(fmt.Sprintf(" %d %s", i+1, s.Label), railWidth-1)
		if i == current {
			lines = append(lines, st.RailActive.Render("▸"+item))
		} else {
			lines = append(lines, st.RailItem.Render(" "+item))
		}
	}
	if d.Version != "" {
		lines = append(lines, "", st.RailVersion.Render(truncate(d.Version, railWidth)))
	}

	return lipgloss.NewStyle().
		Width(railWidth).
		Height(height).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

func progressBar(fraction float64, width int, st *Styles) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * float64(width))
	return st.Bar.Render(strings.Repeat("━", filled)) +
		st.BarTrack.Render(strings.Repeat("─", width-filled))
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
