package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/ziadkadry99/autodeck/internal/deck"
)

const minTextWidth = 20

var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithAttribute(),
	),
).Parser()

// termRenderer turns a goldmark AST into styled terminal lines.
type termRenderer struct {
	src   []byte
	width int
	st    *Styles
	lines []string
}

// renderMarkdown renders section markdown into lines no wider than width.
func renderMarkdown(src []byte, width int, st *Styles) []string {
	if width < minTextWidth {
		width = minTextWidth
	}
	doc := mdParser.Parse(text.NewReader(src))
	r := &termRenderer{src: src, width: width, st: st}
	r.blocks(doc)
	return r.lines
}

func (r *termRenderer) sub(width int) *termRenderer {
	if width < minTextWidth/2 {
		width = minTextWidth / 2
	}
	return &termRenderer{src: r.src, width: width, st: r.st}
}

func (r *termRenderer) emit(s string) {
	r.lines = append(r.lines, strings.Split(s, "\n")...)
}

func (r *termRenderer) gap() {
	if len(r.lines) > 0 && r.lines[len(r.lines)-1] != "" {
		r.lines = append(r.lines, "")
	}
}

func (r *termRenderer) blocks(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		r.block(n)
	}
	// Drop the trailing separator.
	for len(r.lines) > 0 && r.lines[len(r.lines)-1] == "" {
		r.lines = r.lines[:len(r.lines)-1]
	}
}

func (r *termRenderer) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		style := r.st.H2
		txt := r.inline(n)
		if n.Level == 1 {
			style = r.st.H1
			txt = strings.ToUpper(txt)
		}
		r.emit(style.Width(r.width).Render(txt))
		r.gap()

	case *ast.Paragraph, *ast.TextBlock:
		r.emit(r.st.Text.Width(r.width).Render(r.inline(n)))
		r.gap()

	case *ast.List:
		r.list(n)
		r.gap()

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(r.src)), "\n")
			r.emit(r.st.CodeBlock.Render(line))
		}
		r.gap()

	case *ast.Blockquote:
		inner := r.sub(r.width - 2)
		inner.blocks(n)
		bar := r.st.Quote.Render("│ ")
		for _, l := range inner.lines {
			r.lines = append(r.lines, bar+l)
		}
		r.gap()

	case *ast.ThematicBreak:
		r.emit(r.st.Rule.Render(strings.Repeat("─", r.width)))
		r.gap()

	case *east.Table:
		r.table(n)
		r.gap()

	case *ast.HTMLBlock:
		// Raw HTML has no terminal form.

	default:
		if n.HasChildren() {
			r.blocks(n)
			r.gap()
		}
	}
}

func (r *termRenderer) list(l *ast.List) {
	num := l.Start
	if num == 0 {
		num = 1
	}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		indent := strings.Repeat(" ", lipgloss.Width(marker))

		inner := r.sub(r.width - lipgloss.Width(marker))
		inner.blocks(item)
		for i, line := range inner.lines {
			if i == 0 {
				r.lines = append(r.lines, marker+line)
				continue
			}
			if line == "" && !l.IsTight {
				r.lines = append(r.lines, "")
				continue
			}
			if line != "" {
				r.lines = append(r.lines, indent+line)
			}
		}
	}
}

func (r *termRenderer) table(t *east.Table) {
	var rows [][]string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.inline(cell))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, c := range row {
			if i < len(widths) && lipgloss.Width(c) > widths[i] {
				widths[i] = lipgloss.Width(c)
			}
		}
	}

	for ri, row := range rows {
		parts := make([]string, len(row))
		for i, c := range row {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			cell := c + strings.Repeat(" ", max(w-lipgloss.Width(c), 0))
			if ri == 0 {
				cell = r.st.Bold.Render(cell)
			}
			parts[i] = cell
		}
		r.emit(strings.Join(parts, r.st.Rule.Render(" │ ")))
		if ri == 0 {
			total := 0
			for _, w := range widths {
				total += w
			}
			total += 3 * max(len(widths)-1, 0)
			r.emit(r.st.Rule.Render(strings.Repeat("─", min(total, r.width))))
		}
	}
}

func (r *termRenderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.inlineNode(&b, c)
	}
	return b.String()
}

func (r *termRenderer) inlineNode(b *strings.Builder, n ast.Node) {
	switch n := n.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(r.src))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.CodeSpan:
		b.WriteString(r.st.Code.Render(deck.InlineText(n, r.src)))
	case *ast.Emphasis:
		inner := r.inline(n)
		if n.Level >= 2 {
			b.WriteString(r.st.Bold.Render(inner))
		} else {
			b.WriteString(r.st.Italic.Render(inner))
		}
	case *ast.Link:
		b.WriteString(r.st.Link.Render(r.inline(n)))
	case *ast.AutoLink:
		b.WriteString(r.st.Link.Render(string(n.URL(r.src))))
	case *ast.Image:
		b.WriteString("[" + r.inline(n) + "]")
	case *ast.RawHTML:
	default:
		b.WriteString(r.inline(n))
	}
}
