package site

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ziadkadry99/autodeck/internal/deck"
)

const maxSearchContent = 2000

// SearchEntry represents a single searchable section of the deck.
type SearchEntry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Label   string `json:"label"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchIndex extracts the plain text of every section.
func BuildSearchIndex(d *deck.Deck) []SearchEntry {
	md := newMarkdown("github")
	entries := make([]SearchEntry, 0, d.Len())
	for _, s := range d.Sections {
		doc := md.Parser().Parse(text.NewReader(s.Body))

		var blocks []string
		summary := ""
		_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			switch n.(type) {
			case *ast.Paragraph, *ast.TextBlock, *ast.Heading, *east.TableCell:
				txt := deck.InlineText(n, s.Body)
				if txt == "" {
					return ast.WalkSkipChildren, nil
				}
				if _, ok := n.(*ast.Paragraph); ok && summary == "" {
					summary = txt
				}
				blocks = append(blocks, txt)
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkContinue, nil
		})

		content := strings.Join(blocks, " ")
		if len(content) > maxSearchContent {
			content = content[:maxSearchContent]
		}
		entries = append(entries, SearchEntry{
			ID:      s.ID,
			Title:   s.Title,
			Label:   s.Label,
			Summary: summary,
			Content: content,
		})
	}
	return entries
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
