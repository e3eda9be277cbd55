package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/ziadkadry99/autodeck/internal/deck"
	"github.com/ziadkadry99/autodeck/internal/progress"
)

// Generator renders a deck into a static single-page site.
type Generator struct {
	Deck      *deck.Deck
	OutputDir string
	// HighlightStyle is a chroma style name; empty means "github".
	HighlightStyle string
	// LiveReload adds the dev server reload script to the page.
	LiveReload bool
	// Reporter receives one update per rendered section. Nil reports nothing.
	Reporter progress.Reporter
}

// NewGenerator creates a Generator writing d into outputDir.
func NewGenerator(d *deck.Deck, outputDir string) *Generator {
	return &Generator{
		Deck:      d,
		OutputDir: outputDir,
	}
}

// pageData holds the data passed to the HTML template.
type pageData struct {
	Title      string
	Version    string
	Sections   []sectionData
	LiveReload bool
}

type sectionData struct {
	ID      string
	Ordinal int
	Number  int
	Label   string
	Content template.HTML
}

// Generate writes index.html and its assets. Returns the number of sections rendered.
func (g *Generator) Generate() (int, error) {
	if g.Deck == nil || g.Deck.Len() == 0 {
		return 0, deck.ErrEmpty
	}
	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Discard
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	style := g.HighlightStyle
	if style == "" {
		style = "github"
	}
	md := newMarkdown(style)
	ids := newSectionIDs(g.Deck.IDs())

	data := pageData{
		Title:      g.Deck.Title,
		Version:    g.Deck.Version,
		LiveReload: g.LiveReload,
	}
	if data.Title == "" {
		data.Title = g.Deck.Sections[0].Title
	}

	reporter.Start(g.Deck.Len())
	for i, s := range g.Deck.Sections {
		var buf bytes.Buffer
		pc := parser.NewContext(parser.WithIDs(ids))
		if err := md.Convert(s.Body, &buf, parser.WithContext(pc)); err != nil {
			return 0, fmt.Errorf("rendering section %s: %w", s.ID, err)
		}
		data.Sections = append(data.Sections, sectionData{
			ID:      s.ID,
			Ordinal: s.Ordinal,
			Number:  s.Ordinal + 1,
			Label:   s.Label,
			Content: template.HTML(buf.String()),
		})
		reporter.Update(i+1, s.Label)
	}
	reporter.Finish()

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}
	var page bytes.Buffer
	if err := tmpl.Execute(&page, data); err != nil {
		return 0, fmt.Errorf("executing page template: %w", err)
	}

	files := map[string][]byte{
		"index.html": page.Bytes(),
		"style.css":  []byte(cssContent),
		"script.js":  []byte(jsContent),
	}
	if g.LiveReload {
		files["livereload.js"] = []byte(liveReloadJS)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(g.OutputDir, name), content, 0o644); err != nil {
			return 0, err
		}
	}

	if err := WriteSearchIndex(BuildSearchIndex(g.Deck), filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	return g.Deck.Len(), nil
}

func newMarkdown(style string) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
			parser.WithASTTransformers(util.Prioritized(sectionHeadingTransformer{}, 100)),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// sectionHeadingTransformer strips attributes from level-1 headings. The
// enclosing <section> element carries the id.
type sectionHeadingTransformer struct{}

func (sectionHeadingTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			if h.Level == 1 {
				h.RemoveAttributes()
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

// sectionIDs generates heading ids unique across the whole page, never
// colliding with a section id.
type sectionIDs struct {
	used map[string]bool
}

func newSectionIDs(reserved []string) *sectionIDs {
	ids := &sectionIDs{used: make(map[string]bool, len(reserved))}
	for _, id := range reserved {
		ids.used[id] = true
	}
	return ids
}

func (s *sectionIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	base := slug(value)
	if base == "" {
		base = "heading"
	}
	id := base
	for i := 1; s.used[id]; i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	s.used[id] = true
	return []byte(id)
}

func (s *sectionIDs) Put(value []byte) {
	s.used[string(value)] = true
}

func slug(value []byte) string {
	var b []byte
	dash := false
	for _, r := range string(bytes.ToLower(bytes.TrimSpace(value))) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b = append(b, byte(r))
			dash = false
		case r == ' ' || r == '-':
			if !dash && len(b) > 0 {
				b = append(b, '-')
				dash = true
			}
		}
	}
	return string(bytes.TrimRight(b, "-"))
}
