package deck

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

//go:embed sample.md
var sampleDeck []byte

// frontMatter is the optional YAML block at the top of a deck file.
type frontMatter struct {
	Title   string `yaml:"title"`
	Version string `yaml:"version"`
}

// Sample returns the markdown source of the built-in example deck.
func Sample() []byte {
	return bytes.Clone(sampleDeck)
}

// Load reads a deck from a markdown file, a directory of markdown files,
// or a doublestar glob such as "slides/**/*.md". Multiple files are
// concatenated in lexical path order.
func Load(path string) (*Deck, error) {
	pattern := path
	if !strings.ContainsAny(path, "*?[{") {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading deck %s: %w", path, err)
		}
		if !info.IsDir() {
			src, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading deck %s: %w", path, err)
			}
			d, err := Parse(src)
			if err != nil {
				return nil, fmt.Errorf("parsing deck %s: %w", path, err)
			}
			return d, nil
		}
		pattern = filepath.Join(path, "*.md")
	}

	files, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no markdown files match %s", pattern)
	}
	sort.Strings(files)

	var (
		meta     frontMatter
		sections []Section
	)
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading deck %s: %w", f, err)
		}
		fm, body, err := splitFrontMatter(src)
		if err != nil {
			return nil, fmt.Errorf("parsing deck %s: %w", f, err)
		}
		if meta.Title == "" {
			meta.Title = fm.Title
		}
		if meta.Version == "" {
			meta.Version = fm.Version
		}
		parsed, err := parseSections(body)
		if err != nil {
			return nil, fmt.Errorf("parsing deck %s: %w", f, err)
		}
		sections = append(sections, parsed...)
	}

	return New(meta.Title, meta.Version, sections)
}

// Parse builds a deck from markdown source. Each level-1 heading starts a
// new section. The section id is taken from an explicit {#id} attribute or
// derived from the heading text; a label="..." attribute sets the nav label.
func Parse(src []byte) (*Deck, error) {
	meta, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}
	sections, err := parseSections(body)
	if err != nil {
		return nil, err
	}
	return New(meta.Title, meta.Version, sections)
}

// splitFrontMatter separates a leading "---" delimited YAML block from the body.
func splitFrontMatter(src []byte) (frontMatter, []byte, error) {
	var meta frontMatter

	normalized := bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return meta, normalized, nil
	}

	rest := normalized[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---\n"))
	skip := len("\n---\n")
	if end == -1 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			end = len(rest) - len("\n---")
			skip = len("\n---")
		} else {
			return meta, nil, fmt.Errorf("front matter is not terminated")
		}
	}

	if err := yaml.Unmarshal(rest[:end], &meta); err != nil {
		return meta, nil, fmt.Errorf("front matter: %w", err)
	}
	return meta, rest[end+skip:], nil
}

// deckParser is shared by all loads; goldmark parsers are safe for reuse.
var deckParser = goldmark.New(
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithAttribute(),
	),
).Parser()

func parseSections(body []byte) ([]Section, error) {
	doc := deckParser.Parse(text.NewReader(body))

	var (
		sections []Section
		starts   []int
	)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			if len(starts) == 0 && n.Kind() != ast.KindHTMLBlock {
				return nil, fmt.Errorf("content before the first section heading")
			}
			continue
		}

		if h.Lines().Len() == 0 {
			return nil, fmt.Errorf("section %d has an empty heading", len(sections))
		}
		start := lineStart(body, h)
		starts = append(starts, start)
		sections = append(sections, Section{
			ID:    attrString(h, "id"),
			Title: InlineText(h, body),
			Label: attrString(h, "label"),
		})
	}

	for i := range sections {
		end := len(body)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		sections[i].Body = bytes.TrimRight(body[starts[i]:end], "\n")
	}
	return sections, nil
}

// lineStart returns the offset of the first byte of the line holding the
// heading text, so the section body includes the "#" marker.
func lineStart(src []byte, h *ast.Heading) int {
	pos := h.Lines().At(0).Start
	for pos > 0 && src[pos-1] != '\n' {
		pos--
	}
	return pos
}

func attrString(n ast.Node, name string) string {
	v, ok := n.AttributeString(name)
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// InlineText flattens the inline children of n into plain text.
func InlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.CodeSpan:
			for cc := t.FirstChild(); cc != nil; cc = cc.NextSibling() {
				if tt, ok := cc.(*ast.Text); ok {
					b.Write(tt.Segment.Value(src))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
