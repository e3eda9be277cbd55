package deck

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when a deck has no sections.
var ErrEmpty = errors.New("deck has no sections")

// Section is one ordered, uniquely identified content unit of a deck.
// Sections are immutable once the deck is built.
type Section struct {
	ID      string
	Ordinal int
	Title   string
	Label   string // short name for navigation; defaults to Title
	Body    []byte // markdown source, heading line included
}

// Deck is the fixed, ordered sequence of sections shown in a session.
type Deck struct {
	Title    string
	Version  string
	Sections []Section
}

// New builds a deck from sections, assigning ordinals in order.
// IDs must be non-empty and unique.
func New(title, version string, sections []Section) (*Deck, error) {
	if len(sections) == 0 {
		return nil, ErrEmpty
	}

	seen := make(map[string]int, len(sections))
	out := make([]Section, len(sections))
	for i, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("section %d (%q) has no id", i, s.Title)
		}
		if prev, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("duplicate section id %q (sections %d and %d)", s.ID, prev, i)
		}
		seen[s.ID] = i

		s.Ordinal = i
		if s.Label == "" {
			s.Label = s.Title
		}
		if s.Label == "" {
			s.Label = s.ID
		}
		out[i] = s
	}

	return &Deck{Title: title, Version: version, Sections: out}, nil
}

// Len returns the number of sections.
func (d *Deck) Len() int { return len(d.Sections) }

// Section returns the section at ordinal i.
func (d *Deck) Section(i int) (Section, bool) {
	if i < 0 || i >= len(d.Sections) {
		return Section{}, false
	}
	return d.Sections[i], true
}

// IndexOf returns the ordinal of the section with the given id, or -1.
func (d *Deck) IndexOf(id string) int {
	for i, s := range d.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// IDs returns section ids in order.
func (d *Deck) IDs() []string {
	ids := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		ids[i] = s.ID
	}
	return ids
}
