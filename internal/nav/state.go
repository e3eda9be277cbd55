package nav

import "github.com/ziadkadry99/autodeck/internal/deck"

// Mode is the active viewing mode.
type Mode int

const (
	// Continuous lays all sections out in one scrollable document.
	Continuous Mode = iota
	// Presentation shows one section full screen at a time.
	Presentation
)

func (m Mode) String() string {
	switch m {
	case Continuous:
		return "continuous"
	case Presentation:
		return "presentation"
	default:
		return "unknown"
	}
}

func (m Mode) valid() bool { return m == Continuous || m == Presentation }

// Phase is the Continuous-mode sub-state.
type Phase int

const (
	// Idle means the viewport is only moved by the user.
	Idle Phase = iota
	// ProgrammaticScroll means the controller commanded a scroll that has
	// not settled yet. Observer writes are ignored in this phase.
	ProgrammaticScroll
)

func (p Phase) String() string {
	if p == ProgrammaticScroll {
		return "programmatic-scroll"
	}
	return "idle"
}

// State is the navigation state shared with every subscriber.
type State struct {
	Index int
	Mode  Mode
}

// Intent tells the view what transition a change asks for.
type Intent int

const (
	// IntentNone asks for no viewport movement (scroll-spy updates).
	IntentNone Intent = iota
	// IntentScroll asks the viewport to scroll to the current section.
	IntentScroll
	// IntentSwap asks the presenter to swap the rendered slide.
	IntentSwap
)

func (i Intent) String() string {
	switch i {
	case IntentScroll:
		return "scroll"
	case IntentSwap:
		return "swap"
	default:
		return "none"
	}
}

// Source identifies what caused a change.
type Source int

const (
	// SourceCommand covers keyboard, navigation clicks and explicit jumps.
	SourceCommand Source = iota
	// SourceObserver is the passive scroll observer.
	SourceObserver
	// SourceMode is a mode toggle.
	SourceMode
)

// Event is published to subscribers after every committed change.
type Event struct {
	State   State
	Prev    State
	Source  Source
	Intent  Intent
	Section deck.Section
}
