package nav

import "strings"

// Key is a presentation-mode key.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

var keyNames = map[string]Key{
	"up":         KeyUp,
	"arrowup":    KeyUp,
	"down":       KeyDown,
	"arrowdown":  KeyDown,
	"left":       KeyLeft,
	"arrowleft":  KeyLeft,
	"right":      KeyRight,
	"arrowright": KeyRight,
	"esc":        KeyEscape,
	"escape":     KeyEscape,
}

// ParseKey maps a key name ("down", "ArrowDown", "esc", ...) to a Key.
// Unknown names map to KeyNone.
func ParseKey(name string) Key {
	return keyNames[strings.ToLower(name)]
}
