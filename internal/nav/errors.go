package nav

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is reported when a jump targets an index outside [0, N).
// It is the only error the controller produces after construction.
var ErrOutOfRange = errors.New("section index out of range")

// RangeError carries the rejected index and the deck length.
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("section index %d out of range [0, %d)", e.Index, e.Len)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }
