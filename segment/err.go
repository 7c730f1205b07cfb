package segment

import (
	"errors"
)

var (
	// ErrIO is returned when the segment document can not be written.
	ErrIO = errors.New("Segment: IO error")
)
