package record

import (
	"errors"
)

var (
	// ErrUnsupportedType is returned for ARRAY fields and unknown type tags.
	ErrUnsupportedType = errors.New("Record: Unsupported type")

	// ErrMalformedField is returned when field data is shorter than its type requires.
	ErrMalformedField = errors.New("Record: Malformed field")
)
