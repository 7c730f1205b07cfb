package fbcanal

import (
	"errors"
)

var (
	// ErrConfiguration is returned when a setting is missing or invalid.
	ErrConfiguration = errors.New("Fbcanal: Configuration error")
)
