package fbtypes

import (
	"errors"
	"time"
)

var (
	// ErrUnknownTimeZone is returned for a region time zone id with no known name.
	ErrUnknownTimeZone = errors.New("Fbtypes: Unknown time zone")
)

var (
	_ TemporalDecoder  = (*Util)(nil)
	_ NumericFormatter = (*Util)(nil)
)

// Util is the default implementation of TemporalDecoder and NumericFormatter,
// the counterpart of the engine's IUtil services.
//
// Region time zones are only known through WithRegions, except GMT; fixed
// offset zones are always supported.
type Util struct {
	regions   map[uint16]string
	locations map[string]*time.Location
}

// UtilOption configures Util.
type UtilOption func(*Util)

// WithRegions adds region time zone names keyed by Firebird time zone id.
func WithRegions(regions map[uint16]string) UtilOption {
	return func(u *Util) {
		for id, name := range regions {
			u.regions[id] = name
		}
	}
}

// NewUtil creates a Util.
func NewUtil(opts ...UtilOption) *Util {
	u := &Util{
		regions: map[uint16]string{
			TimeZoneGMT: "GMT",
		},
		locations: map[string]*time.Location{
			"GMT": time.UTC,
		},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
