package fbtypes

import (
	"encoding/binary"
	"fmt"
	"time"

	perrors "github.com/pkg/errors"
)

// ISC_TIME counts 1/10000 second since midnight.
const TimeFractionsPerSecond = 10000

// Time zone ids. Ids up to MaxOffsetZone encode a fixed offset of
// (id - 1439) minutes; region ids count down from TimeZoneGMT.
const (
	TimeZoneGMT   uint16 = 65535
	MaxOffsetZone uint16 = 2 * 1439
	offsetZoneMid        = 1439
)

var (
	// ISC_DATE epoch: Modified Julian Day 0.
	dateEpoch = time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)

	// TIME WITH TIME ZONE in a region zone is resolved on this day.
	timeTzRefDate = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Date is a decoded ISC_DATE.
type Date struct {
	Year, Month, Day int
}

// String renders "YYYY-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time is a decoded ISC_TIME. Fractions are in 1/10000 second.
type Time struct {
	Hours, Minutes, Seconds, Fractions int
}

// String renders "HH:MM:SS.ffff", ffff in 1/10000 second. The fraction is
// always zero padded to 4 digits, so 1/10000 second is ".0001" not ".1".
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%04d", t.Hours, t.Minutes, t.Seconds, t.Fractions)
}

// TemporalDecoder decomposes Firebird date/time values.
type TemporalDecoder interface {
	// DecodeDate decodes an ISC_DATE.
	DecodeDate(date int32) Date

	// DecodeTime decodes an ISC_TIME.
	DecodeTime(t uint32) Time

	// DecodeTimestampTz converts an UTC ISC_TIMESTAMP to the local time of zone,
	// and returns the zone's display name.
	DecodeTimestampTz(date int32, t uint32, zone uint16) (Date, Time, string, error)

	// DecodeTimeTz converts an UTC ISC_TIME to the local time of zone, and
	// returns the zone's display name.
	DecodeTimeTz(t uint32, zone uint16) (Time, string, error)
}

func (u *Util) DecodeDate(date int32) Date {
	d := dateEpoch.AddDate(0, 0, int(date))
	return Date{Year: d.Year(), Month: int(d.Month()), Day: d.Day()}
}

func (u *Util) DecodeTime(t uint32) Time {
	fractionsPerMinute := uint32(60 * TimeFractionsPerSecond)
	return Time{
		Hours:     int(t / (60 * fractionsPerMinute)),
		Minutes:   int(t / fractionsPerMinute % 60),
		Seconds:   int(t / TimeFractionsPerSecond % 60),
		Fractions: int(t % TimeFractionsPerSecond),
	}
}

func (u *Util) DecodeTimestampTz(date int32, t uint32, zone uint16) (Date, Time, string, error) {
	instant := dateEpoch.AddDate(0, 0, int(date)).Add(fractionsToDuration(t))
	local, name, err := u.inZone(instant, zone)
	if err != nil {
		return Date{}, Time{}, "", err
	}
	return Date{Year: local.Year(), Month: int(local.Month()), Day: local.Day()}, clockOf(local), name, nil
}

func (u *Util) DecodeTimeTz(t uint32, zone uint16) (Time, string, error) {
	local, name, err := u.inZone(timeTzRefDate.Add(fractionsToDuration(t)), zone)
	if err != nil {
		return Time{}, "", err
	}
	return clockOf(local), name, nil
}

// ZoneName returns the display name of a time zone id.
func (u *Util) ZoneName(zone uint16) (string, error) {
	if zone <= MaxOffsetZone {
		return formatOffset(int(zone) - offsetZoneMid), nil
	}
	if name, ok := u.regions[zone]; ok {
		return name, nil
	}
	return "", perrors.Wrapf(ErrUnknownTimeZone, "time zone id %d", zone)
}

func (u *Util) inZone(instant time.Time, zone uint16) (time.Time, string, error) {
	name, err := u.ZoneName(zone)
	if err != nil {
		return time.Time{}, "", err
	}
	if zone <= MaxOffsetZone {
		offset := int(zone) - offsetZoneMid
		return instant.In(time.FixedZone(name, offset*60)), name, nil
	}
	loc, err := u.location(name)
	if err != nil {
		return time.Time{}, "", err
	}
	return instant.In(loc), name, nil
}

func (u *Util) location(name string) (*time.Location, error) {
	if loc, ok := u.locations[name]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, perrors.Wrapf(ErrUnknownTimeZone, "load %q: %s", name, err)
	}
	u.locations[name] = loc
	return loc, nil
}

func fractionsToDuration(t uint32) time.Duration {
	return time.Duration(t) * (time.Second / TimeFractionsPerSecond)
}

func clockOf(t time.Time) Time {
	return Time{
		Hours:     t.Hour(),
		Minutes:   t.Minute(),
		Seconds:   t.Second(),
		Fractions: t.Nanosecond() / int(time.Second/TimeFractionsPerSecond),
	}
}

func formatOffset(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}

// ReadTimestamp reads a native ISC_TIMESTAMP.
func ReadTimestamp(b []byte) (date int32, t uint32) {
	return int32(binary.LittleEndian.Uint32(b[0:4])), binary.LittleEndian.Uint32(b[4:8])
}

// ReadTimeTz reads a native ISC_TIME_TZ (and the prefix of ISC_TIME_TZ_EX).
func ReadTimeTz(b []byte) (t uint32, zone uint16) {
	return binary.LittleEndian.Uint32(b[0:4]), binary.LittleEndian.Uint16(b[4:6])
}

// ReadTimestampTz reads a native ISC_TIMESTAMP_TZ (and the prefix of ISC_TIMESTAMP_TZ_EX).
func ReadTimestampTz(b []byte) (date int32, t uint32, zone uint16) {
	date, t = ReadTimestamp(b)
	return date, t, binary.LittleEndian.Uint16(b[8:10])
}
