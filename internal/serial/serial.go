// Package serial converts Excel date serial numbers to [time.Time] values.
//
// Excel represents dates as the number of days since the epoch of the active
// date system, with the fractional part representing the time of day.  The
// 1900 system perpetuates the Lotus 1-2-3 leap-year bug (serial 60 is the
// nonexistent 1900-02-29); the 1904 system has no such quirk.
package serial

import (
	"fmt"
	"math"
	"time"
)

// MaxSerial1900 is the exclusive upper bound for serials in the 1900 date
// system (one above 9999-12-31).  Larger values would overflow time.Duration
// arithmetic (int64 nanoseconds).
const MaxSerial1900 = 2_958_466

// MaxSerial1904 is the exclusive upper bound for serials in the 1904 date
// system.  Serial 0 = 1904-01-01, offset 1462 days from the 1900 serials
// (four years including the 1904 leap day).
const MaxSerial1904 = MaxSerial1900 - 1462

// Valid reports whether v is a renderable date serial under the given date
// system.  NaN, infinities, negative serials, and serials past year 9999 are
// invalid.
func Valid(v float64, date1904 bool) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return false
	}
	if date1904 {
		return v <= MaxSerial1904
	}
	return v <= MaxSerial1900
}

// ToTime converts an Excel date serial to a [time.Time], respecting the date
// system.
//
// For the 1900 system the Lotus leap-year branches apply:
//
//   - serial == 0  → midnight on 1900-01-01
//   - serial >= 61 → subtract one day to compensate for the phantom leap day
//   - 1 ≤ serial ≤ 60 → no compensation (serial 60 yields 1900-03-01)
//
// For the 1904 system serial 0 is 1904-01-01 and serials increase one day per
// unit with no correction.
func ToTime(v float64, date1904 bool) (time.Time, error) {
	if !Valid(v, date1904) {
		return time.Time{}, fmt.Errorf("serial: invalid date serial %v", v)
	}

	fracSec, dayRollover := FracSec(v)
	intPart := int(v) + dayRollover

	if date1904 {
		base := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
		return base.Add(time.Duration(intPart)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
	}

	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	var t time.Time
	switch {
	case intPart == 0:
		t = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(fracSec) * time.Second)
	case intPart >= 61:
		t = base.Add(time.Duration(intPart-1)*24*time.Hour + time.Duration(fracSec)*time.Second)
	default:
		t = base.Add(time.Duration(intPart)*24*time.Hour + time.Duration(fracSec)*time.Second)
	}
	return t, nil
}

// FracSec converts the fractional-day part of a serial to a whole-second
// count within the day (0–86399) plus a day-rollover flag (0 or 1).
//
// A small epsilon is added before conversion to absorb floating-point drift,
// then the nanosecond remainder is rounded half-up to the nearest second.
// When rounding pushes the result to exactly midnight the day rolls over
// rather than clamping to 86399.
func FracSec(v float64) (fracSec int64, dayRollover int) {
	const roundEpsilon = 1e-9
	fracDay := (v - math.Trunc(v)) + roundEpsilon
	const nanosInADay = float64(24 * 60 * 60 * 1e9)
	durNanos := time.Duration(fracDay * nanosInADay)
	ns := int(durNanos % time.Second)
	secs := int64(durNanos / time.Second)
	if ns > 500_000_000 {
		secs++
	}
	if secs < 0 {
		secs = 0
	}
	rollover := int(secs / 86400)
	secs = secs % 86400
	return secs, rollover
}
