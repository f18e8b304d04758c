package cellfmt

import (
	"time"

	"github.com/vaadin-component-factory/go-cellfmt/internal/serial"
)

// ConvertDate converts an Excel date serial number to a [time.Time] value.
//
// Excel represents dates as the number of days since 1900-01-00, with the
// fractional part representing the time of day.  Lotus 1-2-3 incorrectly
// treated 1900 as a leap year, so Excel perpetuates the bug: serial 60 is
// treated as 1900-02-29 (which never existed).  The three resulting branches:
//
//   - serial == 0  → midnight on 1900-01-01
//   - serial >= 61 → subtract one day to compensate for the phantom leap day
//   - 1 ≤ serial ≤ 60 → no compensation (serial 60 yields 1900-03-01)
//
// The fractional-day component is converted to whole seconds with half-second
// rounding, so this function produces identical results to the date renderer
// used by [Formatter.FormatCell].
func ConvertDate(date float64) (time.Time, error) {
	return serial.ToTime(date, false)
}

// ConvertDateEx converts an Excel date serial number to a [time.Time] value,
// respecting the workbook's date system.
//
// When date1904 is false the function is identical to [ConvertDate].  When
// date1904 is true serial 0 corresponds to 1904-01-01 and serials increase by
// one day per unit with no phantom leap-day correction (the Lotus 1-2-3 bug
// does not apply to the 1904 system).
func ConvertDateEx(date float64, date1904 bool) (time.Time, error) {
	return serial.ToTime(date, date1904)
}
