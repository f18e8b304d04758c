package numfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/nfp"

	"github.com/vaadin-component-factory/go-cellfmt/internal/serial"
)

// dateSegment is one rendered piece of a date format.  Ambiguous M/MM tokens
// carry a minute alternative so a later seconds token can patch them.
type dateSegment struct {
	text      string
	minuteAlt string
	pending   bool
}

// RenderDate renders a date/time serial value using the tokens of a date
// format body.
//
// M/MM tokens are months by default.  A token directly after an hour renders
// as minutes, and a pending month is retroactively patched to minutes when a
// seconds token follows it, so "mm:ss" means minutes even with no hour in
// sight.  Year and day tokens reset the pending state.
func (e *Engine) RenderDate(body string, val float64) string {
	t, err := serial.ToTime(val, e.date1904)
	if err != nil {
		if e.emulateCSV {
			return InvalidDateText
		}
		return e.fallback(body, val, "invalid date serial")
	}

	cleaned := e.cleanBody(body)
	ps := nfp.NumberFormatParser()
	sections := ps.Parse(cleaned)
	if len(sections) == 0 {
		return e.fallback(body, val, "unparsable date body")
	}
	items := sections[0].Items

	hasAmPm := false
	for _, tok := range items {
		if tok.TType == nfp.TokenTypeDateTimes && isAmPmMarker(strings.ToUpper(tok.TValue)) {
			hasAmPm = true
			break
		}
	}

	totalSec := int64(math.Round(val * 86400))

	var (
		segs         []dateSegment
		lastWasHour  bool
		firstElapsed = true
	)
	patchPending := func() {
		for i := range segs {
			if segs[i].pending {
				segs[i].text = segs[i].minuteAlt
				segs[i].pending = false
			}
		}
	}
	clearPending := func() {
		for i := range segs {
			segs[i].pending = false
		}
	}

	for _, tok := range items {
		switch tok.TType {

		case nfp.TokenTypeDateTimes:
			upper := strings.ToUpper(tok.TValue)
			seg := e.dateTokenSegment(upper, t, hasAmPm, lastWasHour)
			switch upper {
			case "S", "SS":
				patchPending()
			case "YY", "YYYY", "D", "DD", "DDD", "DDDD",
				"MMM", "MMMM", "MMMMM", "AM/PM", "AM/P", "A/PM", "A/P":
				clearPending()
			}
			segs = append(segs, seg)
			lastWasHour = upper == "H" || upper == "HH"

		case nfp.TokenTypeElapsedDateTimes:
			upper := strings.ToUpper(tok.TValue)
			segs = append(segs, dateSegment{
				text: renderElapsed(upper, totalSec, firstElapsed),
			})
			firstElapsed = false
			clearPending()
			lastWasHour = upper == "H" || upper == "HH"

		case nfp.TokenTypeLiteral:
			// A literal separator between an hour and a following M/MM must
			// not break the minute disambiguation, but a literal containing a
			// space ends any hour context.
			segs = append(segs, dateSegment{text: tok.TValue})
			if strings.ContainsRune(tok.TValue, ' ') {
				lastWasHour = false
			}

		case nfp.TokenTypeDecimalPoint:
			segs = append(segs, dateSegment{text: e.syms.Decimal})

		case nfp.TokenTypeZeroPlaceHolder:
			// Sub-second digits after "ss.".
			segs = append(segs, dateSegment{text: subSeconds(val, len(tok.TValue))})

		default:
			lastWasHour = false
		}
	}

	var sb strings.Builder
	for _, seg := range segs {
		sb.WriteString(seg.text)
	}
	if sb.Len() == 0 {
		return e.fallback(body, val, "no output tokens")
	}
	return sb.String()
}

// isAmPmMarker reports whether an upper-cased token is a 12-hour marker; the
// m is optional on either side.
func isAmPmMarker(upper string) bool {
	switch upper {
	case "AM/PM", "AM/P", "A/PM", "A/P":
		return true
	}
	return false
}

// dateTokenSegment renders a single calendar token (already upper-cased).
func (e *Engine) dateTokenSegment(upper string, t time.Time, hasAmPm, lastWasHour bool) dateSegment {
	syms := e.syms
	month := int(t.Month())
	switch upper {
	case "YYYY":
		return dateSegment{text: fmt.Sprintf("%04d", t.Year())}
	case "YY":
		return dateSegment{text: fmt.Sprintf("%02d", t.Year()%100)}

	case "MMMMM":
		return dateSegment{text: syms.MonthsAbbr[month-1][:1]}
	case "MMMM":
		return dateSegment{text: syms.Months[month-1]}
	case "MMM":
		return dateSegment{text: syms.MonthsAbbr[month-1]}
	case "MM":
		minute := fmt.Sprintf("%02d", t.Minute())
		if lastWasHour {
			return dateSegment{text: minute}
		}
		return dateSegment{text: fmt.Sprintf("%02d", month), minuteAlt: minute, pending: true}
	case "M":
		minute := strconv.Itoa(t.Minute())
		if lastWasHour {
			return dateSegment{text: minute}
		}
		return dateSegment{text: strconv.Itoa(month), minuteAlt: minute, pending: true}

	case "DDDD":
		return dateSegment{text: syms.Days[int(t.Weekday())]}
	case "DDD":
		return dateSegment{text: syms.DaysAbbr[int(t.Weekday())]}
	case "DD":
		return dateSegment{text: fmt.Sprintf("%02d", t.Day())}
	case "D":
		return dateSegment{text: strconv.Itoa(t.Day())}

	case "HH":
		return dateSegment{text: fmt.Sprintf("%02d", clockHour(t, hasAmPm))}
	case "H":
		return dateSegment{text: strconv.Itoa(clockHour(t, hasAmPm))}

	case "SS":
		return dateSegment{text: fmt.Sprintf("%02d", t.Second())}
	case "S":
		return dateSegment{text: strconv.Itoa(t.Second())}

	case "AM/PM", "AM/P", "A/PM", "A/P":
		// The half is rendered as written: a lone letter stays a letter.
		if t.Hour() < 12 {
			if strings.HasPrefix(upper, "AM") {
				return dateSegment{text: syms.AM}
			}
			return dateSegment{text: "A"}
		}
		if strings.HasSuffix(upper, "PM") {
			return dateSegment{text: syms.PM}
		}
		return dateSegment{text: "P"}
	}
	return dateSegment{}
}

func clockHour(t time.Time, hasAmPm bool) int {
	h := t.Hour()
	if hasAmPm {
		h = h % 12
		if h == 0 {
			h = 12
		}
	}
	return h
}

// renderElapsed renders an elapsed-time token from the total seconds of the
// serial.  The first elapsed token in a format carries the full count of its
// unit; later ones show the remainder within the next larger unit.
func renderElapsed(upper string, totalSec int64, first bool) string {
	var n int64
	switch upper {
	case "H", "HH":
		n = totalSec / 3600
		if !first {
			n %= 24
		}
	case "M", "MM":
		n = totalSec / 60
		if !first {
			n %= 60
		}
	case "S", "SS":
		n = totalSec
		if !first {
			n %= 60
		}
	default:
		return ""
	}
	s := strconv.FormatInt(n, 10)
	for len(s) < len(upper) {
		s = "0" + s
	}
	return s
}

// subSeconds renders the fractional-second digits of a serial to the given
// number of places.
func subSeconds(val float64, places int) string {
	const nanosInADay = float64(24 * 60 * 60 * 1e9)
	fracDay := val - math.Trunc(val)
	nanos := int64(math.Round(fracDay * nanosInADay))
	subNanos := nanos % 1_000_000_000
	s := fmt.Sprintf("%09d", subNanos)
	if places > len(s) {
		places = len(s)
	}
	return s[:places]
}
