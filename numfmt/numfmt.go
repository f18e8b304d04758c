// Package numfmt renders numeric and date values to their display string
// using the body of an Excel number-format section.  It is the rendering
// engine behind the cellfmt façade and the sectioned cellformat evaluator.
//
// The package operates on format bodies that have already had their leading
// color/condition/locale tags stripped.  Token-stream parsing of a cleaned
// body is delegated to [github.com/xuri/nfp]; this package implements the
// rendering logic on top of the resulting tokens, plus the body-cleaning,
// fraction, scaling, and scientific-notation handling that nfp does not
// cover.
package numfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/vaadin-component-factory/go-cellfmt/internal/logging"
)

// Engine renders format bodies under a fixed set of rendering options.  An
// Engine is immutable after construction and safe for concurrent use; a
// locale change is handled by building a new Engine around a new [Symbols]
// snapshot.
type Engine struct {
	date1904   bool
	emulateCSV bool
	syms       *Symbols

	// numbers caches compiled number renderers by body text.  Entries are
	// pure functions of the body, so a racing duplicate compilation is
	// harmless — the last writer wins and both results behave identically.
	numbers sync.Map // string → *numberRenderer
}

// NewEngine builds an engine.  syms may be nil, in which case the English
// symbol table is used.
func NewEngine(date1904, emulateCSV bool, syms *Symbols) *Engine {
	if syms == nil {
		syms = english
	}
	return &Engine{date1904: date1904, emulateCSV: emulateCSV, syms: syms}
}

// Date1904 reports the date windowing the engine renders under.
func (e *Engine) Date1904() bool { return e.date1904 }

// EmulateCSV reports whether the engine reproduces Excel's Save-As-CSV text
// output (padding spaces kept, invalid dates as 255 pound signs).
func (e *Engine) EmulateCSV() bool { return e.emulateCSV }

// Symbols returns the engine's locale symbol snapshot.
func (e *Engine) Symbols() *Symbols { return e.syms }

// InvalidDateText is the string rendered for a date-formatted value whose
// serial is not a valid date, when CSV emulation is active.
var InvalidDateText = strings.Repeat("#", 255)

// ── General rendering ─────────────────────────────────────────────────────────

// General formats a float64 in Excel's "General" style:
//
//   - zero renders as "0"
//   - magnitude above 1e10, or below 1e-9, uses scientific notation with
//     five fractional digits
//   - other non-integral values use nine fractional digits
//   - integral values render without a decimal point
//
// Trailing zeros (and a bare trailing decimal point) are stripped from the
// fractional and scientific forms.
func General(val float64) string {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return strconv.FormatFloat(val, 'G', -1, 64)
	}
	if val == 0 {
		return "0"
	}

	exp := math.Log10(math.Abs(val))
	switch {
	case exp > 10 || exp < -9:
		return stripSciZeros(fmt.Sprintf("%1.5E", val))
	case math.Trunc(val) != val:
		return stripTrailingZeros(fmt.Sprintf("%1.9f", val))
	default:
		return fmt.Sprintf("%1.0f", val)
	}
}

// GeneralValue renders any supported cell value in the General style:
// numbers per [General], booleans as upper-case TRUE/FALSE, strings as-is,
// anything else via fmt.
func GeneralValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return General(val)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return val
	default:
		return fmt.Sprint(v)
	}
}

// stripTrailingZeros removes trailing zeros and a trailing decimal point.
func stripTrailingZeros(s string) string {
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// stripSciZeros strips trailing mantissa zeros from a string in %E form.
func stripSciZeros(s string) string {
	eIdx := strings.IndexByte(s, 'E')
	if eIdx < 0 {
		return stripTrailingZeros(s)
	}
	mantissa := strings.TrimRight(s[:eIdx], "0")
	mantissa = strings.TrimSuffix(mantissa, ".")
	return mantissa + s[eIdx:]
}

// ── body cleaning ─────────────────────────────────────────────────────────────

// cleanBody normalizes a format body for token parsing:
//
//   - escaped characters and quoted runs become double-quoted literals
//   - currency/locale tags [$sym-id] are replaced by their quoted symbol
//   - space fillers (_x) become a single quoted space in CSV mode and are
//     dropped otherwise, along with the character they pad
//   - repeat fillers (*x) are dropped along with their fill character
//   - bare ? placeholders become # (a quoted space in CSV mode)
//
// Elapsed-time brackets and every other token pass through unchanged.
func (e *Engine) cleanBody(body string) string {
	var b strings.Builder
	b.Grow(len(body) + 8)
	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			b.WriteByte('"')
			b.WriteByte(body[i+1])
			b.WriteByte('"')
			i += 2

		case c == '"':
			j := i + 1
			var lit strings.Builder
			for j < len(body) && body[j] != '"' {
				if body[j] == '\\' && j+1 < len(body) && body[j+1] == '"' {
					lit.WriteByte('"')
					j += 2
					continue
				}
				lit.WriteByte(body[j])
				j++
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(lit.String(), `"`, ``))
			b.WriteByte('"')
			i = j
			if i < len(body) {
				i++ // closing quote
			}

		case c == '_':
			if e.emulateCSV {
				b.WriteString(`" "`)
			}
			i += 2
			if i > len(body) {
				i = len(body)
			}

		case c == '*':
			i += 2
			if i > len(body) {
				i = len(body)
			}

		case c == '[':
			j := strings.IndexByte(body[i:], ']')
			if j < 0 {
				b.WriteByte(c)
				i++
				break
			}
			content := body[i+1 : i+j]
			if strings.HasPrefix(content, "$") {
				if sym := currencySymbol(content); sym != "" {
					b.WriteByte('"')
					b.WriteString(sym)
					b.WriteByte('"')
				}
			} else {
				b.WriteString(body[i : i+j+1])
			}
			i += j + 1

		case c == '?':
			if e.emulateCSV {
				b.WriteString(`" "`)
			} else {
				b.WriteByte('#')
			}
			i++

		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// currencySymbol extracts the display symbol from the inside of a currency
// tag (leading "$" included, brackets excluded).
//
//	"$-409"    → "$"    (default dollar in another locale)
//	"$USD"     → "USD"  (accounting style, no locale id)
//	"$€-407"   → "€"
func currencySymbol(content string) string {
	rest := strings.TrimPrefix(content, "$")
	if rest == "" || strings.HasPrefix(rest, "-") {
		return "$"
	}
	if idx := strings.LastIndexByte(rest, '-'); idx >= 0 {
		return rest[:idx]
	}
	return rest
}

// fallback logs a failed body at debug level and renders the value in the
// General style instead.  Per-value rendering never propagates an error.
func (e *Engine) fallback(body string, val float64, reason string) string {
	logging.Debug("format body fell back to General", "body", body, "reason", reason)
	return General(val)
}
