// Package dateformat provides date-format detection helpers shared by the
// styles metadata package and the rendering engine.
//
// It exists to keep the detection logic in a single import-cycle-free place;
// it has no public-API contract of its own.
package dateformat

// IsBuiltInDateID reports whether id is a built-in Excel numFmtId that
// represents a date, datetime, or time format.
//
// The recognised IDs follow ECMA-376 §18.8.30:
//
//	14–22   date and time formats (IDs 18–21 are time-only)
//	27–36   locale-specific CJK date formats
//	45–47   elapsed-time / seconds formats
//	50–58   locale-specific CJK date formats (variant set)
func IsBuiltInDateID(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// ScanFormatStr scans the unquoted portion of a custom number-format string
// for date/time token characters and returns true if any are found.
//
// The characters d, m, y, h, s (either case) are date/time tokens when they
// appear outside double-quoted literals and outside square-bracket sections.
// e/E is the Japanese era token only when it is not preceded by a digit
// placeholder (0, #, ?, or .), in which position it is a scientific-notation
// exponent marker instead.
func ScanFormatStr(formatStr string) bool {
	inDoubleQuote := false
	inBracket := false
	var prev rune
	for _, ch := range formatStr {
		switch {
		case inDoubleQuote:
			if ch == '"' {
				inDoubleQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
		case ch == '"':
			inDoubleQuote = true
		case ch == '[':
			inBracket = true
		case ch == 'd' || ch == 'D' ||
			ch == 'm' || ch == 'M' ||
			ch == 'y' || ch == 'Y' ||
			ch == 'h' || ch == 'H' ||
			ch == 's' || ch == 'S':
			return true
		case ch == 'e' || ch == 'E':
			if prev != '0' && prev != '#' && prev != '?' && prev != '.' {
				return true
			}
		}
		if !inDoubleQuote && !inBracket {
			prev = ch
		}
	}
	return false
}
