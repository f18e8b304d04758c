// Package cellformat implements the multi-section cell format grammar: a
// format code is split on unescaped semicolons into up to four parts, each
// part carrying optional bracket tags (color, comparison condition, locale)
// ahead of a body of placeholder and literal tokens.  A parsed CellFormat
// selects the part matching a value and renders it, reporting the resolved
// text color alongside the text.
package cellformat

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokLiteral tokenKind = iota // escaped char, quoted run, fill, padding
	tokText                     // @
	tokDigits                   // run of 0 # ? and grouping commas
	tokExponent                 // e+ / e- / E+ / E-
	tokYear
	tokMonth // month or minute, resolved at render time
	tokDay
	tokHour
	tokSecond
	tokAmPm
	tokElapsed  // [h] [hh] [m] [mm] [s] [ss]
	tokCurrency // [$...] locale/currency tag
	tokOther    // any single uncategorized character
)

type token struct {
	kind tokenKind
	raw  string
}

// ErrFormat reports a format body the tokenizer cannot consume.
type ErrFormat struct {
	Code string
	Pos  int
}

func (e *ErrFormat) Error() string {
	return fmt.Sprintf("cellformat: invalid format %q at offset %d", e.Code, e.Pos)
}

// tokenize splits a part body into tokens.  The whole body must be consumed;
// a character no rule accepts is folded into tokOther so unusual literals
// (slashes, colons, spaces) survive, but an unterminated quote or bracket is
// an error.
func tokenize(body string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == '\\':
			if i+1 >= len(body) {
				return nil, &ErrFormat{Code: body, Pos: i}
			}
			toks = append(toks, token{tokLiteral, body[i : i+2]})
			i += 2

		case c == '"':
			end := scanQuoted(body, i)
			if end < 0 {
				return nil, &ErrFormat{Code: body, Pos: i}
			}
			toks = append(toks, token{tokLiteral, body[i:end]})
			i = end

		case c == '_' || c == '*':
			if i+1 >= len(body) {
				return nil, &ErrFormat{Code: body, Pos: i}
			}
			toks = append(toks, token{tokLiteral, body[i : i+2]})
			i += 2

		case c == '@':
			toks = append(toks, token{tokText, "@"})
			i++

		case c == '0' || c == '#' || c == '?':
			j := i + 1
			for j < len(body) && strings.IndexByte("0#?,", body[j]) >= 0 {
				j++
			}
			toks = append(toks, token{tokDigits, body[i:j]})
			i = j

		case (c == 'e' || c == 'E') && i+1 < len(body) && (body[i+1] == '+' || body[i+1] == '-'):
			toks = append(toks, token{tokExponent, body[i : i+2]})
			i += 2

		case c == '[':
			tok, end, err := scanBracket(body, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = end

		case isDateChar(c):
			j := i + 1
			lower := lowerByte(c)
			for j < len(body) && lowerByte(body[j]) == lower {
				j++
			}
			kind, run := dateRun(lower, body[i:j])
			toks = append(toks, token{kind, run})
			i += len(run)

		case (c == 'a' || c == 'A') && hasAmPmAt(body, i):
			run := amPmRunAt(body, i)
			toks = append(toks, token{tokAmPm, run})
			i += len(run)

		default:
			toks = append(toks, token{tokOther, string(c)})
			i++
		}
	}
	return toks, nil
}

func isDateChar(c byte) bool {
	switch lowerByte(c) {
	case 'y', 'm', 'd', 'h', 's':
		return true
	}
	return false
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// dateRun maps a run of a single date letter to its token, capping runs at
// the longest meaningful repeat for the letter.
func dateRun(lower byte, run string) (tokenKind, string) {
	max := 0
	var kind tokenKind
	switch lower {
	case 'y':
		kind, max = tokYear, 4
	case 'm':
		kind, max = tokMonth, 5
	case 'd':
		kind, max = tokDay, 4
	case 'h':
		kind, max = tokHour, 2
	case 's':
		kind, max = tokSecond, 2
	}
	if len(run) > max {
		run = run[:max]
	}
	return kind, run
}

// hasAmPmAt reports whether body[i:] starts an AM/PM or A/P marker.
func hasAmPmAt(body string, i int) bool {
	return amPmRunAt(body, i) != ""
}

func amPmRunAt(body string, i int) string {
	rest := body[i:]
	// The m on either side is optional, so am/p and a/pm are markers too.
	// Longer forms first so am/pm is not consumed as a/p.
	for _, marker := range []string{"AM/PM", "AM/P", "A/PM", "A/P"} {
		if len(rest) >= len(marker) && strings.EqualFold(rest[:len(marker)], marker) {
			return rest[:len(marker)]
		}
	}
	return ""
}

// scanQuoted returns the index one past the closing quote, honoring
// backslash-escaped quotes, or -1 when unterminated.
func scanQuoted(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return -1
}

// scanBracket consumes a bracket construct inside a part body.  Only elapsed
// time units and [$...] locale tags are legal here; color and condition tags
// must lead the part and are handled before tokenizing.
func scanBracket(body string, start int) (token, int, error) {
	end := strings.IndexByte(body[start:], ']')
	if end < 0 {
		return token{}, 0, &ErrFormat{Code: body, Pos: start}
	}
	end += start + 1
	content := body[start+1 : end-1]

	if strings.HasPrefix(content, "$") {
		return token{tokCurrency, body[start:end]}, end, nil
	}
	if isElapsedUnit(content) {
		return token{tokElapsed, body[start:end]}, end, nil
	}
	return token{}, 0, &ErrFormat{Code: body, Pos: start}
}

func isElapsedUnit(content string) bool {
	lower := strings.ToLower(content)
	switch lower {
	case "h", "hh", "m", "mm", "s", "ss":
		return true
	}
	return false
}

// literalValue renders a literal token's visible text.
func literalValue(raw string) string {
	switch raw[0] {
	case '\\':
		return raw[1:]
	case '"':
		inner := raw[1 : len(raw)-1]
		return strings.ReplaceAll(inner, `\"`, `"`)
	case '_':
		return " "
	case '*':
		return ""
	}
	return raw
}
