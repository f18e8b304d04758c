package cellformat

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vaadin-component-factory/go-cellfmt/palette"
)

// Kind classifies what a format part renders.
type Kind int

const (
	KindGeneral Kind = iota
	KindNumber
	KindDate
	KindElapsed
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindElapsed:
		return "elapsed"
	case KindText:
		return "text"
	}
	return "general"
}

// Part is one section of a format code: optional leading color and condition
// tags followed by the placeholder body.
type Part struct {
	Color *palette.RGB
	Cond  *Condition
	Kind  Kind
	Body  string // tags stripped; locale/currency tags remain

	toks []token
	text *TextFormatter
}

// ParsePart parses one section.  Leading bracket tags are consumed in any
// order; a duplicate color or condition, a malformed condition, or a
// condition combined with two or more locale tags is an error.  An unknown
// color name is tolerated and leaves the part colorless.
func ParsePart(s string) (*Part, error) {
	p := &Part{}
	rest := s

tags:
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, &ErrFormat{Code: s, Pos: len(s) - len(rest)}
		}
		content := rest[1:end]

		switch {
		case strings.HasPrefix(content, "$"):
			// Locale tags belong to the body; the renderer substitutes the
			// currency symbol in place.
			break tags

		case isElapsedUnit(content):
			break tags

		case looksLikeCondition(content):
			cond, err := parseCondition(content)
			if err != nil {
				return nil, err
			}
			if p.Cond != nil {
				return nil, fmt.Errorf("cellformat: duplicate condition in %q", s)
			}
			p.Cond = cond

		case content != "" && unicode.IsLetter(rune(content[0])):
			if p.Color != nil {
				return nil, fmt.Errorf("cellformat: duplicate color in %q", s)
			}
			if rgb, ok := palette.Resolve(content); ok {
				c := rgb
				p.Color = &c
			}
			// Unknown names leave Color nil; palette logs the miss once.

		default:
			return nil, &ErrFormat{Code: s, Pos: len(s) - len(rest)}
		}
		rest = rest[end+1:]
	}

	p.Body = rest
	toks, err := tokenize(rest)
	if err != nil {
		return nil, err
	}
	p.toks = toks

	localeTags := 0
	for _, tok := range toks {
		if tok.kind == tokCurrency {
			localeTags++
		}
	}
	if p.Cond != nil && localeTags >= 2 {
		return nil, fmt.Errorf("cellformat: condition with multiple locale tags in %q", s)
	}

	p.Kind = classify(rest, toks)
	if p.Kind == KindText {
		p.text = newTextFormatter(toks)
	}
	return p, nil
}

// classify derives the part kind by walking tokens in order and returning on
// the first decisive one: a text marker, a year or day token, an elapsed
// bracket, or a '#'/'?' placeholder.  Months, hours, seconds and bare '0'
// runs are ambiguous on their own, so they only weigh in once the walk ends
// without a decision.
func classify(body string, toks []token) Kind {
	if body == "" || strings.EqualFold(strings.TrimSpace(body), "general") {
		return KindGeneral
	}
	var couldBeDate, sawZero bool
	for _, tok := range toks {
		switch tok.kind {
		case tokText:
			return KindText
		case tokYear, tokDay:
			return KindDate
		case tokElapsed:
			return KindElapsed
		case tokExponent:
			return KindNumber
		case tokDigits:
			if strings.ContainsAny(tok.raw, "#?") {
				return KindNumber
			}
			sawZero = true
		case tokMonth, tokHour, tokSecond, tokAmPm:
			couldBeDate = true
		}
	}
	if couldBeDate {
		return KindDate
	}
	if sawZero {
		return KindNumber
	}
	// Only literals remain: a constant-string section such as "zero".  The
	// number renderer emits the literals and no digits.
	return KindNumber
}
