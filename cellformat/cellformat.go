package cellformat

import (
	"fmt"
	"math"
	"strings"

	"github.com/vaadin-component-factory/go-cellfmt/numfmt"
	"github.com/vaadin-component-factory/go-cellfmt/palette"
)

// Result is the outcome of applying a format to a value.
type Result struct {
	// Applies reports whether a format part matched the value.  When false
	// the text is a General rendering (or the raw string) with no color.
	Applies bool
	Text    string
	Color   *palette.RGB
}

// CellFormat is a parsed multi-section format code.
type CellFormat struct {
	code  string
	parts []*Part

	// hasConditions is set when any part carries an explicit bracket
	// condition, which switches part selection from positional to
	// first-match.
	hasConditions bool
}

// Parse parses a full format code into its sections.
func Parse(code string) (*CellFormat, error) {
	sections := SplitSections(code)
	if len(sections) > 4 {
		return nil, fmt.Errorf("cellformat: too many sections in %q", code)
	}
	cf := &CellFormat{code: code}
	for _, sec := range sections {
		p, err := ParsePart(sec)
		if err != nil {
			return nil, err
		}
		if p.Cond != nil {
			cf.hasConditions = true
		}
		cf.parts = append(cf.parts, p)
	}
	if len(cf.parts) == 0 {
		cf.parts = []*Part{{Kind: KindGeneral}}
	}
	// The fourth section formats string values regardless of its kind, so
	// build its text formatter up front; a parsed CellFormat is shared
	// between goroutines and must not mutate after Parse returns.
	if len(cf.parts) == 4 {
		if p := cf.parts[3]; p.text == nil {
			p.text = newTextFormatter(p.toks)
		}
	}
	return cf, nil
}

// Code returns the original format code.
func (cf *CellFormat) Code() string { return cf.code }

// SplitSections splits a format code on semicolons that are not escaped and
// not inside a quoted literal.
func SplitSections(code string) []string {
	var (
		sections []string
		start    int
		inQuote  bool
	)
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '\\':
			i++
		case '"':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				sections = append(sections, code[start:i])
				start = i + 1
			}
		}
	}
	sections = append(sections, code[start:])
	return sections
}

// NeedsUnified reports whether a format code requires multi-section
// selection: two or more sections, or an explicit relational condition.
func NeedsUnified(code string) bool {
	if len(SplitSections(code)) > 1 {
		return true
	}
	inQuote := false
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '\\':
			i++
		case '"':
			inQuote = !inQuote
		case '[':
			if !inQuote && i+1 < len(code) && strings.IndexByte("<>=!", code[i+1]) >= 0 {
				return true
			}
		}
	}
	return false
}

// Apply selects the part matching v and renders it.
func (cf *CellFormat) Apply(e *numfmt.Engine, v any) Result {
	switch val := v.(type) {
	case float64:
		return cf.applyNumeric(e, val)
	case string:
		return cf.applyText(val)
	case bool:
		if val {
			return cf.applyText("TRUE")
		}
		return cf.applyText("FALSE")
	case nil:
		return Result{Applies: true}
	}
	return cf.applyText(fmt.Sprint(v))
}

func (cf *CellFormat) applyNumeric(e *numfmt.Engine, val float64) Result {
	if cf.hasConditions {
		return cf.applyConditional(e, val)
	}

	// Positional selection: positive;negative;zero.  The negative slot
	// renders the absolute value, its body carrying the visual sign.
	var (
		part          *Part
		suppressMinus bool
	)
	switch len(cf.parts) {
	case 1:
		part = cf.parts[0]
	case 2:
		if val < 0 {
			part, suppressMinus = cf.parts[1], true
		} else {
			part = cf.parts[0]
		}
	default:
		switch {
		case val > 0:
			part = cf.parts[0]
		case val < 0:
			part, suppressMinus = cf.parts[1], true
		default:
			part = cf.parts[2]
		}
	}
	return cf.renderPart(e, part, val, suppressMinus)
}

// applyConditional picks the first part whose condition matches; parts
// without a condition act as the catch-all, in order.
func (cf *CellFormat) applyConditional(e *numfmt.Engine, val float64) Result {
	for _, p := range cf.parts {
		if p.Cond != nil && p.Cond.Applies(val) {
			return cf.renderPart(e, p, val, false)
		}
	}
	for _, p := range cf.parts {
		if p.Cond == nil {
			return cf.renderPart(e, p, val, false)
		}
	}
	return Result{Text: numfmt.General(val)}
}

func (cf *CellFormat) renderPart(e *numfmt.Engine, p *Part, val float64, suppressMinus bool) Result {
	res := Result{Applies: true, Color: p.Color}
	if p.Body == "" {
		return res
	}
	switch p.Kind {
	case KindDate, KindElapsed:
		res.Text = e.RenderDate(p.Body, val)
	case KindNumber:
		res.Text = e.RenderNumber(p.Body, val, suppressMinus)
	case KindText:
		res.Text = p.text.Format(generalText(val, suppressMinus))
	default:
		res.Text = generalText(val, suppressMinus)
	}
	return res
}

func generalText(val float64, suppressMinus bool) string {
	if suppressMinus {
		val = math.Abs(val)
	}
	return numfmt.General(val)
}

// applyText routes a string value.  A four-section format applies its fourth
// part; otherwise a leading text part applies, and any other format leaves
// the string unchanged.
func (cf *CellFormat) applyText(s string) Result {
	if len(cf.parts) == 4 {
		p := cf.parts[3]
		if p.Body == "" {
			return Result{Applies: true, Color: p.Color}
		}
		return Result{Applies: true, Color: p.Color, Text: p.text.Format(s)}
	}
	if p := cf.parts[0]; p.Kind == KindText {
		return Result{Applies: true, Color: p.Color, Text: p.text.Format(s)}
	}
	return Result{Text: s}
}
