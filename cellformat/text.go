package cellformat

type textPiece struct {
	literal string
	marker  bool
}

// TextFormatter renders a text-kind part: the cell text replaces every '@'
// marker, and the remaining tokens become their literal values.
type TextFormatter struct {
	pieces []textPiece
}

func newTextFormatter(toks []token) *TextFormatter {
	f := &TextFormatter{}
	for _, tok := range toks {
		switch tok.kind {
		case tokText:
			f.pieces = append(f.pieces, textPiece{marker: true})
		case tokLiteral, tokOther:
			f.pieces = append(f.pieces, textPiece{literal: literalValue(tok.raw)})
		}
	}
	return f
}

// Format substitutes value for each marker.
func (f *TextFormatter) Format(value string) string {
	var b []byte
	for _, p := range f.pieces {
		if p.marker {
			b = append(b, value...)
		} else {
			b = append(b, p.literal...)
		}
	}
	return string(b)
}
