package numfmt

import (
	"math"
	"strconv"
	"strings"

	"github.com/xuri/nfp"
)

// numberMeta is the format metadata collected in the first pass over the
// token stream of a cleaned number body.
type numberMeta struct {
	hasPercent      bool
	hasThousands    bool
	decZeros        int // count of '0' placeholders after the decimal point
	decHashes       int // count of '#' placeholders after the decimal point
	intZeros        int // count of '0' placeholders before the decimal point
	hasDecimal      bool
	hasExplicitSign bool // literal '+' or '-' in the body
}

// numberRenderer is a compiled number body: cleaning, scaling, grouping, and
// token metadata are resolved once and reused for every value.
type numberRenderer struct {
	general  bool
	frac     *fractionFormat
	sci      *sciFormat
	scale    float64 // divisor from trailing-comma scaling (1 when absent)
	items    []nfp.Token
	meta     numberMeta
	groupSep string
	hashOnly bool // '#' placeholders but no '0' — CSV renders zero as ""
}

// RenderNumber renders a numeric (non-date) value using the given format
// body.  suppressMinus is set when the caller selected a dedicated negative
// section, whose body encodes the sign visually (e.g. parentheses); the
// rendered digits are then the absolute value with no automatic minus.
func (e *Engine) RenderNumber(body string, val float64, suppressMinus bool) string {
	r := e.compileNumber(body)
	return e.renderCompiled(r, val, suppressMinus)
}

func (e *Engine) compileNumber(body string) *numberRenderer {
	if cached, ok := e.numbers.Load(body); ok {
		return cached.(*numberRenderer)
	}
	r := e.buildNumber(body)
	e.numbers.Store(body, r)
	return r
}

func (e *Engine) buildNumber(body string) *numberRenderer {
	r := &numberRenderer{scale: 1}

	if strings.EqualFold(strings.TrimSpace(body), "general") {
		r.general = true
		return r
	}

	// Fraction formats take over the whole body; detect before cleaning so
	// ?-placeholders are still visible.
	if strings.Contains(body, "#/") || strings.Contains(body, "?/") {
		if f := parseFraction(body); f != nil {
			r.frac = f
			return r
		}
	}

	cleaned := e.cleanBody(body)

	// Trailing commas scale the displayed value down by 1000 apiece.
	if n := len(cleaned) - len(strings.TrimRight(cleaned, ",")); n > 0 {
		cleaned = cleaned[:len(cleaned)-n]
		r.scale = math.Pow(1000, float64(n))
	}

	// An alternate grouping separator (e.g. #'##0) is normalized to a comma
	// for parsing and remembered for output.
	cleaned, r.groupSep = detectGrouping(cleaned)
	if r.groupSep == "" {
		r.groupSep = e.syms.Group
	}

	// A scientific exponent marker routes to the dedicated renderer; nfp's
	// token stream does not model the exponent digits.
	if sci := parseScientific(cleaned); sci != nil {
		r.sci = sci
		return r
	}

	ps := nfp.NumberFormatParser()
	sections := ps.Parse(cleaned)
	if len(sections) == 0 {
		r.general = true
		return r
	}
	r.items = sections[0].Items

	afterDecimal := false
	for _, tok := range r.items {
		switch tok.TType {
		case nfp.TokenTypePercent:
			r.meta.hasPercent = true
		case nfp.TokenTypeThousandsSeparator:
			r.meta.hasThousands = true
		case nfp.TokenTypeDecimalPoint:
			r.meta.hasDecimal = true
			afterDecimal = true
		case nfp.TokenTypeZeroPlaceHolder:
			if afterDecimal {
				r.meta.decZeros += len(tok.TValue)
			} else {
				r.meta.intZeros += len(tok.TValue)
			}
		case nfp.TokenTypeHashPlaceHolder:
			if afterDecimal {
				r.meta.decHashes += len(tok.TValue)
			}
		case nfp.TokenTypeLiteral:
			if tok.TValue == "+" || tok.TValue == "-" {
				r.meta.hasExplicitSign = true
			}
		}
	}

	r.hashOnly = strings.Contains(cleaned, "#") && !strings.Contains(cleaned, "0")
	return r
}

func (e *Engine) renderCompiled(r *numberRenderer, val float64, suppressMinus bool) string {
	if r.general {
		if val < 0 && suppressMinus {
			return General(math.Abs(val))
		}
		return General(val)
	}

	val /= r.scale

	// Excel leaves a #-only format empty for zero when saving as CSV.
	if e.emulateCSV && val == 0 && r.hashOnly {
		return ""
	}

	if r.frac != nil {
		return r.frac.render(val, suppressMinus)
	}
	if r.sci != nil {
		return r.sci.render(val, suppressMinus, e.syms)
	}

	m := r.meta
	totalDecPlaces := m.decZeros + m.decHashes

	absVal := math.Abs(val)
	if m.hasPercent {
		absVal *= 100
	}

	// Format the absolute value into integer and fraction digit strings.
	// Excel rounds displayed values half-up; Go's FormatFloat rounds ties
	// to even, so round explicitly first.
	var intStr, fracStr string
	if m.hasDecimal {
		rounded := roundHalfUp(absVal, totalDecPlaces)
		formatted := strconv.FormatFloat(rounded, 'f', totalDecPlaces, 64)
		dotIdx := strings.IndexByte(formatted, '.')
		if dotIdx >= 0 {
			intStr = formatted[:dotIdx]
			fracStr = formatted[dotIdx+1:]
		} else {
			intStr = formatted
			fracStr = strings.Repeat("0", totalDecPlaces)
		}
		// '#' placeholders drop trailing zeros beyond what '0' placeholders
		// require.
		if m.decHashes > 0 && len(fracStr) > m.decZeros {
			trimTo := len(fracStr)
			for trimTo > m.decZeros && fracStr[trimTo-1] == '0' {
				trimTo--
			}
			fracStr = fracStr[:trimTo]
		}
	} else {
		intStr = strconv.FormatFloat(roundHalfUp(absVal, 0), 'f', 0, 64)
	}

	for len(intStr) < m.intZeros {
		intStr = "0" + intStr
	}

	if m.hasThousands && len(intStr) > 3 {
		intStr = insertGroupSep(intStr, r.groupSep)
	}

	needsMinus := val < 0 && !suppressMinus && !m.hasExplicitSign

	// Reassemble by walking the tokens in order.
	var sb strings.Builder
	if needsMinus {
		sb.WriteByte('-')
	}

	intConsumed := false
	fracConsumed := false
	afterDecimal := false

	for _, tok := range r.items {
		switch tok.TType {
		case nfp.TokenTypeLiteral:
			sb.WriteString(tok.TValue)

		case nfp.TokenTypeDecimalPoint:
			if len(fracStr) > 0 {
				sb.WriteString(e.syms.Decimal)
			}
			afterDecimal = true

		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder:
			if afterDecimal {
				if !fracConsumed {
					sb.WriteString(fracStr)
					fracConsumed = true
				}
			} else {
				if !intConsumed {
					sb.WriteString(intStr)
					intConsumed = true
				}
			}

		case nfp.TokenTypePercent:
			sb.WriteByte('%')

		case nfp.TokenTypeThousandsSeparator:
			// Already applied to intStr; the raw comma token is not output.

		case nfp.TokenTypeColor, nfp.TokenTypeCondition,
			nfp.TokenTypeCurrencyLanguage, nfp.TokenTypeAlignment:
			// Formatting-only tokens.
		}
	}

	if sb.Len() == 0 {
		return e.fallback(r.bodyLabel(), val, "no output tokens")
	}
	return sb.String()
}

func (r *numberRenderer) bodyLabel() string {
	switch {
	case r.frac != nil:
		return "fraction"
	case r.sci != nil:
		return "scientific"
	default:
		return "number"
	}
}

// roundHalfUp rounds a non-negative value to the given number of decimal
// places with ties going up, matching how Excel rounds for display.
func roundHalfUp(v float64, places int) float64 {
	pow := math.Pow10(places)
	return math.Floor(v*pow+0.5) / pow
}

// insertGroupSep inserts the grouping separator every three digits from the
// right in a digits-only integer string.
func insertGroupSep(s, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(n + (n/3)*len(sep))
	rem := n % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < n; i += 3 {
		b.WriteString(sep)
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// detectGrouping finds an alternate grouping separator of the form
// "#'##0" — a digit placeholder, a separator that is not a digit, comma, or
// decimal point, then three digit placeholders — outside quoted literals.
// It returns the body with the separator normalized to a comma, plus the
// separator itself ("" when the default applies).
func detectGrouping(s string) (string, string) {
	inQuote := false
	isPlace := func(c byte) bool { return c == '#' || c == '0' }
	for i := 0; i+4 < len(s); i++ {
		c := s[i]
		if c == '"' {
			inQuote = !inQuote
			continue
		}
		if inQuote || !isPlace(c) {
			continue
		}
		sep := s[i+1]
		if sep == ',' || sep == '.' || isPlace(sep) || sep == '"' {
			continue
		}
		if isPlace(s[i+2]) && isPlace(s[i+3]) && isPlace(s[i+4]) {
			return s[:i+1] + "," + s[i+2:], string(sep)
		}
	}
	return s, ""
}

// sciFormat is a compiled scientific-notation body such as "0.00E+00".
type sciFormat struct {
	decPlaces int  // mantissa digits after the decimal point
	expDigits int  // minimum exponent digits
	plusSign  bool // "E+" displays a plus for non-negative exponents
	prefix    string
	suffix    string
}

// parseScientific detects an unquoted e/E exponent marker followed by a sign
// and digit placeholders.  Returns nil when the body is not scientific.
func parseScientific(s string) *sciFormat {
	inQuote := false
	for i := 0; i+1 < len(s); i++ {
		c := s[i]
		if c == '"' {
			inQuote = !inQuote
			continue
		}
		if inQuote || (c != 'e' && c != 'E') {
			continue
		}
		sign := s[i+1]
		if sign != '+' && sign != '-' {
			continue
		}
		f := &sciFormat{plusSign: sign == '+'}

		// Mantissa decimals from the text before the marker.
		mantissa := s[:i]
		if dot := strings.IndexByte(mantissa, '.'); dot >= 0 {
			for _, ch := range mantissa[dot+1:] {
				if ch == '0' || ch == '#' {
					f.decPlaces++
				}
			}
		}
		f.prefix = unquoteLiteral(leadingLiteral(mantissa))

		// Exponent digit placeholders after the sign.
		j := i + 2
		for j < len(s) && (s[j] == '0' || s[j] == '#') {
			f.expDigits++
			j++
		}
		if f.expDigits == 0 {
			f.expDigits = 1
		}
		f.suffix = unquoteLiteral(s[j:])
		return f
	}
	return nil
}

// leadingLiteral returns the run of body text before the first digit
// placeholder.
func leadingLiteral(s string) string {
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inQuote = !inQuote
			continue
		}
		if !inQuote && (c == '0' || c == '#' || c == '.') {
			return s[:i]
		}
	}
	return ""
}

func unquoteLiteral(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

func (f *sciFormat) render(val float64, suppressMinus bool, syms *Symbols) string {
	neg := val < 0
	abs := math.Abs(val)

	s := strconv.FormatFloat(abs, 'E', f.decPlaces, 64)
	mant, expPart, _ := strings.Cut(s, "E")
	expVal, _ := strconv.Atoi(expPart)
	if syms.Decimal != "." {
		mant = strings.Replace(mant, ".", syms.Decimal, 1)
	}

	var sign string
	switch {
	case expVal < 0:
		sign = "-"
	case f.plusSign:
		sign = "+"
	}
	digits := strconv.Itoa(int(math.Abs(float64(expVal))))
	for len(digits) < f.expDigits {
		digits = "0" + digits
	}

	var b strings.Builder
	b.WriteString(f.prefix)
	if neg && !suppressMinus {
		b.WriteByte('-')
	}
	b.WriteString(mant)
	b.WriteByte('E')
	b.WriteString(sign)
	b.WriteString(digits)
	b.WriteString(f.suffix)
	return b.String()
}
