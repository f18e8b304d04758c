package numfmt

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// fractionPat matches the first fraction specification in a format body: an
// optional whole-number part, a numerator, a slash, and a denominator.  The
// denominator is either digit placeholders (bounding the approximation) or a
// literal value.
var fractionPat = regexp.MustCompile(`(?:([#\d]+)\s+)?([#\d]+)\s*/\s*([#\d]+)`)

// fractionFormat is a compiled fraction body such as "# ?/8" or "#/##".
type fractionFormat struct {
	hasWhole   bool
	exactDenom int // literal denominator, 0 when placeholder-bounded
	maxDenom   int // largest denominator allowed by placeholder count
	prefix     string
	suffix     string
}

// parseFraction compiles a fraction body.  Returns nil when the body has no
// recognizable fraction specification.
func parseFraction(body string) *fractionFormat {
	// '?' placeholders behave like '#' for matching purposes.
	normalized := strings.Map(func(r rune) rune {
		if r == '?' {
			return '#'
		}
		return r
	}, body)

	loc := fractionPat.FindStringSubmatchIndex(normalized)
	if loc == nil {
		return nil
	}
	groups := fractionPat.FindStringSubmatch(normalized)

	f := &fractionFormat{
		hasWhole: groups[1] != "",
		prefix:   unquoteLiteral(normalized[:loc[0]]),
		suffix:   unquoteLiteral(normalized[loc[1]:]),
	}

	denom := groups[3]
	if !strings.ContainsRune(denom, '#') {
		n, err := strconv.Atoi(denom)
		if err != nil || n <= 0 {
			return nil
		}
		f.exactDenom = n
	} else {
		f.maxDenom = int(math.Pow10(len(denom))) - 1
	}
	return f
}

func (f *fractionFormat) render(val float64, suppressMinus bool) string {
	neg := val < 0
	abs := math.Abs(val)

	var whole int64
	frac := abs
	if f.hasWhole {
		whole = int64(math.Floor(abs))
		frac = abs - float64(whole)
	}

	var num, den int64
	if f.exactDenom > 0 {
		den = int64(f.exactDenom)
		num = int64(math.Round(frac * float64(den)))
	} else {
		num, den = approximateFraction(frac, int64(f.maxDenom))
	}
	if f.hasWhole && num == den {
		num = 0
		whole++
	}

	var b strings.Builder
	b.WriteString(f.prefix)
	if neg && !suppressMinus {
		b.WriteByte('-')
	}
	switch {
	case f.hasWhole && num == 0:
		b.WriteString(strconv.FormatInt(whole, 10))
	case f.hasWhole && whole != 0:
		b.WriteString(strconv.FormatInt(whole, 10))
		b.WriteByte(' ')
		fallthrough
	default:
		b.WriteString(strconv.FormatInt(num, 10))
		b.WriteByte('/')
		b.WriteString(strconv.FormatInt(den, 10))
	}
	b.WriteString(f.suffix)
	return b.String()
}

// approximateFraction finds the best rational approximation num/den of v with
// den bounded by maxDen, using continued-fraction convergents.
func approximateFraction(v float64, maxDen int64) (int64, int64) {
	if maxDen < 1 {
		maxDen = 1
	}
	var (
		p0, q0 int64 = 0, 1
		p1, q1 int64 = 1, 0
		x            = v
	)
	for i := 0; i < 64; i++ {
		a := int64(math.Floor(x))
		p2 := a*p1 + p0
		q2 := a*q1 + q0
		if q2 > maxDen {
			break
		}
		p0, q0, p1, q1 = p1, q1, p2, q2
		rem := x - float64(a)
		if rem < 1e-12 {
			break
		}
		x = 1 / rem
	}
	if q1 == 0 {
		return 0, 1
	}
	// Round the final convergent against the target.
	if math.Abs(float64(p1)/float64(q1)-v) > math.Abs(float64(p0)/float64(q0)-v) && q0 > 0 {
		return p0, q0
	}
	return p1, q1
}
