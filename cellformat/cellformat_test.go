package cellformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaadin-component-factory/go-cellfmt/numfmt"
)

func testEngine() *numfmt.Engine {
	return numfmt.NewEngine(false, false, nil)
}

func TestSplitSections(t *testing.T) {
	tests := []struct {
		code string
		want []string
	}{
		{"0.00", []string{"0.00"}},
		{"0.00;(0.00)", []string{"0.00", "(0.00)"}},
		{`0";"0`, []string{`0";"0`}},
		{`0\;0`, []string{`0\;0`}},
		{"0;;;@", []string{"0", "", "", "@"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitSections(tt.code), "code %q", tt.code)
	}
}

func TestNeedsUnified(t *testing.T) {
	assert.False(t, NeedsUnified("0.00"))
	assert.False(t, NeedsUnified("[Red]0.00"))
	assert.False(t, NeedsUnified(`"a;b"0`))
	assert.True(t, NeedsUnified("0.00;(0.00)"))
	assert.True(t, NeedsUnified("[>=100]0;0.0"))
	assert.True(t, NeedsUnified("[<0]General"))
}

func TestPartClassification(t *testing.T) {
	tests := []struct {
		body string
		want Kind
	}{
		{"", KindGeneral},
		{"General", KindGeneral},
		{"0.00", KindNumber},
		{"#,##0", KindNumber},
		{"0.00E+00", KindNumber},
		{"yyyy-mm-dd", KindDate},
		{"h:mm AM/PM", KindDate},
		{"h:mm am/p", KindDate},
		{"h:mm a/pm", KindDate},
		{"mm:ss", KindDate},
		{"[h]:mm:ss", KindElapsed},
		{"@", KindText},
		{`"total: "@`, KindText},
		{`"zero"`, KindNumber},
		// The first decisive token wins: a '#' placeholder makes the part a
		// number even with a later m, and a text marker after digits makes
		// it text.
		{"# m", KindNumber},
		{"0@", KindText},
		{"m", KindDate},
	}
	for _, tt := range tests {
		p, err := ParsePart(tt.body)
		require.NoError(t, err, "body %q", tt.body)
		assert.Equal(t, tt.want, p.Kind, "body %q", tt.body)
	}
}

func TestPartTags(t *testing.T) {
	p, err := ParsePart("[Red][>=100]0.0")
	require.NoError(t, err)
	require.NotNil(t, p.Color)
	assert.Equal(t, "ff0000", p.Color.Hex())
	require.NotNil(t, p.Cond)
	assert.True(t, p.Cond.Applies(100))
	assert.False(t, p.Cond.Applies(99.9))
	assert.Equal(t, "0.0", p.Body)

	// Unknown color names are tolerated: no color, no error.
	p, err = ParsePart("[Purple]0.00")
	require.NoError(t, err)
	assert.Nil(t, p.Color)
	assert.Equal(t, KindNumber, p.Kind)
}

func TestPartTagErrors(t *testing.T) {
	_, err := ParsePart("[Red][Blue]0")
	assert.Error(t, err)
	_, err = ParsePart("[>1][<2]0")
	assert.Error(t, err)
	_, err = ParsePart("[>xyz]0")
	assert.Error(t, err)
	_, err = ParsePart("[>5][$€-407]0[$USD-409]")
	assert.Error(t, err)
}

func TestConditionOperators(t *testing.T) {
	tests := []struct {
		content string
		val     float64
		want    bool
	}{
		{">5", 6, true},
		{">5", 5, false},
		{">=5", 5, true},
		{"<5", 4, true},
		{"<=5", 5, true},
		{"=5", 5, true},
		{"==5", 5, true},
		{"<>5", 4, true},
		{"!=5", 5, false},
		{"<=-2", -3, true},
	}
	for _, tt := range tests {
		c, err := parseCondition(tt.content)
		require.NoError(t, err, "condition %q", tt.content)
		assert.Equal(t, tt.want, c.Applies(tt.val), "[%s] on %v", tt.content, tt.val)
	}
}

func TestApplyPositional(t *testing.T) {
	e := testEngine()
	cf, err := Parse("0.00;(0.00)")
	require.NoError(t, err)

	res := cf.Apply(e, -5.0)
	assert.True(t, res.Applies)
	assert.Equal(t, "(5.00)", res.Text)

	res = cf.Apply(e, 5.0)
	assert.Equal(t, "5.00", res.Text)
	res = cf.Apply(e, 0.0)
	assert.Equal(t, "0.00", res.Text)
}

func TestApplyThreeParts(t *testing.T) {
	e := testEngine()
	cf, err := Parse(`0.0;-0.0;"zero"`)
	require.NoError(t, err)

	assert.Equal(t, "1.5", cf.Apply(e, 1.5).Text)
	assert.Equal(t, "-1.5", cf.Apply(e, -1.5).Text)
	assert.Equal(t, "zero", cf.Apply(e, 0.0).Text)
}

func TestApplyEmptySectionSuppresses(t *testing.T) {
	e := testEngine()
	cf, err := Parse("0;;")
	require.NoError(t, err)
	res := cf.Apply(e, 0.0)
	assert.True(t, res.Applies)
	assert.Equal(t, "", res.Text)
}

func TestApplyConditional(t *testing.T) {
	e := testEngine()
	cf, err := Parse("[>=100][Green]0;[Red]0.0")
	require.NoError(t, err)

	res := cf.Apply(e, 150.0)
	assert.Equal(t, "150", res.Text)
	require.NotNil(t, res.Color)
	assert.Equal(t, "00ff00", res.Color.Hex())

	res = cf.Apply(e, 50.0)
	assert.Equal(t, "50.0", res.Text)
	require.NotNil(t, res.Color)
	assert.Equal(t, "ff0000", res.Color.Hex())
}

func TestApplyConditionalNoMatch(t *testing.T) {
	e := testEngine()
	cf, err := Parse("[>100]0.0")
	require.NoError(t, err)
	res := cf.Apply(e, 50.0)
	assert.False(t, res.Applies)
	assert.Equal(t, "50", res.Text)
	assert.Nil(t, res.Color)
}

func TestApplyText(t *testing.T) {
	e := testEngine()

	cf, err := Parse(`"Name: "@`)
	require.NoError(t, err)
	assert.Equal(t, "Name: Bob", cf.Apply(e, "Bob").Text)

	// A non-text single-section format leaves strings unchanged.
	cf, err = Parse("0.00")
	require.NoError(t, err)
	res := cf.Apply(e, "hello")
	assert.False(t, res.Applies)
	assert.Equal(t, "hello", res.Text)

	// Four sections route strings to the fourth.
	cf, err = Parse(`0;-0;0;"Hi "@`)
	require.NoError(t, err)
	assert.Equal(t, "Hi x", cf.Apply(e, "x").Text)

	// An empty fourth section hides the string.
	cf, err = Parse("0;-0;0;")
	require.NoError(t, err)
	assert.Equal(t, "", cf.Apply(e, "x").Text)

	// A non-text fourth section still formats the string, emitting only its
	// literals.
	cf, err = Parse(`0;-0;"zero";"[N]"0`)
	require.NoError(t, err)
	assert.Equal(t, "[N]", cf.Apply(e, "abc").Text)
}

func TestApplyLeadingTextMarker(t *testing.T) {
	// A text marker decides the kind even after digit placeholders, so a
	// numeric value renders through General and the surrounding literals.
	e := testEngine()
	cf, err := Parse("0@")
	require.NoError(t, err)
	assert.Equal(t, "5", cf.Apply(e, 5.0).Text)
}

func TestApplyBool(t *testing.T) {
	e := testEngine()
	cf, err := Parse("@")
	require.NoError(t, err)
	assert.Equal(t, "TRUE", cf.Apply(e, true).Text)
	assert.Equal(t, "FALSE", cf.Apply(e, false).Text)
}

func TestApplyDate(t *testing.T) {
	e := testEngine()
	cf, err := Parse("yyyy-mm-dd;;")
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01", cf.Apply(e, 44927.0).Text)
}

func TestTokenizeErrors(t *testing.T) {
	_, err := tokenize(`"unterminated`)
	assert.Error(t, err)
	_, err = tokenize("[Garbage in body]0")
	assert.Error(t, err)
	_, err = tokenize(`0\`)
	assert.Error(t, err)
}

func TestTextFormatterLiterals(t *testing.T) {
	p, err := ParsePart(`@" apples"`)
	require.NoError(t, err)
	assert.Equal(t, "5 apples", p.text.Format("5"))

	p, err = ParsePart(`\[@\]`)
	require.NoError(t, err)
	assert.Equal(t, "[x]", p.text.Format("x"))
}
