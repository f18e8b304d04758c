package cellfmt_test

// Unit tests for the go-cellfmt library.  All fixtures are inline values and
// format codes; no external workbook is required.

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	cellfmt "github.com/vaadin-component-factory/go-cellfmt"
)

// ── ConvertDate ───────────────────────────────────────────────────────────────

func TestConvertDate(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		want    time.Time
		wantErr bool
	}{
		{
			name:  "serial 0 gives 1900-01-01",
			input: 0,
			want:  time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial 0 with time component",
			input: 0.5,
			want:  time.Date(1900, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial 1 gives 1900-01-01 (base+1 day)",
			input: 1,
			want:  time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial 60 gives 1900-03-01 (phantom leap day)",
			input: 60,
			want:  time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial 61 also gives 1900-03-01 (compensated)",
			input: 61,
			want:  time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial 44927 gives 2023-01-01",
			input: 44927,
			want:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "time component rounds to whole seconds",
			input: 44927.999999,
			want:  time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "negative serial rejected",
			input:   -1,
			wantErr: true,
		},
		{
			name:    "serial past year 9999 rejected",
			input:   3_000_000,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cellfmt.ConvertDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ConvertDate(%v): want error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ConvertDate(%v): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ConvertDate(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConvertDateEx1904(t *testing.T) {
	got, err := cellfmt.ConvertDateEx(0, true)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ConvertDateEx(0, true) = %v, want %v", got, want)
	}

	// 1904 serials have no phantom leap day: serial 60 is a plain offset.
	got, err = cellfmt.ConvertDateEx(60, true)
	if err != nil {
		t.Fatal(err)
	}
	want = time.Date(1904, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ConvertDateEx(60, true) = %v, want %v", got, want)
	}
}

// ── FormatCell ────────────────────────────────────────────────────────────────

func TestFormatCellNumbers(t *testing.T) {
	f := cellfmt.New(cellfmt.Options{})
	tests := []struct {
		code string
		val  float64
		want string
	}{
		{"General", 0, "0"},
		{"General", 1234.5678, "1234.5678"},
		{"0.00", 5, "5.00"},
		{"#,##0.00", 1234.5, "1,234.50"},
		{"0.00;(0.00)", -5, "(5.00)"},
		{"0.00;(0.00)", 5, "5.00"},
		{"#,##0.0,", 12345678, "12,345.7"},
		{"# #/8", 2.375, "2 3/8"},
		{"0%", 0.25, "25%"},
		{"0.00E+00", 12345, "1.23E+04"},
		{"0.00", -5, "-5.00"},
		{"0.00", 0.125, "0.13"},
		{"0", 2.5, "3"},
		{"0.0", 0.25, "0.3"},
	}
	for _, tt := range tests {
		got := f.FormatCell(tt.val, 164, tt.code)
		assert.Equal(t, tt.want, got.Text, "%q on %v", tt.code, tt.val)
	}
}

func TestFormatCellBuiltIns(t *testing.T) {
	f := cellfmt.New(cellfmt.Options{})
	// Built-in IDs resolve through the ECMA-376 table when no custom code is
	// given.
	assert.Equal(t, "1,234.50", f.FormatCell(1234.5, 4, "").Text)   // #,##0.00
	assert.Equal(t, "25%", f.FormatCell(0.25, 9, "").Text)          // 0%
	assert.Equal(t, "01-01-23", f.FormatCell(44927.0, 14, "").Text) // mm-dd-yy
	// An explicit custom code wins over the ID.
	assert.Equal(t, "1234.50", f.FormatCell(1234.5, 4, "0.00").Text)
}

func TestFormatCellValues(t *testing.T) {
	f := cellfmt.New(cellfmt.Options{})

	assert.Equal(t, "", f.FormatCell(nil, 0, "").Text)
	assert.Equal(t, "hello", f.FormatCell("hello", 0, "0.00").Text)
	assert.Equal(t, "TRUE", f.FormatCell(true, 0, "").Text)
	assert.Equal(t, "FALSE", f.FormatCell(false, 0, "").Text)
	assert.Equal(t, "#DIV/0!", f.FormatCell(cellfmt.ErrorDiv0, 0, "0.00").Text)
	assert.Equal(t, "#N/A", f.FormatCell(cellfmt.ErrorNA, 0, "").Text)
	assert.Equal(t, "Name: Bob", f.FormatCell("Bob", 164, `"Name: "@`).Text)
}

func TestFormatCellDates(t *testing.T) {
	f := cellfmt.New(cellfmt.Options{})
	assert.Equal(t, "2023-01-01", f.FormatCell(44927.0, 164, "yyyy-mm-dd").Text)
	assert.Equal(t, "12:30", f.FormatCell(0.5208333333333334, 164, "hh:mm").Text)
	assert.Equal(t, "36:00", f.FormatCell(1.5, 164, "[h]:mm").Text)
}

func TestFormatCellInvalidDateCSV(t *testing.T) {
	csv := cellfmt.New(cellfmt.Options{EmulateCSV: true})
	got := csv.FormatCell(-1.0, 164, "yyyy-mm-dd").Text
	assert.Equal(t, strings.Repeat("#", 255), got)

	// Without CSV emulation the raw number shows instead.
	plain := cellfmt.New(cellfmt.Options{})
	assert.Equal(t, "-1", plain.FormatCell(-1.0, 164, "yyyy-mm-dd").Text)
}

func TestFormatCellConditions(t *testing.T) {
	f := cellfmt.New(cellfmt.Options{})

	res := f.FormatCell(150.0, 164, "[>=100][Green]0;[Red]0.0")
	assert.True(t, res.AppliesCondition)
	assert.Equal(t, "150", res.Text)
	require.NotNil(t, res.Color)
	assert.Equal(t, "00ff00", res.Color.Hex())

	res = f.FormatCell(50.0, 164, "[>100]0.0")
	assert.False(t, res.AppliesCondition)
	assert.Equal(t, "50", res.Text)
	assert.Nil(t, res.Color)
}

func TestFormatCellUnknownColor(t *testing.T) {
	f := cellfmt.New(cellfmt.Options{})
	res := f.FormatCell(5.0, 164, "[Purple]0.00")
	assert.Equal(t, "5.00", res.Text)
	assert.Nil(t, res.Color)
}

func TestCellColor(t *testing.T) {
	f := cellfmt.New(cellfmt.Options{})

	hex, ok := f.CellColor(-5.0, 164, "0.00;[Red](0.00)")
	assert.True(t, ok)
	assert.Equal(t, "ff0000", hex)

	_, ok = f.CellColor(5.0, 164, "0.00;[Red](0.00)")
	assert.False(t, ok)
}

func TestFormatCellWithOverride(t *testing.T) {
	f := cellfmt.New(cellfmt.Options{})
	assert.Equal(t, "5.0", f.FormatCellWithOverride(5.0, 164, "0.00", "0.0").Text)
	assert.Equal(t, "5.00", f.FormatCellWithOverride(5.0, 164, "0.00", "").Text)
}

func TestUpdateLocale(t *testing.T) {
	f := cellfmt.New(cellfmt.Options{})
	assert.Equal(t, "1,234.50", f.FormatCell(1234.5, 164, "#,##0.00").Text)

	f.UpdateLocale(language.German)
	assert.Equal(t, "1.234,50", f.FormatCell(1234.5, 164, "#,##0.00").Text)
	assert.Equal(t, "Januar", f.FormatCell(44927.0, 164, "mmmm").Text)

	f.UpdateLocale(language.English)
	assert.Equal(t, "1,234.50", f.FormatCell(1234.5, 164, "#,##0.00").Text)
}

func TestFormatCellMalformedCode(t *testing.T) {
	f := cellfmt.New(cellfmt.Options{})
	// An unparsable code degrades to General instead of failing the cell.
	assert.Equal(t, "5", f.FormatCell(5.0, 164, `"unterminated`).Text)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "5.00", cellfmt.FormatValue(5.0, 164, "0.00", false))
	assert.Equal(t, "1904-01-01", cellfmt.FormatValue(0.0, 164, "yyyy-mm-dd", true))
	assert.Equal(t, "1900-01-01", cellfmt.FormatValue(0.0, 164, "yyyy-mm-dd", false))
}

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		id   int
		code string
		want bool
	}{
		{14, "", true},
		{18, "", true},
		{22, "", true},
		{4, "", false},
		{164, "yyyy-mm-dd", true},
		{164, "0.00", false},
		{164, `"dyed"0.00`, false},
		{164, "[Red]h:mm", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cellfmt.IsDateFormat(tt.id, tt.code), "id=%d code=%q", tt.id, tt.code)
	}
}

func TestFormatCellConcurrent(t *testing.T) {
	f := cellfmt.New(cellfmt.Options{})
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				f.FormatCell(float64(j), 164, "#,##0.00;[Red](#,##0.00)")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

func TestFormatCellConcurrentText(t *testing.T) {
	// String values route to the fourth section of a shared cached format
	// even when that section is not text-kind; formatting must not mutate
	// the cached parse.
	f := cellfmt.New(cellfmt.Options{})
	const code = `0;-0;"zero";"[N]"0`
	want := f.FormatCell("abc", 164, code).Text
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				got := f.FormatCell("abc", 164, code)
				assert.Equal(t, want, got.Text)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
