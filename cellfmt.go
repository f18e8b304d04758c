// Package cellfmt renders spreadsheet cell values to the display strings
// Excel would show, honoring built-in and custom number formats.  No cgo is
// required.
//
// # Quick start
//
//	f := cellfmt.New(cellfmt.Options{})
//
//	res := f.FormatCell(1234.5, 0, "#,##0.00")
//	fmt.Println(res.Text) // "1,234.50"
//
//	res = f.FormatCell(-5.0, 0, "0.00;[Red](0.00)")
//	fmt.Println(res.Text) // "(5.00)"
//	if res.Color != nil {
//	    fmt.Println(res.Color.Hex()) // "ff0000"
//	}
//
// A format code is resolved from the number-format ID and the custom format
// string the way a workbook's styles part does: a non-empty custom string
// wins, then the built-in table for the ID, then "General".
//
// # Dates
//
// Excel stores dates as floating-point serial numbers.  [Formatter.FormatCell]
// renders date formats automatically.  For direct access to the underlying
// [time.Time] value use [ConvertDateEx], passing the workbook's date1904 flag
// so the correct date system is used:
//
//	t, err := cellfmt.ConvertDateEx(44927, false) // 2023-01-01
//
// [ConvertDate] is a convenience wrapper for the common 1900 date system.
//
// # Format detection
//
// [IsDateFormat] checks whether a number-format ID (and optional custom format
// string) represents a date or datetime format, for callers that inspect
// format metadata without rendering.
package cellfmt

import (
	"sync"
	"sync/atomic"

	"golang.org/x/text/language"

	"github.com/vaadin-component-factory/go-cellfmt/cellformat"
	"github.com/vaadin-component-factory/go-cellfmt/internal/logging"
	"github.com/vaadin-component-factory/go-cellfmt/numfmt"
	"github.com/vaadin-component-factory/go-cellfmt/palette"
	"github.com/vaadin-component-factory/go-cellfmt/styles"
)

// Version is the current version of the go-cellfmt library.
const Version = "1.0.0"

// Options configures a [Formatter].  The zero value renders with English
// symbols, the 1900 date system, and no CSV emulation.
type Options struct {
	// Locale selects the symbol set (decimal separator, month names, …).
	// The undefined tag falls back to English.
	Locale language.Tag

	// Date1904 selects the 1904 date system used by some Mac workbooks.
	Date1904 bool

	// EmulateCSV reproduces Excel's save-as-CSV quirks: padding characters
	// become spaces, invalid dates render as a run of '#', and #-only
	// formats render zero as the empty string.
	EmulateCSV bool
}

// Result is the outcome of formatting one cell value.
type Result struct {
	Text string

	// AppliesCondition reports whether a section of the format matched the
	// value.  When false, Text is a General rendering (or the unchanged
	// string) and Color is nil.
	AppliesCondition bool

	// Color is the resolved section color, nil when the applied section
	// carries none.
	Color *palette.RGB
}

// CellError is a spreadsheet error code such as "#DIV/0!" or "#N/A".  Error
// values render as their literal code regardless of the format.
type CellError string

func (e CellError) Error() string { return string(e) }

// Spreadsheet error codes.
const (
	ErrorDiv0 CellError = "#DIV/0!"
	ErrorNA   CellError = "#N/A"
	ErrorName CellError = "#NAME?"
	ErrorNull CellError = "#NULL!"
	ErrorNum  CellError = "#NUM!"
	ErrorRef  CellError = "#REF!"
	ErrorVal  CellError = "#VALUE!"
)

// engineState couples a render engine with the cache-key prefix of its
// locale.  It is swapped wholesale on locale updates, so cached entries from
// an older locale are simply never hit again.
type engineState struct {
	localeKey string
	eng       *numfmt.Engine
}

// Formatter renders cell values.  It is safe for concurrent use; parsed
// formats are cached, rendered results are not.
type Formatter struct {
	date1904   bool
	emulateCSV bool

	state atomic.Pointer[engineState]

	// compiled caches single-section formats, unified caches multi-section
	// and conditional ones.  Keys are localeKey + "|" + format code.
	compiled sync.Map // string → *cellformat.CellFormat
	unified  sync.Map // string → *cellformat.CellFormat
}

// New builds a Formatter from opts.
func New(opts Options) *Formatter {
	f := &Formatter{date1904: opts.Date1904, emulateCSV: opts.EmulateCSV}
	f.state.Store(f.newState(opts.Locale))
	return f
}

func (f *Formatter) newState(tag language.Tag) *engineState {
	syms := numfmt.SymbolsFor(tag)
	return &engineState{
		localeKey: syms.Tag.String(),
		eng:       numfmt.NewEngine(f.date1904, f.emulateCSV, syms),
	}
}

// UpdateLocale swaps the formatter's symbol set.  In-flight renders keep the
// previous snapshot; new calls see the new one.
func (f *Formatter) UpdateLocale(tag language.Tag) {
	f.state.Store(f.newState(tag))
}

// FormatCell renders a raw cell value (nil, string, bool, float64, or
// [CellError]) using the format resolved from numFmtID and fmtStr.
func (f *Formatter) FormatCell(v any, numFmtID int, fmtStr string) Result {
	code := styles.NumberFormat{ID: numFmtID, Code: fmtStr}.Effective()
	return f.format(v, code)
}

// FormatCellWithOverride renders like [Formatter.FormatCell], except that a
// non-empty override format code takes precedence over the style's own.
// Conditional-formatting rules that rewrite the number format use this.
func (f *Formatter) FormatCellWithOverride(v any, numFmtID int, fmtStr, override string) Result {
	if override != "" {
		return f.format(v, override)
	}
	return f.FormatCell(v, numFmtID, fmtStr)
}

// CellColor returns the six-digit lowercase hex of the section color that
// applies to the value, and whether one applies at all.
func (f *Formatter) CellColor(v any, numFmtID int, fmtStr string) (string, bool) {
	res := f.FormatCell(v, numFmtID, fmtStr)
	if res.Color == nil {
		return "", false
	}
	return res.Color.Hex(), true
}

func (f *Formatter) format(v any, code string) Result {
	if err, ok := v.(CellError); ok {
		return Result{Text: string(err), AppliesCondition: true}
	}
	if v == nil {
		return Result{AppliesCondition: true}
	}

	st := f.state.Load()
	cf := f.lookup(st, code)
	if cf == nil {
		// Unparsable format code: degrade to General rather than failing
		// the whole cell.
		return Result{Text: numfmt.GeneralValue(v)}
	}
	res := cf.Apply(st.eng, v)
	return Result{Text: res.Text, AppliesCondition: res.Applies, Color: res.Color}
}

// lookup returns the cached parse of code, parsing on first use.  Concurrent
// first uses may parse twice; the extra result is dropped.
func (f *Formatter) lookup(st *engineState, code string) *cellformat.CellFormat {
	cache := &f.compiled
	if cellformat.NeedsUnified(code) {
		cache = &f.unified
	}
	key := st.localeKey + "|" + code

	if cached, ok := cache.Load(key); ok {
		return cached.(*cellformat.CellFormat)
	}
	cf, err := cellformat.Parse(code)
	if err != nil {
		logging.WarnOnce("format:"+code, "unparsable number format", "code", code, "err", err)
		return nil
	}
	cache.Store(key, cf)
	return cf
}

// FormatValue renders a raw cell value with a default formatter, for callers
// that do not need locale control or CSV emulation.
func FormatValue(v any, numFmtID int, fmtStr string, date1904 bool) string {
	f := std
	if date1904 {
		f = std1904
	}
	return f.FormatCell(v, numFmtID, fmtStr).Text
}

var (
	std     = New(Options{})
	std1904 = New(Options{Date1904: true})
)

// IsDateFormat reports whether a number-format ID (and optional custom format
// string) represents a date or datetime format.
//
// Built-in date/time IDs follow ECMA-376 §18.8.30: 14–22, 27–36, 45–47,
// 50–58.  For custom formats (id > 163) the unquoted portion of fmtStr is
// scanned for calendar tokens; sections in double quotes or square brackets
// are skipped.
func IsDateFormat(id int, fmtStr string) bool {
	return styles.IsDateFormatID(id, fmtStr)
}
