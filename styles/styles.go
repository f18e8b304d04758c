// Package styles holds number-format metadata: the built-in numFmtId table
// and date-format detection.  It is a deliberately small, import-cycle-free
// package so that both the façade and the rendering engine can depend on it.
package styles

import (
	"strings"

	"github.com/vaadin-component-factory/go-cellfmt/internal/dateformat"
)

// LastBuiltInID is the highest built-in numFmtId.  IDs above it are custom
// formats defined by the workbook.
const LastBuiltInID = 163

// NumberFormat pairs a numFmtId with its (possibly custom) format code, as
// carried on a cell style or supplied by a conditional-formatting rule.
type NumberFormat struct {
	// ID is the numFmtId.  Values 0–163 are built-in Excel formats; values
	// ≥ 164 are custom formats whose code the caller supplies.
	ID int
	// Code is the raw custom format code.  It is empty for built-in IDs
	// with no custom override.
	Code string
}

// Effective returns the format code that should drive rendering: the custom
// code when non-empty, the built-in string for ID when known, or "General".
func (nf NumberFormat) Effective() string {
	if nf.Code != "" {
		return nf.Code
	}
	if s, ok := BuiltInNumFmt[nf.ID]; ok {
		return s
	}
	return "General"
}

// IsDate reports whether the format renders date or time output.  See
// [IsDateFormatID].
func (nf NumberFormat) IsDate() bool {
	return IsDateFormatID(nf.ID, nf.Effective())
}

// IsDateFormatID reports whether the given numFmtId (and optional custom
// format code) represents a date, datetime, or time format.  Time-only
// built-in IDs 18–21 (h:mm AM/PM etc.) are included so that cells carrying
// them are rendered through serial-number conversion.
//
// For custom IDs the unquoted portion of the code is scanned for date token
// characters; double-quoted literals and square-bracket sections are skipped.
func IsDateFormatID(id int, code string) bool {
	if dateformat.IsBuiltInDateID(id) {
		return true
	}
	if id >= 0 && id <= LastBuiltInID {
		return false
	}
	if strings.EqualFold(code, "General") {
		return false
	}
	return dateformat.ScanFormatStr(code)
}

// BuiltInNumFmt maps built-in numFmtId values to their canonical format
// strings as defined by ECMA-376 §18.8.30.  IDs 27–36 and 50–58 are
// locale-specific (CJK/Thai) in ECMA-376; the entries here are neutral
// Western fallbacks used when the caller supplies no custom override, so a
// serial is always rendered as a human-readable date rather than a raw
// number.
var BuiltInNumFmt = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `($#,##0_);($#,##0)`,
	6:  `($#,##0_);[Red]($#,##0)`,
	7:  `($#,##0.00_);($#,##0.00)`,
	8:  `($#,##0.00_);[Red]($#,##0.00)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "hh:mm",
	21: "hh:mm:ss",
	22: "m/d/yy hh:mm",
	// IDs 27–36: locale-specific CJK date formats.  Real workbooks override
	// these with custom codes; the neutral Western fallbacks apply otherwise.
	27: "MM-DD-YYYY",
	28: "D-MMM-YY",
	29: "D-MMM-YY",
	30: "M/D/YY",
	31: "YYYY-M-D",
	32: "H:MM",
	33: "H:MM:SS",
	34: "H:MM AM/PM",
	35: "H:MM:SS AM/PM",
	36: "MM-DD-YYYY",
	37: `(#,##0_);(#,##0)`,
	38: `(#,##0_);[Red](#,##0)`,
	39: `(#,##0.00_);(#,##0.00)`,
	40: `(#,##0.00_);[Red](#,##0.00)`,
	41: `_(* #,##0_);_(* (#,##0);_(* "-"_);_(@_)`,
	42: `_($* #,##0_);_($* (#,##0);_($* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* (#,##0.00);_(* "-"??_);_(@_)`,
	44: `_($* #,##0.00_);_($* (#,##0.00);_($* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
	// IDs 50–58: locale-specific CJK date formats (variant set).  Same
	// fallback strategy as IDs 27–36 above.
	50: "MM-DD-YYYY",
	51: "D-MMM-YY",
	52: "H:MM AM/PM",
	53: "H:MM:SS AM/PM",
	54: "D-MMM-YY",
	55: "H:MM AM/PM",
	56: "H:MM:SS AM/PM",
	57: "MM-DD-YYYY",
	58: "D-MMM-YY",
}
