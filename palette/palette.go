// Package palette resolves Excel format-code color tokens to RGB values.
//
// Two tables back the lookup: a named-color table derived from the classic
// HSSF predefined palette (with space and percent-sign spelling variants),
// and the 56-entry indexed palette addressable as "color N" (1-based).  Eight
// canonical names — black, white, red, green, blue, yellow, magenta, cyan —
// always resolve to their pure RGB values, overriding the HSSF definitions,
// because that is what Excel actually renders for those tokens.
//
// Both tables are built once at init and are immutable afterwards; [Resolve]
// is safe for unsynchronized concurrent use.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vaadin-component-factory/go-cellfmt/internal/logging"
)

// RGB is a 24-bit color triple.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a six-digit lowercase hex string without a
// leading "#", e.g. "ff0000".
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

func rgb(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Indexed is the 56-entry Excel color palette.  Entry 0 is "color 1".
var Indexed = [56]RGB{
	rgb(0x000000), // color 1 / black
	rgb(0xFFFFFF), // color 2 / white
	rgb(0xFF0000), // color 3 / red
	rgb(0x00FF00), // color 4 / green
	rgb(0x0000FF), // color 5 / blue
	rgb(0xFFFF00), // color 6 / yellow
	rgb(0xFF00FF), // color 7 / magenta
	rgb(0x00FFFF), // color 8 / cyan
	rgb(0x800000), // color 9
	rgb(0x008000), // color 10
	rgb(0x000080), // color 11
	rgb(0x808000), // color 12
	rgb(0x800080), // color 13
	rgb(0x008080), // color 14
	rgb(0xC0C0C0), // color 15
	rgb(0x808080), // color 16
	rgb(0x9999FF), // color 17
	rgb(0x993366), // color 18
	rgb(0xFFFFCC), // color 19
	rgb(0xCCFFFF), // color 20
	rgb(0x660066), // color 21
	rgb(0xFF8080), // color 22
	rgb(0x0066CC), // color 23
	rgb(0xCCCCFF), // color 24
	rgb(0x000080), // color 25
	rgb(0xFF00FF), // color 26
	rgb(0xFFFF00), // color 27
	rgb(0x00FFFF), // color 28
	rgb(0x800080), // color 29
	rgb(0x800000), // color 30
	rgb(0x008080), // color 31
	rgb(0x0000FF), // color 32
	rgb(0x00CCFF), // color 33
	rgb(0xCCFFFF), // color 34
	rgb(0xCCFFCC), // color 35
	rgb(0xFFFF99), // color 36
	rgb(0x99CCFF), // color 37
	rgb(0xFF99CC), // color 38
	rgb(0xCC99FF), // color 39
	rgb(0xFFCC99), // color 40
	rgb(0x3366FF), // color 41
	rgb(0x33CCCC), // color 42
	rgb(0x99CC00), // color 43
	rgb(0xFFCC00), // color 44
	rgb(0xFF9900), // color 45
	rgb(0xFF6600), // color 46
	rgb(0x666699), // color 47
	rgb(0x969696), // color 48
	rgb(0x003366), // color 49
	rgb(0x339966), // color 50
	rgb(0x003300), // color 51
	rgb(0x333300), // color 52
	rgb(0x993300), // color 53
	rgb(0x993366), // color 54
	rgb(0x333399), // color 55
	rgb(0x333333), // color 56
}

// hssfNamed lists the predefined HSSF palette names with their RGB values.
// Underscore names gain "foo bar" and "foo bar %" spelling variants when the
// table is built.
var hssfNamed = map[string]RGB{
	"black":                 rgb(0x000000),
	"white":                 rgb(0xFFFFFF),
	"red":                   rgb(0xFF0000),
	"bright_green":          rgb(0x00FF00),
	"blue":                  rgb(0x0000FF),
	"yellow":                rgb(0xFFFF00),
	"pink":                  rgb(0xFF00FF),
	"turquoise":             rgb(0x00FFFF),
	"dark_red":              rgb(0x800000),
	"green":                 rgb(0x008000),
	"dark_blue":             rgb(0x000080),
	"dark_yellow":           rgb(0x808000),
	"violet":                rgb(0x800080),
	"teal":                  rgb(0x008080),
	"grey_25_percent":       rgb(0xC0C0C0),
	"grey_50_percent":       rgb(0x808080),
	"cornflower_blue":       rgb(0x9999FF),
	"maroon":                rgb(0x7F0000),
	"lemon_chiffon":         rgb(0xFFFFCC),
	"orchid":                rgb(0x660066),
	"coral":                 rgb(0xFF8080),
	"royal_blue":            rgb(0x0066CC),
	"light_cornflower_blue": rgb(0xCCCCFF),
	"sky_blue":              rgb(0x00CCFF),
	"light_turquoise":       rgb(0xCCFFFF),
	"light_green":           rgb(0xCCFFCC),
	"light_yellow":          rgb(0xFFFF99),
	"pale_blue":             rgb(0x99CCFF),
	"rose":                  rgb(0xFF99CC),
	"lavender":              rgb(0xCC99FF),
	"tan":                   rgb(0xFFCC99),
	"light_blue":            rgb(0x3366FF),
	"aqua":                  rgb(0x33CCCC),
	"lime":                  rgb(0x99CC00),
	"gold":                  rgb(0xFFCC00),
	"light_orange":          rgb(0xFF9900),
	"orange":                rgb(0xFF6600),
	"blue_grey":             rgb(0x666699),
	"grey_40_percent":       rgb(0x969696),
	"dark_teal":             rgb(0x003366),
	"sea_green":             rgb(0x339966),
	"dark_green":            rgb(0x003300),
	"olive_green":           rgb(0x333300),
	"brown":                 rgb(0x993300),
	"plum":                  rgb(0x993366),
	"indigo":                rgb(0x333399),
	"grey_80_percent":       rgb(0x333333),
	"automatic":             rgb(0x000000),
}

// named is the full case-folded lookup table: HSSF names, spelling variants,
// the canonical-eight overrides, and the "color N" aliases.
var named = buildNamed()

func buildNamed() map[string]RGB {
	m := make(map[string]RGB, 4*len(hssfNamed)+len(Indexed))
	for name, c := range hssfNamed {
		m[name] = c
		if strings.Contains(name, "_percent") {
			spaced := strings.ReplaceAll(name, "_", " ")
			m[spaced] = c // "grey 25 percent"
			m[strings.ReplaceAll(strings.ReplaceAll(name, "_percent", "%"), "_", " ")] = c // "grey 25%"
		} else if strings.Contains(name, "_") {
			m[strings.ReplaceAll(name, "_", " ")] = c
		}
	}

	// The canonical eight override anything the HSSF table says.  Magenta and
	// cyan are absent from the HSSF names entirely (it spells them pink and
	// turquoise), and HSSF green is 008000 where Excel renders 00FF00.
	m["black"] = Indexed[0]
	m["white"] = Indexed[1]
	m["red"] = Indexed[2]
	m["green"] = Indexed[3]
	m["blue"] = Indexed[4]
	m["yellow"] = Indexed[5]
	m["magenta"] = Indexed[6]
	m["cyan"] = Indexed[7]

	for i, c := range Indexed {
		m["color "+strconv.Itoa(i+1)] = c
	}
	return m
}

// Resolve looks up a color token case-insensitively.  It accepts named colors
// ("Red", "grey 25%"), indexed colors ("Color 12", 1 ≤ N ≤ 56), and tolerates
// extra spaces in the indexed form ("color  7").  Unknown tokens yield
// (zero, false) and are reported once per token at warn level — never an
// error, so rendering can proceed without a color.
func Resolve(token string) (RGB, bool) {
	key := strings.ToLower(strings.TrimSpace(token))
	if c, ok := named[key]; ok {
		return c, true
	}
	// "colorN" / "color   N" spellings collapse to the canonical alias.
	if rest, ok := strings.CutPrefix(key, "color"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && n >= 1 && n <= len(Indexed) {
			return Indexed[n-1], true
		}
	}
	logging.WarnOnce("color:"+key, "unknown color token", "color", token)
	return RGB{}, false
}
