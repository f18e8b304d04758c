package numfmt

import (
	"golang.org/x/text/language"
)

// Symbols is an immutable snapshot of the locale-dependent characters and
// names used while rendering.  A snapshot is built once per locale and shared
// by every renderer created under it; locale changes produce a new snapshot
// rather than mutating an existing one, so in-flight renders are unaffected.
type Symbols struct {
	// Tag is the locale the snapshot was built for (after matching).
	Tag language.Tag
	// Decimal and Group are the decimal point and digit-grouping separator.
	Decimal string
	Group   string
	// Months and MonthsAbbr are indexed by time.Month-1.
	Months     [12]string
	MonthsAbbr [12]string
	// Days and DaysAbbr are indexed by time.Weekday (Sunday = 0).
	Days     [7]string
	DaysAbbr [7]string
	// AM and PM are the day-period markers used by the AM/PM token.
	AM, PM string
}

var english = &Symbols{
	Tag:     language.AmericanEnglish,
	Decimal: ".",
	Group:   ",",
	Months: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	MonthsAbbr: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Days:     [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	DaysAbbr: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	AM:       "AM",
	PM:       "PM",
}

// supported lists the locales with bundled symbol tables.  Anything else
// matches to English, mirroring the neutral Western fallbacks used for the
// locale-specific built-in formats.
var supported = []language.Tag{
	language.AmericanEnglish, // also the fallback
	language.German,
	language.French,
	language.Dutch,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

var tables = map[language.Tag]*Symbols{
	language.AmericanEnglish: english,
	language.German: {
		Tag:     language.German,
		Decimal: ",",
		Group:   ".",
		Months: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember"},
		MonthsAbbr: [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun",
			"Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
		Days:     [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		DaysAbbr: [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
		AM:       "AM",
		PM:       "PM",
	},
	language.French: {
		Tag:     language.French,
		Decimal: ",",
		Group:   " ",
		Months: [12]string{"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		MonthsAbbr: [12]string{"janv", "févr", "mars", "avr", "mai", "juin",
			"juil", "août", "sept", "oct", "nov", "déc"},
		Days:     [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
		DaysAbbr: [7]string{"dim", "lun", "mar", "mer", "jeu", "ven", "sam"},
		AM:       "AM",
		PM:       "PM",
	},
	language.Dutch: {
		Tag:     language.Dutch,
		Decimal: ",",
		Group:   ".",
		Months: [12]string{"januari", "februari", "maart", "april", "mei", "juni",
			"juli", "augustus", "september", "oktober", "november", "december"},
		MonthsAbbr: [12]string{"jan", "feb", "mrt", "apr", "mei", "jun",
			"jul", "aug", "sep", "okt", "nov", "dec"},
		Days:     [7]string{"zondag", "maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag"},
		DaysAbbr: [7]string{"zo", "ma", "di", "wo", "do", "vr", "za"},
		AM:       "AM",
		PM:       "PM",
	},
	language.Spanish: {
		Tag:     language.Spanish,
		Decimal: ",",
		Group:   ".",
		Months: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		MonthsAbbr: [12]string{"ene", "feb", "mar", "abr", "may", "jun",
			"jul", "ago", "sep", "oct", "nov", "dic"},
		Days:     [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		DaysAbbr: [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
		AM:       "a. m.",
		PM:       "p. m.",
	},
}

// SymbolsFor returns the symbol snapshot for the locale closest to tag.
// Unsupported locales fall back to American English.
func SymbolsFor(tag language.Tag) *Symbols {
	_, idx, _ := matcher.Match(tag)
	if s, ok := tables[supported[idx]]; ok {
		return s
	}
	return english
}
