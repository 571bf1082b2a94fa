/*
Package locale formats dates and names in the languages of the
dashboard: English, Brazilian Portuguese and Spanish.
*/
package locale

import (
	"fmt"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

type Locale string

const (
	English    Locale = "en"
	Portuguese Locale = "pt-br"
	Spanish    Locale = "es-ES"
)

// Default is the locale used when none is requested.
const Default = English

var all = []Locale{English, Portuguese, Spanish}

// Parse returns the locale with the given name, compared case
// insensitively.
func Parse(s string) (Locale, error) {
	for _, l := range all {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}

	return "", fmt.Errorf("unsupported locale %q", s)
}

// Decode implements envconfig.Decoder.
func (l *Locale) Decode(value string) error {
	parsed, err := Parse(value)
	if err != nil {
		return err
	}

	*l = parsed

	return nil
}

// mondayLocale returns the locale the date formatter knows this locale by.
func (l Locale) mondayLocale() monday.Locale {
	switch l {
	case Portuguese:
		return monday.LocalePtBR
	case Spanish:
		return monday.LocaleEsES
	default:
		return monday.LocaleEnUS
	}
}

// dayFirst reports whether the day goes before the month.
func (l Locale) dayFirst() bool {
	return l == Portuguese || l == Spanish
}

// FormatDate formats the date with the full month name: "June 05" in
// English, "05 junho" in Portuguese.
func (l Locale) FormatDate(t time.Time) string {
	return l.format(t, "January")
}

// FormatDateShort formats the date with the abbreviated month name, for
// axis ticks: "Jun 05" in English, "05 jun" in Portuguese.
func (l Locale) FormatDateShort(t time.Time) string {
	return l.format(t, "Jan")
}

func (l Locale) format(t time.Time, month string) string {
	layout := month + " 02"
	if l.dayFirst() {
		layout = "02 " + month
	}

	return monday.Format(t, layout, l.mondayLocale())
}

var nationalNames = map[Locale]string{
	English:    "National",
	Portuguese: "Nacional",
	Spanish:    "Nacional",
}

// NationalName is how the national aggregate of a country dataset is
// named.
func (l Locale) NationalName() string {
	if name, ok := nationalNames[l]; ok {
		return name
	}

	return nationalNames[Default]
}

// AggregateName returns the display name of an aggregate entity code.
// The national aggregate is translated; other aggregates, like LATAM,
// are shown as they are.
func (l Locale) AggregateName(code string) string {
	if code == NationalCode {
		return l.NationalName()
	}

	return code
}

// NationalCode is the code of the national aggregate in the country
// datasets.
const NationalCode = "Nacional"

func (l Locale) String() string {
	return string(l)
}
