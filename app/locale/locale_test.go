package locale_test

import (
	"testing"
	"time"

	"github.com/alcortesm/covid-graphics/app/locale"
)

func TestParse(t *testing.T) {
	t.Parallel()

	subtests := map[string]struct {
		input   string
		want    locale.Locale
		wantErr bool
	}{
		"english":          {input: "en", want: locale.English},
		"portuguese":       {input: "pt-br", want: locale.Portuguese},
		"portuguese upper": {input: "pt-BR", want: locale.Portuguese},
		"spanish":          {input: "es-ES", want: locale.Spanish},
		"spanish lower":    {input: "es-es", want: locale.Spanish},
		"unknown":          {input: "fr", wantErr: true},
		"empty":            {input: "", wantErr: true},
	}

	for name, test := range subtests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := locale.Parse(test.input)
			if test.wantErr {
				if err == nil {
					t.Fatalf("want an error, got locale %q", got)
				}
				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if got != test.want {
				t.Errorf("want %q, got %q", test.want, got)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	june := time.Date(2020, time.June, 5, 0, 0, 0, 0, time.UTC)
	december := time.Date(2020, time.December, 24, 0, 0, 0, 0, time.UTC)

	type formats struct {
		long  string
		short string
	}

	subtests := map[locale.Locale]map[time.Time]formats{
		locale.English: {
			june:     {long: "June 05", short: "Jun 05"},
			december: {long: "December 24", short: "Dec 24"},
		},
		locale.Portuguese: {
			june:     {long: "05 junho", short: "05 jun"},
			december: {long: "24 dezembro", short: "24 dez"},
		},
		locale.Spanish: {
			june:     {long: "05 junio", short: "05 jun"},
			december: {long: "24 diciembre", short: "24 dic"},
		},
	}

	for l, dates := range subtests {
		l, dates := l, dates
		t.Run(l.String(), func(t *testing.T) {
			t.Parallel()

			for d, want := range dates {
				if got := l.FormatDate(d); got != want.long {
					t.Errorf("long: want %q, got %q", want.long, got)
				}

				if got := l.FormatDateShort(d); got != want.short {
					t.Errorf("short: want %q, got %q", want.short, got)
				}
			}
		})
	}
}

func TestAggregateName(t *testing.T) {
	t.Parallel()

	subtests := []struct {
		locale locale.Locale
		code   string
		want   string
	}{
		{locale: locale.English, code: "Nacional", want: "National"},
		{locale: locale.Portuguese, code: "Nacional", want: "Nacional"},
		{locale: locale.Spanish, code: "Nacional", want: "Nacional"},
		{locale: locale.English, code: "LATAM", want: "LATAM"},
	}

	for _, test := range subtests {
		if got := test.locale.AggregateName(test.code); got != test.want {
			t.Errorf("%s %s: want %q, got %q",
				test.locale, test.code, test.want, got)
		}
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	var l locale.Locale
	if err := l.Decode("PT-BR"); err != nil {
		t.Fatal(err)
	}

	if l != locale.Portuguese {
		t.Errorf("want %q, got %q", locale.Portuguese, l)
	}

	if err := l.Decode("klingon"); err == nil {
		t.Error("want an error")
	}
}
