package observation_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alcortesm/covid-graphics/app/observation"
)

// 2020-06-01 00:00:00 +0000 UTC
var june = time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)

// fixObs returns an observation for the given code on june plus day
// days, with value v.
func fixObs(t *testing.T, code string, day int, v float64) *observation.Observation {
	t.Helper()

	return &observation.Observation{
		Date:  june.AddDate(0, 0, day),
		Code:  code,
		Name:  "name of " + code,
		Value: v,
		Day:   float64(day),
	}
}

func TestObservation_Equal(t *testing.T) {
	t.Parallel()

	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	nan := math.NaN()

	subtests := []struct {
		name string
		a, b *observation.Observation
		want bool
	}{
		{
			name: "empty",
			a:    &observation.Observation{},
			b:    &observation.Observation{},
			want: true,
		},
		{
			name: "same data but different timezones",
			a:    &observation.Observation{Date: june, Code: "A"},
			b:    &observation.Observation{Date: june.In(newYork), Code: "A"},
			want: true,
		},
		{
			name: "both values unknown",
			a:    &observation.Observation{Value: nan},
			b:    &observation.Observation{Value: nan},
			want: true,
		},
		{
			name: "one value unknown",
			a:    &observation.Observation{Value: nan},
			b:    &observation.Observation{Value: 1},
			want: false,
		},
		{
			name: "different codes",
			a:    &observation.Observation{Code: "A"},
			b:    &observation.Observation{Code: "B"},
			want: false,
		},
		{
			name: "different ranks",
			a:    &observation.Observation{Rank: 1},
			b:    &observation.Observation{Rank: 2},
			want: false,
		},
	}

	for _, test := range subtests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := test.a.Equal(test.b); got != test.want {
				t.Errorf("direct test, want %t, got %t", test.want, got)
			}

			if got := test.b.Equal(test.a); got != test.want {
				t.Errorf("reverse test, want %t, got %t", test.want, got)
			}
		})
	}
}

func TestGroup(t *testing.T) {
	t.Parallel()

	a1 := fixObs(t, "A", 1, 1)
	a2 := fixObs(t, "A", 2, 2)
	b1 := fixObs(t, "B", 1, 3)
	n1 := fixObs(t, "Nacional", 1, 4)
	n2 := fixObs(t, "Nacional", 2, 5)

	series, agg := observation.Group(
		[]*observation.Observation{n2, b1, a2, n1, a1}, "Nacional")

	want := []*observation.Series{
		{Code: "A", Name: a2.Name, Observations: []*observation.Observation{a1, a2}},
		{Code: "B", Name: b1.Name, Observations: []*observation.Observation{b1}},
	}

	if diff := cmp.Diff(want, series); diff != "" {
		t.Errorf("series (-want +got)\n%s", diff)
	}

	wantAgg := &observation.Series{
		Code:         "Nacional",
		Name:         n2.Name,
		Observations: []*observation.Observation{n1, n2},
	}

	if diff := cmp.Diff(wantAgg, agg); diff != "" {
		t.Errorf("aggregate (-want +got)\n%s", diff)
	}
}

func TestGroup_NoAggregate(t *testing.T) {
	t.Parallel()

	series, agg := observation.Group(
		[]*observation.Observation{fixObs(t, "A", 1, 1)}, "LATAM")

	if agg != nil {
		t.Errorf("want nil aggregate, got %#v", agg)
	}

	if len(series) != 1 {
		t.Errorf("want one series, got %d", len(series))
	}
}

func TestCodes(t *testing.T) {
	t.Parallel()

	data := []*observation.Observation{
		fixObs(t, "C", 1, 1),
		fixObs(t, "Nacional", 1, 1),
		fixObs(t, "A", 1, 1),
		fixObs(t, "C", 2, 1),
		fixObs(t, "B", 1, 1),
		fixObs(t, "A", 2, 1),
	}

	got := observation.Codes(data, "Nacional")

	if diff := cmp.Diff([]string{"C", "A", "B"}, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestSeries_At(t *testing.T) {
	t.Parallel()

	a1 := fixObs(t, "A", 1, 1)
	a3 := fixObs(t, "A", 3, 3)

	s := &observation.Series{
		Code:         "A",
		Observations: []*observation.Observation{a1, a3},
	}

	if got, ok := s.At(a3.Date); !ok || got != a3 {
		t.Errorf("want %v, got %v (%t)", a3, got, ok)
	}

	if got, ok := s.At(june.AddDate(0, 0, 2)); ok {
		t.Errorf("unexpected observation %v", got)
	}

	if got, ok := s.At(june.AddDate(0, 0, 9)); ok {
		t.Errorf("unexpected observation %v", got)
	}
}

func TestExtents(t *testing.T) {
	t.Parallel()

	data := []*observation.Observation{
		fixObs(t, "A", 3, 7),
		fixObs(t, "A", 1, -2),
		fixObs(t, "B", 5, math.NaN()),
		fixObs(t, "B", 2, 12.5),
	}

	min, max, ok := observation.DateExtent(data)
	if !ok {
		t.Fatal("no date extent")
	}

	if !min.Equal(june.AddDate(0, 0, 1)) || !max.Equal(june.AddDate(0, 0, 5)) {
		t.Errorf("wrong date extent [%v, %v]", min, max)
	}

	vmin, vmax, ok := observation.ValueExtent(data)
	if !ok {
		t.Fatal("no value extent")
	}

	if vmin != -2 || vmax != 12.5 {
		t.Errorf("wrong value extent [%v, %v]", vmin, vmax)
	}
}

func TestExtents_Empty(t *testing.T) {
	t.Parallel()

	if _, _, ok := observation.DateExtent(nil); ok {
		t.Error("unexpected date extent")
	}

	unknown := []*observation.Observation{fixObs(t, "A", 1, math.NaN())}
	if _, _, ok := observation.ValueExtent(unknown); ok {
		t.Error("unexpected value extent")
	}
}
