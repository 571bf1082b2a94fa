package tooltip_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alcortesm/covid-graphics/app/locale"
	"github.com/alcortesm/covid-graphics/app/observation"
	"github.com/alcortesm/covid-graphics/app/scale"
	"github.com/alcortesm/covid-graphics/app/tooltip"
)

func date(day int) time.Time {
	return time.Date(2020, time.June, day, 0, 0, 0, 0, time.UTC)
}

func TestNearest(t *testing.T) {
	t.Parallel()

	data := []*observation.Observation{
		{Date: date(1), Code: "A"},
		{Date: date(5), Code: "A"},
		{Date: date(5), Code: "B"},
		{Date: date(9), Code: "A"},
	}

	subtests := map[string]struct {
		hovered time.Time
		want    *observation.Observation
	}{
		"exact":           {hovered: date(5), want: data[1]},
		"closer to later": {hovered: date(4).Add(time.Hour), want: data[1]},
		"before all":      {hovered: date(1).Add(-48 * time.Hour), want: data[0]},
		"after all":       {hovered: date(20), want: data[3]},
		"tie keeps first": {hovered: date(3), want: data[0]},
	}

	for name, test := range subtests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := tooltip.Nearest(data, test.hovered)
			if !ok {
				t.Fatal("nothing found")
			}

			if got != test.want {
				t.Errorf("want %v, got %v", test.want, got)
			}

			again, _ := tooltip.Nearest(data, test.hovered)
			if again != got {
				t.Errorf("hovering %v again gave %v, first %v",
					test.hovered, again, got)
			}
		})
	}
}

func TestNearest_Empty(t *testing.T) {
	t.Parallel()

	if _, ok := tooltip.Nearest(nil, date(1)); ok {
		t.Error("found something in no data")
	}
}

func TestFormatter(t *testing.T) {
	t.Parallel()

	subtests := []struct {
		formatter tooltip.Formatter
		value     float64
		want      string
	}{
		{
			formatter: tooltip.Formatter{Percentage: true, Multiplier: 100},
			value:     0.457,
			want:      "45.7%",
		},
		{
			formatter: tooltip.Formatter{},
			value:     12.34,
			want:      "12.3",
		},
		{
			formatter: tooltip.Formatter{Percentage: true},
			value:     -3.05,
			want:      "-3.0%",
		},
		{
			formatter: tooltip.Formatter{Percentage: true, Multiplier: 100},
			value:     1.2,
			want:      "100%",
		},
		{
			formatter: tooltip.Formatter{},
			value:     100.04,
			want:      "100.0",
		},
		{
			formatter: tooltip.Formatter{},
			value:     250,
			want:      "100",
		},
	}

	for _, test := range subtests {
		if got := test.formatter.Format(test.value); got != test.want {
			t.Errorf("%#v formatting %v: want %q, got %q",
				test.formatter, test.value, test.want, got)
		}
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	data := []*observation.Observation{
		{Date: date(1), Code: "Nacional", Name: "Nacional", Value: 10},
		{Date: date(2), Code: "Nacional", Name: "Nacional", Value: 20},
		{Date: date(1), Code: "C", Name: "Ceara", Value: 30},
		{Date: date(2), Code: "C", Name: "Ceara", Value: 40},
		{Date: date(1), Code: "B", Name: "Bahia", Value: 50},
		{Date: date(2), Code: "B", Name: "Bahia", Value: math.NaN()},
		{Date: date(1), Code: "A", Name: "Acre", Value: 60},
	}

	in := tooltip.Input{
		Data:           data,
		Date:           date(2).Add(-time.Hour),
		Aggregate:      "Nacional",
		AggregateName:  "National",
		Active:         []string{"C", "B", "A"},
		Color:          func(code string) string { return "color-" + code },
		AggregateColor: "#333",
		Formatter:      tooltip.Formatter{Percentage: true},
		Locale:         locale.English,
		X:              scale.Time{D0: date(1), D1: date(2), R0: 0, R1: 100},
		Y:              scale.Linear{D0: 0, D1: 100, R0: 200, R1: 0},
	}

	got, ok := tooltip.Build(in)
	if !ok {
		t.Fatal("no tooltip")
	}

	want := tooltip.Tooltip{
		Date:   date(2),
		Header: "June 02",
		X:      100,
		Rows: []tooltip.Row{
			{Code: "Nacional", Name: "National", Value: "20.0%", Color: "#333"},
			{Code: "C", Name: "Ceara", Value: "40.0%", Color: "color-C"},
		},
		Markers: []tooltip.Marker{
			{X: 100, Y: 160, R: tooltip.MarkerRadius, Color: "#333"},
			{X: 100, Y: 120, R: tooltip.MarkerRadius, Color: "color-C"},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	// every call computes the tooltip from scratch
	again, _ := tooltip.Build(in)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("second call differs (-first +second)\n%s", diff)
	}
}

func TestBuild_NoData(t *testing.T) {
	t.Parallel()

	if _, ok := tooltip.Build(tooltip.Input{Date: date(1)}); ok {
		t.Error("built a tooltip without data")
	}
}

func TestHidden(t *testing.T) {
	t.Parallel()

	for x, want := range map[float64]bool{
		-1: true, 0: false, 50: false, 100: false, 101: true,
	} {
		if got := tooltip.Hidden(x, 100); got != want {
			t.Errorf("%v: want %t, got %t", x, want, got)
		}
	}
}
