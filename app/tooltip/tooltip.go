/*
Package tooltip finds the observations nearest to a hovered position of
a line chart and formats them for display.
*/
package tooltip

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/alcortesm/covid-graphics/app/locale"
	"github.com/alcortesm/covid-graphics/app/observation"
	"github.com/alcortesm/covid-graphics/app/scale"
)

// MarkerRadius is the radius of the dots drawn where the guide line
// crosses the active series.
const MarkerRadius = 7

// Nearest returns the observation whose date is closest to the given
// one. On ties the first one in the data wins. The boolean is false if
// there is no data.
func Nearest(data []*observation.Observation, date time.Time) (
	*observation.Observation, bool) {
	var (
		best     *observation.Observation
		bestDist time.Duration
	)

	for _, o := range data {
		dist := o.Date.Sub(date)
		if dist < 0 {
			dist = -dist
		}

		if best == nil || dist < bestDist {
			best, bestDist = o, dist
		}
	}

	return best, best != nil
}

// Formatter formats metric values for the tooltip rows.
type Formatter struct {
	// Percentage appends a percent sign.
	Percentage bool
	// Multiplier scales the value before formatting. Zero means 1.
	Multiplier float64
}

// Format returns the value with one decimal. Values above 100 are shown
// as 100.
func (f Formatter) Format(v float64) string {
	m := f.Multiplier
	if m == 0 {
		m = 1
	}

	s := strconv.FormatFloat(v*m, 'f', 1, 64)
	if rounded, err := strconv.ParseFloat(s, 64); err == nil && rounded > 100 {
		s = "100"
	}

	if f.Percentage {
		s += "%"
	}

	return s
}

type Row struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Value string `json:"value"`
	Color string `json:"color"`
}

type Marker struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Color string  `json:"color"`
}

// Tooltip is everything shown while hovering a line chart: a header
// with the date, a vertical guide line at X, one row per active series
// and a marker on each of them.
type Tooltip struct {
	Date    time.Time `json:"date"`
	Header  string    `json:"header"`
	X       float64   `json:"x"`
	Rows    []Row     `json:"rows"`
	Markers []Marker  `json:"markers"`
}

// Input is what Build needs to compute a tooltip.
type Input struct {
	// Data holds the observations of every entity, aggregate included.
	Data []*observation.Observation
	// Date is the hovered date.
	Date time.Time
	// Aggregate is the code of the aggregate entity, always shown first.
	// Empty if the dataset has none.
	Aggregate     string
	AggregateName string
	// Active are the codes of the active series.
	Active []string
	Color  func(code string) string
	// AggregateColor is the color of the aggregate row.
	AggregateColor string
	Formatter      Formatter
	Locale         locale.Locale
	X              scale.Time
	Y              scale.Linear
}

// Build returns the tooltip for the observations nearest to the hovered
// date. Entities without an observation or a value on that date are
// left out. The boolean is false if there is no data at all.
func Build(in Input) (Tooltip, bool) {
	nearest, ok := Nearest(in.Data, in.Date)
	if !ok {
		return Tooltip{}, false
	}

	date := nearest.Date

	onDate := map[string]*observation.Observation{}
	for _, o := range in.Data {
		if !o.Date.Equal(date) {
			continue
		}

		if _, ok := onDate[o.Code]; !ok {
			onDate[o.Code] = o
		}
	}

	t := Tooltip{
		Date:    date,
		Header:  in.Locale.FormatDate(date),
		X:       in.X.Map(date),
		Rows:    []Row{},
		Markers: []Marker{},
	}

	for _, code := range order(in.Active, in.Aggregate) {
		o, ok := onDate[code]
		if !ok || !o.HasValue() {
			continue
		}

		name, color := o.Name, ""
		if code == in.Aggregate {
			name, color = in.AggregateName, in.AggregateColor
		} else if in.Color != nil {
			color = in.Color(code)
		}

		t.Rows = append(t.Rows, Row{
			Code:  code,
			Name:  name,
			Value: in.Formatter.Format(o.Value),
			Color: color,
		})

		t.Markers = append(t.Markers, Marker{
			X:     in.X.Map(o.Date),
			Y:     in.Y.Map(o.Value),
			R:     MarkerRadius,
			Color: color,
		})
	}

	return t, true
}

// order returns the aggregate followed by the sorted active codes.
func order(active []string, aggregate string) []string {
	codes := make([]string, 0, len(active)+1)
	for _, c := range active {
		if c != aggregate {
			codes = append(codes, c)
		}
	}

	sort.Strings(codes)

	if aggregate != "" {
		codes = append([]string{aggregate}, codes...)
	}

	return codes
}

// Hidden reports whether x falls outside the plot area, where no
// tooltip is shown.
func Hidden(x, boundedWidth float64) bool {
	return math.IsNaN(x) || x < 0 || x > boundedWidth
}
