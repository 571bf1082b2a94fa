/*
Package choropleth draws the map of the dashboard: the countries of the
watch list colored by their cumulative cases, or deaths, per 100,000
inhabitants.
*/
package choropleth

import (
	"math"
	"sort"

	"github.com/alcortesm/covid-graphics/app/palette"
	"github.com/alcortesm/covid-graphics/app/scale"
)

// Per is the population the rates are normalized to.
const Per = 100000

// Margin is the room around the map.
var Margin = scale.Margin{Top: 10, Right: 40, Bottom: 40, Left: 40}

// WatchList are the countries the dashboard follows, as named in the
// time series.
var WatchList = []string{
	"Argentina", "Bolivia", "Brazil", "Chile", "Colombia", "Costa Rica",
	"Dominican Republic", "Ecuador", "El Salvador", "Guatemala",
	"Honduras", "Mexico", "Nicaragua", "Panama", "Paraguay", "Peru",
	"Uruguay",
}

type Logger interface {
	Printf(string, ...interface{})
}

// Country is a country drawn on the map.
type Country struct {
	Name string
	D    string
	Fill string
	// Rate is NaN when the country has no data.
	Rate float64
}

func (c Country) HasRate() bool {
	return !math.IsNaN(c.Rate)
}

// Map is a drawn choropleth.
type Map struct {
	Keyword    string
	Metric     string
	Date       string
	Dimensions scale.Dimensions
	Countries  []Country
	// Extent are the lowest and highest rates of the watch list.
	Extent [2]float64
}

// Input is what Build needs to draw a map.
type Input struct {
	Keyword    string
	Metric     string
	Shapes     []Shape
	Cases      Cases
	Population map[string]float64
	WatchList  []string
	Width      float64
}

// Build projects the shapes to fit the width and colors the countries of
// the watch list. Countries without population or metric data are drawn
// grey, with a warning.
func Build(in Input, logger Logger) *Map {
	dims := scale.Dimensions{Width: in.Width, Margin: Margin}

	projection := FitWidth(dims.BoundedWidth(), in.Shapes)
	dims.Height = Margin.Top + Margin.Bottom
	if bounds, ok := projection.Bounds(in.Shapes); ok {
		dims.Height += bounds.Max.Y()
	}

	rates := make(map[string]float64, len(in.WatchList))
	for _, name := range in.WatchList {
		rate, ok := Rate(in.Cases.Counts, in.Population, name)
		if !ok {
			logger.Printf("warning: map %s: no data for %s", in.Keyword, name)
			continue
		}
		rates[name] = rate
	}

	m := &Map{
		Keyword:    in.Keyword,
		Metric:     in.Metric,
		Date:       in.Cases.Date,
		Dimensions: dims,
		Countries:  make([]Country, 0, len(in.Shapes)),
	}

	m.Extent = extent(rates)
	color := NewDiverging(m.Extent[0], m.Extent[1])

	for _, s := range in.Shapes {
		c := Country{
			Name: s.Name,
			D:    projection.Path(s),
			Fill: palette.Grey,
			Rate: math.NaN(),
		}

		if rate, ok := rates[s.Name]; ok {
			c.Rate = rate
			c.Fill = color.Color(rate).Hex()
		}

		m.Countries = append(m.Countries, c)
	}

	sort.SliceStable(m.Countries, func(i, j int) bool {
		return m.Countries[i].Name < m.Countries[j].Name
	})

	return m
}

// Rate returns the count of the country per 100,000 inhabitants.
func Rate(counts, population map[string]float64, country string) (float64, bool) {
	count, ok := counts[country]
	if !ok {
		return 0, false
	}

	people, ok := population[country]
	if !ok || people <= 0 {
		return 0, false
	}

	return count / people * Per, true
}

func extent(rates map[string]float64) [2]float64 {
	if len(rates) == 0 {
		return [2]float64{}
	}

	min, max := math.Inf(1), math.Inf(-1)
	for _, r := range rates {
		min = math.Min(min, r)
		max = math.Max(max, r)
	}

	return [2]float64{min, max}
}
