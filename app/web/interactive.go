package web

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/alcortesm/covid-graphics/app/chart"
	"github.com/alcortesm/covid-graphics/app/observation"
	"github.com/alcortesm/covid-graphics/app/palette"
	"github.com/alcortesm/covid-graphics/app/toggle"
)

// interactiveChart returns an ECharts version of a chart. Every entity
// is a series; the legend starts with the active set selected and lets
// the reader toggle series in the browser.
func interactiveChart(ch *chart.Chart, active *toggle.Set) *charts.Line {
	dims := ch.Dimensions()
	dates := allDates(ch)

	labels := make([]string, len(dates))
	for i, d := range dates {
		labels[i] = ch.Locale().FormatDateShort(d)
	}

	selected := map[string]bool{}

	line := charts.NewLine()
	line.SetXAxis(labels)

	if agg := ch.Aggregate(); agg != nil {
		name := ch.AggregateName()
		selected[name] = true

		line.AddSeries(name, lineData(agg, dates),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: palette.National}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Color: palette.National,
				Width: 2.5,
				Type:  "dashed",
			}),
		)
	}

	for _, s := range ch.Series() {
		selected[s.Name] = active.IsActive(s.Code)

		c := ch.Color(s.Code)
		line.AddSeries(s.Name, lineData(s, dates),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: c}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: c, Width: 3}),
		)
	}

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: ch.Config().Title,
			Width:     fmt.Sprintf("%dpx", int(dims.Width)),
			Height:    fmt.Sprintf("%dpx", int(dims.Height)),
		}),
		charts.WithTitleOpts(opts.Title{
			Title: ch.Config().Title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:     opts.Bool(true),
			Type:     "scroll",
			Bottom:   "0",
			Selected: selected,
		}),
	)

	return line
}

// allDates returns every date of the chart, sorted.
func allDates(ch *chart.Chart) []time.Time {
	seen := map[time.Time]bool{}

	var result []time.Time
	for _, o := range ch.Data() {
		if !seen[o.Date] {
			seen[o.Date] = true
			result = append(result, o.Date)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Before(result[j])
	})

	return result
}

// lineData returns the values of the series on each date. Dates without
// a value are nil, which ECharts draws as a gap.
func lineData(s *observation.Series, dates []time.Time) []opts.LineData {
	result := make([]opts.LineData, len(dates))

	for i, d := range dates {
		if o, ok := s.At(d); ok && o.HasValue() {
			result[i] = opts.LineData{Value: o.Value}
			continue
		}

		result[i] = opts.LineData{Value: nil}
	}

	return result
}
