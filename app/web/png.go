package web

import (
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/alcortesm/covid-graphics/app/chart"
	"github.com/alcortesm/covid-graphics/app/observation"
	"github.com/alcortesm/covid-graphics/app/palette"
	"github.com/alcortesm/covid-graphics/app/toggle"
)

const (
	pngDateTicks  = 7
	pngValueTicks = 10
)

// pngChart returns the static version of a chart for the active set:
// the same lines as the scene, drawn by go-chart.
func pngChart(ch *chart.Chart, active *toggle.Set) gochart.Chart {
	dims := ch.Dimensions()
	scene := ch.Scene(active)

	var series []gochart.Series

	for _, s := range ch.Series() {
		series = append(series, timeSeries(s.Name, s.Observations, gochart.Style{
			StrokeColor: color(palette.Grey),
			StrokeWidth: 1.25,
		})...)
	}

	if agg := ch.Aggregate(); agg != nil {
		series = append(series, timeSeries(ch.AggregateName(), agg.Observations, gochart.Style{
			StrokeColor:     color(palette.National),
			StrokeWidth:     2.5,
			StrokeDashArray: []float64{9, 2},
		})...)
	}

	for _, p := range scene.Active {
		s := find(ch, p.Code)
		if s == nil {
			continue
		}

		series = append(series, timeSeries(p.Name, s.Observations, gochart.Style{
			StrokeColor: color(p.Stroke),
			StrokeWidth: p.Width,
		})...)
	}

	scales := ch.Scales()

	if scene.Baseline != nil {
		series = append(series, gochart.TimeSeries{
			Name:    "baseline",
			XValues: []time.Time{scales.DateExtent[0], scales.DateExtent[1]},
			YValues: []float64{0, 0},
			Style: gochart.Style{
				StrokeColor: color(palette.Peripheral),
				StrokeWidth: 2,
			},
		})
	}

	var xTicks []gochart.Tick
	for _, d := range scales.X.Ticks(pngDateTicks) {
		xTicks = append(xTicks, gochart.Tick{
			Value: float64(d.UnixNano()),
			Label: ch.Locale().FormatDateShort(d),
		})
	}

	var yTicks []gochart.Tick
	for _, v := range scales.Y.Ticks(pngValueTicks) {
		yTicks = append(yTicks, gochart.Tick{
			Value: v,
			Label: ch.FormatValueTick(v),
		})
	}

	return gochart.Chart{
		Title:  ch.Config().Title,
		Width:  int(dims.Width),
		Height: int(dims.Height),
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    int(dims.Margin.Top),
				Right:  int(dims.Margin.Right),
				Bottom: int(dims.Margin.Bottom),
				Left:   int(dims.Margin.Left),
			},
		},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{
				Min: float64(scales.X.D0.UnixNano()),
				Max: float64(scales.X.D1.UnixNano()),
			},
			Ticks: xTicks,
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: scales.Y.D0, Max: scales.Y.D1},
			Ticks: yTicks,
		},
		Series: series,
	}
}

// timeSeries returns the observations as go-chart series, one per run
// of observations with a value, so gaps in the data are not bridged.
// go-chart needs two points to draw a series: a lone point is repeated
// one second later.
func timeSeries(
	name string,
	data []*observation.Observation,
	style gochart.Style,
) []gochart.Series {
	var (
		result []gochart.Series
		xs     []time.Time
		ys     []float64
	)

	flush := func() {
		switch len(xs) {
		case 0:
			return
		case 1:
			xs = append(xs, xs[0].Add(time.Second))
			ys = append(ys, ys[0])
		}

		result = append(result, gochart.TimeSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style:   style,
		})

		xs, ys = nil, nil
	}

	for _, o := range data {
		if !o.HasValue() {
			flush()
			continue
		}

		xs = append(xs, o.Date)
		ys = append(ys, o.Value)
	}

	flush()

	return result
}

func find(ch *chart.Chart, code string) *observation.Series {
	for _, s := range ch.Series() {
		if s.Code == code {
			return s
		}
	}

	return nil
}

// color converts CSS hex colors, like "#333" or "#1f77b4", to go-chart
// colors.
func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
