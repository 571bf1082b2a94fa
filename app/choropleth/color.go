package choropleth

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Named colors of the diverging scale.
var (
	DarkGreen = colorful.Color{R: 0, G: 100.0 / 255, B: 0}
	White     = colorful.Color{R: 1, G: 1, B: 1}
	Indigo    = colorful.Color{R: 75.0 / 255, G: 0, B: 130.0 / 255}
)

// Diverging maps values below zero to shades between Mid and Low,
// and values above zero to shades between Mid and High. Values beyond
// the domain are extrapolated and then clamped to valid colors.
type Diverging struct {
	Min, Max float64
	Low      colorful.Color
	Mid      colorful.Color
	High     colorful.Color
}

// NewDiverging returns the scale of the map: dark green for the lowest
// value, white for zero and indigo for the highest.
func NewDiverging(min, max float64) Diverging {
	return Diverging{
		Min:  min,
		Max:  max,
		Low:  DarkGreen,
		Mid:  White,
		High: Indigo,
	}
}

func (d Diverging) Color(v float64) colorful.Color {
	if v < 0 {
		return d.Mid.BlendRgb(d.Low, ratio(v, 0, d.Min)).Clamped()
	}

	return d.Mid.BlendRgb(d.High, ratio(v, 0, d.Max)).Clamped()
}

// ratio returns where v sits between from and to. A degenerate interval
// puts everything at its start.
func ratio(v, from, to float64) float64 {
	if to == from {
		return 0
	}

	return (v - from) / (to - from)
}
