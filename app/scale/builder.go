package scale

import (
	"errors"
	"time"

	"github.com/alcortesm/covid-graphics/app/observation"
)

// ErrNoData is returned when there is nothing to build scales from.
var ErrNoData = errors.New("no observations with a date and a value")

// niceTicks is how many ticks the value domain is rounded for.
const niceTicks = 10

// Scales are the scales of a line chart, together with the extents of
// the data they were built from.
type Scales struct {
	X Time
	Y Linear

	DateExtent  [2]time.Time
	ValueExtent [2]float64
}

// Build returns the scales for plotting the data in a chart with the
// given dimensions. The time domain goes from the oldest date to the
// padded newest date. The value domain is the extent of the values
// rounded to nice numbers, unless the override forces a domain.
func Build(
	data []*observation.Observation,
	dims Dimensions,
	override *Override,
) (Scales, error) {
	d0, d1, ok := observation.DateExtent(data)
	if !ok {
		return Scales{}, ErrNoData
	}

	v0, v1, ok := observation.ValueExtent(data)
	if !ok {
		return Scales{}, ErrNoData
	}

	y := Linear{
		D0: v0,
		D1: v1,
		R0: dims.BoundedHeight(),
		R1: 0,
	}.Nice(niceTicks)

	if override != nil && override.Domain != nil {
		y.D0, y.D1 = override.Domain[0], override.Domain[1]
		y.Clamp = override.Clamp
	}

	x := Time{
		D0: d0,
		D1: PadUpper(d1),
		R0: 0,
		R1: dims.BoundedWidth(),
	}

	return Scales{
		X:           x,
		Y:           y,
		DateExtent:  [2]time.Time{d0, d1},
		ValueExtent: [2]float64{v0, v1},
	}, nil
}
