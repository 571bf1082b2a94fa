/*
Package scale maps data domains onto pixel ranges, the way chart axes
need them: a linear scale for metric values and a time scale for dates.
*/
package scale

import (
	"math"
	"strconv"
	"strings"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Linear maps the continuous domain [D0, D1] onto the range [R0, R1].
type Linear struct {
	D0, D1 float64
	R0, R1 float64
	Clamp  bool
}

// normalize returns where v sits in the domain, 0 for D0 and 1 for D1.
// A degenerate domain puts every value in the middle.
func (l Linear) normalize(v float64) float64 {
	span := l.D1 - l.D0
	if span == 0 {
		return 0.5
	}

	t := (v - l.D0) / span
	if l.Clamp {
		t = math.Max(0, math.Min(1, t))
	}

	return t
}

// Map returns the position of v in the range.
func (l Linear) Map(v float64) float64 {
	return l.R0 + l.normalize(v)*(l.R1-l.R0)
}

// Invert returns the domain value at position p of the range.
func (l Linear) Invert(p float64) float64 {
	span := l.R1 - l.R0
	if span == 0 {
		return l.D0
	}

	t := (p - l.R0) / span
	if l.Clamp {
		t = math.Max(0, math.Min(1, t))
	}

	return l.D0 + t*(l.D1-l.D0)
}

// Nice extends the domain so it starts and ends on round values,
// aiming at count ticks.
func (l Linear) Nice(count int) Linear {
	start, stop := l.D0, l.D1
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	prestep := math.NaN()

loop:
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, count)
		if step == prestep {
			break
		}

		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			break loop
		}

		prestep = step
	}

	if reversed {
		start, stop = stop, start
	}

	l.D0, l.D1 = start, stop

	return l
}

// Ticks returns round values inside the domain, about count of them.
func (l Linear) Ticks(count int) []float64 {
	start, stop := l.D0, l.D1
	if start == stop && count > 0 {
		return []float64{start}
	}

	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	step := tickIncrement(start, stop, count)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}

	var ticks []float64

	if step > 0 {
		r0 := math.Round(start / step)
		r1 := math.Round(stop / step)
		if r0*step < start {
			r0++
		}
		if r1*step > stop {
			r1--
		}
		for r := r0; r <= r1; r++ {
			ticks = append(ticks, r*step)
		}
	} else {
		step = -step
		r0 := math.Round(start * step)
		r1 := math.Round(stop * step)
		if r0/step < start {
			r0++
		}
		if r1/step > stop {
			r1--
		}
		for r := r0; r <= r1; r++ {
			ticks = append(ticks, r/step)
		}
	}

	if reversed {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}

	return ticks
}

// FormatTick formats a tick value with as many decimals as the tick
// step needs and thousands separators.
func (l Linear) FormatTick(v float64, count int) string {
	inc := tickIncrement(math.Min(l.D0, l.D1), math.Max(l.D0, l.D1), count)

	decimals := 0
	if inc < 0 {
		// steps below one are encoded as -1/step
		decimals = int(math.Ceil(math.Log10(-inc) - 1e-9))
	}

	return group(strconv.FormatFloat(v, 'f', decimals, 64))
}

// tickIncrement returns the distance between round ticks covering
// [start, stop] with about count ticks. Increments smaller than one are
// returned as the negated inverse, to avoid floating point noise.
func tickIncrement(start, stop float64, count int) float64 {
	if count <= 0 {
		return 0
	}

	step := (stop - start) / float64(count)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0
	}

	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}

	return -math.Pow(10, -power) / factor
}

// group adds thousands separators to the integer part of a formatted
// number.
func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	integer, fraction := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		integer, fraction = s[:i], s[i:]
	}

	if len(integer) <= 3 {
		return sign + integer + fraction
	}

	var b strings.Builder
	first := len(integer) % 3
	if first > 0 {
		b.WriteString(integer[:first])
	}

	for i := first; i < len(integer); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(integer[i : i+3])
	}

	return sign + b.String() + fraction
}
