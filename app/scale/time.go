package scale

import (
	"math"
	"time"
)

// UpperPad is the factor applied to the epoch milliseconds of the
// newest date to leave some room at the right of the time axis.
const UpperPad = 1.0003

const day = 24 * time.Hour

// Time maps the time domain [D0, D1] onto the range [R0, R1].
type Time struct {
	D0, D1 time.Time
	R0, R1 float64
}

// PadUpper returns t with its epoch milliseconds multiplied by
// UpperPad.
func PadUpper(t time.Time) time.Time {
	ms := float64(t.UnixNano()/int64(time.Millisecond)) * UpperPad
	return time.Unix(0, int64(ms)*int64(time.Millisecond)).UTC()
}

// Map returns the position of t in the range.
func (s Time) Map(t time.Time) float64 {
	span := s.D1.Sub(s.D0)
	if span == 0 {
		return s.R0 + 0.5*(s.R1-s.R0)
	}

	ratio := float64(t.Sub(s.D0)) / float64(span)

	return s.R0 + ratio*(s.R1-s.R0)
}

// Invert returns the date at position p of the range.
func (s Time) Invert(p float64) time.Time {
	span := s.R1 - s.R0
	if span == 0 {
		return s.D0
	}

	ratio := (p - s.R0) / span
	offset := time.Duration(math.Round(ratio * float64(s.D1.Sub(s.D0))))

	return s.D0.Add(offset)
}

// interval is a calendar step used to place time ticks.
type interval struct {
	approx time.Duration
	floor  func(time.Time) time.Time
	next   func(time.Time) time.Time
}

func days(n int) interval {
	return interval{
		approx: time.Duration(n) * day,
		floor: func(t time.Time) time.Time {
			t = truncateDay(t)
			// align to multiples of n days in the month, as d3 does
			return t.AddDate(0, 0, -((t.Day() - 1) % n))
		},
		next: func(t time.Time) time.Time {
			t = t.AddDate(0, 0, 1)
			for (t.Day()-1)%n != 0 {
				t = t.AddDate(0, 0, 1)
			}
			return t
		},
	}
}

func weeks(n int) interval {
	return interval{
		approx: time.Duration(n) * 7 * day,
		floor: func(t time.Time) time.Time {
			t = truncateDay(t)
			return t.AddDate(0, 0, -int(t.Weekday()))
		},
		next: func(t time.Time) time.Time {
			return t.AddDate(0, 0, 7*n)
		},
	}
}

func months(n int) interval {
	return interval{
		approx: time.Duration(n) * 30 * day,
		floor: func(t time.Time) time.Time {
			m := (int(t.Month()) - 1) / n * n
			return time.Date(t.Year(), time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
		},
		next: func(t time.Time) time.Time {
			return t.AddDate(0, n, 0)
		},
	}
}

var intervals = []interval{
	days(1), days(2), weeks(1), months(1), months(3), months(6), months(12),
}

// Ticks returns calendar aligned dates inside the domain, about count
// of them: days, weeks (starting on Sunday) or months depending on the
// span of the domain.
func (s Time) Ticks(count int) []time.Time {
	if count <= 0 || !s.D1.After(s.D0) {
		return nil
	}

	target := s.D1.Sub(s.D0) / time.Duration(count)

	chosen := intervals[len(intervals)-1]
	for i, iv := range intervals {
		if iv.approx < target {
			continue
		}

		chosen = iv
		if i > 0 && float64(target)/float64(intervals[i-1].approx) <
			float64(iv.approx)/float64(target) {
			chosen = intervals[i-1]
		}
		break
	}

	var ticks []time.Time
	t := chosen.floor(s.D0)
	if t.Before(s.D0) {
		t = chosen.next(t)
	}

	for ; !t.After(s.D1); t = chosen.next(t) {
		ticks = append(ticks, t)
	}

	return ticks
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
