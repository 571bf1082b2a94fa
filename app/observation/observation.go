package observation

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// DateLayout is the layout of the date column in the datasets.
const DateLayout = "2006-01-02"

// Observation is one row of a dataset: the value of a metric for an
// entity (a state or a country) on a given date.
type Observation struct {
	Date  time.Time
	Code  string
	Name  string
	Value float64
	Day   float64
	Rank  float64
}

func (o *Observation) String() string {
	return fmt.Sprintf("(%s, %s, %.2f)",
		o.Date.Format(DateLayout), o.Code, o.Value)
}

// Equal reports whether o and other hold the same data. Dates are
// compared as instants and NaN values are equal to each other.
func (o *Observation) Equal(other *Observation) bool {
	if !o.Date.Equal(other.Date) {
		return false
	}

	if o.Code != other.Code || o.Name != other.Name {
		return false
	}

	return equalFloats(o.Value, other.Value) &&
		equalFloats(o.Day, other.Day) &&
		equalFloats(o.Rank, other.Rank)
}

func equalFloats(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}

	return a == b
}

// HasValue reports whether the metric value is known.
func (o *Observation) HasValue() bool {
	return !math.IsNaN(o.Value)
}

// Series is all the observations of one entity, sorted by date.
type Series struct {
	Code         string
	Name         string
	Observations []*Observation
}

// At returns the observation of the series on the given date.
func (s *Series) At(date time.Time) (*Observation, bool) {
	i := sort.Search(len(s.Observations), func(i int) bool {
		return !s.Observations[i].Date.Before(date)
	})

	if i < len(s.Observations) && s.Observations[i].Date.Equal(date) {
		return s.Observations[i], true
	}

	return nil, false
}

// Group splits the observations by entity code. The returned series
// are sorted by code and the observations of each series by date. The
// series with the aggregate code is returned apart, or nil if the data
// has none.
func Group(data []*Observation, aggregate string) (
	series []*Series, agg *Series) {
	byCode := map[string]*Series{}

	for _, o := range data {
		s, ok := byCode[o.Code]
		if !ok {
			s = &Series{Code: o.Code, Name: o.Name}
			byCode[o.Code] = s
		}

		s.Observations = append(s.Observations, o)
	}

	for code, s := range byCode {
		sort.SliceStable(s.Observations, func(i, j int) bool {
			return s.Observations[i].Date.Before(s.Observations[j].Date)
		})

		if code == aggregate {
			agg = s
			continue
		}

		series = append(series, s)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Code < series[j].Code
	})

	return series, agg
}

// Codes returns the entity codes of the data in the order they first
// appear, the aggregate code excluded.
func Codes(data []*Observation, aggregate string) []string {
	seen := map[string]bool{aggregate: true}

	var result []string
	for _, o := range data {
		if seen[o.Code] {
			continue
		}

		seen[o.Code] = true
		result = append(result, o.Code)
	}

	return result
}

// DateExtent returns the oldest and the newest dates in the data. The
// boolean is false if there is no data.
func DateExtent(data []*Observation) (min, max time.Time, ok bool) {
	for _, o := range data {
		if !ok {
			min, max, ok = o.Date, o.Date, true
			continue
		}

		if o.Date.Before(min) {
			min = o.Date
		}

		if o.Date.After(max) {
			max = o.Date
		}
	}

	return min, max, ok
}

// ValueExtent returns the minimum and maximum known values in the data.
// The boolean is false if no observation has a value.
func ValueExtent(data []*Observation) (min, max float64, ok bool) {
	for _, o := range data {
		if !o.HasValue() {
			continue
		}

		if !ok {
			min, max, ok = o.Value, o.Value, true
			continue
		}

		min = math.Min(min, o.Value)
		max = math.Max(max, o.Value)
	}

	return min, max, ok
}

// Without returns the observations whose code is not the given one.
func Without(data []*Observation, code string) []*Observation {
	result := make([]*Observation, 0, len(data))

	for _, o := range data {
		if o.Code != code {
			result = append(result, o)
		}
	}

	return result
}
