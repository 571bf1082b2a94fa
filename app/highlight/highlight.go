/*
Package highlight decides which entities of a dataset are shown
highlighted when a chart is first drawn.
*/
package highlight

import (
	"errors"
	"math"
	"sort"

	"github.com/alcortesm/covid-graphics/app/observation"
)

// ErrNoMatch is returned when a strategy cannot find the entities it
// looks for. It is not fatal: the chart is drawn with no highlights.
var ErrNoMatch = errors.New("no entity matches the highlight criteria")

// Strategy selects the codes of the entities to highlight, given the
// observations of the latest day and the number of entities in the
// dataset.
type Strategy interface {
	Select(latest []*observation.Observation, count int) ([]string, error)
}

// Rank highlights the best and the worst ranked entities of the latest
// day: the one at rank 1 and the one at rank count.
//
// When several rows share a target rank, the first one in code order
// is selected. When no row has one of the target ranks ErrNoMatch is
// returned; there is no fallback to the minimum or maximum rank.
type Rank struct{}

func (Rank) Select(latest []*observation.Observation, count int) (
	[]string, error) {
	if count < 1 {
		return nil, ErrNoMatch
	}

	sorted := byCode(latest)

	first, ok := withRank(sorted, 1)
	if !ok {
		return nil, ErrNoMatch
	}

	last, ok := withRank(sorted, float64(count))
	if !ok {
		return nil, ErrNoMatch
	}

	if first == last {
		return []string{first}, nil
	}

	return []string{first, last}, nil
}

func withRank(data []*observation.Observation, rank float64) (string, bool) {
	for _, o := range data {
		if o.Rank == rank {
			return o.Code, true
		}
	}

	return "", false
}

// Editorial highlights a fixed list of entities. Codes missing from
// the data are ignored; the rest keep the order of the list.
type Editorial struct {
	Codes []string
}

func (e Editorial) Select(latest []*observation.Observation, _ int) (
	[]string, error) {
	present := make(map[string]bool, len(latest))
	for _, o := range latest {
		present[o.Code] = true
	}

	var codes []string
	for _, c := range e.Codes {
		if present[c] {
			codes = append(codes, c)
		}
	}

	if len(codes) == 0 {
		return nil, ErrNoMatch
	}

	return codes, nil
}

// None never highlights anything.
type None struct{}

func (None) Select([]*observation.Observation, int) ([]string, error) {
	return nil, nil
}

// Latest returns the observations of the most recent day, the ones with
// the highest days counter. Datasets without a days counter use the
// newest date instead.
func Latest(data []*observation.Observation) []*observation.Observation {
	maxDay := math.Inf(-1)
	for _, o := range data {
		if !math.IsNaN(o.Day) {
			maxDay = math.Max(maxDay, o.Day)
		}
	}

	if !math.IsInf(maxDay, -1) {
		return filter(data, func(o *observation.Observation) bool {
			return o.Day == maxDay
		})
	}

	_, newest, ok := observation.DateExtent(data)
	if !ok {
		return nil
	}

	return filter(data, func(o *observation.Observation) bool {
		return o.Date.Equal(newest)
	})
}

// Count returns the number of different entities in the data.
func Count(data []*observation.Observation) int {
	codes := map[string]struct{}{}
	for _, o := range data {
		codes[o.Code] = struct{}{}
	}

	return len(codes)
}

func filter(
	data []*observation.Observation,
	keep func(*observation.Observation) bool,
) []*observation.Observation {
	var result []*observation.Observation

	for _, o := range data {
		if keep(o) {
			result = append(result, o)
		}
	}

	return result
}

func byCode(data []*observation.Observation) []*observation.Observation {
	sorted := make([]*observation.Observation, len(data))
	copy(sorted, data)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Code < sorted[j].Code
	})

	return sorted
}
