package web

import (
	"errors"
	"sync"
	"time"

	"github.com/alcortesm/covid-graphics/app/chart"
	"github.com/alcortesm/covid-graphics/app/choropleth"
)

// ErrNotLoaded is the state of a chart or map that has not been loaded
// yet.
var ErrNotLoaded = errors.New("not loaded yet")

// Entry is the state of a chart: either a chart ready to be drawn or the
// error that prevented loading it.
type Entry struct {
	Keyword string
	Title   string
	Chart   *chart.Chart
	// Err is the last load error. An entry can have both a chart and an
	// error when a refresh failed after a good load.
	Err     error
	Updated time.Time
}

// Ready reports whether the entry can be drawn.
func (e Entry) Ready() bool {
	return e.Chart != nil
}

// Registry holds the charts and the map of the dashboard. Refresh loops
// write to it while the web handlers read from it.
type Registry struct {
	now func() time.Time

	mu      sync.RWMutex
	order   []string
	entries map[string]*Entry
	m       *choropleth.Map
	mapErr  error
}

func NewRegistry(now func() time.Time) *Registry {
	return &Registry{
		now:     now,
		entries: map[string]*Entry{},
		mapErr:  ErrNotLoaded,
	}
}

// Register adds a chart that is not loaded yet. Charts are listed in the
// order they are registered.
func (r *Registry) Register(keyword, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[keyword]; ok {
		return
	}

	r.order = append(r.order, keyword)
	r.entries[keyword] = &Entry{
		Keyword: keyword,
		Title:   title,
		Err:     ErrNotLoaded,
	}
}

// Set stores the result of loading a chart. A failed load does not
// replace a chart that was loaded before: the old chart keeps being
// served and the error is remembered. A chart that comes with an error,
// like one drawn from archived data, is served with the error shown and
// does not count as an update.
func (r *Registry) Set(keyword string, ch *chart.Chart, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[keyword]
	if !ok {
		r.order = append(r.order, keyword)
		e = &Entry{Keyword: keyword, Title: keyword}
		r.entries[keyword] = e
	}

	e.Err = err

	if ch != nil {
		e.Chart = ch
	}

	if err == nil {
		e.Updated = r.now()
	}
}

// Get returns the entry of a chart and whether the chart is known.
func (r *Registry) Get(keyword string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[keyword]
	if !ok {
		return Entry{}, false
	}

	return *e, true
}

// Entries returns every chart, in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Entry, 0, len(r.order))
	for _, k := range r.order {
		result = append(result, *r.entries[k])
	}

	return result
}

// SetMap stores the result of loading the map. As with charts, a failed
// load keeps the previous map.
func (r *Registry) SetMap(m *choropleth.Map, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mapErr = err
	if err == nil {
		r.m = m
	}
}

// Map returns the map, or the error that prevented loading it if there
// is none.
func (r *Registry) Map() (*choropleth.Map, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.m == nil {
		return nil, r.mapErr
	}

	return r.m, nil
}
