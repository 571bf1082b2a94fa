/*
Package web serves the dashboard: an index of the charts, a page per
chart with its SVG scene, the tooltip and toggle endpoints those pages
use, static and interactive exports of the charts and the choropleth map.

The active set of a chart travels in the query string of every request,
so every response is a function of the request alone.
*/
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/alcortesm/covid-graphics/app/chart"
	"github.com/alcortesm/covid-graphics/app/choropleth"
	"github.com/alcortesm/covid-graphics/app/locale"
	"github.com/alcortesm/covid-graphics/app/toggle"
	"github.com/alcortesm/covid-graphics/app/tooltip"
	"github.com/alcortesm/covid-graphics/pkg/httpdeco"
)

var (
	indexTmpl       = template.Must(template.New("index").Parse(indexTemplate))
	chartTmpl       = template.Must(template.New("chart").Parse(chartTemplate))
	mapTmpl         = template.Must(template.New("map").Parse(mapTemplate))
	unavailableTmpl = template.Must(template.New("unavailable").Parse(unavailableTemplate))
)

type Logger interface {
	Printf(string, ...interface{})
}

type Web struct {
	Logger   Logger
	Registry *Registry
	Locale   locale.Locale
	// MapTitle is the title of the choropleth page.
	MapTitle string
}

// Router returns the handler of every route of the dashboard, with
// request logs and panic recovery.
func (w Web) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(httpdeco.WithLogs(w.Logger), httpdeco.WithRecover(w.Logger))

	r.Method(http.MethodGet, "/", w.IndexHandler())
	r.Method(http.MethodGet, "/style.css", w.StyleHandler())
	r.Method(http.MethodGet, "/map", w.MapHandler())

	r.Route("/charts", func(r chi.Router) {
		r.Method(http.MethodGet, "/{keyword}.png", w.PNGHandler())
		r.Method(http.MethodGet, "/{keyword}", w.ChartHandler())
		r.Method(http.MethodGet, "/{keyword}/toggle", w.ToggleHandler())
		r.Method(http.MethodGet, "/{keyword}/tooltip", w.TooltipHandler())
		r.Method(http.MethodGet, "/{keyword}/interactive", w.InteractiveHandler())
	})

	return r
}

func (w Web) StyleHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-type", "text/css")
		rw.Write([]byte(css))
	})
}

func (w Web) IndexHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		data := struct {
			Lang     string
			Entries  []Entry
			MapTitle string
		}{
			Lang:     w.Locale.String(),
			Entries:  w.Registry.Entries(),
			MapTitle: w.mapTitle(),
		}

		w.render(rw, http.StatusOK, indexTmpl, data)
	})
}

// lookup returns the chart of the request. If there is none it writes
// the error response: 404 for unknown charts and 503 for charts that
// could not be loaded.
func (w Web) lookup(rw http.ResponseWriter, r *http.Request) (Entry, bool) {
	keyword := chi.URLParam(r, "keyword")

	e, ok := w.Registry.Get(keyword)
	if !ok {
		http.Error(rw, fmt.Sprintf("unknown chart %q", keyword),
			http.StatusNotFound)
		return Entry{}, false
	}

	if !e.Ready() {
		data := struct {
			Lang  string
			Title string
			Err   error
		}{
			Lang:  w.Locale.String(),
			Title: e.Title,
			Err:   e.Err,
		}

		w.render(rw, http.StatusServiceUnavailable, unavailableTmpl, data)
		return Entry{}, false
	}

	return e, true
}

// active returns the active set carried by the request, or the default
// active set of the chart if the request carries none.
func active(r *http.Request, ch *chart.Chart) *toggle.Set {
	set, ok := toggle.FromQuery(r.URL.Query())
	if !ok {
		return ch.DefaultActive()
	}

	return set
}

func chartURL(keyword, suffix string, set *toggle.Set) string {
	return "/charts/" + url.PathEscape(keyword) + suffix + "?" +
		set.Query().Encode()
}

func toggleURL(keyword, code string, set *toggle.Set) string {
	q := set.Query()
	q.Set("code", code)

	return "/charts/" + url.PathEscape(keyword) + "/toggle?" + q.Encode()
}

// linkedPath is a line of the chart that toggles its entity when
// clicked.
type linkedPath struct {
	chart.Path
	ToggleURL string
}

func linkPaths(keyword string, paths []chart.Path, set *toggle.Set) []linkedPath {
	result := make([]linkedPath, len(paths))
	for i, p := range paths {
		result[i] = linkedPath{
			Path:      p,
			ToggleURL: toggleURL(keyword, p.Code, set),
		}
	}

	return result
}

func (w Web) ChartHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		e, ok := w.lookup(rw, r)
		if !ok {
			return
		}

		ch := e.Chart
		set := active(r, ch)
		scene := ch.Scene(set)
		dims := scene.Dimensions

		data := struct {
			Lang           string
			Title          string
			Keyword        string
			Scene          chart.Scene
			BoundedWidth   float64
			BoundedHeight  float64
			Labels         []chart.Label
			Grey           []linkedPath
			Active         []linkedPath
			TooltipLeft    float64
			TooltipURL     string
			PNGURL         string
			InteractiveURL string
			Stale          error
			Updated        string
		}{
			Lang:           w.Locale.String(),
			Title:          e.Title,
			Keyword:        e.Keyword,
			Scene:          scene,
			BoundedWidth:   dims.BoundedWidth(),
			BoundedHeight:  dims.BoundedHeight(),
			Labels:         ch.Labels(set),
			Grey:           linkPaths(e.Keyword, scene.Grey, set),
			Active:         linkPaths(e.Keyword, scene.Active, set),
			TooltipLeft:    scene.TooltipLeft,
			TooltipURL:     chartURL(e.Keyword, "/tooltip", set),
			PNGURL:         chartURL(e.Keyword, ".png", set),
			InteractiveURL: chartURL(e.Keyword, "/interactive", set),
			Stale:          e.Err,
		}

		if !e.Updated.IsZero() {
			data.Updated = e.Updated.Format(time.RFC3339)
		}

		w.render(rw, http.StatusOK, chartTmpl, data)
	})
}

// ToggleHandler flips one entity of the active set and redirects to the
// chart page showing the new set.
func (w Web) ToggleHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		e, ok := w.lookup(rw, r)
		if !ok {
			return
		}

		code := r.URL.Query().Get("code")
		if !e.Chart.Has(code) {
			http.Error(rw, fmt.Sprintf("chart %s has no entity %q",
				e.Keyword, code), http.StatusBadRequest)
			return
		}

		set := active(r, e.Chart)
		set.Toggle(code)

		http.Redirect(rw, r, chartURL(e.Keyword, "", set), http.StatusSeeOther)
	})
}

type tooltipResponse struct {
	Visible bool `json:"visible"`
	tooltip.Tooltip
}

// TooltipHandler returns, as JSON, the tooltip for the horizontal
// position x of the plot area, in pixels.
func (w Web) TooltipHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		e, ok := w.lookup(rw, r)
		if !ok {
			return
		}

		x, err := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
		if err != nil {
			http.Error(rw, fmt.Sprintf("invalid x: %v", err),
				http.StatusBadRequest)
			return
		}

		t, visible := e.Chart.Tooltip(x, active(r, e.Chart))

		rw.Header().Set("Content-type", "application/json")
		if err := json.NewEncoder(rw).Encode(tooltipResponse{
			Visible: visible,
			Tooltip: t,
		}); err != nil {
			w.Logger.Printf("encoding tooltip of %s: %v", e.Keyword, err)
		}
	})
}

func (w Web) PNGHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		e, ok := w.lookup(rw, r)
		if !ok {
			return
		}

		graph := pngChart(e.Chart, active(r, e.Chart))

		var buf bytes.Buffer
		if err := graph.Render(gochart.PNG, &buf); err != nil {
			http.Error(rw, fmt.Sprintf("rendering %s: %v", e.Keyword, err),
				http.StatusInternalServerError)
			return
		}

		rw.Header().Set("Content-type", "image/png")
		rw.Write(buf.Bytes())
	})
}

func (w Web) InteractiveHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		e, ok := w.lookup(rw, r)
		if !ok {
			return
		}

		line := interactiveChart(e.Chart, active(r, e.Chart))

		var buf bytes.Buffer
		if err := line.Render(&buf); err != nil {
			http.Error(rw, fmt.Sprintf("rendering %s: %v", e.Keyword, err),
				http.StatusInternalServerError)
			return
		}

		rw.Header().Set("Content-type", "text/html")
		rw.Write(buf.Bytes())
	})
}

func (w Web) MapHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		m, err := w.Registry.Map()
		if err != nil {
			data := struct {
				Lang  string
				Title string
				Err   error
			}{
				Lang:  w.Locale.String(),
				Title: w.mapTitle(),
				Err:   err,
			}

			w.render(rw, http.StatusServiceUnavailable, unavailableTmpl, data)
			return
		}

		data := struct {
			Lang  string
			Title string
			Date  string
			Low   string
			High  string
			Map   *choropleth.Map
		}{
			Lang:  w.Locale.String(),
			Title: w.mapTitle(),
			Date:  m.Date,
			Low:   strconv.FormatFloat(m.Extent[0], 'f', 1, 64),
			High:  strconv.FormatFloat(m.Extent[1], 'f', 1, 64),
			Map:   m,
		}

		w.render(rw, http.StatusOK, mapTmpl, data)
	})
}

func (w Web) mapTitle() string {
	if w.MapTitle == "" {
		return "Map"
	}

	return w.MapTitle
}

// render executes the template in a buffer first, so a template error
// can still be answered with a 500.
func (w Web) render(
	rw http.ResponseWriter,
	status int,
	tmpl *template.Template,
	data interface{},
) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		w.Logger.Printf("executing template %s: %v", tmpl.Name(), err)
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-type", "text/html")
	rw.WriteHeader(status)
	rw.Write(buf.Bytes())
}
