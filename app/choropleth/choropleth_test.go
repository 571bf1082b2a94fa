package choropleth_test

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"math"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/paulmach/orb"

	"github.com/alcortesm/covid-graphics/app/choropleth"
	"github.com/alcortesm/covid-graphics/app/dataset"
	"github.com/alcortesm/covid-graphics/app/palette"
)

const shapesJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"admin": "Chile"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[-70, -20], [-68, -20], [-68, -50], [-70, -50], [-70, -20]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"admin": "Brazil"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[-60, 0], [-40, 0], [-40, -30], [-60, -30], [-60, 0]]],
          [[[-50, 2], [-49, 2], [-49, 1], [-50, 2]]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"admin": "Nowhere"},
      "geometry": null
    }
  ]
}`

const casesCSV = `Province/State,Country/Region,Lat,Long,6/29/20,6/30/20
,Brazil,-14,-51,1000,1200
,Chile,-35,-71,500,600
North,Peru,-9,-75,10,20
South,Peru,-9,-75,30,40
`

const populationCSV = `Country,2018,2019
Brazil,209000000,200000000
Chile,18000000,20000000
Peru,32000000,
`

func TestDecodeShapes(t *testing.T) {
	t.Parallel()

	shapes, err := choropleth.DecodeShapes(strings.NewReader(shapesJSON))
	if err != nil {
		t.Fatal(err)
	}

	names := make([]string, len(shapes))
	polygons := make([]int, len(shapes))
	for i, s := range shapes {
		names[i] = s.Name
		polygons[i] = len(s.Polygons)
	}

	if diff := cmp.Diff([]string{"Chile", "Brazil"}, names); diff != "" {
		t.Errorf("names (-want +got)\n%s", diff)
	}

	if diff := cmp.Diff([]int{1, 2}, polygons); diff != "" {
		t.Errorf("polygon counts (-want +got)\n%s", diff)
	}

	if got := shapes[0].Polygons[0][0][1]; got != (orb.Point{-68, -20}) {
		t.Errorf("wrong point %v", got)
	}
}

func TestDecodeShapes_Errors(t *testing.T) {
	t.Parallel()

	subtests := map[string]string{
		"not json":            `{`,
		"not a collection":    `{"type": "Feature"}`,
		"unsupported":         `{"type": "FeatureCollection", "features": [{"geometry": {"type": "Point", "coordinates": [1, 2]}}]}`,
		"invalid coordinates": `{"type": "FeatureCollection", "features": [{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [1, 2]}}]}`,
		"point":               `{"type": "FeatureCollection", "features": [{"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [1, 2]}}]}`,
	}

	for name, input := range subtests {
		input := input
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := choropleth.DecodeShapes(strings.NewReader(input)); err == nil {
				t.Error("want an error")
			}
		})
	}
}

func TestParseCases(t *testing.T) {
	t.Parallel()

	got, err := choropleth.ParseCases(strings.NewReader(casesCSV))
	if err != nil {
		t.Fatal(err)
	}

	want := choropleth.Cases{
		Date: "6/30/20",
		Counts: map[string]float64{
			"Brazil": 1200,
			"Chile":  600,
			"Peru":   60,
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestParseCases_Errors(t *testing.T) {
	t.Parallel()

	{ // missing country column
		_, err := choropleth.ParseCases(strings.NewReader("a,b,c,d,1/1/20\n"))

		var shapeErr *dataset.ShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("want a shape error, got %v", err)
		}

		if shapeErr.Column != choropleth.CountryColumn {
			t.Errorf("wrong column %q", shapeErr.Column)
		}
	}

	{ // invalid count
		input := "Province/State,Country/Region,Lat,Long,1/1/20\n,Chile,0,0,many\n"
		_, err := choropleth.ParseCases(strings.NewReader(input))

		var parseErr *dataset.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("want a parse error, got %v", err)
		}

		if parseErr.Row != 2 || parseErr.Value != "many" {
			t.Errorf("wrong parse error %#v", parseErr)
		}
	}

	{ // no dates
		input := "Province/State,Country/Region,Lat,Long\n"
		if _, err := choropleth.ParseCases(strings.NewReader(input)); err == nil {
			t.Error("want an error")
		}
	}
}

func TestParsePopulation(t *testing.T) {
	t.Parallel()

	got, err := choropleth.ParsePopulation(strings.NewReader(populationCSV), "2019")
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]float64{"Brazil": 200000000, "Chile": 20000000}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	_, err = choropleth.ParsePopulation(strings.NewReader(populationCSV), "2020")

	var shapeErr *dataset.ShapeError
	if !errors.As(err, &shapeErr) || shapeErr.Column != "2020" {
		t.Errorf("want a shape error for column 2020, got %v", err)
	}
}

func TestRate(t *testing.T) {
	t.Parallel()

	counts := map[string]float64{"Chile": 600, "Peru": 60}
	population := map[string]float64{"Chile": 20000000, "Peru": 0}

	got, ok := choropleth.Rate(counts, population, "Chile")
	if !ok || math.Abs(got-3) > 1e-9 {
		t.Errorf("want 3, got %v (%t)", got, ok)
	}

	if _, ok := choropleth.Rate(counts, population, "Peru"); ok {
		t.Error("rate for a country with no population")
	}

	if _, ok := choropleth.Rate(counts, population, "Bolivia"); ok {
		t.Error("rate for a country with no data")
	}
}

func TestDiverging(t *testing.T) {
	t.Parallel()

	d := choropleth.NewDiverging(-10, 20)

	subtests := map[float64][3]uint8{
		-10: {0, 100, 0},
		0:   {255, 255, 255},
		20:  {75, 0, 130},
		10:  {165, 128, 193},
		-5:  {128, 178, 128},
		// beyond the domain
		40:  {0, 0, 5},
		-30: {0, 0, 0},
	}

	for v, want := range subtests {
		r, g, b := d.Color(v).RGB255()
		got := [3]uint8{r, g, b}

		// half-way channels may round either way
		for i := range want {
			if diff := int(got[i]) - int(want[i]); diff < -1 || diff > 1 {
				t.Errorf("%v: want %v, got %v", v, want, got)
				break
			}
		}
	}

	if got := d.Color(20).Hex(); got != "#4b0082" {
		t.Errorf("want indigo, got %s", got)
	}
}

func TestFitWidth(t *testing.T) {
	t.Parallel()

	shapes, err := choropleth.DecodeShapes(strings.NewReader(shapesJSON))
	if err != nil {
		t.Fatal(err)
	}

	p := choropleth.FitWidth(400, shapes)

	b, ok := p.Bounds(shapes)
	if !ok {
		t.Fatal("no bounds")
	}

	approx := func(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

	if !approx(b.Min.X(), 0) || !approx(b.Min.Y(), 0) || !approx(b.Max.X(), 400) {
		t.Errorf("shapes do not fit: %#v", b)
	}

	// Mercator stretches southern latitudes
	if b.Max.Y() <= b.Max.X() {
		t.Errorf("want a tall map, got %#v", b)
	}

	// north is up
	north := p.Project(orb.Point{-50, 2})
	south := p.Project(orb.Point{-50, -30})
	if north.Y() >= south.Y() {
		t.Errorf("want north %v above south %v", north, south)
	}
}

func TestBounds_NoShapes(t *testing.T) {
	t.Parallel()

	if _, ok := choropleth.FitWidth(400, nil).Bounds(nil); ok {
		t.Error("want no bounds")
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	shapes, err := choropleth.DecodeShapes(strings.NewReader(shapesJSON))
	if err != nil {
		t.Fatal(err)
	}

	cases, err := choropleth.ParseCases(strings.NewReader(casesCSV))
	if err != nil {
		t.Fatal(err)
	}

	population, err := choropleth.ParsePopulation(strings.NewReader(populationCSV), "2019")
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}

	m := choropleth.Build(choropleth.Input{
		Keyword:    "map",
		Metric:     "cases",
		Shapes:     shapes,
		Cases:      cases,
		Population: population,
		WatchList:  []string{"Brazil", "Chile", "Peru"},
		Width:      480,
	}, rec)

	if m.Date != "6/30/20" {
		t.Errorf("wrong date %q", m.Date)
	}

	approx := cmpopts.EquateApprox(0, 1e-9)
	if diff := cmp.Diff([2]float64{0.6, 3}, m.Extent, approx); diff != "" {
		t.Errorf("extent (-want +got)\n%s", diff)
	}

	got := map[string]string{}
	for _, c := range m.Countries {
		got[c.Name] = c.Fill
		if c.D == "" {
			t.Errorf("%s has no path", c.Name)
		}
	}

	want := map[string]string{
		"Brazil": choropleth.NewDiverging(m.Extent[0], m.Extent[1]).Color(m.Extent[0]).Hex(),
		"Chile":  "#4b0082",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fills (-want +got)\n%s", diff)
	}

	if len(rec.lines) != 1 || !strings.Contains(rec.lines[0], "Peru") {
		t.Errorf("want a warning about Peru, got %q", rec.lines)
	}

	if m.Dimensions.BoundedHeight() <= 0 {
		t.Errorf("wrong height %v", m.Dimensions.Height)
	}
}

func TestBuild_MissingDataIsGrey(t *testing.T) {
	t.Parallel()

	shapes, err := choropleth.DecodeShapes(strings.NewReader(shapesJSON))
	if err != nil {
		t.Fatal(err)
	}

	m := choropleth.Build(choropleth.Input{
		Shapes:    shapes,
		WatchList: []string{"Chile"},
		Width:     480,
	}, logger(t))

	for _, c := range m.Countries {
		if c.Fill != palette.Grey || c.HasRate() {
			t.Errorf("%s: want grey with no rate, got %s %v", c.Name, c.Fill, c.Rate)
		}
	}
}

func TestLoader(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"https://example.com/map.geojson":    shapesJSON,
		"https://example.com/cases.csv":      casesCSV,
		"https://example.com/population.csv": populationCSV,
	}

	client := &mockHTTPer{
		do: func(r *http.Request) (*http.Response, error) {
			body, ok := bodies[r.URL.String()]
			if !ok {
				return &http.Response{
					StatusCode: http.StatusNotFound,
					Body:       ioutil.NopCloser(strings.NewReader("not found")),
				}, nil
			}

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       ioutil.NopCloser(strings.NewReader(body)),
			}, nil
		},
	}

	config := choropleth.Config{
		Keyword:       "map",
		Metric:        "cases",
		ShapesURL:     "https://example.com/map.geojson",
		CasesURL:      "https://example.com/cases.csv",
		PopulationURL: "https://example.com/population.csv",
		WatchList:     []string{"Brazil", "Chile"},
		Width:         480,
	}

	m, err := choropleth.NewLoader(logger(t), client, config).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Countries) != 2 {
		t.Errorf("want 2 countries, got %d", len(m.Countries))
	}

	config.CasesURL = "https://example.com/missing.csv"

	_, err = choropleth.NewLoader(logger(t), client, config).Load(context.Background())

	var fetchErr *dataset.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("want a fetch error, got %v", err)
	}

	if fetchErr.Status != http.StatusNotFound {
		t.Errorf("want status 404, got %d", fetchErr.Status)
	}
}

// logger returns a choropleth.Logger that writes to Go's testing output.
func logger(t *testing.T) choropleth.Logger {
	return log.New(testWriter{t}, "", 0)
}

// testWriter is a writer that writes to Go's testing output.
type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Logf("%s", string(p))
	return len(p), nil
}

type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) Printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

type mockHTTPer struct {
	do func(*http.Request) (*http.Response, error)
}

func (m *mockHTTPer) Do(r *http.Request) (*http.Response, error) {
	return m.do(r)
}

func TestSeriesURL(t *testing.T) {
	t.Parallel()

	for metric, want := range map[string]string{
		"deaths": "time_series_covid19_deaths_global.csv",
		"cases":  "time_series_covid19_confirmed_global.csv",
		"":       "time_series_covid19_confirmed_global.csv",
	} {
		if got := choropleth.SeriesURL(metric); !strings.HasSuffix(got, want) {
			t.Errorf("metric %q: want suffix %q, got %q", metric, want, got)
		}
	}
}
