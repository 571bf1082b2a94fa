package choropleth

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/alcortesm/covid-graphics/app/dataset"
)

const jhuSeries = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series/time_series_covid19_%s_global.csv"

// SeriesURL returns where the JHU time series of the metric is
// published: deaths for "deaths" and confirmed cases otherwise.
func SeriesURL(metric string) string {
	if metric == "deaths" {
		return fmt.Sprintf(jhuSeries, "deaths")
	}

	return fmt.Sprintf(jhuSeries, "confirmed")
}

// Config describes the map of the dashboard and where its data lives.
type Config struct {
	Keyword string
	// Metric names what is counted, like "cases" or "deaths".
	Metric    string
	ShapesURL string
	// CasesURL defaults to the JHU series of the metric.
	CasesURL      string
	PopulationURL string
	// PopulationYear is the column of the population data to use.
	PopulationYear string
	WatchList      []string
	Width          float64
}

type Loader struct {
	logger Logger
	client dataset.HTTPer
	config Config
}

func NewLoader(logger Logger, client dataset.HTTPer, config Config) *Loader {
	if config.PopulationYear == "" {
		config.PopulationYear = DefaultPopulationYear
	}

	if config.CasesURL == "" {
		config.CasesURL = SeriesURL(config.Metric)
	}

	if config.WatchList == nil {
		config.WatchList = WatchList
	}

	return &Loader{
		logger: logger,
		client: client,
		config: config,
	}
}

// Load downloads the shapes, the time series and the population data,
// all at the same time, and builds the map.
func (l *Loader) Load(ctx context.Context) (*Map, error) {
	var (
		shapes     []Shape
		cases      Cases
		population map[string]float64
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		body, err := dataset.Fetch(ctx, l.client, l.config.ShapesURL, "application/geo+json")
		if err != nil {
			return err
		}
		defer body.Close()

		if shapes, err = DecodeShapes(body); err != nil {
			return fmt.Errorf("parsing %s: %w", l.config.ShapesURL, err)
		}

		return nil
	})

	g.Go(func() error {
		body, err := dataset.Fetch(ctx, l.client, l.config.CasesURL, "text/csv")
		if err != nil {
			return err
		}
		defer body.Close()

		if cases, err = ParseCases(body); err != nil {
			return fmt.Errorf("parsing %s: %w", l.config.CasesURL, err)
		}

		return nil
	})

	g.Go(func() error {
		body, err := dataset.Fetch(ctx, l.client, l.config.PopulationURL, "text/csv")
		if err != nil {
			return err
		}
		defer body.Close()

		population, err = ParsePopulation(body, l.config.PopulationYear)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", l.config.PopulationURL, err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Printf("debug: loaded %d shapes and %d countries for map %s\n",
		len(shapes), len(cases.Counts), l.config.Keyword)

	return Build(Input{
		Keyword:    l.config.Keyword,
		Metric:     l.config.Metric,
		Shapes:     shapes,
		Cases:      cases,
		Population: population,
		WatchList:  l.config.WatchList,
		Width:      l.config.Width,
	}, l.logger), nil
}
