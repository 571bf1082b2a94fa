package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"

	"github.com/alcortesm/covid-graphics/app/catalog"
	"github.com/alcortesm/covid-graphics/app/chart"
	"github.com/alcortesm/covid-graphics/app/choropleth"
	"github.com/alcortesm/covid-graphics/app/dataset"
	"github.com/alcortesm/covid-graphics/app/influx"
	"github.com/alcortesm/covid-graphics/app/locale"
	"github.com/alcortesm/covid-graphics/app/observation"
	"github.com/alcortesm/covid-graphics/app/web"
)

const (
	envPrefix = "COVID_GRAPHICS"

	shutdownTimeoutSeconds   = 10
	readTimeoutSeconds       = 10
	writeTimeoutSeconds      = 30
	idleTimeoutSeconds       = 30
	readHeaderTimeoutSeconds = 2
)

type Config struct {
	Port    int           `default:"8080"`
	Locale  locale.Locale `default:"en"`
	Country string        `default:"mexico"`
	DataURL string        `default:"https://raw.githubusercontent.com/lennymd/covidGraphics/main/data" split_words:"true"`
	Width   float64       `default:"800"`
	Refresh time.Duration `default:"1h"`
	Timeout time.Duration `default:"30s"`
	Map     MapConfig
	// Archive stores every load in InfluxDB, and loads from there when
	// a dataset cannot be downloaded. The InfluxDB settings are only
	// read when it is enabled.
	Archive      bool          `default:"false"`
	ArchiveSince time.Duration `default:"4320h" split_words:"true"`
}

type MapConfig struct {
	Metric         string `default:"cases"`
	Title          string `default:"Cases per 100,000 inhabitants"`
	ShapesURL      string `default:"https://raw.githubusercontent.com/lennymd/covidGraphics/main/data/map.geojson" split_words:"true"`
	CasesURL       string `split_words:"true"`
	PopulationURL  string `default:"https://raw.githubusercontent.com/lennymd/covidGraphics/main/data/population.csv" split_words:"true"`
	PopulationYear string `default:"2019" split_words:"true"`
}

func main() {
	ctx, cancel := signalContext(syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.New(os.Stdout, "",
		log.Ldate|log.Ltime|log.LUTC)

	var config Config
	if err := envconfig.Process(envPrefix, &config); err != nil {
		logger.Fatalf("processing environment variables: %v", err)
	}

	var store *influx.Store
	if config.Archive {
		var influxConfig influx.Config
		if err := envconfig.Process(envPrefix+"_INFLUXDB", &influxConfig); err != nil {
			logger.Fatalf("processing InfluxDB environment variables: %v", err)
		}

		var closeStore func()
		store, closeStore = influx.NewStore(influxConfig)
		defer closeStore()
	}

	client := &http.Client{Timeout: config.Timeout}

	charts := catalog.Charts(catalog.Options{
		Country: config.Country,
		DataURL: config.DataURL,
		Width:   config.Width,
	})

	registry := web.NewRegistry(time.Now)
	for _, c := range charts {
		registry.Register(c.Keyword, c.Title)
	}

	w := web.Web{
		Logger:   logger,
		Registry: registry,
		Locale:   config.Locale,
		MapTitle: config.Map.Title,
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           w.Router(),
		ReadTimeout:       readTimeoutSeconds * time.Second,
		WriteTimeout:      writeTimeoutSeconds * time.Second,
		IdleTimeout:       idleTimeoutSeconds * time.Second,
		ReadHeaderTimeout: readHeaderTimeoutSeconds * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	for _, c := range charts {
		c := c
		g.Go(func() error {
			return refreshChart(ctx, logger, client, store, registry,
				c, config)
		})
	}

	g.Go(func() error {
		return refreshMap(ctx, logger, client, registry, config)
	})

	g.Go(func() error {
		logger.Printf("starting server at port %d...\n", config.Port)

		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("listen: %v", err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Println("stopping server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			shutdownTimeoutSeconds*time.Second,
		)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %v", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal(err)
	}
}

// refreshChart loads a chart right away and then periodically, until the
// context is cancelled. With an archive, every good load is archived and
// the archive is used when the dataset cannot be downloaded.
func refreshChart(
	ctx context.Context,
	logger *log.Logger,
	client *http.Client,
	store *influx.Store,
	registry *web.Registry,
	c chart.Config,
	config Config,
) error {
	var source dataset.Source = dataset.NewLoader(logger, client, c.URL, c.Columns)

	var archive archiver
	if store != nil {
		archive = store
		source = dataset.Fallback{
			Logger:    logger,
			Primary:   source,
			Secondary: store.RecentArchive(c.Keyword, config.ArchiveSince),
		}
	}

	ticker := time.NewTicker(config.Refresh)
	defer ticker.Stop()

	sink := chartSink(ctx, logger, registry, archive, c, config.Locale)

	return dataset.Run(ctx, logger, c.Keyword, source, ticker.C, sink)
}

// archiver stores the observations of a dataset.
type archiver interface {
	Add(ctx context.Context, dataset string, data ...*observation.Observation) error
}

// chartSink returns the sink that turns each load of a chart into the
// chart served by the registry. Fresh data are archived, if there is an
// archive. Archived data are drawn but never archived again, and the
// chart is served with the reason the fresh data are missing.
func chartSink(
	ctx context.Context,
	logger dataset.Logger,
	registry *web.Registry,
	archive archiver,
	c chart.Config,
	loc locale.Locale,
) dataset.Sink {
	return func(data []*observation.Observation, err error) {
		var archived *dataset.ArchivedError
		if err != nil && !errors.As(err, &archived) {
			registry.Set(c.Keyword, nil, err)
			return
		}

		ch, buildErr := chart.New(c, loc, data, logger)
		if buildErr != nil {
			logger.Printf("building chart %s: %v\n", c.Keyword, buildErr)
			registry.Set(c.Keyword, nil, buildErr)
			return
		}

		registry.Set(c.Keyword, ch, err)

		if archive == nil || archived != nil {
			return
		}

		if err := archive.Add(ctx, c.Keyword, data...); err != nil {
			logger.Printf("archiving %s: %v\n", c.Keyword, err)
		}
	}
}

// mapSource adapts the map loader to a dataset.Source, so the map is
// refreshed by the same loop as the charts. The map itself is handed
// to the registry as a side effect of loading.
type mapSource struct {
	loader   *choropleth.Loader
	registry *web.Registry
}

func (s mapSource) Load(ctx context.Context) ([]*observation.Observation, error) {
	m, err := s.loader.Load(ctx)
	s.registry.SetMap(m, err)

	return nil, err
}

func refreshMap(
	ctx context.Context,
	logger *log.Logger,
	client *http.Client,
	registry *web.Registry,
	config Config,
) error {
	loader := choropleth.NewLoader(logger, client, choropleth.Config{
		Keyword:        "map",
		Metric:         config.Map.Metric,
		ShapesURL:      config.Map.ShapesURL,
		CasesURL:       config.Map.CasesURL,
		PopulationURL:  config.Map.PopulationURL,
		PopulationYear: config.Map.PopulationYear,
		Width:          config.Width,
	})

	ticker := time.NewTicker(config.Refresh)
	defer ticker.Stop()

	return dataset.Run(ctx, logger, "map", mapSource{loader, registry},
		ticker.C, func([]*observation.Observation, error) {})
}

func signalContext(signals ...os.Signal) (
	context.Context, context.CancelFunc) {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, signals...)

	go func() {
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(c)
	}()

	return ctx, cancel
}
