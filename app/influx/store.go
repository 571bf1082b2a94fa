/*
Package influx archives the observations of the datasets in InfluxDB and
reads them back, so charts can be drawn from the archive when the
original source is down.
*/
package influx

import (
	"context"
	"fmt"
	"math"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/query"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/log"

	"github.com/alcortesm/covid-graphics/app/observation"
)

func init() {
	log.Log = nil
}

type Config struct {
	URL         string `required:"true"`
	TokenWrite  string `required:"true" split_words:"true"`
	TokenRead   string `required:"true" split_words:"true"`
	Org         string `default:"covid"`
	Bucket      string `default:"covid_graphics"`
	Measurement string `default:"observation"`
}

const (
	datasetTagKey = "dataset"
	codeTagKey    = "code"
	nameTagKey    = "name"

	valueFieldKey = "value"
	rankFieldKey  = "rank"
	daysFieldKey  = "days"
)

type Store struct {
	config   Config
	writeAPI api.WriteAPIBlocking
	queryAPI api.QueryAPI
}

func NewStore(config Config) (store *Store, cancel func()) {
	opts := influxdb2.DefaultOptions().
		SetPrecision(time.Second)

	wc := influxdb2.NewClientWithOptions(
		config.URL,
		config.TokenWrite,
		opts,
	)

	rc := influxdb2.NewClientWithOptions(
		config.URL,
		config.TokenRead,
		opts,
	)

	store = &Store{
		config:   config,
		writeAPI: wc.WriteAPIBlocking(config.Org, config.Bucket),
		queryAPI: rc.QueryAPI(config.Org),
	}

	cancel = func() {
		wc.Close()
		rc.Close()
	}

	return store, cancel
}

// Add writes the observations of a dataset. Writing an observation
// twice overwrites it.
func (s *Store) Add(
	ctx context.Context,
	dataset string,
	data ...*observation.Observation,
) error {
	points := make([]*write.Point, 0, len(data))

	for _, o := range data {
		f := fields(o)
		if len(f) == 0 {
			continue
		}

		tags := map[string]string{
			datasetTagKey: dataset,
			codeTagKey:    o.Code,
			nameTagKey:    o.Name,
		}

		points = append(points, influxdb2.NewPoint(
			s.config.Measurement,
			tags,
			f,
			o.Date,
		))
	}

	if len(points) == 0 {
		return nil
	}

	if err := s.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("writing points: %v", err)
	}

	return nil
}

// fields returns the known numbers of the observation. InfluxDB cannot
// store NaN, so unknown numbers are left out.
func fields(o *observation.Observation) map[string]interface{} {
	result := map[string]interface{}{}

	for key, v := range map[string]float64{
		valueFieldKey: o.Value,
		rankFieldKey:  o.Rank,
		daysFieldKey:  o.Day,
	} {
		if !math.IsNaN(v) {
			result[key] = v
		}
	}

	return result
}

// Get returns the observations of a dataset since the given time,
// sorted by time.
func (s *Store) Get(
	ctx context.Context,
	dataset string,
	since time.Time,
) ([]*observation.Observation, error) {
	query := fmt.Sprintf(`from(bucket:%q)
			|> range(start: %s)
			|> filter( fn: (r) =>
				(r._measurement == %q) and
				(r.%s == %q)
			)
			|> pivot(
				rowKey:["_time"],
				columnKey:["_field"],
				valueColumn: "_value"
			)
			|> group()
			|> sort(columns: ["_time", %q])`,
		s.config.Bucket,
		since.Format(time.RFC3339),
		s.config.Measurement,
		datasetTagKey,
		dataset,
		codeTagKey,
	)

	table, err := s.queryAPI.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query error: %v", err)
	}

	result := []*observation.Observation{}

	for table.Next() {
		o, err := recordToObservation(table.Record())
		if err != nil {
			return nil, fmt.Errorf("invalid influx record: %v", err)
		}

		result = append(result, o)
	}

	if err := table.Err(); err != nil {
		return nil, fmt.Errorf("table error: %s", err)
	}

	return result, nil
}

func recordToObservation(r *query.FluxRecord) (*observation.Observation, error) {
	result := &observation.Observation{
		Date: r.Time().UTC(),
	}

	var err error

	if result.Code, err = toString(r.ValueByKey(codeTagKey)); err != nil {
		return nil, fmt.Errorf("parsing %s tag at %s: %v",
			codeTagKey, result.Date.Format(time.RFC3339), err)
	}

	if result.Name, err = toString(r.ValueByKey(nameTagKey)); err != nil {
		return nil, fmt.Errorf("parsing %s tag at %s: %v",
			nameTagKey, result.Date.Format(time.RFC3339), err)
	}

	for key, dest := range map[string]*float64{
		valueFieldKey: &result.Value,
		rankFieldKey:  &result.Rank,
		daysFieldKey:  &result.Day,
	} {
		if *dest, err = toFloat64(r.ValueByKey(key)); err != nil {
			return nil, fmt.Errorf("parsing %s field value at %s: %v",
				key, result.Date.Format(time.RFC3339), err)
		}
	}

	return result, nil
}

func toString(v interface{}) (string, error) {
	result, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("want string, got %T instead", v)
	}

	return result, nil
}

// toFloat64 converts a field value. Missing fields are NaN.
func toFloat64(v interface{}) (float64, error) {
	if v == nil {
		return math.NaN(), nil
	}

	result, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("want float64, got %T instead", v)
	}

	return result, nil
}

// Archive is a dataset stored in InfluxDB. It can be loaded like the
// original dataset.
type Archive struct {
	store   *Store
	dataset string
	since   time.Time
	// window, if not zero, replaces since: each load starts window
	// before now.
	window time.Duration
	now    func() time.Time
}

// Archive returns the observations of the dataset since the given time
// as a source.
func (s *Store) Archive(dataset string, since time.Time) *Archive {
	return &Archive{
		store:   s,
		dataset: dataset,
		since:   since,
		now:     time.Now,
	}
}

// RecentArchive returns, as a source, the observations of the dataset
// in the window that ends at the time of each load.
func (s *Store) RecentArchive(dataset string, window time.Duration) *Archive {
	return &Archive{
		store:   s,
		dataset: dataset,
		window:  window,
		now:     time.Now,
	}
}

func (a *Archive) start() time.Time {
	if a.window == 0 {
		return a.since
	}

	return a.now().Add(-a.window)
}

func (a *Archive) Load(ctx context.Context) ([]*observation.Observation, error) {
	return a.store.Get(ctx, a.dataset, a.start())
}
