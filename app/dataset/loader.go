package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alcortesm/covid-graphics/app/observation"
)

// bodyExcerpt is how many bytes of an unsuccessful response body are
// kept in a FetchError.
const bodyExcerpt = 512

type Logger interface {
	Printf(string, ...interface{})
}

type HTTPer interface {
	Do(*http.Request) (*http.Response, error)
}

// Source knows how to load the observations of a dataset.
type Source interface {
	Load(context.Context) ([]*observation.Observation, error)
}

type Loader struct {
	logger  Logger
	client  HTTPer
	url     string
	columns Columns
}

func NewLoader(
	logger Logger,
	client HTTPer,
	url string,
	columns Columns,
) *Loader {
	return &Loader{
		logger:  logger,
		client:  client,
		url:     url,
		columns: columns,
	}
}

// Load downloads the dataset and parses it. Download problems are
// returned as *FetchError, missing columns as *ShapeError and invalid
// cells as *ParseError.
func (l *Loader) Load(ctx context.Context) ([]*observation.Observation, error) {
	body, err := Fetch(ctx, l.client, l.url, "text/csv")
	if err != nil {
		return nil, err
	}

	defer body.Close()

	data, err := Parse(body, l.columns)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.url, err)
	}

	l.logger.Printf("debug: loaded %d observations from %s\n",
		len(data), l.url)

	return data, nil
}

// Fetch sends a GET request for the resource at url and returns its
// body, which the caller must close. Failures, including unsuccessful
// status codes, are returned as *FetchError.
func Fetch(
	ctx context.Context,
	client HTTPer,
	url string,
	accept string,
) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %v", err)
	}

	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	if resp.StatusCode == http.StatusOK {
		return resp.Body, nil
	}

	defer resp.Body.Close()

	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, bodyExcerpt))
	if err != nil {
		return nil, &FetchError{
			URL:    url,
			Status: resp.StatusCode,
			Err: fmt.Errorf("status %d (%s); error reading response body: %v",
				resp.StatusCode, http.StatusText(resp.StatusCode), err),
		}
	}

	return nil, &FetchError{
		URL:    url,
		Status: resp.StatusCode,
		Body:   string(body),
	}
}

// Parse reads CSV data with a header row. Empty numeric cells are
// loaded as NaN.
func Parse(r io.Reader, columns Columns) ([]*observation.Observation, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ShapeError{Column: columns.Date}
		}
		return nil, fmt.Errorf("reading header: %v", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	for _, name := range columns.required() {
		if _, ok := index[name]; !ok {
			return nil, &ShapeError{Column: name}
		}
	}

	result := []*observation.Observation{}

	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %v", row, err)
		}

		o, err := parseRecord(record, index, columns, row)
		if err != nil {
			return nil, err
		}

		result = append(result, o)
	}

	return result, nil
}

func parseRecord(
	record []string,
	index map[string]int,
	columns Columns,
	row int,
) (*observation.Observation, error) {
	cell := func(column string) string {
		return strings.TrimSpace(record[index[column]])
	}

	number := func(column string) (float64, error) {
		if column == "" {
			return math.NaN(), nil
		}

		raw := cell(column)
		if raw == "" {
			return math.NaN(), nil
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, &ParseError{Row: row, Column: column, Value: raw, Err: err}
		}

		return v, nil
	}

	raw := cell(columns.Date)
	date, err := time.Parse(observation.DateLayout, raw)
	if err != nil {
		return nil, &ParseError{Row: row, Column: columns.Date, Value: raw, Err: err}
	}

	o := &observation.Observation{
		Date: date,
		Code: cell(columns.Code),
		Name: cell(columns.Name),
	}

	if o.Value, err = number(columns.Value); err != nil {
		return nil, err
	}

	if o.Day, err = number(columns.Days); err != nil {
		return nil, err
	}

	if o.Rank, err = number(columns.Rank); err != nil {
		return nil, err
	}

	return o, nil
}
