package choropleth

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alcortesm/covid-graphics/app/dataset"
)

// Columns of the time series published by the Johns Hopkins CSSE: one
// row per country or province, then one column per date.
const (
	CountryColumn = "Country/Region"
	firstDate     = 4
)

// Cases are the cumulative counts of a metric per country on the latest
// date of a time series.
type Cases struct {
	// Date is the header of the latest date column, like "6/30/20".
	Date   string
	Counts map[string]float64
}

// ParseCases reads a wide time series and keeps its last date column.
// The rows of a country, one per province, are added up.
func ParseCases(r io.Reader) (Cases, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Cases{}, &dataset.ShapeError{Column: CountryColumn}
		}
		return Cases{}, fmt.Errorf("reading header: %v", err)
	}

	country := -1
	for i, name := range header {
		if strings.TrimSpace(name) == CountryColumn {
			country = i
		}
	}

	if country < 0 {
		return Cases{}, &dataset.ShapeError{Column: CountryColumn}
	}

	if len(header) <= firstDate {
		return Cases{}, errors.New("the time series has no date columns")
	}

	last := len(header) - 1
	cases := Cases{
		Date:   strings.TrimSpace(header[last]),
		Counts: map[string]float64{},
	}

	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Cases{}, fmt.Errorf("reading row %d: %v", row, err)
		}

		if len(record) <= last {
			return Cases{}, fmt.Errorf("row %d: want %d cells, got %d",
				row, len(header), len(record))
		}

		raw := strings.TrimSpace(record[last])
		if raw == "" {
			continue
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Cases{}, &dataset.ParseError{
				Row: row, Column: cases.Date, Value: raw, Err: err,
			}
		}

		cases.Counts[strings.TrimSpace(record[country])] += v
	}

	return cases, nil
}

// Population columns.
const (
	PopulationCountryColumn = "Country"
	DefaultPopulationYear   = "2019"
)

// ParsePopulation reads the population of each country for the given
// year column.
func ParsePopulation(r io.Reader, year string) (map[string]float64, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &dataset.ShapeError{Column: PopulationCountryColumn}
		}
		return nil, fmt.Errorf("reading header: %v", err)
	}

	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	for _, name := range []string{PopulationCountryColumn, year} {
		if _, ok := index[name]; !ok {
			return nil, &dataset.ShapeError{Column: name}
		}
	}

	population := map[string]float64{}

	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %v", row, err)
		}

		raw := strings.TrimSpace(record[index[year]])
		if raw == "" {
			continue
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &dataset.ParseError{
				Row: row, Column: year, Value: raw, Err: err,
			}
		}

		population[strings.TrimSpace(record[index[PopulationCountryColumn]])] = v
	}

	return population, nil
}
