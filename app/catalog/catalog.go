/*
Package catalog lists the charts of the dashboard: the index charts of a
country, with its states, and the regional charts of Latin America, with
its countries.
*/
package catalog

import (
	"fmt"
	"strings"

	"github.com/alcortesm/covid-graphics/app/chart"
	"github.com/alcortesm/covid-graphics/app/dataset"
	"github.com/alcortesm/covid-graphics/app/highlight"
	"github.com/alcortesm/covid-graphics/app/locale"
	"github.com/alcortesm/covid-graphics/app/scale"
)

// DefaultDataURL is where the datasets are published.
const DefaultDataURL = "https://raw.githubusercontent.com/lennymd/covidGraphics/main/data"

// LATAM is the code of the regional aggregate in the latam dataset.
const LATAM = "LATAM"

// LatamDataset is the name of the regional dataset.
const LatamDataset = "latam"

// Editorial are the countries highlighted in the regional charts.
var Editorial = []string{"MEX", "BRA", "BOL", "CHL"}

type Options struct {
	// Country is the name of the country dataset, like "mexico".
	Country string
	DataURL string
	Width   float64
}

// metric is a column of the datasets that is charted.
type metric struct {
	slug       string
	title      string
	column     string
	rank       string
	baseline   bool
	percentage bool
}

var countryMetrics = []metric{
	{
		slug:       "mobility",
		title:      "Mobility index",
		column:     "mobility_index",
		rank:       "ranking_mobility_accumulated",
		baseline:   true,
		percentage: true,
	},
	{
		slug:   "policy",
		title:  "Policy index",
		column: "policy_index",
		rank:   "ranking_policy_accumulated",
	},
	{
		slug:       "testpositivity",
		title:      "Test positivity rate",
		column:     "testpositivity_rate",
		rank:       "ranking_testpositivity",
		percentage: true,
	},
}

var latamMetrics = []metric{
	{
		slug:       "mobility",
		title:      "Mobility index",
		column:     "mobility_index",
		baseline:   true,
		percentage: true,
	},
	{
		slug:       "testpositivity",
		title:      "Test positivity rate",
		column:     "testpositivity_rate",
		percentage: true,
	},
}

// CountryURL returns where the dataset of a country is published.
func CountryURL(dataURL, country string) string {
	return fmt.Sprintf("%s/%s_data_latest.csv",
		strings.TrimSuffix(dataURL, "/"), country)
}

// LatamURL returns where the regional dataset is published.
func LatamURL(dataURL string) string {
	return strings.TrimSuffix(dataURL, "/") + "/latam_latest.csv"
}

// Charts returns the configs of every chart of the dashboard: the
// country charts highlight the best and the worst ranked states, the
// regional ones a fixed list of countries.
func Charts(o Options) []chart.Config {
	if o.DataURL == "" {
		o.DataURL = DefaultDataURL
	}

	overrides := scale.DefaultOverrides()

	var result []chart.Config

	for _, m := range countryMetrics {
		result = append(result, chart.Config{
			Keyword:    o.Country + "-" + m.slug,
			Title:      m.title + " (" + o.Country + ")",
			Dataset:    o.Country,
			URL:        CountryURL(o.DataURL, o.Country),
			Columns:    dataset.StateColumns(m.column, m.rank),
			Aggregate:  locale.NationalCode,
			Strategy:   highlight.Rank{},
			Baseline:   m.baseline,
			Percentage: m.percentage,
			Width:      o.Width,
			Overrides:  overrides,
		})
	}

	for _, m := range latamMetrics {
		result = append(result, chart.Config{
			Keyword:    LatamDataset + "-" + m.slug,
			Title:      m.title + " (Latin America)",
			Dataset:    LatamDataset,
			URL:        LatamURL(o.DataURL),
			Columns:    dataset.CountryColumns(m.column),
			Aggregate:  LATAM,
			Strategy:   highlight.Editorial{Codes: Editorial},
			Baseline:   m.baseline,
			Percentage: m.percentage,
			Width:      o.Width,
			Overrides:  overrides,
		})
	}

	return result
}
