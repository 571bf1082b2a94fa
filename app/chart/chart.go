/*
Package chart is the line chart component of the dashboard.

Every line chart, whatever its dataset, is a Chart built from a Config:
grey lines for every entity, a dashed reference line for the aggregate
and colored lines for the active entities. A Chart is immutable once
built; what is drawn depends only on the active set passed to its
methods.
*/
package chart

import (
	"errors"
	"fmt"

	"github.com/alcortesm/covid-graphics/app/dataset"
	"github.com/alcortesm/covid-graphics/app/highlight"
	"github.com/alcortesm/covid-graphics/app/locale"
	"github.com/alcortesm/covid-graphics/app/observation"
	"github.com/alcortesm/covid-graphics/app/palette"
	"github.com/alcortesm/covid-graphics/app/scale"
	"github.com/alcortesm/covid-graphics/app/toggle"
	"github.com/alcortesm/covid-graphics/app/tooltip"
)

type Logger interface {
	Printf(string, ...interface{})
}

// Config describes one line chart of the dashboard.
type Config struct {
	// Keyword identifies the chart in URLs and element ids.
	Keyword string
	Title   string
	// Dataset is the name of the dataset, like "mexico" or "latam".
	Dataset string
	URL     string
	Columns dataset.Columns
	// Aggregate is the code of the entity drawn as the dashed reference
	// line, like "Nacional" or "LATAM".
	Aggregate string
	Strategy  highlight.Strategy
	// Baseline draws a line at zero.
	Baseline bool
	// Percentage shows values as percentages.
	Percentage bool
	Width      float64
	Overrides  scale.Overrides
}

// Validate checks the config has what a chart needs.
func (c Config) Validate() error {
	switch {
	case c.Keyword == "":
		return errors.New("missing keyword")
	case c.Columns.Value == "":
		return fmt.Errorf("chart %s: missing value column", c.Keyword)
	case c.Width <= 0:
		return fmt.Errorf("chart %s: invalid width %v", c.Keyword, c.Width)
	}

	return nil
}

type Chart struct {
	config      Config
	locale      locale.Locale
	data        []*observation.Observation
	series      []*observation.Series
	aggregate   *observation.Series
	dims        scale.Dimensions
	scales      scale.Scales
	override    scale.Override
	colors      *palette.Ordinal
	highlighted []string
}

// New shapes the data for drawing. It fails when there is nothing to
// draw. A highlight strategy that finds no match is not an error: it is
// logged and the chart starts with no active entities.
func New(
	config Config,
	loc locale.Locale,
	data []*observation.Observation,
	logger Logger,
) (*Chart, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	series, agg := observation.Group(data, config.Aggregate)
	dims := scale.LineChart(config.Width)

	var override *scale.Override
	if ov, ok := config.Overrides.Lookup(config.Dataset, config.Columns.Value); ok {
		override = &ov
	}

	scales, err := scale.Build(data, dims, override)
	if err != nil {
		return nil, fmt.Errorf("chart %s: building scales: %w",
			config.Keyword, err)
	}

	// colors follow the order of the entities in the data, not the
	// order of the series
	codes := observation.Codes(data, config.Aggregate)

	c := &Chart{
		config:    config,
		locale:    loc,
		data:      data,
		series:    series,
		aggregate: agg,
		dims:      dims,
		scales:    scales,
		colors:    palette.NewOrdinal(codes, palette.Group),
	}

	if override != nil {
		c.override = *override
	}

	c.highlighted = c.selectHighlights(logger)

	return c, nil
}

func (c *Chart) selectHighlights(logger Logger) []string {
	if c.config.Strategy == nil {
		return nil
	}

	entities := observation.Without(c.data, c.config.Aggregate)

	codes, err := c.config.Strategy.Select(
		highlight.Latest(entities), len(c.series))
	if err != nil {
		logger.Printf("warning: chart %s: no highlights: %v",
			c.config.Keyword, err)
		return nil
	}

	return codes
}

func (c *Chart) Config() Config { return c.config }
func (c *Chart) Keyword() string { return c.config.Keyword }
func (c *Chart) Locale() locale.Locale { return c.locale }
func (c *Chart) Dimensions() scale.Dimensions { return c.dims }
func (c *Chart) Scales() scale.Scales { return c.scales }
func (c *Chart) Series() []*observation.Series { return c.series }
func (c *Chart) Aggregate() *observation.Series { return c.aggregate }
func (c *Chart) Data() []*observation.Observation { return c.data }

// Highlighted returns the codes selected by the highlight strategy.
func (c *Chart) Highlighted() []string {
	return append([]string(nil), c.highlighted...)
}

// DefaultActive returns the active set a chart starts with: the
// highlighted entities.
func (c *Chart) DefaultActive() *toggle.Set {
	return toggle.New(c.highlighted...)
}

// Color returns the color of an entity line.
func (c *Chart) Color(code string) string {
	if code == c.config.Aggregate {
		return palette.National
	}

	return c.colors.Color(code)
}

// AggregateName is the display name of the aggregate entity.
func (c *Chart) AggregateName() string {
	return c.locale.AggregateName(c.config.Aggregate)
}

// Name returns the display name of an entity.
func (c *Chart) Name(code string) string {
	if code == c.config.Aggregate {
		return c.AggregateName()
	}

	for _, s := range c.series {
		if s.Code == code {
			return s.Name
		}
	}

	return code
}

// Has reports whether the chart has an entity, other than the
// aggregate, with the given code.
func (c *Chart) Has(code string) bool {
	for _, s := range c.series {
		if s.Code == code {
			return true
		}
	}

	return false
}

// Formatter returns how tooltip values are formatted.
func (c *Chart) Formatter() tooltip.Formatter {
	f := tooltip.Formatter{Percentage: c.config.Percentage}
	if c.config.Percentage {
		f.Multiplier = c.override.Multiplier
	}

	return f
}

// Tooltip returns the tooltip for the horizontal position px, relative
// to the plot area. The boolean is false if px is out of the plot area.
func (c *Chart) Tooltip(px float64, active *toggle.Set) (tooltip.Tooltip, bool) {
	if tooltip.Hidden(px, c.dims.BoundedWidth()) {
		return tooltip.Tooltip{}, false
	}

	return tooltip.Build(tooltip.Input{
		Data:           c.data,
		Date:           c.scales.X.Invert(px),
		Aggregate:      c.config.Aggregate,
		AggregateName:  c.AggregateName(),
		Active:         c.activeCodes(active),
		Color:          c.Color,
		AggregateColor: palette.National,
		Formatter:      c.Formatter(),
		Locale:         c.locale,
		X:              c.scales.X,
		Y:              c.scales.Y,
	})
}

// activeCodes returns the sorted codes of the set that are entities of
// the chart. Unknown codes are ignored.
func (c *Chart) activeCodes(active *toggle.Set) []string {
	var codes []string

	for _, code := range active.Codes() {
		if c.Has(code) {
			codes = append(codes, code)
		}
	}

	return codes
}
