package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/alcortesm/covid-graphics/app/observation"
	"github.com/alcortesm/covid-graphics/app/palette"
	"github.com/alcortesm/covid-graphics/app/scale"
	"github.com/alcortesm/covid-graphics/app/toggle"
)

// Line styles.
const (
	greyWidth      = 1.25
	referenceWidth = 2.5
	referenceDash  = "9 2"
	activeWidth    = 3
	baselineWidth  = 2
	guideWidth     = 2
	guideDash      = "7 2"

	dateTicks  = 7
	valueTicks = 10
)

// Path is one line of the chart.
type Path struct {
	Code   string
	Name   string
	D      string
	Stroke string
	Width  float64
	Dash   string
}

// Segment is a straight line.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	Width          float64
	Dash           string
}

// Tick is an axis tick: its position along the axis and its label.
type Tick struct {
	Pos   float64
	Label string
}

// Scene is everything drawn for a given active set. Positions are
// relative to the plot area, which is translated by the margins.
type Scene struct {
	Keyword    string
	Dimensions scale.Dimensions
	// Grey has a thin grey line per entity, aggregate excluded.
	Grey []Path
	// Reference is the dashed aggregate line, nil if there is none.
	Reference *Path
	// Active has a colored line per active entity, sorted by code.
	Active []Path
	// Baseline is the zero line, nil if the chart has none.
	Baseline *Segment
	// Guide is the tooltip guide line, at x 0 until a date is hovered.
	Guide  Segment
	XTicks []Tick
	YTicks []Tick
	// TooltipLeft is the horizontal offset of the tooltip box.
	TooltipLeft float64
}

// Scene returns what has to be drawn when the given entities are active.
// Codes in the set that are not entities of the chart are ignored.
func (c *Chart) Scene(active *toggle.Set) Scene {
	s := Scene{
		Keyword:    c.config.Keyword,
		Dimensions: c.dims,
		Grey:       make([]Path, 0, len(c.series)),
		Guide: Segment{
			Y2:     c.dims.BoundedHeight(),
			Stroke: palette.Peripheral,
			Width:  guideWidth,
			Dash:   guideDash,
		},
		XTicks:      c.xTicks(),
		YTicks:      c.yTicks(),
		TooltipLeft: c.dims.Margin.Left,
	}

	if c.config.Baseline && c.config.Percentage {
		s.TooltipLeft *= 10
	}

	for _, series := range c.series {
		s.Grey = append(s.Grey, Path{
			Code:   series.Code,
			Name:   series.Name,
			D:      c.line(series.Observations),
			Stroke: palette.Grey,
			Width:  greyWidth,
		})
	}

	if c.aggregate != nil {
		s.Reference = &Path{
			Code:   c.aggregate.Code,
			Name:   c.AggregateName(),
			D:      c.line(c.aggregate.Observations),
			Stroke: palette.National,
			Width:  referenceWidth,
			Dash:   referenceDash,
		}
	}

	for _, code := range c.activeCodes(active) {
		series := c.find(code)
		s.Active = append(s.Active, Path{
			Code:   code,
			Name:   series.Name,
			D:      c.line(series.Observations),
			Stroke: c.Color(code),
			Width:  activeWidth,
		})
	}

	if c.config.Baseline {
		y := c.scales.Y.Map(0)
		s.Baseline = &Segment{
			X1:     0,
			Y1:     y,
			X2:     c.dims.BoundedWidth(),
			Y2:     y,
			Stroke: palette.Peripheral,
			Width:  baselineWidth,
		}
	}

	return s
}

func (c *Chart) find(code string) *observation.Series {
	for _, s := range c.series {
		if s.Code == code {
			return s
		}
	}

	return nil
}

// line returns the SVG path data of the observations. Observations with
// no value break the line.
func (c *Chart) line(data []*observation.Observation) string {
	var b strings.Builder

	pen := false
	for _, o := range data {
		if !o.HasValue() {
			pen = false
			continue
		}

		x := c.scales.X.Map(o.Date)
		y := c.scales.Y.Map(o.Value)

		if pen {
			b.WriteByte('L')
		} else {
			b.WriteByte('M')
			pen = true
		}

		b.WriteString(coord(x))
		b.WriteByte(',')
		b.WriteString(coord(y))
	}

	return b.String()
}

func coord(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func (c *Chart) xTicks() []Tick {
	dates := c.scales.X.Ticks(dateTicks)
	ticks := make([]Tick, len(dates))

	for i, d := range dates {
		ticks[i] = Tick{
			Pos:   c.scales.X.Map(d),
			Label: c.locale.FormatDateShort(d),
		}
	}

	return ticks
}

func (c *Chart) yTicks() []Tick {
	values := c.scales.Y.Ticks(valueTicks)
	ticks := make([]Tick, len(values))

	for i, v := range values {
		ticks[i] = Tick{
			Pos:   c.scales.Y.Map(v),
			Label: c.FormatValueTick(v),
		}
	}

	return ticks
}

// FormatValueTick returns the label of a value axis tick.
func (c *Chart) FormatValueTick(v float64) string {
	if !c.config.Percentage {
		return c.scales.Y.FormatTick(v, valueTicks)
	}

	switch c.override.Ticks {
	case scale.FractionTicks:
		return strconv.FormatFloat(v*100, 'f', 0, 64) + "%"
	default:
		return c.scales.Y.FormatTick(v, valueTicks) + "%"
	}
}

// Label is an item of the sidebar that toggles entities.
type Label struct {
	Code    string
	Name    string
	Checked bool
	Color   string
	Bold    bool
}

// Labels returns the sidebar items, one per entity sorted by code, the
// aggregate excluded. Active entities are checked and shown in bold with
// the color of their line.
func (c *Chart) Labels(active *toggle.Set) []Label {
	labels := make([]Label, 0, len(c.series))

	for _, s := range c.series {
		l := Label{
			Code:  s.Code,
			Name:  s.Name,
			Color: palette.National,
		}

		if active.IsActive(s.Code) {
			l.Checked = true
			l.Color = c.Color(s.Code)
			l.Bold = true
		}

		labels = append(labels, l)
	}

	return labels
}
