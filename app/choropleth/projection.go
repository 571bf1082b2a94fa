package choropleth

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// maxLatitude is where the Mercator projection is cut, to keep the
// poles finite.
const maxLatitude = 85

// Mercator projects longitudes and latitudes, in degrees, to the plane
// of the map, scaled and translated from web Mercator meters. Y grows
// southwards, like in SVG.
type Mercator struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

func (m Mercator) Project(p orb.Point) orb.Point {
	p[1] = math.Max(-maxLatitude, math.Min(maxLatitude, p[1]))
	q := project.WGS84.ToMercator(p)

	return orb.Point{
		m.Scale*q[0] + m.TranslateX,
		-m.Scale*q[1] + m.TranslateY,
	}
}

// shape returns the projected polygons of the shape. The shape itself is
// left untouched.
func (m Mercator) shape(s Shape) orb.MultiPolygon {
	return project.MultiPolygon(s.Polygons.Clone(), m.Project)
}

// FitWidth returns the projection that makes the shapes as wide as
// width, with their top left corner at the origin.
func FitWidth(width float64, shapes []Shape) Mercator {
	unit := Mercator{Scale: 1}

	b, ok := unit.Bounds(shapes)
	if !ok || b.Max.X() == b.Min.X() {
		return unit
	}

	k := width / (b.Max.X() - b.Min.X())

	return Mercator{
		Scale:      k,
		TranslateX: -k * b.Min.X(),
		TranslateY: -k * b.Min.Y(),
	}
}

// Bounds returns the bounding box of the projected shapes, or false if
// there is nothing to bound.
func (m Mercator) Bounds(shapes []Shape) (orb.Bound, bool) {
	var (
		result orb.Bound
		found  bool
	)

	for _, s := range shapes {
		projected := m.shape(s)
		if len(projected) == 0 {
			continue
		}

		b := projected.Bound()
		if b.IsEmpty() {
			continue
		}

		if !found {
			result, found = b, true
			continue
		}

		result = result.Union(b)
	}

	return result, found
}

// Path returns the SVG path data of the projected shape.
func (m Mercator) Path(s Shape) string {
	var b strings.Builder

	for _, polygon := range m.shape(s) {
		for _, ring := range polygon {
			for i, p := range ring {
				if i == 0 {
					b.WriteByte('M')
				} else {
					b.WriteByte('L')
				}

				b.WriteString(coord(p.X()))
				b.WriteByte(',')
				b.WriteString(coord(p.Y()))
			}

			if len(ring) > 0 {
				b.WriteByte('Z')
			}
		}
	}

	return b.String()
}

func coord(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
