package choropleth

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Shape is the outline of a country: its polygons of [longitude,
// latitude] points. The first ring of a polygon is its outer boundary
// and the rest are holes.
type Shape struct {
	Name     string
	Polygons orb.MultiPolygon
}

// NameProperty is the feature property holding the country name.
const NameProperty = "admin"

// DecodeShapes reads a GeoJSON feature collection of country shapes.
// Features without a geometry are skipped. Only Polygon and MultiPolygon
// geometries are supported.
func DecodeShapes(r io.Reader) ([]Shape, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading geojson: %v", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decoding geojson: %v", err)
	}

	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("want a FeatureCollection, got %q", fc.Type)
	}

	shapes := make([]Shape, 0, len(fc.Features))

	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}

		name := f.Properties.MustString(NameProperty, "")

		var polygons orb.MultiPolygon

		switch g := f.Geometry.(type) {
		case orb.Polygon:
			polygons = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			polygons = g
		default:
			return nil, fmt.Errorf("feature %d (%s): unsupported geometry %q",
				i, name, f.Geometry.GeoJSONType())
		}

		shapes = append(shapes, Shape{Name: name, Polygons: polygons})
	}

	return shapes, nil
}
