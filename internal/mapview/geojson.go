package mapview

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/kpath1999/gtbusmap/internal/models"
)

func toOrbPoint(p models.CoordinatePoint) orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// SegmentFeature converts one segment into a two-point LineString feature
// carrying simplestyle stroke properties.
func SegmentFeature(layer *Layer, seg models.RouteSegment) *geojson.Feature {
	f := geojson.NewFeature(orb.LineString{
		toOrbPoint(seg.Start.Coordinate),
		toOrbPoint(seg.End.Coordinate),
	})
	f.Properties["layer"] = layer.Name
	f.Properties["route"] = layer.Key.Route
	f.Properties["variant"] = layer.Key.Variant
	f.Properties["label"] = seg.Label
	f.Properties["stroke"] = seg.Color.Hex()
	f.Properties["stroke-width"] = SegmentWeight
	f.Properties["stroke-opacity"] = SegmentOpacity
	f.Properties["time"] = seg.Start.Time.Raw
	return f
}

// LayerFeatureCollection returns the features of one layer in segment order.
func LayerFeatureCollection(layer *Layer) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, seg := range layer.Segments {
		fc.Append(SegmentFeature(layer, seg))
	}
	return fc
}

// FeatureCollection flattens every layer, then every overlay, into one collection.
func (m *Map) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, layer := range m.layers {
		for _, seg := range layer.Segments {
			fc.Append(SegmentFeature(layer, seg))
		}
	}
	for _, o := range m.overlays {
		fc.Append(overlayFeature(o))
	}
	return fc
}

func overlayFeature(o Overlay) *geojson.Feature {
	line := make(orb.LineString, 0, len(o.Points))
	for _, p := range o.Points {
		line = append(line, toOrbPoint(p))
	}
	f := geojson.NewFeature(line)
	f.Properties["layer"] = o.Name
	f.Properties["overlay"] = true
	f.Properties["stroke"] = overlayColor
	return f
}

// Bounds returns the bounding box of every segment and overlay point.
func (m *Map) Bounds() (orb.Bound, bool) {
	var points orb.MultiPoint
	for _, layer := range m.layers {
		for _, seg := range layer.Segments {
			points = append(points, toOrbPoint(seg.Start.Coordinate), toOrbPoint(seg.End.Coordinate))
		}
	}
	for _, o := range m.overlays {
		for _, p := range o.Points {
			points = append(points, toOrbPoint(p))
		}
	}
	if len(points) == 0 {
		return orb.Bound{}, false
	}
	return points.Bound(), true
}
