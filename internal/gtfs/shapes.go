package gtfs

import "github.com/kpath1999/gtbusmap/internal/models"

// RegionBounds returns the center and spans of the box enclosing every
// shape point. ok is false when there are no points.
func RegionBounds(shapes []Shape) (center models.CoordinatePoint, latSpan, lonSpan float64, ok bool) {
	var minLat, maxLat, minLon, maxLon float64
	first := true
	for _, shape := range shapes {
		for _, point := range shape.Points {
			if first {
				minLat = point.Lat
				maxLat = point.Lat
				minLon = point.Lon
				maxLon = point.Lon
				first = false
				continue
			}

			if point.Lat < minLat {
				minLat = point.Lat
			}
			if point.Lat > maxLat {
				maxLat = point.Lat
			}
			if point.Lon < minLon {
				minLon = point.Lon
			}
			if point.Lon > maxLon {
				maxLon = point.Lon
			}
		}
	}

	if first {
		return models.CoordinatePoint{}, 0, 0, false
	}

	center = models.CoordinatePoint{Lat: (minLat + maxLat) / 2, Lon: (minLon + maxLon) / 2}
	return center, maxLat - minLat, maxLon - minLon, true
}
