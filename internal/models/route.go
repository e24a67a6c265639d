package models

// RoutePoint is one sampled row of a route table.
type RoutePoint struct {
	Row           int
	Coordinate    CoordinatePoint
	HasCoordinate bool
	Time          ClockTime
	Values        map[string]string
}

// Value returns the raw cell for column, and whether the column exists on the point.
func (p RoutePoint) Value(column string) (string, bool) {
	v, ok := p.Values[column]
	return v, ok
}

type Route struct {
	Name   string
	Points []RoutePoint
}

// Coordinates returns the coordinates of every point that has them, in table order.
func (r Route) Coordinates() []CoordinatePoint {
	coords := make([]CoordinatePoint, 0, len(r.Points))
	for _, p := range r.Points {
		if p.HasCoordinate {
			coords = append(coords, p.Coordinate)
		}
	}
	return coords
}

// RouteSegment is a renderable line between two temporally adjacent points,
// colored by the start point's metric.
type RouteSegment struct {
	Start    RoutePoint
	End      RoutePoint
	Color    Color
	Label    string
	Value    float64
	Category string
}
