// Package stats summarizes a route's metric for the dashboard panel.
package stats

import (
	"math"
	"strconv"
	"strings"

	"github.com/kpath1999/gtbusmap/internal/models"
	"github.com/kpath1999/gtbusmap/internal/segments"
	"github.com/kpath1999/gtbusmap/internal/utils"
)

type Summary struct {
	Count      int     `json:"count"`
	Valid      int     `json:"valid"`
	Mean       float64 `json:"mean"`
	Max        float64 `json:"max"`
	Min        float64 `json:"min"`
	DistanceKm float64 `json:"distanceKm"`
}

// Summarize counts every row passing the optional category filter, whether
// or not it has coordinates, and aggregates the rows whose metric is numeric.
func Summarize(route models.Route, metric segments.MetricSelector, category segments.CategoryExtractor, filter *int) (Summary, error) {
	points := route.Points
	if filter != nil && category != nil {
		var err error
		points, err = segments.FilterCategory(route.Name, points, category, *filter)
		if err != nil {
			return Summary{}, err
		}
	}

	s := Summary{Count: len(points), Max: math.Inf(-1), Min: math.Inf(1)}
	var sum float64
	for _, p := range points {
		raw, ok := p.Value(metric.Column)
		if !ok || models.IsMissingCell(raw) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		s.Valid++
		sum += v
		s.Max = math.Max(s.Max, v)
		s.Min = math.Min(s.Min, v)
	}

	if s.Valid == 0 {
		s.Max, s.Min = 0, 0
	} else {
		s.Mean = sum / float64(s.Valid)
	}

	return s, nil
}

// Distance sums the great-circle length of the segments in kilometers.
func Distance(segs []models.RouteSegment) float64 {
	var km float64
	for _, seg := range segs {
		km += utils.Haversine(
			seg.Start.Coordinate.Lat, seg.Start.Coordinate.Lon,
			seg.End.Coordinate.Lat, seg.End.Coordinate.Lon,
		)
	}
	return km
}
