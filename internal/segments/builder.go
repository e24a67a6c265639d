package segments

import (
	"errors"
	"sort"
	"strconv"

	"github.com/kpath1999/gtbusmap/internal/models"
)

// Options configures one Build call. Category and Filter are optional; a nil
// Filter means every eligible point participates.
type Options struct {
	Metric   MetricSelector
	Policy   ColorPolicy
	Category CategoryExtractor
	Filter   *int
	Label    LabelFunc
}

// Build turns a route's raw points into ordered, colored segments.
//
// Points without coordinates are dropped, the optional category filter is
// applied, the remainder is stably sorted by time and every consecutive pair
// becomes one segment colored by its start point. Fewer than two points yield
// an empty result.
func Build(route models.Route, opts Options) ([]models.RouteSegment, error) {
	points := Eligible(route.Points)

	if opts.Filter != nil {
		if opts.Category == nil {
			return nil, errors.New("segments: filter set without a category extractor")
		}
		var err error
		points, err = FilterCategory(route.Name, points, opts.Category, *opts.Filter)
		if err != nil {
			return nil, err
		}
	}

	SortByTime(points)

	if len(points) < 2 {
		return []models.RouteSegment{}, nil
	}

	label := opts.Label
	if label == nil {
		label = RoadConditionLabel
	}

	category := ""
	if opts.Filter != nil {
		category = strconv.Itoa(*opts.Filter)
	}

	segs := make([]models.RouteSegment, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		start, end := points[i], points[i+1]

		value, err := opts.Metric.Value(start)
		if err != nil {
			return nil, &MalformedInputError{Route: route.Name, Row: start.Row, Field: opts.Metric.Column, Err: err}
		}

		segs = append(segs, models.RouteSegment{
			Start:    start,
			End:      end,
			Color:    opts.Policy.Color(value),
			Label:    label(route.Name, start, value),
			Value:    value,
			Category: category,
		})
	}

	return segs, nil
}

// Eligible returns a copy of points keeping only those with both coordinates.
func Eligible(points []models.RoutePoint) []models.RoutePoint {
	out := make([]models.RoutePoint, 0, len(points))
	for _, p := range points {
		if p.HasCoordinate {
			out = append(out, p)
		}
	}
	return out
}

// FilterCategory keeps the points whose category equals want. Extraction
// failures abort with a MalformedInputError.
func FilterCategory(route string, points []models.RoutePoint, category CategoryExtractor, want int) ([]models.RoutePoint, error) {
	out := make([]models.RoutePoint, 0, len(points))
	for _, p := range points {
		got, err := category.Category(p)
		if err != nil {
			return nil, &MalformedInputError{Route: route, Row: p.Row, Field: category.Field(), Err: err}
		}
		if got == want {
			out = append(out, p)
		}
	}
	return out, nil
}

// SortByTime sorts in place, ascending, keeping the table order of ties.
func SortByTime(points []models.RoutePoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Seconds < points[j].Time.Seconds
	})
}
