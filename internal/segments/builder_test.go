package segments

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpath1999/gtbusmap/internal/models"
)

func point(row int, lat, lon float64, secs float64, values map[string]string) models.RoutePoint {
	return models.RoutePoint{
		Row:           row,
		Coordinate:    models.CoordinatePoint{Lat: lat, Lon: lon},
		HasCoordinate: true,
		Time:          models.ClockTime{Raw: fmt.Sprint(secs), Seconds: secs},
		Values:        values,
	}
}

func qualityOptions() Options {
	return Options{
		Metric: MetricSelector{Column: "road_condition"},
		Policy: QualityPolicy,
		Label:  RoadConditionLabel,
	}
}

func intPtr(v int) *int { return &v }

func TestBuild(t *testing.T) {
	t.Run("empty route yields no segments and no error", func(t *testing.T) {
		segs, err := Build(models.Route{Name: "Blue Route"}, qualityOptions())
		require.NoError(t, err)
		assert.Empty(t, segs)
	})

	t.Run("single point yields no segments", func(t *testing.T) {
		route := models.Route{Name: "Blue Route", Points: []models.RoutePoint{
			point(0, 33.77, -84.39, 1, map[string]string{"road_condition": "2"}),
		}}
		segs, err := Build(route, qualityOptions())
		require.NoError(t, err)
		assert.Empty(t, segs)
	})

	t.Run("point missing longitude is dropped", func(t *testing.T) {
		missing := point(1, 33.78, 0, 2, map[string]string{"road_condition": "3"})
		missing.HasCoordinate = false
		route := models.Route{Name: "Blue Route", Points: []models.RoutePoint{
			point(0, 33.77, -84.39, 1, map[string]string{"road_condition": "2"}),
			missing,
		}}
		segs, err := Build(route, qualityOptions())
		require.NoError(t, err)
		assert.Empty(t, segs)
	})

	t.Run("points are sorted by time and colored by the start point", func(t *testing.T) {
		route := models.Route{Name: "Red Route", Points: []models.RoutePoint{
			point(0, 3, 3, 30, map[string]string{"road_condition": "5"}),
			point(1, 1, 1, 10, map[string]string{"road_condition": "0.5"}),
			point(2, 2, 2, 20, map[string]string{"road_condition": "2"}),
		}}
		segs, err := Build(route, qualityOptions())
		require.NoError(t, err)
		require.Len(t, segs, 2)

		assert.Equal(t, 1, segs[0].Start.Row)
		assert.Equal(t, 2, segs[0].End.Row)
		assert.Equal(t, "#FF0000", segs[0].Color.Hex())
		assert.Equal(t, "Red Route - Avg Road Condition: 0.50", segs[0].Label)

		assert.Equal(t, 2, segs[1].Start.Row)
		assert.Equal(t, 0, segs[1].End.Row)
		assert.Equal(t, "#FF7F00", segs[1].Color.Hex())
	})

	t.Run("ties keep table order", func(t *testing.T) {
		route := models.Route{Name: "Gold Route", Points: []models.RoutePoint{
			point(0, 1, 1, 5, map[string]string{"road_condition": "1"}),
			point(1, 2, 2, 5, map[string]string{"road_condition": "1"}),
			point(2, 3, 3, 5, map[string]string{"road_condition": "1"}),
		}}
		segs, err := Build(route, qualityOptions())
		require.NoError(t, err)
		require.Len(t, segs, 2)
		assert.Equal(t, 0, segs[0].Start.Row)
		assert.Equal(t, 1, segs[1].Start.Row)
		assert.Equal(t, 2, segs[1].End.Row)
	})

	t.Run("the last point's metric is never read", func(t *testing.T) {
		route := models.Route{Name: "Green Route", Points: []models.RoutePoint{
			point(0, 1, 1, 1, map[string]string{"road_condition": "4"}),
			point(1, 2, 2, 2, map[string]string{"road_condition": "garbage"}),
		}}
		segs, err := Build(route, qualityOptions())
		require.NoError(t, err)
		require.Len(t, segs, 1)
		assert.Equal(t, "#7FFF00", segs[0].Color.Hex())
	})

	t.Run("missing metric column is a malformed input error", func(t *testing.T) {
		route := models.Route{Name: "Blue Route", Points: []models.RoutePoint{
			point(0, 1, 1, 1, map[string]string{"traffic_congestion": "1"}),
			point(1, 2, 2, 2, map[string]string{"traffic_congestion": "1"}),
		}}
		_, err := Build(route, qualityOptions())
		require.Error(t, err)

		var malformed *MalformedInputError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, "Blue Route", malformed.Route)
		assert.Equal(t, 0, malformed.Row)
		assert.Equal(t, "road_condition", malformed.Field)
	})

	t.Run("empty metric cell renders like the last bucket", func(t *testing.T) {
		route := models.Route{Name: "Blue Route", Points: []models.RoutePoint{
			point(0, 1, 1, 1, map[string]string{"road_condition": ""}),
			point(1, 2, 2, 2, map[string]string{"road_condition": "1"}),
		}}
		segs, err := Build(route, qualityOptions())
		require.NoError(t, err)
		require.Len(t, segs, 1)
		assert.True(t, math.IsNaN(segs[0].Value))
		assert.Equal(t, Green, segs[0].Color)
	})

	t.Run("filter without category extractor is rejected", func(t *testing.T) {
		opts := qualityOptions()
		opts.Filter = intPtr(1)
		_, err := Build(models.Route{Name: "Blue Route"}, opts)
		assert.Error(t, err)
	})
}

func TestBuildWithCategoryFilter(t *testing.T) {
	interleaved := models.Route{Name: "Blue Route", Points: []models.RoutePoint{
		point(0, 1, 1, 1, map[string]string{"road_condition": "1", "phase": "1"}),
		point(1, 2, 2, 2, map[string]string{"road_condition": "2", "phase": "2"}),
		point(2, 3, 3, 3, map[string]string{"road_condition": "3", "phase": "1"}),
		point(3, 4, 4, 4, map[string]string{"road_condition": "4", "phase": "2"}),
		point(4, 5, 5, 5, map[string]string{"road_condition": "5", "phase": "1"}),
	}}

	opts := qualityOptions()
	opts.Category = PhaseCategory{Column: "phase"}
	opts.Filter = intPtr(1)

	t.Run("only matching category points are connected", func(t *testing.T) {
		segs, err := Build(interleaved, opts)
		require.NoError(t, err)
		require.Len(t, segs, 2)

		assert.Equal(t, 0, segs[0].Start.Row)
		assert.Equal(t, 2, segs[0].End.Row)
		assert.Equal(t, 2, segs[1].Start.Row)
		assert.Equal(t, 4, segs[1].End.Row)
		for _, s := range segs {
			assert.Equal(t, "1", s.Category)
			assert.NotEqual(t, 1, s.Start.Row)
			assert.NotEqual(t, 3, s.End.Row)
		}
	})

	t.Run("filtering twice equals filtering once", func(t *testing.T) {
		once, err := FilterCategory(interleaved.Name, Eligible(interleaved.Points), opts.Category, 1)
		require.NoError(t, err)
		twice, err := FilterCategory(interleaved.Name, once, opts.Category, 1)
		require.NoError(t, err)
		assert.Equal(t, once, twice)

		direct, err := Build(interleaved, opts)
		require.NoError(t, err)
		refiltered, err := Build(models.Route{Name: interleaved.Name, Points: twice}, opts)
		require.NoError(t, err)
		assert.Equal(t, direct, refiltered)
	})

	t.Run("hour filter parses est_time", func(t *testing.T) {
		route := models.Route{Name: "Red Route", Points: []models.RoutePoint{
			point(0, 1, 1, 1, map[string]string{"traffic_congestion": "1", "est_time": "07:10:00"}),
			point(1, 2, 2, 2, map[string]string{"traffic_congestion": "2", "est_time": "08:01:00"}),
			point(2, 3, 3, 3, map[string]string{"traffic_congestion": "3", "est_time": "07:59:59"}),
		}}
		segs, err := Build(route, Options{
			Metric:   MetricSelector{Column: "traffic_congestion"},
			Policy:   CongestionPolicy,
			Category: HourCategory{Column: "est_time"},
			Filter:   intPtr(7),
			Label:    CongestionLabel("est_time"),
		})
		require.NoError(t, err)
		require.Len(t, segs, 1)
		assert.Equal(t, "#00FF00", segs[0].Color.Hex())
		assert.Equal(t, "Red Route, 07:10:00, No Traffic Congestion", segs[0].Label)
	})

	t.Run("unparsable hour is a malformed input error", func(t *testing.T) {
		route := models.Route{Name: "Red Route", Points: []models.RoutePoint{
			point(0, 1, 1, 1, map[string]string{"traffic_congestion": "1", "est_time": "7am"}),
		}}
		_, err := Build(route, Options{
			Metric:   MetricSelector{Column: "traffic_congestion"},
			Policy:   CongestionPolicy,
			Category: HourCategory{Column: "est_time"},
			Filter:   intPtr(7),
		})
		var malformed *MalformedInputError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "est_time", malformed.Field)
		assert.Equal(t, 0, malformed.Row)
		assert.Contains(t, err.Error(), "Red Route")
	})
}

func TestBuildProperties(t *testing.T) {
	// deterministic pseudo-random tables
	seed := uint32(7)
	next := func(n int) int {
		seed = seed*1664525 + 1013904223
		return int(seed>>16) % n
	}

	for trial := 0; trial < 50; trial++ {
		size := next(12)
		route := models.Route{Name: "Trial"}
		eligible := 0
		for i := 0; i < size; i++ {
			p := point(i, float64(i), float64(i), float64(next(5)), map[string]string{
				"road_condition": fmt.Sprint(next(6)),
			})
			if next(4) == 0 {
				p.HasCoordinate = false
			} else {
				eligible++
			}
			route.Points = append(route.Points, p)
		}

		segs, err := Build(route, qualityOptions())
		require.NoError(t, err)

		want := eligible - 1
		if want < 0 {
			want = 0
		}
		assert.Len(t, segs, want, "trial %d", trial)

		for i := range segs {
			assert.LessOrEqual(t, segs[i].Start.Time.Seconds, segs[i].End.Time.Seconds)
			if i > 0 {
				assert.LessOrEqual(t, segs[i-1].Start.Time.Seconds, segs[i].Start.Time.Seconds)
				assert.Equal(t, segs[i-1].End.Row, segs[i].Start.Row)
			}
		}
	}
}
