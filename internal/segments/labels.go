package segments

import (
	"fmt"

	"github.com/kpath1999/gtbusmap/internal/models"
)

// LabelFunc builds the popup text of a segment from its start point.
type LabelFunc func(route string, start models.RoutePoint, value float64) string

func RoadConditionLabel(route string, _ models.RoutePoint, value float64) string {
	return fmt.Sprintf("%s - Avg Road Condition: %.2f", route, value)
}

func RideQualityLabel(route string, _ models.RoutePoint, value float64) string {
	return fmt.Sprintf("%s - Ride Quality: %.2f", route, value)
}

// CongestionLabel echoes the start point's estimated clock time.
func CongestionLabel(timeColumn string) LabelFunc {
	return func(route string, start models.RoutePoint, value float64) string {
		at, _ := start.Value(timeColumn)
		return fmt.Sprintf("%s, %s, %s", route, at, DescribeCongestion(value))
	}
}
