package segments

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpath1999/gtbusmap/internal/models"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func TestMetricSelector(t *testing.T) {
	sel := MetricSelector{Column: "road_condition_3"}

	v, err := sel.Value(models.RoutePoint{Values: map[string]string{"road_condition_3": " 2.75 "}})
	require.NoError(t, err)
	assert.Equal(t, 2.75, v)

	_, err = sel.Value(models.RoutePoint{Values: map[string]string{"road_condition": "2"}})
	assert.Error(t, err)

	_, err = sel.Value(models.RoutePoint{Values: map[string]string{"road_condition_3": "bumpy"}})
	assert.Error(t, err)
}

func TestPhaseCategory(t *testing.T) {
	cat := PhaseCategory{Column: "phase"}

	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"5", 5, false},
		{"3.0", 3, false},
		{"2.5", 0, true},
		{"", 0, true},
		{"nan", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := cat.Category(models.RoutePoint{Values: map[string]string{"phase": tt.raw}})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "phase", cat.Field())
	assert.Equal(t, "Afternoon", cat.Describe(3))
}

func TestHourCategory(t *testing.T) {
	cat := HourCategory{Column: "est_time"}

	got, err := cat.Category(models.RoutePoint{Values: map[string]string{"est_time": "13:45:10"}})
	require.NoError(t, err)
	assert.Equal(t, 13, got)

	_, err = cat.Category(models.RoutePoint{Values: map[string]string{"est_time": "13:45"}})
	assert.Error(t, err)

	_, err = cat.Category(models.RoutePoint{Values: map[string]string{}})
	assert.Error(t, err)

	assert.Equal(t, "1 PM", cat.Describe(13))
}
