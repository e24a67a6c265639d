package segments

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kpath1999/gtbusmap/internal/models"
)

// MetricSelector names the column that drives segment color.
type MetricSelector struct {
	Column string
}

func (s MetricSelector) Value(p models.RoutePoint) (float64, error) {
	raw, ok := p.Value(s.Column)
	if !ok {
		return 0, fmt.Errorf("column %q not present", s.Column)
	}
	if models.IsMissingCell(raw) {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid metric value %q", raw)
	}
	return v, nil
}

// CategoryExtractor derives the category key used for filtering.
type CategoryExtractor interface {
	Field() string
	Category(p models.RoutePoint) (int, error)
	Describe(category int) string
}

// PhaseCategory reads a precomputed phase index (1..5) and compares it exactly.
type PhaseCategory struct {
	Column string
}

func (c PhaseCategory) Field() string { return c.Column }

func (c PhaseCategory) Category(p models.RoutePoint) (int, error) {
	raw, ok := p.Value(c.Column)
	if !ok {
		return 0, fmt.Errorf("column %q not present", c.Column)
	}
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	// pandas writes integer columns with missing values as floats ("3.0")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid phase %q", raw)
	}
	return int(f), nil
}

func (c PhaseCategory) Describe(category int) string {
	return PhaseName(category)
}

// HourCategory extracts the hour of day from an HH:MM:SS clock column.
type HourCategory struct {
	Column string
}

func (c HourCategory) Field() string { return c.Column }

func (c HourCategory) Category(p models.RoutePoint) (int, error) {
	raw, ok := p.Value(c.Column)
	if !ok {
		return 0, fmt.Errorf("column %q not present", c.Column)
	}
	return models.ParseClockHour(raw)
}

func (c HourCategory) Describe(category int) string {
	return HourLabel(category)
}

// HourLabel formats an hour of day as "7 AM", "12 PM", "7 PM".
func HourLabel(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d %s", h, suffix)
}
