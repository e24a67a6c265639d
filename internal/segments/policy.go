package segments

import "github.com/kpath1999/gtbusmap/internal/models"

var (
	Gray       = models.Color{R: 0x80, G: 0x80, B: 0x80}
	Red        = models.Color{R: 0xFF, G: 0x00, B: 0x00}
	Orange     = models.Color{R: 0xFF, G: 0x7F, B: 0x00}
	Yellow     = models.Color{R: 0xFF, G: 0xFF, B: 0x00}
	Chartreuse = models.Color{R: 0x7F, G: 0xFF, B: 0x00}
	Green      = models.Color{R: 0x00, G: 0xFF, B: 0x00}
)

type Threshold struct {
	UpperBound float64
	Color      models.Color
}

// ColorPolicy maps a metric value to a color using ordered upper bounds.
type ColorPolicy struct {
	Name       string
	Thresholds []Threshold
}

// Color returns the color of the first threshold whose bound is >= value,
// or the last threshold's color when none matches (including NaN).
func (p ColorPolicy) Color(value float64) models.Color {
	for _, t := range p.Thresholds {
		if value <= t.UpperBound {
			return t.Color
		}
	}
	if len(p.Thresholds) == 0 {
		return Gray
	}
	return p.Thresholds[len(p.Thresholds)-1].Color
}

// QualityPolicy colors road condition: low is poor (red), high is excellent (green).
var QualityPolicy = ColorPolicy{
	Name: "quality",
	Thresholds: []Threshold{
		{0, Gray},
		{1, Red},
		{2, Orange},
		{3, Yellow},
		{4, Chartreuse},
		{5, Green},
	},
}

// CongestionPolicy colors traffic congestion: low is free flowing (green), high is heavy (red).
var CongestionPolicy = ColorPolicy{
	Name: "congestion",
	Thresholds: []Threshold{
		{0, Gray},
		{1, Green},
		{2, Chartreuse},
		{3, Yellow},
		{4, Orange},
		{5, Red},
	},
}

// DescribeCongestion buckets are shifted by one relative to CongestionPolicy:
// a value of 0 reads "No Traffic Congestion" while its color is gray.
func DescribeCongestion(value float64) string {
	switch {
	case value <= 1:
		return "No Traffic Congestion"
	case value <= 2:
		return "Minor Traffic Congestion"
	case value <= 3:
		return "Moderate Traffic Congestion"
	case value <= 4:
		return "Moderate-Heavy Traffic Congestion"
	default:
		return "Heavy Traffic Congestion"
	}
}

func PhaseName(phase int) string {
	switch phase {
	case 1:
		return "Morning"
	case 2:
		return "Noon"
	case 3:
		return "Afternoon"
	case 4:
		return "Evening"
	default:
		return "Night"
	}
}
