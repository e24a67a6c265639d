package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kpath1999/gtbusmap/internal/mapview"
	"github.com/kpath1999/gtbusmap/internal/segments"
	"github.com/kpath1999/gtbusmap/internal/utils"
)

type Mode string

const (
	ModeQuality    Mode = "quality"
	ModeTimeseries Mode = "timeseries"
	ModeCongestion Mode = "congestion"
	ModeDashboard  Mode = "dashboard"
)

const (
	roadConditionColumn     = "road_condition"
	trafficCongestionColumn = "traffic_congestion"
	phaseColumn             = "phase"
	estTimeColumn           = "est_time"
)

// layerPlan is one layer to build for a route.
type layerPlan struct {
	Key     mapview.LayerKey
	Name    string
	Options segments.Options
	Stats   bool
}

// Preset captures what differed between the per-script variants: input
// files, metric, color policy, layer partitioning and page controls.
type Preset struct {
	Mode          Mode
	Title         string
	DataDir       string
	FilePattern   string
	DefaultRoutes string
	MetricName    string
	Policy        segments.ColorPolicy
	LegendLabels  []string
	// HourFilter and PhaseFilter report which of -hour and -phase apply.
	HourFilter    bool
	PhaseFilter   bool

	plans    func(route string, opts Options) []layerPlan
	controls func(opts Options) mapview.Controls
}

var qualityLegend = []string{"No data", "Poor", "Below average", "Average", "Good", "Excellent"}

var congestionLegend = []string{
	"No data",
	"No traffic congestion",
	"Minor traffic congestion",
	"Moderate traffic congestion",
	"Moderate-heavy traffic congestion",
	"Heavy traffic congestion",
}

var presets = map[Mode]Preset{
	ModeQuality: {
		Mode:          ModeQuality,
		Title:         "Road Condition",
		DataDir:       "real_data",
		FilePattern:   "%s_road_all.csv",
		DefaultRoutes: "Blue,Red,Green,Gold",
		MetricName:    "road condition",
		Policy:        segments.QualityPolicy,
		LegendLabels:  qualityLegend,
		HourFilter:    false,
		PhaseFilter:   true,
		plans:         qualityPlans,
		controls:      baseControls,
	},
	ModeTimeseries: {
		Mode:          ModeTimeseries,
		Title:         "Ride Quality by Time of Day",
		DataDir:       "condensed",
		FilePattern:   "%s_timeseries.csv",
		DefaultRoutes: "Blue,Red,Green,Gold",
		MetricName:    "ride quality",
		Policy:        segments.QualityPolicy,
		LegendLabels:  qualityLegend,
		HourFilter:    false,
		PhaseFilter:   true,
		plans:         timeseriesPlans,
		controls: func(opts Options) mapview.Controls {
			c := baseControls(opts)
			c.PhaseCycler = true
			c.Phases = phasesFor(opts)
			return c
		},
	},
	ModeCongestion: {
		Mode:          ModeCongestion,
		Title:         "Traffic Congestion",
		DataDir:       "real_data",
		FilePattern:   "%s_traffic.csv",
		DefaultRoutes: "Blue,Red,Green,Gold",
		MetricName:    "traffic congestion",
		Policy:        segments.CongestionPolicy,
		LegendLabels:  congestionLegend,
		HourFilter:    true,
		PhaseFilter:   false,
		plans:         congestionPlans(false),
		controls: func(opts Options) mapview.Controls {
			c := baseControls(opts)
			c.HourFilter = true
			c.Hours = hoursFor(opts)
			return c
		},
	},
	ModeDashboard: {
		Mode:          ModeDashboard,
		Title:         "Georgia Tech Traffic Congestion",
		DataDir:       "real_data",
		FilePattern:   "%s_traffic.csv",
		DefaultRoutes: "Blue,Red,Green=green_traffic_merged.csv,Gold=gold_traffic_merged.csv",
		MetricName:    "traffic congestion",
		Policy:        segments.CongestionPolicy,
		LegendLabels:  congestionLegend,
		HourFilter:    true,
		PhaseFilter:   false,
		plans:         congestionPlans(true),
		controls: func(opts Options) mapview.Controls {
			c := baseControls(opts)
			c.HourFilter = true
			c.Hours = hoursFor(opts)
			c.StatsPanel = true
			return c
		},
	},
}

// LookupPreset returns the preset for a mode name.
func LookupPreset(mode string) (Preset, error) {
	p, ok := presets[Mode(strings.ToLower(strings.TrimSpace(mode)))]
	if !ok {
		return Preset{}, fmt.Errorf("unknown mode %q (quality|timeseries|congestion|dashboard)", mode)
	}
	return p, nil
}

// CheckFilters rejects an -hour or -phase filter the mode cannot apply.
func (p Preset) CheckFilters(hour, phase *int) error {
	if hour != nil && !p.HourFilter {
		return fmt.Errorf("mode %s does not support an hour filter", p.Mode)
	}
	if phase != nil && !p.PhaseFilter {
		return fmt.Errorf("mode %s does not support a phase filter", p.Mode)
	}
	return nil
}

func (p Preset) legend() []mapview.LegendEntry {
	entries := make([]mapview.LegendEntry, 0, len(p.Policy.Thresholds))
	for i, t := range p.Policy.Thresholds {
		label := ""
		if i < len(p.LegendLabels) {
			label = p.LegendLabels[i]
		}
		entries = append(entries, mapview.LegendEntry{Color: t.Color, Label: label})
	}
	return entries
}

func baseControls(opts Options) mapview.Controls {
	return mapview.Controls{
		RouteRadio:    true,
		MousePosition: true,
	}
}

func phasesFor(opts Options) []int {
	if opts.Phase != nil {
		return []int{*opts.Phase}
	}
	return utils.Phases()
}

func hoursFor(opts Options) []int {
	if opts.Hour != nil {
		return []int{*opts.Hour}
	}
	return utils.ServiceHours()
}

// qualityPlans draws one layer per route; -phase narrows it to rows whose
// precomputed phase column matches.
func qualityPlans(route string, opts Options) []layerPlan {
	plan := layerPlan{
		Key:  mapview.LayerKey{Route: route},
		Name: route,
		Options: segments.Options{
			Metric: segments.MetricSelector{Column: roadConditionColumn},
			Policy: segments.QualityPolicy,
			Label:  segments.RoadConditionLabel,
		},
	}
	if opts.Phase != nil {
		phases := segments.PhaseCategory{Column: phaseColumn}
		plan.Options.Category = phases
		plan.Options.Filter = opts.Phase
		plan.Name = fmt.Sprintf("%s, %s", route, phases.Describe(*opts.Phase))
	}
	return []layerPlan{plan}
}

// timeseriesPlans draws one layer per phase, each colored by that phase's
// road_condition_<phase> column over the full point set.
func timeseriesPlans(route string, opts Options) []layerPlan {
	phases := segments.PhaseCategory{Column: phaseColumn}
	var plans []layerPlan
	for _, phase := range phasesFor(opts) {
		plans = append(plans, layerPlan{
			Key:  mapview.LayerKey{Route: route, Variant: strconv.Itoa(phase)},
			Name: fmt.Sprintf("%s, %s", route, phases.Describe(phase)),
			Options: segments.Options{
				Metric: segments.MetricSelector{Column: fmt.Sprintf("%s_%d", roadConditionColumn, phase)},
				Policy: segments.QualityPolicy,
				Label:  segments.RideQualityLabel,
			},
		})
	}
	return plans
}

// congestionPlans draws an all-hours layer plus one layer per service hour.
func congestionPlans(withStats bool) func(route string, opts Options) []layerPlan {
	return func(route string, opts Options) []layerPlan {
		base := segments.Options{
			Metric: segments.MetricSelector{Column: trafficCongestionColumn},
			Policy: segments.CongestionPolicy,
			Label:  segments.CongestionLabel(estTimeColumn),
		}

		plans := []layerPlan{{
			Key:     mapview.LayerKey{Route: route},
			Name:    route,
			Options: base,
			Stats:   withStats,
		}}

		hours := segments.HourCategory{Column: estTimeColumn}
		for _, hour := range hoursFor(opts) {
			h := hour
			o := base
			o.Category = hours
			o.Filter = &h
			plans = append(plans, layerPlan{
				Key:     mapview.LayerKey{Route: route, Variant: strconv.Itoa(h)},
				Name:    fmt.Sprintf("%s, %s", route, hours.Describe(h)),
				Options: o,
				Stats:   withStats,
			})
		}
		return plans
	}
}
