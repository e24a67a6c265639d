// Package render wires route tables through the segment builder into a map
// artifact, one preset per kind of map.
package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/kpath1999/gtbusmap/internal/gtfs"
	"github.com/kpath1999/gtbusmap/internal/logging"
	"github.com/kpath1999/gtbusmap/internal/mapview"
	"github.com/kpath1999/gtbusmap/internal/models"
	"github.com/kpath1999/gtbusmap/internal/routedata"
	"github.com/kpath1999/gtbusmap/internal/segments"
	"github.com/kpath1999/gtbusmap/internal/stats"
)

// DefaultCenter is used when neither route data nor GTFS shapes give a center.
var DefaultCenter = models.CoordinatePoint{Lat: 33.7756, Lon: -84.3963}

const timestampLayout = "20060102150405"

type Options struct {
	Routes        []RouteFile
	OutDir        string
	Format        mapview.Format
	Zoom          int
	Hour          *int
	Phase         *int
	SkipMalformed bool
	GTFS          gtfs.Config
	// Dump receives a spew dump of the built layers when non-nil.
	Dump io.Writer
	Now  func() time.Time
}

type LayerSummary struct {
	Name     string
	Route    string
	Variant  string
	Segments int
}

type Result struct {
	Path     string
	Segments int
	Layers   []LayerSummary
	Skipped  []string
}

// Renderer builds one map artifact per Run.
type Renderer struct {
	preset Preset
	logger *slog.Logger
}

func NewRenderer(preset Preset, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{preset: preset, logger: logger}
}

// Run loads every route, builds its layers and saves the artifact.
// A route with malformed rows is skipped when opts.SkipMalformed is set and
// aborts the render otherwise.
func (r *Renderer) Run(opts Options) (Result, error) {
	started := time.Now()
	var result Result

	loaded := make([]models.Route, 0, len(opts.Routes))
	for _, rf := range opts.Routes {
		route, err := routedata.LoadFile(rf.Name, rf.Path, r.logger)
		if err != nil {
			if r.skippable(err, opts) {
				logging.LogRouteWarning(r.logger, "skipping route with malformed data", rf.Name, err)
				result.Skipped = append(result.Skipped, rf.Name)
				continue
			}
			return result, err
		}
		loaded = append(loaded, route)
	}

	shapes, err := gtfs.LoadShapes(opts.GTFS, r.logger)
	if err != nil {
		return result, fmt.Errorf("error loading GTFS shapes: %w", err)
	}

	m := mapview.New(r.preset.Title, r.center(loaded, shapes), opts.Zoom)
	m.Controls = r.preset.controls(opts)
	m.Controls.MetricName = r.preset.MetricName
	m.Controls.Legend = r.preset.legend()

	for _, s := range shapes {
		m.AddOverlay("Scheduled shape "+s.ID, s.Points)
	}

	for _, route := range loaded {
		if err := r.addRoute(m, route, opts); err != nil {
			if r.skippable(err, opts) {
				logging.LogRouteWarning(r.logger, "skipping route with malformed data", route.Name, err)
				result.Skipped = append(result.Skipped, route.Name)
				continue
			}
			return result, err
		}
	}

	for _, layer := range m.Layers() {
		result.Layers = append(result.Layers, LayerSummary{
			Name:     layer.Name,
			Route:    layer.Key.Route,
			Variant:  layer.Key.Variant,
			Segments: len(layer.Segments),
		})
	}
	result.Segments = m.SegmentCount()

	if opts.Dump != nil {
		spew.Fdump(opts.Dump, result.Layers)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	format := opts.Format
	if format == "" {
		format = mapview.FormatHTML
	}
	result.Path = filepath.Join(opts.OutDir, "all_routes_map_"+now().Format(timestampLayout)+format.Extension())

	if err := m.Save(result.Path, format, r.logger); err != nil {
		return result, fmt.Errorf("error saving map: %w", err)
	}

	logging.LogOperation(r.logger, "map_saved",
		slog.String("mode", string(r.preset.Mode)),
		slog.String("path", result.Path),
		slog.Int("layers", len(result.Layers)),
		slog.Int("segments", result.Segments),
		slog.Int("skipped_routes", len(result.Skipped)),
		slog.Duration("duration", time.Since(started)))

	return result, nil
}

// addRoute builds every layer of a route before touching the map so a
// failure leaves no partial route behind.
func (r *Renderer) addRoute(m *mapview.Map, route models.Route, opts Options) error {
	type built struct {
		plan layerPlan
		segs []models.RouteSegment
		sum  stats.Summary
	}

	plans := r.preset.plans(route.Name, opts)
	layers := make([]built, 0, len(plans))
	for _, plan := range plans {
		segs, err := segments.Build(route, plan.Options)
		if err != nil {
			return err
		}

		b := built{plan: plan, segs: segs}
		if plan.Stats {
			sum, err := stats.Summarize(route, plan.Options.Metric, plan.Options.Category, plan.Options.Filter)
			if err != nil {
				return err
			}
			sum.DistanceKm = stats.Distance(segs)
			b.sum = sum
		}
		layers = append(layers, b)
	}

	for _, b := range layers {
		m.AddLayer(b.plan.Key, b.plan.Name)
		for _, seg := range b.segs {
			m.AddSegment(b.plan.Key, seg)
		}
		if b.plan.Stats {
			m.SetStats(b.plan.Key, b.sum)
		}
		r.logger.Debug("layer built",
			slog.String("layer", b.plan.Name),
			slog.Int("segments", len(b.segs)))
	}
	return nil
}

func (r *Renderer) skippable(err error, opts Options) bool {
	var malformed *models.MalformedInputError
	return opts.SkipMalformed && errors.As(err, &malformed)
}

func (r *Renderer) center(routes []models.Route, shapes []gtfs.Shape) models.CoordinatePoint {
	groups := make([][]models.CoordinatePoint, 0, len(routes))
	for _, route := range routes {
		groups = append(groups, route.Coordinates())
	}
	if c, ok := models.MeanCenter(groups...); ok {
		return c
	}
	if c, _, _, ok := gtfs.RegionBounds(shapes); ok {
		return c
	}
	return DefaultCenter
}
