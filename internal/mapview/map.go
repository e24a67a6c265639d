// Package mapview accumulates colored route segments into named, toggleable
// layers and writes them out as a Leaflet page, GeoJSON or encoded polylines.
package mapview

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kpath1999/gtbusmap/internal/models"
	"github.com/kpath1999/gtbusmap/internal/stats"
)

const (
	DefaultZoom    = 16
	SegmentWeight  = 7
	SegmentOpacity = 0.7
)

// LayerKey identifies one layer. Variant is "" for the unfiltered layer, a
// phase ("1".."5") or an hour ("7".."19") otherwise.
type LayerKey struct {
	Route   string
	Variant string
}

type Layer struct {
	Key      LayerKey
	Name     string
	Segments []models.RouteSegment
}

type Overlay struct {
	Name   string
	Points []models.CoordinatePoint
}

type LegendEntry struct {
	Color models.Color
	Label string
}

// Controls selects the interactive widgets injected into the HTML page.
type Controls struct {
	RouteRadio    bool
	PhaseCycler   bool
	HourFilter    bool
	StatsPanel    bool
	MousePosition bool
	Phases        []int
	Hours         []int
	MetricName    string
	Legend        []LegendEntry
}

type Map struct {
	ID       string
	Title    string
	Center   models.CoordinatePoint
	Zoom     int
	Controls Controls

	routes   []string
	layers   []*Layer
	index    map[LayerKey]*Layer
	overlays []Overlay
	stats    map[LayerKey]stats.Summary
}

func New(title string, center models.CoordinatePoint, zoom int) *Map {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	return &Map{
		ID:     "map_" + strings.ReplaceAll(uuid.New().String(), "-", ""),
		Title:  title,
		Center: center,
		Zoom:   zoom,
		index:  make(map[LayerKey]*Layer),
		stats:  make(map[LayerKey]stats.Summary),
	}
}

// AddLayer registers a layer without segments so empty routes still get a
// toggle. Adding an existing key only updates its display name.
func (m *Map) AddLayer(key LayerKey, name string) *Layer {
	if layer, ok := m.index[key]; ok {
		if name != "" {
			layer.Name = name
		}
		return layer
	}
	if name == "" {
		name = key.Route
	}
	layer := &Layer{Key: key, Name: name}
	m.layers = append(m.layers, layer)
	m.index[key] = layer

	known := false
	for _, r := range m.routes {
		if r == key.Route {
			known = true
			break
		}
	}
	if !known {
		m.routes = append(m.routes, key.Route)
	}
	return layer
}

// AddSegment appends one segment to the layer for key, creating it if needed.
func (m *Map) AddSegment(key LayerKey, seg models.RouteSegment) {
	layer := m.AddLayer(key, "")
	layer.Segments = append(layer.Segments, seg)
}

// AddOverlay adds a gray reference polyline drawn under the route layers.
func (m *Map) AddOverlay(name string, points []models.CoordinatePoint) {
	if len(points) < 2 {
		return
	}
	m.overlays = append(m.overlays, Overlay{Name: name, Points: points})
}

func (m *Map) SetStats(key LayerKey, s stats.Summary) {
	m.stats[key] = s
}

func (m *Map) Stats(key LayerKey) (stats.Summary, bool) {
	s, ok := m.stats[key]
	return s, ok
}

// Layers returns layers in insertion order.
func (m *Map) Layers() []*Layer {
	return m.layers
}

func (m *Map) Routes() []string {
	return m.routes
}

func (m *Map) Overlays() []Overlay {
	return m.overlays
}

func (m *Map) SegmentCount() int {
	n := 0
	for _, l := range m.layers {
		n += len(l.Segments)
	}
	return n
}
