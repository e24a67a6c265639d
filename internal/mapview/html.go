package mapview

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/paulmach/orb/geojson"

	"github.com/kpath1999/gtbusmap/internal/segments"
)

//go:embed map.html.tmpl
var templateFS embed.FS

const overlayColor = "#555555"

var mapTemplate = template.Must(template.New("map.html.tmpl").Funcs(template.FuncMap{
	"hourLabel": segments.HourLabel,
}).ParseFS(templateFS, "map.html.tmpl"))

type pageLayer struct {
	Route    string                     `json:"route"`
	Variant  string                     `json:"variant"`
	Name     string                     `json:"name"`
	Features *geojson.FeatureCollection `json:"features"`
}

type pageStats struct {
	Route   string  `json:"route"`
	Variant string  `json:"variant"`
	Count   int     `json:"count"`
	Valid   int     `json:"valid"`
	Mean    float64 `json:"mean"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Km      float64 `json:"distanceKm"`
}

type pageOverlay struct {
	Name   string       `json:"name"`
	Points [][2]float64 `json:"points"`
}

type pageLegend struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

type pageData struct {
	MapID         string         `json:"mapId"`
	Center        [2]float64     `json:"center"`
	Zoom          int            `json:"zoom"`
	Weight        int            `json:"weight"`
	Opacity       float64        `json:"opacity"`
	OverlayColor  string         `json:"overlayColor"`
	Routes        []string       `json:"routes"`
	Layers        []pageLayer    `json:"layers"`
	Overlays      []pageOverlay  `json:"overlays"`
	Stats         []pageStats    `json:"stats"`
	Phases        []int          `json:"phases"`
	Hours         []int          `json:"hours"`
	InitVariant   string         `json:"initialVariant"`
	MetricName    string         `json:"metricName"`
	RouteRadio    bool           `json:"routeRadio"`
	PhaseCycler   bool           `json:"phaseCycler"`
	HourFilter    bool           `json:"hourFilter"`
	StatsPanel    bool           `json:"statsPanel"`
	MousePosition bool           `json:"mousePosition"`
	Legend        []pageLegend   `json:"legend"`
	Bounds        *[2][2]float64 `json:"bounds,omitempty"`
}

type templateData struct {
	Title    string
	MapID    string
	Controls Controls
	Routes   []string
	Data     template.JS
}

func (m *Map) pageData() pageData {
	data := pageData{
		MapID:         m.ID,
		Center:        [2]float64{m.Center.Lat, m.Center.Lon},
		Zoom:          m.Zoom,
		Weight:        SegmentWeight,
		Opacity:       SegmentOpacity,
		OverlayColor:  overlayColor,
		Routes:        m.Routes(),
		Layers:        make([]pageLayer, 0, len(m.layers)),
		Overlays:      make([]pageOverlay, 0, len(m.Overlays())),
		Stats:         make([]pageStats, 0, len(m.stats)),
		Phases:        m.Controls.Phases,
		Hours:         m.Controls.Hours,
		MetricName:    m.Controls.MetricName,
		RouteRadio:    m.Controls.RouteRadio,
		PhaseCycler:   m.Controls.PhaseCycler,
		HourFilter:    m.Controls.HourFilter,
		StatsPanel:    m.Controls.StatsPanel,
		MousePosition: m.Controls.MousePosition,
	}

	if m.Controls.PhaseCycler && len(m.Controls.Phases) > 0 {
		data.InitVariant = strconv.Itoa(m.Controls.Phases[0])
	}

	for _, layer := range m.layers {
		data.Layers = append(data.Layers, pageLayer{
			Route:    layer.Key.Route,
			Variant:  layer.Key.Variant,
			Name:     layer.Name,
			Features: LayerFeatureCollection(layer),
		})
	}

	for _, o := range m.Overlays() {
		po := pageOverlay{Name: o.Name, Points: make([][2]float64, 0, len(o.Points))}
		for _, p := range o.Points {
			po.Points = append(po.Points, [2]float64{p.Lat, p.Lon})
		}
		data.Overlays = append(data.Overlays, po)
	}

	// emit stats in layer order so the page is reproducible
	for _, layer := range m.layers {
		s, ok := m.Stats(layer.Key)
		if !ok {
			continue
		}
		data.Stats = append(data.Stats, pageStats{
			Route:   layer.Key.Route,
			Variant: layer.Key.Variant,
			Count:   s.Count,
			Valid:   s.Valid,
			Mean:    s.Mean,
			Max:     s.Max,
			Min:     s.Min,
			Km:      s.DistanceKm,
		})
	}

	if b, ok := m.Bounds(); ok {
		data.Bounds = &[2][2]float64{{b.Min.Lat(), b.Min.Lon()}, {b.Max.Lat(), b.Max.Lon()}}
	}

	for _, entry := range m.Controls.Legend {
		data.Legend = append(data.Legend, pageLegend{Color: entry.Color.Hex(), Label: entry.Label})
	}

	return data
}

// WriteHTML renders a self-contained Leaflet page with the configured controls.
func (m *Map) WriteHTML(w io.Writer) error {
	payload, err := json.Marshal(m.pageData())
	if err != nil {
		return fmt.Errorf("error encoding map data: %w", err)
	}

	err = mapTemplate.Execute(w, templateData{
		Title:    m.Title,
		MapID:    m.ID,
		Controls: m.Controls,
		Routes:   m.Routes(),
		Data:     template.JS(payload), // nolint:gosec json.Marshal escapes <, > and &
	})
	if err != nil {
		return fmt.Errorf("error rendering map page: %w", err)
	}
	return nil
}
