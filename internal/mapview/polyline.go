package mapview

import (
	"github.com/twpayne/go-polyline"
)

// EncodedLayer is a compact form of one layer: the vertex chain as a Google
// encoded polyline plus per-segment colors and labels.
type EncodedLayer struct {
	Name     string   `json:"name"`
	Route    string   `json:"route"`
	Variant  string   `json:"variant,omitempty"`
	Points   string   `json:"points"`
	Length   int      `json:"length"`
	Colors   []string `json:"colors"`
	Labels   []string `json:"labels"`
	Segments int      `json:"segments"`
}

// EncodedLayers encodes each layer's segments. Consecutive segments share an
// endpoint, so n segments become n+1 vertices.
func (m *Map) EncodedLayers() []EncodedLayer {
	out := make([]EncodedLayer, 0, len(m.layers))
	for _, layer := range m.layers {
		el := EncodedLayer{
			Name:     layer.Name,
			Route:    layer.Key.Route,
			Variant:  layer.Key.Variant,
			Colors:   make([]string, 0, len(layer.Segments)),
			Labels:   make([]string, 0, len(layer.Segments)),
			Segments: len(layer.Segments),
		}

		coords := make([][]float64, 0, len(layer.Segments)+1)
		for i, seg := range layer.Segments {
			if i == 0 {
				coords = append(coords, []float64{seg.Start.Coordinate.Lat, seg.Start.Coordinate.Lon})
			}
			coords = append(coords, []float64{seg.End.Coordinate.Lat, seg.End.Coordinate.Lon})
			el.Colors = append(el.Colors, seg.Color.Hex())
			el.Labels = append(el.Labels, seg.Label)
		}

		el.Points = string(polyline.EncodeCoords(coords))
		el.Length = len(el.Points)
		out = append(out, el)
	}
	return out
}
