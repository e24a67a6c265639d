package mapview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kpath1999/gtbusmap/internal/logging"
)

type Format string

const (
	FormatHTML     Format = "html"
	FormatGeoJSON  Format = "geojson"
	FormatPolyline Format = "polyline"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatGeoJSON, FormatPolyline:
		return f, nil
	case "":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (html|geojson|polyline)", s)
	}
}

// Extension is the file extension used for the format's artifact.
func (f Format) Extension() string {
	switch f {
	case FormatGeoJSON:
		return ".geojson"
	case FormatPolyline:
		return ".json"
	default:
		return ".html"
	}
}

// Write renders the map in the given format.
func (m *Map) Write(w io.Writer, format Format) error {
	switch format {
	case FormatHTML:
		return m.WriteHTML(w)
	case FormatGeoJSON:
		b, err := m.FeatureCollection().MarshalJSON()
		if err != nil {
			return fmt.Errorf("error encoding geojson: %w", err)
		}
		_, err = w.Write(b)
		return err
	case FormatPolyline:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Title  string         `json:"title"`
			Layers []EncodedLayer `json:"layers"`
		}{Title: m.Title, Layers: m.EncodedLayers()})
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Save writes the artifact to path, creating parent directories. Nothing is
// created when the map cannot be encoded.
func (m *Map) Save(path string, format Format, logger *slog.Logger) (err error) {
	var buf bytes.Buffer
	if err := m.Write(&buf, format); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer logging.HandleDeferredError(&err, file.Close, logger, "close_map_artifact")

	_, err = buf.WriteTo(file)
	return err
}
