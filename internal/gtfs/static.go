package gtfs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jamespfennell/gtfs"

	"github.com/kpath1999/gtbusmap/internal/logging"
	"github.com/kpath1999/gtbusmap/internal/models"
)

// Shape is one scheduled route geometry from the static feed.
type Shape struct {
	ID     string
	Points []models.CoordinatePoint
}

func rawGtfsData(ctx context.Context, config Config, logger *slog.Logger) ([]byte, error) {
	if config.isLocalFile() {
		b, err := os.ReadFile(config.Source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("error building GTFS request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, "close_gtfs_response")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading GTFS data: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

// LoadShapes reads the static feed and returns its shapes, restricted to
// config.ShapeIDs when that list is non-empty. A disabled config yields nil.
func LoadShapes(config Config, logger *slog.Logger) ([]Shape, error) {
	if !config.enabled() {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	b, err := rawGtfsData(ctx, config, logger)
	if err != nil {
		return nil, err
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	return shapesFromStatic(staticData, config.ShapeIDs), nil
}

func shapesFromStatic(staticData *gtfs.Static, shapeIDs []string) []Shape {
	wanted := make(map[string]bool, len(shapeIDs))
	for _, id := range shapeIDs {
		wanted[id] = true
	}

	var shapes []Shape
	for _, s := range staticData.Shapes {
		if len(wanted) > 0 && !wanted[s.ID] {
			continue
		}
		points := make([]models.CoordinatePoint, 0, len(s.Points))
		for _, p := range s.Points {
			points = append(points, models.CoordinatePoint{Lat: p.Latitude, Lon: p.Longitude})
		}
		shapes = append(shapes, Shape{ID: s.ID, Points: points})
	}
	return shapes
}
