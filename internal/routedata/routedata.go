// Package routedata reads per-route CSV time-series into models.Route values.
package routedata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/kpath1999/gtbusmap/internal/logging"
	"github.com/kpath1999/gtbusmap/internal/models"
	"github.com/kpath1999/gtbusmap/internal/utils"
)

const (
	LatitudeColumn  = "latitude"
	LongitudeColumn = "longitude"
	TimeColumn      = "time"
	EstTimeColumn   = "est_time"
)

// RecordField names the pseudo-field reported when a CSV record cannot be tokenized.
const RecordField = "record"

// LoadFile opens path and loads it as the route called name.
func LoadFile(name, path string, logger *slog.Logger) (models.Route, error) {
	file, err := os.Open(path)
	if err != nil {
		return models.Route{}, fmt.Errorf("error opening route data %s: %w", path, err)
	}
	defer logging.SafeCloseWithLogging(file, logger, "close_route_data")

	route, err := Load(name, file)
	if err != nil {
		return models.Route{}, fmt.Errorf("error loading route data %s: %w", path, err)
	}
	return route, nil
}

// Load reads a header row followed by one sample per row. Rows with a missing
// latitude or longitude are kept but flagged; rows with unreadable values
// fail with *models.MalformedInputError.
func Load(name string, r io.Reader) (models.Route, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	route := models.Route{Name: name}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return route, nil
	}
	if err != nil {
		return route, fmt.Errorf("error reading header: %w", err)
	}
	columns := normalizeHeader(header)

	timeColumn, err := resolveColumns(columns)
	if err != nil {
		return route, err
	}

	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return route, &models.MalformedInputError{Route: name, Row: row, Field: RecordField, Err: err}
		}
		if err != nil {
			return route, fmt.Errorf("error reading row %d: %w", row, err)
		}

		point, err := parsePoint(name, row, columns, record, timeColumn)
		if err != nil {
			return route, err
		}
		route.Points = append(route.Points, point)
	}

	return route, nil
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		columns[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return columns
}

func resolveColumns(columns []string) (string, error) {
	has := make(map[string]bool, len(columns))
	for _, c := range columns {
		has[c] = true
	}

	for _, required := range []string{LatitudeColumn, LongitudeColumn} {
		if !has[required] {
			return "", fmt.Errorf("missing required column %q", required)
		}
	}

	switch {
	case has[TimeColumn]:
		return TimeColumn, nil
	case has[EstTimeColumn]:
		return EstTimeColumn, nil
	default:
		return "", fmt.Errorf("missing required column %q or %q", TimeColumn, EstTimeColumn)
	}
}

func parsePoint(route string, row int, columns, record []string, timeColumn string) (models.RoutePoint, error) {
	values := make(map[string]string, len(columns))
	for i, c := range columns {
		if i < len(record) {
			values[c] = strings.TrimSpace(record[i])
		} else {
			values[c] = ""
		}
	}

	point := models.RoutePoint{Row: row, Values: values}

	lat, latOK, err := parseCoordinate(values[LatitudeColumn], utils.ValidateLatitude)
	if err != nil {
		return point, &models.MalformedInputError{Route: route, Row: row, Field: LatitudeColumn, Err: err}
	}
	lon, lonOK, err := parseCoordinate(values[LongitudeColumn], utils.ValidateLongitude)
	if err != nil {
		return point, &models.MalformedInputError{Route: route, Row: row, Field: LongitudeColumn, Err: err}
	}

	point.Coordinate = models.CoordinatePoint{Lat: lat, Lon: lon}
	point.HasCoordinate = latOK && lonOK

	if !point.HasCoordinate {
		// never rendered, so an unreadable time is irrelevant
		if t, err := models.ParseClockTime(values[timeColumn]); err == nil {
			point.Time = t
		}
		return point, nil
	}

	t, err := models.ParseClockTime(values[timeColumn])
	if err != nil {
		return point, &models.MalformedInputError{Route: route, Row: row, Field: timeColumn, Err: err}
	}
	point.Time = t

	return point, nil
}

func parseCoordinate(raw string, validate func(float64) error) (float64, bool, error) {
	if models.IsMissingCell(raw) {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid coordinate %q", raw)
	}
	if models.IsMissing(v) {
		return 0, false, nil
	}
	if err := validate(v); err != nil {
		return 0, false, err
	}
	return v, true, nil
}
