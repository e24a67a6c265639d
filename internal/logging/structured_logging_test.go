package logging

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStructuredLogger(t *testing.T) {
	t.Run("creates JSON logger with proper configuration", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		logger.Info("test message",
			slog.String("component", "test"),
			slog.Int("count", 42))

		output := buf.String()

		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"test message"`)
		assert.Contains(t, output, `"component":"test"`)
		assert.Contains(t, output, `"count":42`)
		assert.Contains(t, output, `"time":`)
	})

	t.Run("respects log level configuration", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warning message")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warning message")
	})

	t.Run("console logger writes key=value pairs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewConsoleLogger(&buf, slog.LevelDebug)

		logger.Debug("layer built", slog.String("route", "Blue Route"))

		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, `msg="layer built"`)
		assert.Contains(t, output, `route="Blue Route"`)
	})
}

func TestLoggerHelpers(t *testing.T) {
	t.Run("LogError creates structured error log", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogError(logger, "failed to load route", assert.AnError,
			slog.String("path", "real_data/blue_traffic.csv"),
			slog.String("component", "routedata"))

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to load route"`)
		assert.Contains(t, output, `"error":"assert.AnError general error for testing"`)
		assert.Contains(t, output, `"path":"real_data/blue_traffic.csv"`)
		assert.Contains(t, output, `"component":"routedata"`)
	})

	t.Run("LogOperation skips zero durations", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogOperation(logger, "map_saved",
			slog.String("path", "all_routes_map.html"),
			slog.Int("segments", 150),
			slog.Duration("duration", 0))

		output := buf.String()
		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"map_saved"`)
		assert.Contains(t, output, `"segments":150`)
		assert.NotContains(t, output, `"duration"`)
	})

	t.Run("LogOperation keeps non-zero durations", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogOperation(logger, "map_saved", slog.Duration("duration", time.Second))

		assert.Contains(t, buf.String(), `"duration":1000000000`)
	})

	t.Run("LogRouteWarning tags the route", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		LogRouteWarning(logger, "skipping route", "Gold Route", assert.AnError)

		output := buf.String()
		assert.Contains(t, output, `"level":"WARN"`)
		assert.Contains(t, output, `"route":"Gold Route"`)
	})

	t.Run("helpers tolerate a nil logger", func(t *testing.T) {
		assert.NotPanics(t, func() {
			LogError(nil, "x", assert.AnError)
			LogOperation(nil, "x")
			LogRouteWarning(nil, "x", "y", nil)
		})
	})
}
