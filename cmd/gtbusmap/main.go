package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/kpath1999/gtbusmap/internal/app"
	"github.com/kpath1999/gtbusmap/internal/appconf"
	"github.com/kpath1999/gtbusmap/internal/gtfs"
	"github.com/kpath1999/gtbusmap/internal/logging"
	"github.com/kpath1999/gtbusmap/internal/mapview"
)

func main() {
	appconf.LoadDotEnv(".")

	var (
		cfg         app.Config
		envFlag     string
		formatFlag  string
		gtfsShapes  string
		hour, phase int
		dump        bool
		verbose     bool
	)

	flag.StringVar(&cfg.Mode, "mode", "quality", "Map to render (quality|timeseries|congestion|dashboard)")
	flag.StringVar(&cfg.DataDir, "data-dir", appconf.GetEnv("GTBUSMAP_DATA_DIR", ""), "Directory holding the route CSVs (defaults per mode)")
	flag.StringVar(&cfg.OutDir, "out-dir", appconf.GetEnv("GTBUSMAP_OUT_DIR", "."), "Directory the map is written to")
	flag.StringVar(&cfg.Routes, "routes", appconf.GetEnv("GTBUSMAP_ROUTES", ""), "Comma separated routes, Name or Name=file.csv")
	flag.StringVar(&formatFlag, "format", "html", "Output format (html|geojson|polyline)")
	flag.IntVar(&hour, "hour", -1, "Only build the layer for this service hour (7-19)")
	flag.IntVar(&phase, "phase", -1, "Only build layers for this phase (1-5)")
	flag.IntVar(&cfg.Zoom, "zoom", appconf.GetEnvInt("GTBUSMAP_ZOOM", mapview.DefaultZoom), "Initial map zoom")
	flag.BoolVar(&cfg.SkipMalformed, "skip-malformed", appconf.GetEnvBool("GTBUSMAP_SKIP_MALFORMED", true), "Skip routes with malformed rows instead of failing")
	flag.StringVar(&cfg.GtfsConfig.Source, "gtfs", appconf.GetEnv("GTBUSMAP_GTFS", ""), "Static GTFS zip path or URL for scheduled shape overlays")
	flag.StringVar(&gtfsShapes, "gtfs-shapes", "", "Comma separated GTFS shape IDs to overlay (default all)")
	flag.StringVar(&envFlag, "env", appconf.GetEnv("GTBUSMAP_ENV", "development"), "Environment (development|test|production)")
	flag.BoolVar(&dump, "dump", false, "Dump the built layers to stderr")
	flag.BoolVar(&verbose, "v", false, "Log per-layer details")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	env, err := appconf.EnvFlagToEnvironment(envFlag)
	logger := logging.NewConsoleLogger(os.Stderr, level)
	if env == appconf.Production {
		logger = logging.NewStructuredLogger(os.Stderr, level)
	}
	if err != nil {
		logging.LogError(logger, "invalid environment", err)
		os.Exit(1)
	}
	cfg.Env = env

	cfg.Format, err = mapview.ParseFormat(formatFlag)
	if err != nil {
		logging.LogError(logger, "invalid format", err)
		os.Exit(1)
	}

	if hour >= 0 {
		cfg.Hour = &hour
	}
	if phase >= 0 {
		cfg.Phase = &phase
	}
	cfg.GtfsConfig = gtfs.Config{Source: cfg.GtfsConfig.Source, ShapeIDs: app.ParseList(gtfsShapes)}
	if dump {
		cfg.Dump = os.Stderr
	}

	application := &app.Application{
		Config: cfg,
		Logger: logger,
	}

	result, err := application.Run()
	if err != nil {
		logging.LogError(logger, "render failed", err)
		os.Exit(1)
	}

	logger.Info("map written",
		slog.String("path", result.Path),
		slog.Int("segments", result.Segments),
		slog.Any("skipped", result.Skipped))
}
