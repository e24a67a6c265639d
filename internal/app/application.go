package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/kpath1999/gtbusmap/internal/appconf"
	"github.com/kpath1999/gtbusmap/internal/gtfs"
	"github.com/kpath1999/gtbusmap/internal/mapview"
	"github.com/kpath1999/gtbusmap/internal/render"
	"github.com/kpath1999/gtbusmap/internal/utils"
)

// Application holds the configuration and logger shared by one render run.
type Application struct {
	Config Config
	Logger *slog.Logger
}

// Config holds all the configuration settings for a render. Empty DataDir
// and Routes fall back to the mode's defaults.
type Config struct {
	Mode          string
	Env           appconf.Environment
	DataDir       string
	OutDir        string
	Routes        string
	Format        mapview.Format
	Zoom          int
	Hour          *int
	Phase         *int
	SkipMalformed bool
	GtfsConfig    gtfs.Config
	Dump          io.Writer
	Now           func() time.Time
}

// Run validates the configuration, resolves the mode's preset and renders
// one map artifact.
func (app *Application) Run() (render.Result, error) {
	if problems := utils.ValidateFilterParams(app.Config.Hour, app.Config.Phase); len(problems) > 0 {
		return render.Result{}, fmt.Errorf("invalid filters: %s", formatProblems(problems))
	}

	preset, err := render.LookupPreset(app.Config.Mode)
	if err != nil {
		return render.Result{}, err
	}
	if err := preset.CheckFilters(app.Config.Hour, app.Config.Phase); err != nil {
		return render.Result{}, err
	}

	dataDir := app.Config.DataDir
	if dataDir == "" {
		dataDir = preset.DataDir
	}
	routeList := app.Config.Routes
	if strings.TrimSpace(routeList) == "" {
		routeList = preset.DefaultRoutes
	}

	routes, err := render.ParseRoutes(routeList, dataDir, preset.FilePattern)
	if err != nil {
		return render.Result{}, err
	}

	outDir := app.Config.OutDir
	if outDir == "" {
		outDir = "."
	}

	app.Logger.Info("rendering map",
		slog.String("mode", string(preset.Mode)),
		slog.String("env", app.Config.Env.String()),
		slog.String("data_dir", dataDir),
		slog.Int("routes", len(routes)))

	return render.NewRenderer(preset, app.Logger).Run(render.Options{
		Routes:        routes,
		OutDir:        outDir,
		Format:        app.Config.Format,
		Zoom:          app.Config.Zoom,
		Hour:          app.Config.Hour,
		Phase:         app.Config.Phase,
		SkipMalformed: app.Config.SkipMalformed,
		GTFS:          app.Config.GtfsConfig,
		Dump:          app.Config.Dump,
		Now:           app.Config.Now,
	})
}

// ParseList splits a comma separated flag value, dropping blank entries.
func ParseList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func formatProblems(problems map[string][]string) string {
	var parts []string
	for _, field := range []string{"hour", "phase"} {
		for _, msg := range problems[field] {
			parts = append(parts, field+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}
