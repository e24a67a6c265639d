package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kpath1999/gtbusmap/internal/utils"
)

const routeSuffix = " Route"

// RouteFile pairs a display name with the CSV holding its samples.
type RouteFile struct {
	Name string
	Path string
}

// ParseRoutes reads a comma separated list of "Name" or "Name=file.csv"
// entries. Bare names resolve through pattern, e.g. "Blue" with
// "%s_traffic.csv" becomes "Blue Route" read from "<dir>/blue_traffic.csv".
func ParseRoutes(list, dir, pattern string) ([]RouteFile, error) {
	var routes []RouteFile
	seen := make(map[string]bool)

	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, file, hasFile := strings.Cut(entry, "=")
		name = utils.SanitizeInput(name)
		short := strings.TrimSpace(strings.TrimSuffix(name, routeSuffix))

		if err := utils.ValidateRouteName(short); err != nil {
			return nil, fmt.Errorf("invalid route %q: %w", entry, err)
		}

		display := short + routeSuffix
		if seen[display] {
			return nil, fmt.Errorf("duplicate route %q", display)
		}
		seen[display] = true

		if !hasFile || strings.TrimSpace(file) == "" {
			file = fmt.Sprintf(pattern, fileStem(short))
		}
		file = strings.TrimSpace(file)
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}

		routes = append(routes, RouteFile{Name: display, Path: file})
	}

	if len(routes) == 0 {
		return nil, fmt.Errorf("no routes given")
	}
	return routes, nil
}

func fileStem(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
