package gtfs

import "strings"

// Config describes where the scheduled reference shapes come from.
type Config struct {
	// Source is a local zip path or an http(s) URL.
	Source   string
	ShapeIDs []string
}

func (config Config) enabled() bool {
	return config.Source != ""
}

func (config Config) isLocalFile() bool {
	return !strings.HasPrefix(config.Source, "http://") && !strings.HasPrefix(config.Source, "https://")
}
