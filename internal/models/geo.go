package models

import (
	"math"
	"strings"
)

type CoordinatePoint struct {
	Lat float64
	Lon float64
}

// MeanCenter returns the mean of the per-group mean coordinates. Empty groups
// are ignored; ok is false when every group is empty.
func MeanCenter(groups ...[]CoordinatePoint) (center CoordinatePoint, ok bool) {
	var latSum, lonSum float64
	n := 0
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		var lat, lon float64
		for _, p := range group {
			lat += p.Lat
			lon += p.Lon
		}
		latSum += lat / float64(len(group))
		lonSum += lon / float64(len(group))
		n++
	}
	if n == 0 {
		return CoordinatePoint{}, false
	}
	return CoordinatePoint{Lat: latSum / float64(n), Lon: lonSum / float64(n)}, true
}

// IsMissing reports whether a parsed coordinate component should be treated as absent.
func IsMissing(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// IsMissingCell reports whether a raw table cell holds no value.
func IsMissingCell(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "nan", "na", "n/a", "null", "none":
		return true
	}
	return false
}
