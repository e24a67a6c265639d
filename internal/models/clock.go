package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a sortable sample time. Raw keeps the cell exactly as read so
// labels can echo it back.
type ClockTime struct {
	Raw     string
	Seconds float64
}

var clockLayouts = []string{
	"15:04:05",
	"15:04:05.999999999",
	"15:04",
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseClockTime accepts plain numbers (epoch or elapsed seconds), clock
// strings and full timestamps.
func ParseClockTime(raw string) (ClockTime, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ClockTime{}, fmt.Errorf("empty time value")
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil && !IsMissing(f) {
		return ClockTime{Raw: raw, Seconds: f}, nil
	}

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			secs := float64(t.Hour()*3600+t.Minute()*60+t.Second()) + float64(t.Nanosecond())/1e9
			return ClockTime{Raw: raw, Seconds: secs}, nil
		}
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime{Raw: raw, Seconds: float64(t.UnixNano()) / 1e9}, nil
		}
	}

	return ClockTime{}, fmt.Errorf("unrecognized time value %q", raw)
}

// ParseClockHour extracts the hour from an HH:MM:SS string.
func ParseClockHour(raw string) (int, error) {
	t, err := time.Parse("15:04:05", strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", raw, err)
	}
	return t.Hour(), nil
}
