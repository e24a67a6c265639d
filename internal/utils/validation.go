package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Compiled regular expressions for validation
var (
	// Route names are short human labels: "Blue", "Gold Route", "Tech-Trolley"
	validRouteNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_. -]+$`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

const (
	FirstServiceHour = 7
	LastServiceHour  = 19
	FirstPhase       = 1
	LastPhase        = 5
)

// ValidateRouteName validates that a route name is safe to use as a layer name and file stem
func ValidateRouteName(name string) error {
	if name == "" {
		return errors.New("route name cannot be empty")
	}

	if len(name) > 100 {
		return errors.New("route name too long (max 100 characters)")
	}

	if !validRouteNamePattern.MatchString(name) {
		return errors.New("route name contains invalid characters")
	}

	return nil
}

// ValidateLatitude validates latitude values
func ValidateLatitude(lat float64) error {
	if lat < -90.0 || lat > 90.0 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates longitude values
func ValidateLongitude(lon float64) error {
	if lon < -180.0 || lon > 180.0 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateHour validates an hour-of-day filter
func ValidateHour(hour int) error {
	if hour < 0 || hour > 23 {
		return errors.New("hour must be between 0 and 23")
	}
	return nil
}

// ValidatePhase validates a time-of-day phase filter
func ValidatePhase(phase int) error {
	if phase < FirstPhase || phase > LastPhase {
		return fmt.Errorf("phase must be between %d and %d", FirstPhase, LastPhase)
	}
	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidateFilterParams validates the optional category filters of a render.
// A nil pointer means the filter is unset.
func ValidateFilterParams(hour, phase *int) map[string][]string {
	fieldErrors := make(map[string][]string)

	if hour != nil {
		if err := ValidateHour(*hour); err != nil {
			fieldErrors["hour"] = append(fieldErrors["hour"], err.Error())
		}
	}

	if phase != nil {
		if err := ValidatePhase(*phase); err != nil {
			fieldErrors["phase"] = append(fieldErrors["phase"], err.Error())
		}
	}

	return fieldErrors
}

// ServiceHours lists the hours offered by the hour filter, 7 AM through 7 PM.
func ServiceHours() []int {
	hours := make([]int, 0, LastServiceHour-FirstServiceHour+1)
	for h := FirstServiceHour; h <= LastServiceHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Phases lists the time-of-day phases, Morning through Night.
func Phases() []int {
	phases := make([]int, 0, LastPhase-FirstPhase+1)
	for p := FirstPhase; p <= LastPhase; p++ {
		phases = append(phases, p)
	}
	return phases
}
