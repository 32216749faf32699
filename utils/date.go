package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseLocalTime parses user supplied timestamps. Inputs with an explicit
// offset keep it; wall-clock inputs are read in loc.
func ParseLocalTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}
	if loc == nil {
		loc = time.Local
	}

	// Try standard RFC3339 format (ISO 8601)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}

	// datetime-local inputs, and the pt-BR display format
	layouts := []string{
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"02/01/2006 15:04",
		"02/01/2006 15:04:05",
		"02/01/2006, 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse time: %v", s)
}
