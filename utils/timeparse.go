package utils

import (
	"fmt"
	"time"
)

// instantLayouts are the wire shapes accepted for timestamps, tried in order.
// Whatever arrives is normalized to a UTC instant at the boundary so core
// logic never sees an ambiguous representation.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseInstant parses a wire timestamp into a canonical UTC instant.
// Layouts without a zone are interpreted as UTC.
func ParseInstant(s string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
