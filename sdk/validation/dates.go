package validation

import (
	"fmt"
	"strings"
	"time"
)

// dateFormats are tried in order. ISO forms come first so that the API's own
// output always round-trips.
var dateFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05", // datetime-local inputs
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
}

// ParseFlexibleDate tries to parse a date string using multiple common formats.
// Values without a zone are read as UTC.
func ParseFlexibleDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %q", dateStr)
}
