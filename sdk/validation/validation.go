// Package validation holds small value helpers shared by the bridges, the
// stores and the clients.
package validation

import (
	"time"
)

// GetStringOrEmpty returns the string value or an empty string if nil
func GetStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ISOMillis is the JSON date layout used on the wire, always in UTC.
const ISOMillis = "2006-01-02T15:04:05.000Z07:00"

// FormatISOPtr renders an optional instant in UTC with millisecond
// precision, nil when absent.
func FormatISOPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(ISOMillis)
	return &s
}
