package validation_test

import (
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/sdk/validation"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:30:00Z", time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-01-01T10:30:00.123Z", time.Date(2024, 1, 1, 10, 30, 0, 123000000, time.UTC)},
		{"2024-01-01T12:00:00+02:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T09:15:00", time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC)},
		{"2024/03/05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"03/05/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"05.03.2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{" 2024-01-01 ", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := validation.ParseFlexibleDate(tt.in)
		if err != nil {
			t.Errorf("ParseFlexibleDate(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseFlexibleDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFlexibleDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"tomorrow", "2024-13-45", ""} {
		if _, err := validation.ParseFlexibleDate(in); err == nil {
			t.Errorf("ParseFlexibleDate(%q) expected error", in)
		}
	}
}
