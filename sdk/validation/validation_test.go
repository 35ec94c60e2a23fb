package validation_test

import (
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/sdk/validation"
)

func TestFormatISOPtr(t *testing.T) {
	if got := validation.FormatISOPtr(nil); got != nil {
		t.Fatalf("FormatISOPtr(nil) = %q", *got)
	}

	in := time.Date(2024, 1, 1, 2, 0, 0, 0, time.FixedZone("CET", 2*60*60))
	got := validation.FormatISOPtr(&in)
	if got == nil || *got != "2024-01-01T00:00:00.000Z" {
		t.Fatalf("FormatISOPtr = %v", got)
	}
}
