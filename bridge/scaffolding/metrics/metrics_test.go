package metrics_test

import (
	"context"
	"testing"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/metrics"
)

func TestCountersNeedContext(t *testing.T) {
	if n := metrics.AddRequests(context.Background()); n != 0 {
		t.Errorf("AddRequests without Set = %d, want 0", n)
	}
}

func TestCountersIncrement(t *testing.T) {
	ctx := metrics.Set(context.Background())

	first := metrics.AddRequests(ctx)
	second := metrics.AddRequests(ctx)
	if second != first+1 {
		t.Errorf("requests went %d -> %d", first, second)
	}

	e1 := metrics.AddErrors(ctx)
	if e2 := metrics.AddErrors(ctx); e2 != e1+1 {
		t.Errorf("errors went %d -> %d", e1, e2)
	}

	if g := metrics.AddGoroutines(ctx); g < 1 {
		t.Errorf("goroutines = %d", g)
	}
}
