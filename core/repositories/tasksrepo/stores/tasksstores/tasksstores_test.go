package tasksstores_test

import (
	"context"
	"io"
	"testing"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/tasksstores"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

func TestOpenMemory(t *testing.T) {
	t.Setenv("TASKSTORES_TEST_STORE", "memory")

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	opened, err := tasksstores.OpenFromEnv(context.Background(), "TASKSTORES_TEST", log)
	if err != nil {
		t.Fatalf("OpenFromEnv: %v", err)
	}
	defer opened.Close(context.Background())

	if opened.Kind != tasksstores.Memory {
		t.Errorf("Kind = %q", opened.Kind)
	}
	if err := opened.Storer.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestOpenUnknown(t *testing.T) {
	t.Setenv("TASKSTORES_TEST_STORE", "redis")

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	if _, err := tasksstores.OpenFromEnv(context.Background(), "TASKSTORES_TEST", log); err == nil {
		t.Fatal("expected an error for an unknown store")
	}
}
