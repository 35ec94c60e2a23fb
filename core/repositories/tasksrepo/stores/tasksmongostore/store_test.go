package tasksmongostore_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/storetest"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/tasksmongostore"
	"github.com/jrazmi/tasktracker/infrastructure/mongodb"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

func TestStore(t *testing.T) {
	uri := os.Getenv("TASKTRACKER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TASKTRACKER_TEST_MONGO_URI not set")
	}

	log := logger.NewDefault(logger.WithOutput(io.Discard))

	name := fmt.Sprintf("tasktracker_test_%d", time.Now().UnixNano())
	db, err := mongodb.NewTestDB(uri, name, mongodb.WithLogger(log.Logger))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		_ = db.Drop(ctx)
		_ = db.Close(ctx)
	})

	n := 0
	storetest.Run(t, func(t *testing.T) tasksrepo.Storer {
		n++
		return tasksmongostore.NewStore(log, db, fmt.Sprintf("tasks_%d", n))
	})
}
