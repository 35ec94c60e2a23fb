package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Status pings the configured store and reports how many tasks it holds.
func Status(ctx context.Context, log *logger.Logger, repo *tasksrepo.Repository) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := repo.StatusCheck(ctx); err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}

	tasks, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	open := 0
	for _, t := range tasks {
		if !t.Completed {
			open++
		}
	}

	log.InfoContextf(ctx, "store ok: %d tasks, %d open", len(tasks), open)
	return nil
}
