package commands

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Seed creates a handful of sample tasks, due on consecutive days.
func Seed(ctx context.Context, log *logger.Logger, args []string, repo *tasksrepo.Repository) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	count := fs.Int("count", 5, "number of tasks to create")
	prefix := fs.String("title", "Sample task", "title prefix")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return ErrHelp
		}
		return fmt.Errorf("parse flags: %w", err)
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	for i := range *count {
		due := start.AddDate(0, 0, i+1)
		task, err := repo.Create(ctx, tasksrepo.CreateTask{
			Title:   fmt.Sprintf("%s %d", *prefix, i+1),
			DueDate: &due,
		})
		if err != nil {
			return fmt.Errorf("create task %d: %w", i+1, err)
		}
		log.InfoContext(ctx, "seeded", "task_id", task.TaskID, "title", task.Title)
	}

	log.InfoContextf(ctx, "seeding complete: %d tasks", *count)
	return nil
}
