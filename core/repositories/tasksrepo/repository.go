// Package tasksrepo implements the task operations independent of any
// transport: list, get, create, the two legacy update paths, the partial
// update, and delete.
package tasksrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// ErrNotFound is returned when no task has the requested id. It wraps
// repositories.ErrNotFound.
var ErrNotFound = fmt.Errorf("task: %w", repositories.ErrNotFound)

// Storer defines the data storage interface for Task. Implementations must
// preserve insertion order in List and return an error matching ErrNotFound
// (errors.Is) for unknown ids.
type Storer interface {
	List(ctx context.Context) ([]Task, error)
	Get(ctx context.Context, taskID string) (Task, error)
	Create(ctx context.Context, input CreateTask) (Task, error)
	Update(ctx context.Context, taskID string, input UpdateTask) (Task, error)
	Delete(ctx context.Context, taskID string) error
	Ping(ctx context.Context) error
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Task repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns every task in insertion order.
func (r *Repository) List(ctx context.Context) ([]Task, error) {
	tasks, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("task repository list: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// Get returns a single task.
func (r *Repository) Get(ctx context.Context, taskID string) (Task, error) {
	task, err := r.storer.Get(ctx, taskID)
	if err != nil {
		return Task{}, fmt.Errorf("task repository get %q: %w", taskID, err)
	}
	return task, nil
}

// Create stores a new, not completed task. The title is accepted as given,
// empty included.
func (r *Repository) Create(ctx context.Context, input CreateTask) (Task, error) {
	task, err := r.storer.Create(ctx, input)
	if err != nil {
		return Task{}, fmt.Errorf("task repository create: %w", err)
	}

	r.log.InfoContext(ctx, "task created", "task_id", task.TaskID)
	return task, nil
}

// UpdateFields overwrites both title and due date. A nil dueDate removes the
// deadline. Completion is never touched.
func (r *Repository) UpdateFields(ctx context.Context, taskID string, title string, dueDate *time.Time) (Task, error) {
	return r.update(ctx, "update fields", taskID, UpdateTask{
		Title:      &title,
		DueDate:    dueDate,
		SetDueDate: true,
	})
}

// UpdateStatus sets the completion flag only.
func (r *Repository) UpdateStatus(ctx context.Context, taskID string, completed bool) (Task, error) {
	return r.update(ctx, "update status", taskID, UpdateTask{
		Completed: &completed,
	})
}

// Patch applies only the fields present in input. An empty patch returns the
// current record.
func (r *Repository) Patch(ctx context.Context, taskID string, input UpdateTask) (Task, error) {
	if input.IsEmpty() {
		return r.Get(ctx, taskID)
	}
	return r.update(ctx, "patch", taskID, input)
}

func (r *Repository) update(ctx context.Context, op string, taskID string, input UpdateTask) (Task, error) {
	task, err := r.storer.Update(ctx, taskID, input)
	if err != nil {
		return Task{}, fmt.Errorf("task repository %s %q: %w", op, taskID, err)
	}

	r.log.InfoContext(ctx, "task updated", "task_id", taskID, "op", op)
	return task, nil
}

// Delete removes the task. A second Delete of the same id fails with ErrNotFound.
func (r *Repository) Delete(ctx context.Context, taskID string) error {
	if err := r.storer.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("task repository delete %q: %w", taskID, err)
	}

	r.log.InfoContext(ctx, "task deleted", "task_id", taskID)
	return nil
}

// StatusCheck reports whether the store is reachable.
func (r *Repository) StatusCheck(ctx context.Context) error {
	if err := r.storer.Ping(ctx); err != nil {
		return fmt.Errorf("task repository status: %w", err)
	}
	return nil
}

// IsNotFound reports whether err means the task does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
