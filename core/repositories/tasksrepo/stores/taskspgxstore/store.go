// Package taskspgxstore persists tasks in PostgreSQL through pgx.
package taskspgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/postgresdb"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

const columns = `task_id, title, due_date, completed`

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	query := `SELECT ` + columns + `
		FROM tasks
		ORDER BY seq`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	return tasks, nil
}

func (s *Store) Get(ctx context.Context, taskID string) (tasksrepo.Task, error) {
	query := `SELECT ` + columns + `
		FROM tasks
		WHERE task_id = @task_id`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"task_id": taskID})
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	return collectOne(rows, "get", taskID)
}

func (s *Store) Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	query := `INSERT INTO tasks (task_id, title, due_date, completed)
		VALUES (@task_id, @title, @due_date, FALSE)
		RETURNING ` + columns

	args := pgx.NamedArgs{
		"task_id":  uuid.NewString(),
		"title":    input.Title,
		"due_date": input.DueDate,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	return task, nil
}

// Update writes only the fields present in input. due_date is replaced,
// possibly with NULL, when SetDueDate is true.
func (s *Store) Update(ctx context.Context, taskID string, input tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	query := `UPDATE tasks SET
			title = COALESCE(@title, title),
			due_date = CASE WHEN @set_due_date::boolean THEN @due_date::timestamptz ELSE due_date END,
			completed = COALESCE(@completed, completed),
			updated_at = NOW()
		WHERE task_id = @task_id
		RETURNING ` + columns

	args := pgx.NamedArgs{
		"task_id":      taskID,
		"title":        input.Title,
		"set_due_date": input.SetDueDate,
		"due_date":     input.DueDate,
		"completed":    input.Completed,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	return collectOne(rows, "update", taskID)
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	query := `DELETE FROM tasks WHERE task_id = @task_id`

	tag, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"task_id": taskID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %q: %w", taskID, tasksrepo.ErrNotFound)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return postgresdb.StatusCheck(ctx, s.pool)
}

func collectOne(rows pgx.Rows, op string, taskID string) (tasksrepo.Task, error) {
	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, fmt.Errorf("%s %q: %w", op, taskID, tasksrepo.ErrNotFound)
		}
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	return task, nil
}
