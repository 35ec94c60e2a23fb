// Package tasksmemstore keeps tasks in process memory. It backs local runs
// and the test suites.
package tasksmemstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Store holds tasks in insertion order.
type Store struct {
	log   *logger.Logger
	mu    sync.RWMutex
	tasks []tasksrepo.Task
	index map[string]int
}

// NewStore creates an empty in-memory store.
func NewStore(log *logger.Logger) *Store {
	return &Store{
		log:   log,
		index: make(map[string]int),
	}
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tasksrepo.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = clone(t)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, taskID string) (tasksrepo.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[taskID]
	if !ok {
		return tasksrepo.Task{}, fmt.Errorf("get %q: %w", taskID, tasksrepo.ErrNotFound)
	}
	return clone(s.tasks[i]), nil
}

func (s *Store) Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	task := clone(tasksrepo.Task{
		TaskID:  uuid.NewString(),
		Title:   input.Title,
		DueDate: input.DueDate,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	s.index[task.TaskID] = len(s.tasks)
	s.tasks = append(s.tasks, task)

	return clone(task), nil
}

func (s *Store) Update(ctx context.Context, taskID string, input tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[taskID]
	if !ok {
		return tasksrepo.Task{}, fmt.Errorf("update %q: %w", taskID, tasksrepo.ErrNotFound)
	}

	s.tasks[i] = input.Apply(s.tasks[i])
	return clone(s.tasks[i]), nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[taskID]
	if !ok {
		return fmt.Errorf("delete %q: %w", taskID, tasksrepo.ErrNotFound)
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	delete(s.index, taskID)
	for j := i; j < len(s.tasks); j++ {
		s.index[s.tasks[j].TaskID] = j
	}
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func clone(t tasksrepo.Task) tasksrepo.Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
