// Package storetest is a behavioural suite every tasksrepo.Storer must pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
)

// Run exercises a store produced by newStore. Each subtest gets a fresh,
// empty store.
func Run(t *testing.T, newStore func(t *testing.T) tasksrepo.Storer) {
	t.Helper()

	t.Run("create assigns id and defaults", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		task, err := s.Create(ctx, tasksrepo.CreateTask{Title: "Buy milk", DueDate: &due})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if task.TaskID == "" {
			t.Fatal("expected an assigned id")
		}
		if task.Completed {
			t.Error("new task should not be completed")
		}
		if task.Title != "Buy milk" || task.DueDate == nil || !task.DueDate.Equal(due) {
			t.Errorf("unexpected task: %+v", task)
		}

		got, err := s.Get(ctx, task.TaskID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.TaskID != task.TaskID || got.Title != "Buy milk" {
			t.Errorf("get returned %+v", got)
		}
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		titles := []string{"first", "second", "third"}
		for _, title := range titles {
			if _, err := s.Create(ctx, tasksrepo.CreateTask{Title: title}); err != nil {
				t.Fatalf("create %s: %v", title, err)
			}
		}

		tasks, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(tasks) != len(titles) {
			t.Fatalf("len = %d, want %d", len(tasks), len(titles))
		}
		for i, title := range titles {
			if tasks[i].Title != title {
				t.Errorf("tasks[%d].Title = %q, want %q", i, tasks[i].Title, title)
			}
			if tasks[i].DueDate != nil {
				t.Errorf("tasks[%d] should have no deadline", i)
			}
		}
	})

	t.Run("empty title is stored", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		task, err := s.Create(ctx, tasksrepo.CreateTask{})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := s.Get(ctx, task.TaskID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Title != "" {
			t.Errorf("title = %q, want empty", got.Title)
		}
	})

	t.Run("update applies only present fields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		due := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		task, err := s.Create(ctx, tasksrepo.CreateTask{Title: "draft", DueDate: &due})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		completed := true
		got, err := s.Update(ctx, task.TaskID, tasksrepo.UpdateTask{Completed: &completed})
		if err != nil {
			t.Fatalf("update status: %v", err)
		}
		if !got.Completed || got.Title != "draft" || got.DueDate == nil || !got.DueDate.Equal(due) {
			t.Errorf("status update touched other fields: %+v", got)
		}

		title := "final"
		got, err = s.Update(ctx, task.TaskID, tasksrepo.UpdateTask{Title: &title, SetDueDate: true})
		if err != nil {
			t.Fatalf("update fields: %v", err)
		}
		if got.Title != "final" || got.DueDate != nil || !got.Completed {
			t.Errorf("fields update wrong: %+v", got)
		}

		reread, err := s.Get(ctx, task.TaskID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if reread.Title != "final" || reread.DueDate != nil || !reread.Completed {
			t.Errorf("update not persisted: %+v", reread)
		}
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		const missing = "000000000000000000000000"

		if _, err := s.Get(ctx, missing); !errors.Is(err, tasksrepo.ErrNotFound) {
			t.Errorf("get: err = %v, want ErrNotFound", err)
		}
		completed := true
		if _, err := s.Update(ctx, missing, tasksrepo.UpdateTask{Completed: &completed}); !errors.Is(err, tasksrepo.ErrNotFound) {
			t.Errorf("update: err = %v, want ErrNotFound", err)
		}
		if err := s.Delete(ctx, missing); !errors.Is(err, tasksrepo.ErrNotFound) {
			t.Errorf("delete: err = %v, want ErrNotFound", err)
		}
		if _, err := s.Get(ctx, "not-an-id"); !errors.Is(err, tasksrepo.ErrNotFound) {
			t.Errorf("get malformed: err = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete twice", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		keep, _ := s.Create(ctx, tasksrepo.CreateTask{Title: "keep"})
		task, err := s.Create(ctx, tasksrepo.CreateTask{Title: "drop"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		last, _ := s.Create(ctx, tasksrepo.CreateTask{Title: "last"})

		if err := s.Delete(ctx, task.TaskID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := s.Delete(ctx, task.TaskID); !errors.Is(err, tasksrepo.ErrNotFound) {
			t.Errorf("second delete: err = %v, want ErrNotFound", err)
		}

		tasks, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(tasks) != 2 || tasks[0].TaskID != keep.TaskID || tasks[1].TaskID != last.TaskID {
			t.Errorf("unexpected remaining tasks: %+v", tasks)
		}

		if _, err := s.Get(ctx, last.TaskID); err != nil {
			t.Errorf("remaining task lookup: %v", err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := newStore(t).Ping(context.Background()); err != nil {
			t.Errorf("ping: %v", err)
		}
	})
}
