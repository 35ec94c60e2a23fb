package tasksrepo_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

func newRepo(t *testing.T) *tasksrepo.Repository {
	t.Helper()
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	return tasksrepo.NewRepository(log, tasksmemstore.NewStore(log))
}

func date(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func TestListEmpty(t *testing.T) {
	repo := newRepo(t)

	tasks, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("List() = %#v, want empty non-nil slice", tasks)
	}
}

func TestCreateThenList(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, tasksrepo.CreateTask{Title: "Buy milk", DueDate: date(2024, 1, 1)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Completed {
		t.Error("new task should not be completed")
	}

	tasks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 1 || tasks[0].TaskID != created.TaskID {
		t.Fatalf("List() = %+v, want the created task", tasks)
	}
}

func TestUpdateFieldsKeepsCompletion(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	task, _ := repo.Create(ctx, tasksrepo.CreateTask{Title: "Buy milk", DueDate: date(2024, 1, 1)})
	if _, err := repo.UpdateStatus(ctx, task.TaskID, true); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, err := repo.UpdateFields(ctx, task.TaskID, "Buy oat milk", nil)
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if got.Title != "Buy oat milk" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.DueDate != nil {
		t.Errorf("DueDate = %v, want cleared", got.DueDate)
	}
	if !got.Completed {
		t.Error("UpdateFields must not touch completion")
	}
}

func TestUpdateStatusKeepsFields(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	due := date(2024, 3, 5)
	task, _ := repo.Create(ctx, tasksrepo.CreateTask{Title: "Call mom", DueDate: due})

	got, err := repo.UpdateStatus(ctx, task.TaskID, true)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !got.Completed || got.Title != "Call mom" || got.DueDate == nil || !got.DueDate.Equal(*due) {
		t.Errorf("UpdateStatus() = %+v", got)
	}

	got, err = repo.UpdateStatus(ctx, task.TaskID, false)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Completed {
		t.Error("expected task to be reopened")
	}
}

func TestPatch(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	task, _ := repo.Create(ctx, tasksrepo.CreateTask{Title: "Write report", DueDate: date(2024, 2, 1)})

	got, err := repo.Patch(ctx, task.TaskID, tasksrepo.UpdateTask{})
	if err != nil {
		t.Fatalf("empty Patch: %v", err)
	}
	if got.TaskID != task.TaskID || got.Title != task.Title {
		t.Errorf("empty Patch() = %+v, want %+v", got, task)
	}

	title := "Write final report"
	got, err = repo.Patch(ctx, task.TaskID, tasksrepo.UpdateTask{Title: &title})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if got.Title != title || got.DueDate == nil {
		t.Errorf("Patch() = %+v, want new title and kept due date", got)
	}

	got, err = repo.Patch(ctx, task.TaskID, tasksrepo.UpdateTask{SetDueDate: true})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if got.DueDate != nil {
		t.Errorf("DueDate = %v, want cleared", got.DueDate)
	}
}

func TestDeleteTwice(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	task, _ := repo.Create(ctx, tasksrepo.CreateTask{Title: "x"})

	if err := repo.Delete(ctx, task.TaskID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	err := repo.Delete(ctx, task.TaskID)
	if !tasksrepo.IsNotFound(err) {
		t.Fatalf("second Delete error = %v, want not found", err)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Error("not found should wrap repositories.ErrNotFound")
	}

	if _, err := repo.Get(ctx, task.TaskID); !tasksrepo.IsNotFound(err) {
		t.Errorf("Get after delete error = %v, want not found", err)
	}
}

func TestUnknownID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if _, err := repo.UpdateFields(ctx, "missing", "t", nil); !tasksrepo.IsNotFound(err) {
		t.Errorf("UpdateFields error = %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, "missing", true); !tasksrepo.IsNotFound(err) {
		t.Errorf("UpdateStatus error = %v", err)
	}
	if _, err := repo.Patch(ctx, "missing", tasksrepo.UpdateTask{}); !tasksrepo.IsNotFound(err) {
		t.Errorf("empty Patch error = %v", err)
	}
}

type failingStore struct {
	tasksrepo.Storer
	err error
}

func (f failingStore) List(context.Context) ([]tasksrepo.Task, error) { return nil, f.err }
func (f failingStore) Ping(context.Context) error                     { return f.err }

func TestStoreFailuresAreWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	repo := tasksrepo.NewRepository(logger.NewDefault(logger.WithOutput(io.Discard)), failingStore{err: boom})
	ctx := context.Background()

	if _, err := repo.List(ctx); !errors.Is(err, boom) {
		t.Errorf("List error = %v, want wrapped %v", err, boom)
	}
	if err := repo.StatusCheck(ctx); !errors.Is(err, boom) {
		t.Errorf("StatusCheck error = %v, want wrapped %v", err, boom)
	}
}

func TestUpdateTaskApply(t *testing.T) {
	base := tasksrepo.Task{TaskID: "1", Title: "a", DueDate: date(2024, 1, 1)}

	if got := (tasksrepo.UpdateTask{}).Apply(base); got.Title != "a" || got.DueDate == nil {
		t.Errorf("empty Apply changed the task: %+v", got)
	}

	due := date(2025, 6, 1)
	got := tasksrepo.UpdateTask{DueDate: due, SetDueDate: true}.Apply(base)
	if got.DueDate == nil || !got.DueDate.Equal(*due) {
		t.Errorf("DueDate = %v, want %v", got.DueDate, due)
	}
	*due = due.AddDate(1, 0, 0)
	if got.DueDate.Equal(*due) {
		t.Error("Apply must copy the due date")
	}
}
