package tasksrepo

import "time"

// Task is a title, an optional deadline and a completion flag.
// TaskID is assigned by the store at creation and never changes.
type Task struct {
	TaskID    string     `db:"task_id"`
	Title     string     `db:"title"`
	DueDate   *time.Time `db:"due_date"`
	Completed bool       `db:"completed"`
}

// CreateTask contains fields for creating a new task. New tasks always start
// with Completed=false.
type CreateTask struct {
	Title   string
	DueDate *time.Time
}

// UpdateTask is a partial update. Nil fields are left untouched. DueDate is
// only applied when SetDueDate is true, in which case a nil DueDate clears
// the deadline.
type UpdateTask struct {
	Title      *string
	DueDate    *time.Time
	SetDueDate bool
	Completed  *bool
}

// IsEmpty reports whether the update changes nothing.
func (u UpdateTask) IsEmpty() bool {
	return u.Title == nil && !u.SetDueDate && u.Completed == nil
}

// Apply returns t with the update applied. Stores without native partial
// updates use it to keep the semantics identical across backends.
func (u UpdateTask) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.SetDueDate {
		if u.DueDate == nil {
			t.DueDate = nil
		} else {
			d := *u.DueDate
			t.DueDate = &d
		}
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	return t
}
