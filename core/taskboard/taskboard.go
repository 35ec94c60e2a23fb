// Package taskboard is the client side state container for a task list: the
// last fetched tasks, the composer draft, the task under edit and the last
// failure. Every operation is one method; each performs at most one remote
// call before touching local state.
package taskboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/tasksclient"
)

// Messages shown to the user when an operation fails.
const (
	ErrFetch  = "Failed to fetch tasks"
	ErrCreate = "Failed to add task"
	ErrEdit   = "Failed to edit task"
	ErrToggle = "Failed to change task status"
	ErrDelete = "Failed to delete task"
)

// API is the remote surface the board needs. *tasksclient.Client satisfies it.
type API interface {
	List(ctx context.Context) ([]tasksclient.Task, error)
	Create(ctx context.Context, title string, dueDate *time.Time) (tasksclient.Task, error)
	UpdateFields(ctx context.Context, id string, title string, dueDate *time.Time) (tasksclient.Task, error)
	UpdateStatus(ctx context.Context, id string, completed bool) (tasksclient.Task, error)
	Delete(ctx context.Context, id string) error
}

// SyncPolicy decides how create and save reconcile local state.
type SyncPolicy int

const (
	// Refetch re-lists every task after a successful create or save.
	Refetch SyncPolicy = iota
	// Merge prepends the created task and patches the edited one in place.
	Merge
)

func (p SyncPolicy) String() string {
	if p == Merge {
		return "merge"
	}
	return "refetch"
}

// ParseSyncPolicy accepts "refetch" or "merge".
func ParseSyncPolicy(s string) (SyncPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "refetch":
		return Refetch, nil
	case "merge":
		return Merge, nil
	}
	return Refetch, fmt.Errorf("unknown sync mode %q, want refetch or merge", s)
}

// Mode is the composer state.
type Mode int

const (
	Idle Mode = iota
	Composing
	Editing
)

func (m Mode) String() string {
	switch m {
	case Composing:
		return "composing"
	case Editing:
		return "editing"
	}
	return "idle"
}

// Draft is the title and due date being composed or edited.
type Draft struct {
	Title   string
	DueDate *time.Time
}

func (d Draft) empty() bool {
	return d.Title == "" && d.DueDate == nil
}

// State is a copy of the board, safe to render.
type State struct {
	Tasks     []tasksclient.Task
	Draft     Draft
	EditingID string
	Err       string
	Mode      Mode
}

// Board holds client state. Methods are safe for concurrent use; overlapping
// mutations are not coordinated beyond that.
type Board struct {
	api    API
	policy SyncPolicy
	log    *logger.Logger

	mu        sync.Mutex
	tasks     []tasksclient.Task
	draft     Draft
	editingID string
	err       string
}

// New creates an empty board.
func New(api API, policy SyncPolicy, log *logger.Logger) *Board {
	return &Board{
		api:    api,
		policy: policy,
		log:    log,
		tasks:  []tasksclient.Task{},
	}
}

// State returns a snapshot of the board.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	tasks := make([]tasksclient.Task, len(b.tasks))
	copy(tasks, b.tasks)

	return State{
		Tasks:     tasks,
		Draft:     b.draft,
		EditingID: b.editingID,
		Err:       b.err,
		Mode:      b.modeLocked(),
	}
}

func (b *Board) modeLocked() Mode {
	switch {
	case b.editingID != "":
		return Editing
	case !b.draft.empty():
		return Composing
	}
	return Idle
}

// Fetch replaces the local list with the server's.
func (b *Board) Fetch(ctx context.Context) error {
	tasks, err := b.api.List(ctx)
	if err != nil {
		return b.fail(ctx, ErrFetch, err)
	}

	b.mu.Lock()
	b.tasks = tasks
	b.mu.Unlock()
	return nil
}

// SetDraft replaces the composer contents.
func (b *Board) SetDraft(d Draft) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft = d
}

// StartEdit copies the task into the draft and marks it as under edit. Only
// one task is edited at a time; starting another edit replaces the first.
func (b *Board) StartEdit(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range b.tasks {
		if t.ID == id {
			b.editingID = id
			b.draft = Draft{Title: t.Title, DueDate: t.DueDate}
			return true
		}
	}
	return false
}

// CancelEdit discards the draft and leaves edit mode.
func (b *Board) CancelEdit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.editingID = ""
	b.draft = Draft{}
}

// Submit creates a task from the draft, or saves the task under edit.
func (b *Board) Submit(ctx context.Context) error {
	b.mu.Lock()
	draft, editingID := b.draft, b.editingID
	b.mu.Unlock()

	if editingID != "" {
		return b.save(ctx, editingID, draft)
	}
	return b.create(ctx, draft)
}

func (b *Board) create(ctx context.Context, draft Draft) error {
	task, err := b.api.Create(ctx, draft.Title, draft.DueDate)
	if err != nil {
		return b.fail(ctx, ErrCreate, err)
	}

	if b.policy == Refetch {
		b.mu.Lock()
		b.draft = Draft{}
		b.mu.Unlock()
		return b.Fetch(ctx)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = append([]tasksclient.Task{task}, b.tasks...)
	b.draft = Draft{}
	return nil
}

func (b *Board) save(ctx context.Context, id string, draft Draft) error {
	task, err := b.api.UpdateFields(ctx, id, draft.Title, draft.DueDate)
	if err != nil {
		return b.fail(ctx, ErrEdit, err)
	}

	if b.policy == Refetch {
		b.mu.Lock()
		b.editingID = ""
		b.draft = Draft{}
		b.mu.Unlock()
		return b.Fetch(ctx)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.replaceLocked(task)
	b.editingID = ""
	b.draft = Draft{}
	return nil
}

// Toggle flips the completion flag of the task with id.
func (b *Board) Toggle(ctx context.Context, id string) error {
	b.mu.Lock()
	completed, ok := false, false
	for _, t := range b.tasks {
		if t.ID == id {
			completed, ok = !t.Completed, true
			break
		}
	}
	b.mu.Unlock()

	if !ok {
		return fmt.Errorf("task %s is not on the board", id)
	}

	if _, err := b.api.UpdateStatus(ctx, id, completed); err != nil {
		return b.fail(ctx, ErrToggle, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			b.tasks[i].Completed = completed
		}
	}
	return nil
}

// Delete removes the task remotely, then locally.
func (b *Board) Delete(ctx context.Context, id string) error {
	if err := b.api.Delete(ctx, id); err != nil {
		return b.fail(ctx, ErrDelete, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.tasks[:0]
	for _, t := range b.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	b.tasks = kept
	return nil
}

// ClearError dismisses the visible error. Operations never clear it on their
// own; a later failure overwrites it.
func (b *Board) ClearError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = ""
}

func (b *Board) replaceLocked(task tasksclient.Task) {
	for i := range b.tasks {
		if b.tasks[i].ID == task.ID {
			b.tasks[i] = task
			return
		}
	}
}

// fail records msg as the visible error and logs the cause. Prior state is
// left intact.
func (b *Board) fail(ctx context.Context, msg string, err error) error {
	b.log.ErrorContext(ctx, msg, "error", err)

	b.mu.Lock()
	b.err = msg
	b.mu.Unlock()

	return fmt.Errorf("%s: %w", strings.ToLower(msg), err)
}
