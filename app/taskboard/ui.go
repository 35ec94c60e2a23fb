package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jrazmi/tasktracker/core/taskboard"
	"github.com/jrazmi/tasktracker/sdk/validation"
)

type field int

const (
	fieldTitle field = iota
	fieldDue
)

type model struct {
	board   *taskboard.Board
	timeout time.Duration
	apiURL  string
	policy  taskboard.SyncPolicy

	state  taskboard.State
	cursor int

	// composer inputs, active while typing
	typing   bool
	focus    field
	title    string
	due      string
	inputErr string

	busy bool
}

// doneMsg reports that a board operation finished.
type doneMsg struct {
	submit bool
	err    error
}

func newModel(board *taskboard.Board, apiURL string, policy taskboard.SyncPolicy, timeout time.Duration) *model {
	return &model{
		board:   board,
		timeout: timeout,
		apiURL:  apiURL,
		policy:  policy,
		state:   board.State(),
	}
}

// run performs op off the UI goroutine and reports back with doneMsg.
func (m *model) run(op func(ctx context.Context) error) tea.Cmd {
	return m.runOp(false, op)
}

func (m *model) runOp(submit bool, op func(ctx context.Context) error) tea.Cmd {
	m.busy = true
	timeout := m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return doneMsg{submit: submit, err: op(ctx)}
	}
}

func (m *model) Init() tea.Cmd {
	return m.run(m.board.Fetch)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.busy = false
		m.sync()
		// The draft is cleared once the server accepted it, even when the
		// refresh that follows fails.
		if msg.submit && m.state.Mode == taskboard.Idle {
			m.typing = false
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.typing {
			return m, m.updateComposer(msg)
		}
		return m, m.updateList(msg)
	}
	return m, nil
}

func (m *model) sync() {
	m.state = m.board.State()
	if m.cursor >= len(m.state.Tasks) {
		m.cursor = max(0, len(m.state.Tasks)-1)
	}
}

func (m *model) selected() (string, bool) {
	if len(m.state.Tasks) == 0 {
		return "", false
	}
	return m.state.Tasks[m.cursor].ID, true
}

func (m *model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Tasks)-1 {
			m.cursor++
		}
	case "r":
		return m.run(m.board.Fetch)
	case "x":
		m.board.ClearError()
		m.sync()
	case "n", "a":
		m.openComposer("", nil)
	case "e":
		if id, ok := m.selected(); ok && m.board.StartEdit(id) {
			m.sync()
			m.openComposer(m.state.Draft.Title, m.state.Draft.DueDate)
		}
	case " ", "enter":
		if id, ok := m.selected(); ok {
			return m.run(func(ctx context.Context) error { return m.board.Toggle(ctx, id) })
		}
	case "d", "delete":
		if id, ok := m.selected(); ok {
			return m.run(func(ctx context.Context) error { return m.board.Delete(ctx, id) })
		}
	}
	return nil
}

func (m *model) openComposer(title string, due *time.Time) {
	m.typing = true
	m.focus = fieldTitle
	m.title = title
	m.due = ""
	if due != nil {
		m.due = due.UTC().Format(time.DateOnly)
	}
	m.inputErr = ""
}

func (m *model) updateComposer(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.board.CancelEdit()
		m.typing = false
		m.sync()
		return nil

	case tea.KeyTab, tea.KeyShiftTab:
		if m.focus == fieldTitle {
			m.focus = fieldDue
		} else {
			m.focus = fieldTitle
		}
		return nil

	case tea.KeyEnter:
		draft, err := m.draft()
		if err != nil {
			m.inputErr = err.Error()
			return nil
		}
		m.inputErr = ""
		m.board.SetDraft(draft)
		return m.runOp(true, m.board.Submit)

	case tea.KeyBackspace:
		m.edit(func(s string) string {
			r := []rune(s)
			if len(r) == 0 {
				return s
			}
			return string(r[:len(r)-1])
		})
		return nil

	case tea.KeySpace:
		m.edit(func(s string) string { return s + " " })
		return nil

	case tea.KeyRunes:
		m.edit(func(s string) string { return s + string(msg.Runes) })
		return nil
	}
	return nil
}

func (m *model) edit(fn func(string) string) {
	if m.focus == fieldTitle {
		m.title = fn(m.title)
	} else {
		m.due = fn(m.due)
	}
	draft, err := m.draft()
	if err == nil {
		m.board.SetDraft(draft)
	}
}

func (m *model) draft() (taskboard.Draft, error) {
	d := taskboard.Draft{Title: m.title}
	if s := strings.TrimSpace(m.due); s != "" {
		t, err := validation.ParseFlexibleDate(s)
		if err != nil {
			return d, fmt.Errorf("due date %q: use YYYY-MM-DD", s)
		}
		d.DueDate = &t
	}
	return d, nil
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString("Tasks")
	b.WriteString(fmt.Sprintf("  (%s, %s)", m.apiURL, m.policy))
	if m.busy {
		b.WriteString("  ...")
	}
	b.WriteString("\n\n")

	if len(m.state.Tasks) == 0 {
		b.WriteString("  no tasks yet\n")
	}
	for i, t := range m.state.Tasks {
		cursor := " "
		if i == m.cursor && !m.typing {
			cursor = ">"
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", cursor, check, t.Title)
		if t.DueDate != nil {
			line += "  due " + t.DueDate.UTC().Format(time.DateOnly)
		}
		if t.ID == m.state.EditingID {
			line += "  (editing)"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	if m.typing {
		label := "New task"
		if m.state.Mode == taskboard.Editing {
			label = "Edit task"
		}
		b.WriteString(label + "\n")
		b.WriteString(inputLine("Title", m.title, m.focus == fieldTitle))
		b.WriteString(inputLine("Due  ", m.due, m.focus == fieldDue))
		if m.inputErr != "" {
			b.WriteString("  " + m.inputErr + "\n")
		}
		b.WriteString("\nenter save  tab switch field  esc cancel\n")
	} else {
		b.WriteString("n new  e edit  space toggle  d delete  r refresh  x dismiss  q quit\n")
	}

	if m.state.Err != "" {
		b.WriteString("\n" + m.state.Err + "\n")
	}

	return b.String()
}

func inputLine(label, value string, focused bool) string {
	marker := " "
	cursor := ""
	if focused {
		marker = ">"
		cursor = "_"
	}
	return fmt.Sprintf("%s %s: %s%s\n", marker, label, value, cursor)
}
