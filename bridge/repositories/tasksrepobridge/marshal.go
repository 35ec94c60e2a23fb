package tasksrepobridge

import (
	"time"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/validation"
)

func MarshalToBridge(task tasksrepo.Task) Task {
	return Task{
		ID:        task.TaskID,
		Title:     task.Title,
		DueDate:   validation.FormatISOPtr(task.DueDate),
		Completed: task.Completed,
	}
}

// MarshalListToBridge converts a list of core models to bridge models
func MarshalListToBridge(tasks []tasksrepo.Task) []Task {
	bridgeTasks := make([]Task, len(tasks))
	for i, task := range tasks {
		bridgeTasks[i] = MarshalToBridge(task)
	}
	return bridgeTasks
}

func MarshalCreateToRepository(input CreateTaskInput) (tasksrepo.CreateTask, error) {
	title, err := castString("title", input.Title)
	if err != nil {
		return tasksrepo.CreateTask{}, err
	}

	due, err := castDate("dueDate", input.DueDate)
	if err != nil {
		return tasksrepo.CreateTask{}, err
	}

	return tasksrepo.CreateTask{
		Title:   validation.GetStringOrEmpty(title),
		DueDate: due,
	}, nil
}

// MarshalUpdateFieldsToRepository returns the title and due date to write.
// A missing title becomes "".
func MarshalUpdateFieldsToRepository(input UpdateFieldsInput) (string, *time.Time, error) {
	title, err := castString("title", input.Title)
	if err != nil {
		return "", nil, err
	}

	due, err := castDate("dueDate", input.DueDate)
	if err != nil {
		return "", nil, err
	}

	return validation.GetStringOrEmpty(title), due, nil
}

func MarshalPatchToRepository(input PatchTaskInput) (tasksrepo.UpdateTask, error) {
	var update tasksrepo.UpdateTask

	if input.Title != nil {
		title, err := castString("title", input.Title)
		if err != nil {
			return tasksrepo.UpdateTask{}, err
		}
		t := validation.GetStringOrEmpty(title)
		update.Title = &t
	}

	if input.DueDate != nil {
		due, err := castDate("dueDate", input.DueDate)
		if err != nil {
			return tasksrepo.UpdateTask{}, err
		}
		update.SetDueDate = true
		update.DueDate = due
	}

	if input.Completed != nil {
		completed, err := castBool("completed", input.Completed)
		if err != nil {
			return tasksrepo.UpdateTask{}, err
		}
		update.Completed = &completed
	}

	return update, nil
}
