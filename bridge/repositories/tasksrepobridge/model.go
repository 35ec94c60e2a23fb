package tasksrepobridge

import (
	"encoding/json"
)

// Task is the wire form of a task. DueDate is null when there is no deadline.
type Task struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	DueDate   *string `json:"dueDate"`
	Completed bool    `json:"completed"`
}

// CreateTaskInput is the body of POST /task. A missing or null title is
// stored as "".
type CreateTaskInput struct {
	Title   json.RawMessage `json:"title"`
	DueDate json.RawMessage `json:"dueDate"`
}

func (c *CreateTaskInput) Decode(data []byte) error {
	if err := validatePayload(objectPayload, data); err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// UpdateFieldsInput is the body of PUT /task_update/{id}. Both fields are
// always written, so a missing dueDate clears the deadline.
type UpdateFieldsInput struct {
	Title   json.RawMessage `json:"title"`
	DueDate json.RawMessage `json:"dueDate"`
}

func (u *UpdateFieldsInput) Decode(data []byte) error {
	if err := validatePayload(objectPayload, data); err != nil {
		return err
	}
	return json.Unmarshal(data, u)
}

// UpdateStatusInput is the body of PUT /task/{id}. Completed must be present.
type UpdateStatusInput struct {
	Completed json.RawMessage `json:"completed"`
}

func (u *UpdateStatusInput) Decode(data []byte) error {
	if err := validatePayload(updateStatusPayload, data); err != nil {
		return err
	}
	return json.Unmarshal(data, u)
}

// PatchTaskInput is the body of PATCH /tasks/{id}. Only keys present in the
// body are applied; a nil field was absent. "dueDate": null clears the
// deadline.
type PatchTaskInput struct {
	Title     json.RawMessage
	DueDate   json.RawMessage
	Completed json.RawMessage
}

func (p *PatchTaskInput) Decode(data []byte) error {
	if err := validatePayload(objectPayload, data); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	p.Title = fields["title"]
	p.DueDate = fields["dueDate"]
	p.Completed = fields["completed"]
	return nil
}
