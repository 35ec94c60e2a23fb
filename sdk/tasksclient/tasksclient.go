// Package tasksclient is a typed client for the task tracker REST API.
package tasksclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jrazmi/tasktracker/sdk/validation"
)

// ErrNotFound matches (errors.Is) any APIError with status 404.
var ErrNotFound = errors.New("task not found")

// Task is a task as served by the API.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	DueDate   *time.Time `json:"dueDate"`
	Completed bool       `json:"completed"`
}

// APIError is returned for any non 2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client talks to the task tracker API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

type settings struct {
	http    *http.Client
	timeout *time.Duration
}

type Option func(*settings)

// WithHTTPClient sets the http.Client requests are sent with. The client is
// copied, so WithTimeout never changes the caller's value. Nil is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) {
		if hc != nil {
			s.http = hc
		}
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.timeout = &d
	}
}

// New constructs a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	set := settings{http: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		opt(&set)
	}

	hc := *set.http
	if set.timeout != nil {
		hc.Timeout = *set.timeout
	}

	return &Client{baseURL: u, http: &hc}, nil
}

// List calls GET /tasks.
func (c *Client) List(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// Get calls GET /tasks/{id}.
func (c *Client) Get(ctx context.Context, id string) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, &task)
	return task, err
}

type fieldsBody struct {
	Title   string  `json:"title"`
	DueDate *string `json:"dueDate"`
}

// Create calls POST /task.
func (c *Client) Create(ctx context.Context, title string, dueDate *time.Time) (Task, error) {
	body := fieldsBody{Title: title, DueDate: validation.FormatISOPtr(dueDate)}

	var task Task
	err := c.do(ctx, http.MethodPost, "/task", body, &task)
	return task, err
}

// UpdateFields calls PUT /task_update/{id}, overwriting title and due date.
func (c *Client) UpdateFields(ctx context.Context, id string, title string, dueDate *time.Time) (Task, error) {
	body := fieldsBody{Title: title, DueDate: validation.FormatISOPtr(dueDate)}

	var task Task
	err := c.do(ctx, http.MethodPut, "/task_update/"+url.PathEscape(id), body, &task)
	return task, err
}

// UpdateStatus calls PUT /task/{id}.
func (c *Client) UpdateStatus(ctx context.Context, id string, completed bool) (Task, error) {
	body := struct {
		Completed bool `json:"completed"`
	}{completed}

	var task Task
	err := c.do(ctx, http.MethodPut, "/task/"+url.PathEscape(id), body, &task)
	return task, err
}

// Delete calls DELETE /tasks/{id}.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in any, out any) error {
	endpoint := c.baseURL.JoinPath(path).String()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
