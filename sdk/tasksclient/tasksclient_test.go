package tasksclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/tasksclient"
)

func newClient(t *testing.T) *tasksclient.Client {
	t.Helper()

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	wh := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.Errors(log)))
	tasksrepobridge.AddHttpRoutes(wh.Group(""), tasksrepobridge.Config{
		Log:        log,
		Repository: tasksrepo.NewRepository(log, tasksmemstore.NewStore(log)),
	})

	srv := httptest.NewServer(wh)
	t.Cleanup(srv.Close)

	c, err := tasksclient.New(srv.URL, tasksclient.WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestRoundTrip(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	created, err := c.Create(ctx, "Buy milk", &due)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.Completed || created.DueDate == nil || !created.DueDate.Equal(due) {
		t.Fatalf("created = %+v", created)
	}

	toggled, err := c.UpdateStatus(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !toggled.Completed || toggled.Title != "Buy milk" {
		t.Fatalf("toggled = %+v", toggled)
	}

	edited, err := c.UpdateFields(ctx, created.ID, "Buy oat milk", nil)
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if edited.Title != "Buy oat milk" || edited.DueDate != nil || !edited.Completed {
		t.Fatalf("edited = %+v", edited)
	}

	tasks, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != created.ID {
		t.Fatalf("tasks = %+v", tasks)
	}

	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, created.ID); !errors.Is(err, tasksclient.ErrNotFound) {
		t.Fatalf("Get after delete error = %v, want ErrNotFound", err)
	}
}

func TestAPIError(t *testing.T) {
	c := newClient(t)

	err := c.Delete(context.Background(), "missing")

	var apiErr *tasksclient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T %v, want *APIError", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "not_found" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if !errors.Is(err, tasksclient.ErrNotFound) {
		t.Error("404 should match ErrNotFound")
	}

	_, err = c.UpdateFields(context.Background(), "missing", "x", nil)
	if errors.Is(err, tasksclient.ErrNotFound) {
		t.Error("legacy field update answers 500, not 404")
	}
}

func TestHealth(t *testing.T) {
	if err := newClient(t).Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := tasksclient.New("localhost:5000"); err == nil {
		t.Fatal("expected an error for a relative url")
	}
}

func TestTimeoutLeavesCallerClientAlone(t *testing.T) {
	before := http.DefaultClient.Timeout

	if _, err := tasksclient.New("http://localhost:5000", tasksclient.WithHTTPClient(http.DefaultClient), tasksclient.WithTimeout(time.Second)); err != nil {
		t.Fatalf("New: %v", err)
	}
	if http.DefaultClient.Timeout != before {
		t.Fatalf("http.DefaultClient.Timeout = %v, want %v", http.DefaultClient.Timeout, before)
	}
}

func TestNilHTTPClientIsIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, "[]")
	}))
	t.Cleanup(srv.Close)

	c, err := tasksclient.New(srv.URL, tasksclient.WithHTTPClient(nil), tasksclient.WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tasks, err := c.List(context.Background())
	if err != nil || len(tasks) != 0 {
		t.Fatalf("List = %v, %v", tasks, err)
	}
}
