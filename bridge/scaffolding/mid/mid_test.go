package mid_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

type plainErr struct{ error }

func (plainErr) Encode() ([]byte, string, error) { return nil, "", nil }

func serve(t *testing.T, log *logger.Logger, handler web.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	wh := web.NewWebHandler(web.HandlerOptions{},
		web.WithTelemetry(telemetry.NewTelemetry()),
		web.WithGlobalMiddleware(mid.Logger(log), mid.Errors(log), mid.Metrics(), mid.Panics()),
	)
	wh.GET("/", handler)

	w := httptest.NewRecorder()
	wh.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestErrorsPassesAppErrors(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf))

	w := serve(t, log, func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Newf(errs.NotFound, "task 7 not found")
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if got := w.Body.String(); got != `{"code":"not_found","message":"task 7 not found"}` {
		t.Errorf("body = %s", got)
	}
	if !strings.Contains(buf.String(), "handled error during request") {
		t.Error("expected the error to be logged")
	}
}

func TestErrorsHidesUnknownErrors(t *testing.T) {
	log := logger.NewDefault(logger.WithOutput(&bytes.Buffer{}))

	w := serve(t, log, func(ctx context.Context, r *http.Request) web.Encoder {
		return plainErr{errors.New("db password is hunter2")}
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "hunter2") {
		t.Errorf("internal detail leaked: %s", w.Body.String())
	}
}

func TestPanicsRecovers(t *testing.T) {
	log := logger.NewDefault(logger.WithOutput(&bytes.Buffer{}))

	w := serve(t, log, func(ctx context.Context, r *http.Request) web.Encoder {
		panic("boom")
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Errorf("panic detail leaked: %s", w.Body.String())
	}
}

func TestLoggerSetsTraceHeader(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf))

	w := serve(t, log, func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse("ok")
	})

	trace := w.Header().Get(telemetry.TraceHeader)
	if trace == "" || trace == telemetry.NoTrace {
		t.Fatalf("trace header = %q", trace)
	}
	if !strings.Contains(buf.String(), `"request completed"`) || !strings.Contains(buf.String(), trace) {
		t.Errorf("log output missing completion record: %s", buf.String())
	}
}
