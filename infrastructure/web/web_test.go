package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/tasktracker/infrastructure/web"
)

type item struct {
	Name string `json:"name"`
}

func TestHandleRespondsJSON(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{})
	wh.GET("/items/{name}", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponseWithStatus(item{Name: web.Param(r, "name")}, http.StatusCreated)
	})

	w := httptest.NewRecorder()
	wh.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/pen", nil))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if got := w.Body.String(); got != `{"name":"pen"}` {
		t.Errorf("body = %s", got)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}
}

func TestMiddlewareOrder(t *testing.T) {
	var calls []string
	trace := func(name string) web.Middleware {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				calls = append(calls, name)
				return next(ctx, r)
			}
		}
	}

	wh := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(trace("global")))
	g := wh.Group("/api", trace("group"))
	g.Group("/v1", trace("nested")).GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		calls = append(calls, "handler")
		return web.NewJSONResponse("pong")
	}, trace("route"))

	w := httptest.NewRecorder()
	wh.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	want := []string{"global", "group", "nested", "route", "handler"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}

func TestGroupsDoNotShareMiddleware(t *testing.T) {
	var calls []string
	trace := func(name string) web.Middleware {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				calls = append(calls, name)
				return next(ctx, r)
			}
		}
	}
	ok := func(ctx context.Context, r *http.Request) web.Encoder { return nil }

	wh := web.NewWebHandler(web.HandlerOptions{})
	base := wh.Group("", trace("base"))
	base.Group("/a", trace("a")).GET("/x", ok)
	base.Group("/b", trace("b")).GET("/x", ok)

	w := httptest.NewRecorder()
	wh.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/b/x", nil))

	if strings.Join(calls, ",") != "base,b" {
		t.Fatalf("calls = %v", calls)
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("nil response status = %d, want 204", w.Code)
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		resp web.Encoder
		want int
	}{
		{"nil", nil, http.StatusNoContent},
		{"json", web.NewJSONResponse(1), http.StatusOK},
		{"json with status", web.NewJSONResponseWithStatus(1, http.StatusAccepted), http.StatusAccepted},
		{"framework error", web.NewError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := web.StatusCode(tt.resp); got != tt.want {
			t.Errorf("%s: StatusCode() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

type strict struct {
	Name string `json:"name"`
}

func (s strict) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func TestDecode(t *testing.T) {
	var v strict
	if err := web.DecodeBytes([]byte(`{"name":"a"}`), &v); err != nil || v.Name != "a" {
		t.Fatalf("DecodeBytes() = %v, %+v", err, v)
	}

	if err := web.DecodeBytes([]byte(`{}`), &strict{}); err == nil {
		t.Error("expected validation error")
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := web.Decode(r, &v); !errors.Is(err, web.ErrEmptyBody) {
		t.Errorf("Decode(empty) error = %v, want ErrEmptyBody", err)
	}
}

type traceStub struct{}

func (traceStub) SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceStub{}, "abc")
}
func (traceStub) GetTraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceStub{}).(string)
	return v
}

func TestTelemetryAndWriterInContext(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{DefaultHeaders: map[string]string{"X-App": "tasks"}},
		web.WithTelemetry(traceStub{}))

	wh.GET("/t", func(ctx context.Context, r *http.Request) web.Encoder {
		web.GetWriter(ctx).Header().Set("X-Seen", traceStub{}.GetTraceID(ctx))
		return web.NewJSONResponse("ok")
	})

	w := httptest.NewRecorder()
	wh.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))

	if w.Header().Get("X-Seen") != "abc" {
		t.Errorf("X-Seen = %q", w.Header().Get("X-Seen"))
	}
	if w.Header().Get("X-App") != "tasks" {
		t.Errorf("X-App = %q", w.Header().Get("X-App"))
	}
}
