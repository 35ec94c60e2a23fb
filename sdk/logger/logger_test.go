package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jrazmi/tasktracker/sdk/logger"
)

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf), logger.WithLevel("DEBUG"))

	log.InfoContext(context.Background(), "task created", "task_id", "abc")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode record %q: %v", buf.String(), err)
	}
	if rec["msg"] != "task created" || rec["task_id"] != "abc" {
		t.Errorf("unexpected record: %v", rec)
	}
	if _, ok := rec["time"].(string); !ok {
		t.Errorf("time should be formatted as a string: %v", rec["time"])
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf), logger.WithLevel("WARN"))

	log.InfoContext(context.Background(), "hidden")
	log.ErrorContextf(context.Background(), "shown %d", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown 1") {
		t.Errorf("error record missing: %s", out)
	}
}

func TestLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf), logger.WithFormat("text"))

	log.Info("startup", "status", "ok")

	if !strings.Contains(buf.String(), "status=ok") {
		t.Errorf("expected text handler output, got %q", buf.String())
	}
}
