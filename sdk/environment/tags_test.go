package environment_test

import (
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/sdk/environment"
)

type sample struct {
	Port    string        `env:"PORT" default:":5000"`
	Store   string        `env:"STORE" default:"memory"`
	Conns   int           `env:"CONNS" default:"5"`
	Debug   bool          `env:"DEBUG" default:"false"`
	Timeout time.Duration `env:"TIMEOUT" default:"3s"`
	Origins []string      `env:"ORIGINS" default:"*" separator:","`
	skipped string
}

func TestParseEnvTagsDefaults(t *testing.T) {
	var cfg sample
	if err := environment.ParseEnvTags("ENVTEST_DEFAULTS", &cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Port != ":5000" || cfg.Store != "memory" || cfg.Conns != 5 || cfg.Debug {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", cfg.Timeout)
	}
	if len(cfg.Origins) != 1 || cfg.Origins[0] != "*" {
		t.Errorf("origins = %v", cfg.Origins)
	}
}

func TestParseEnvTagsPrefixed(t *testing.T) {
	t.Setenv("ENVTEST_PORT", ":9000")
	t.Setenv("ENVTEST_CONNS", "12")
	t.Setenv("ENVTEST_DEBUG", "true")
	t.Setenv("ENVTEST_ORIGINS", "http://a.test, http://b.test")

	var cfg sample
	if err := environment.ParseEnvTags("ENVTEST", &cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Port != ":9000" || cfg.Conns != 12 || !cfg.Debug {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://b.test" {
		t.Errorf("origins = %v", cfg.Origins)
	}
}

func TestParseEnvTagsRequired(t *testing.T) {
	var cfg struct {
		URL string `env:"URL" required:"true"`
	}
	if err := environment.ParseEnvTags("ENVTEST_REQUIRED", &cfg); err == nil {
		t.Fatal("expected error for missing required variable")
	}
}

func TestParseEnvTagsRejectsNonPointer(t *testing.T) {
	if err := environment.ParseEnvTags("", sample{}); err == nil {
		t.Fatal("expected error for non pointer")
	}
}
