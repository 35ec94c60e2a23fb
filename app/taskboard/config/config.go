// Package config loads the terminal client's settings. Sources in priority
// order: defaults, the TOML file, the environment, then flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jrazmi/tasktracker/core/taskboard"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// EnvAPIURL overrides api_url from the file.
const EnvAPIURL = "TASKBOARD_API_URL"

// Config is the taskboard.toml layout.
type Config struct {
	APIURL   string         `toml:"api_url"`
	SyncMode string         `toml:"sync_mode"`
	LogFile  string         `toml:"log_file"`
	Timeout  time.Duration  `toml:"timeout"`
	Log      logger.Options `toml:"log"`

	// Policy is SyncMode parsed.
	Policy taskboard.SyncPolicy `toml:"-"`
	// Path is the config file that was read, "" when none existed.
	Path string `toml:"-"`
}

func defaults() *Config {
	return &Config{
		APIURL:   "http://localhost:5000",
		SyncMode: "refetch",
		LogFile:  filepath.Join(os.TempDir(), "taskboard.log"),
		Timeout:  10 * time.Second,
		Log: logger.Options{
			Level:      "INFO",
			Format:     "text",
			TimeFormat: time.RFC3339,
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/taskboard/config.toml, falling back to the
// OS user config directory.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskboard", "config.toml")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "taskboard", "config.toml")
}

// Load resolves the configuration from all sources.
func Load(fset *flag.FlagSet, args []string) (*Config, error) {
	configPath := fset.String("config", DefaultPath(), "path to config.toml")
	apiURL := fset.String("api", "", "task tracker API base url")
	mode := fset.String("mode", "", "sync mode: refetch or merge")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	cfg := defaults()

	if *configPath != "" {
		_, err := toml.DecodeFile(*configPath, cfg)
		switch {
		case err == nil:
			cfg.Path = *configPath
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("loading config file %s: %w", *configPath, err)
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}

	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *mode != "" {
		cfg.SyncMode = *mode
	}

	policy, err := taskboard.ParseSyncPolicy(cfg.SyncMode)
	if err != nil {
		return nil, err
	}
	cfg.Policy = policy

	return cfg, nil
}
