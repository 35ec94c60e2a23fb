package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jrazmi/tasktracker/app/taskboard/config"
	"github.com/jrazmi/tasktracker/core/taskboard"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/tasksclient"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "taskboard: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(flag.NewFlagSet("taskboard", flag.ContinueOnError), args)
	if err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	// The terminal belongs to the UI, so records go to a file.
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	log := logger.New(cfg.Log, logger.WithOutput(logFile))
	ctx := context.Background()
	log.InfoContext(ctx, "startup", "api", cfg.APIURL, "mode", cfg.Policy.String(), "config", cfg.Path)

	client, err := tasksclient.New(cfg.APIURL, tasksclient.WithTimeout(cfg.Timeout))
	if err != nil {
		return err
	}

	board := taskboard.New(client, cfg.Policy, log)

	program := tea.NewProgram(newModel(board, cfg.APIURL, cfg.Policy, cfg.Timeout), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}

	log.InfoContext(ctx, "shutdown")
	return nil
}
