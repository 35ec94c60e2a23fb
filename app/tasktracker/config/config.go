package config

import (
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

// Repositories holds the repositories this instance serves.
type Repositories struct {
	Tasks *tasksrepo.Repository
}

// Tasktracker is the overall configuration for the API server.
type Tasktracker struct {
	Build        string
	Logger       *logger.Logger
	Telemetry    telemetry.Telemetry
	Repositories Repositories
}
