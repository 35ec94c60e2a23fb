// Package tasksrepobridge binds the task repository to HTTP.
package tasksrepobridge

import (
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Config holds configuration for the Task bridge
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for Task. The singular and
// underscore paths are kept for existing clients.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)
	mw := cfg.Middleware

	group.GET("/tasks", b.httpList, mw...)
	group.GET("/tasks/{id}", b.httpGetByID, mw...)
	group.POST("/task", b.httpCreate, mw...)
	group.PUT("/task_update/{id}", b.httpUpdateFields, mw...)
	group.PUT("/task/{id}", b.httpUpdateStatus, mw...)
	group.PATCH("/tasks/{id}", b.httpPatch, mw...)
	group.DELETE("/tasks/{id}", b.httpDelete, mw...)

	group.GET("/health", b.httpHealth)
}
