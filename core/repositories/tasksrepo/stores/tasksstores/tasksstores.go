// Package tasksstores opens the task store selected by configuration.
package tasksstores

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/tasksmongostore"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/tasktracker/infrastructure/mongodb"
	"github.com/jrazmi/tasktracker/infrastructure/postgresdb"
	"github.com/jrazmi/tasktracker/sdk/environment"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Supported backends.
const (
	Postgres = "postgres"
	Mongo    = "mongo"
	Memory   = "memory"
)

// Options selects and names the backend.
type Options struct {
	Store           string `env:"STORE" default:"memory"`
	MongoCollection string `env:"MONGO_COLLECTION" default:"tasks"`
}

// Opened is a ready store plus the function releasing its connections.
type Opened struct {
	Kind   string
	Storer tasksrepo.Storer
	Close  func(ctx context.Context) error
}

// OpenFromEnv reads Options under prefix and opens the matching store. The
// backend's own connection settings are read under the same prefix.
func OpenFromEnv(ctx context.Context, prefix string, log *logger.Logger) (*Opened, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing store config: %w", err)
	}

	switch strings.ToLower(cfg.Store) {
	case Postgres:
		pool, err := postgresdb.NewFromEnv(prefix, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return nil, fmt.Errorf("configuring postgres support: %w", err)
		}
		log.InfoContext(ctx, "init", "store", Postgres)
		return &Opened{
			Kind:   Postgres,
			Storer: taskspgxstore.NewStore(log, pool),
			Close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case Mongo:
		db, err := mongodb.NewFromEnv(prefix, mongodb.WithLogger(log.Logger))
		if err != nil {
			return nil, fmt.Errorf("configuring mongo support: %w", err)
		}
		log.InfoContext(ctx, "init", "store", Mongo, "collection", cfg.MongoCollection)
		return &Opened{
			Kind:   Mongo,
			Storer: tasksmongostore.NewStore(log, db, cfg.MongoCollection),
			Close:  db.Close,
		}, nil

	case Memory, "":
		log.InfoContext(ctx, "init", "store", Memory)
		return &Opened{
			Kind:   Memory,
			Storer: tasksmemstore.NewStore(log),
			Close:  func(context.Context) error { return nil },
		}, nil
	}

	return nil, fmt.Errorf("unknown store %q, want %s, %s or %s", cfg.Store, Postgres, Mongo, Memory)
}
