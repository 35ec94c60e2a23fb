// Package mongodb opens MongoDB connections configured from the environment.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jrazmi/tasktracker/sdk/environment"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrDBNotFound is returned when a filter matches no document.
var ErrDBNotFound = mongo.ErrNoDocuments

// Options represents the exportable connection configuration.
type Options struct {
	URI            string        `env:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DATABASE" default:"tasktracker"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" default:"10s"`
}

type settings struct {
	uri            string
	database       string
	connectTimeout time.Duration
	logger         *slog.Logger
}

// Option configures the connection.
type Option func(*settings)

func WithLogger(logger *slog.Logger) Option {
	return func(o *settings) {
		o.logger = logger
	}
}

func WithURI(uri string) Option {
	return func(o *settings) {
		o.uri = uri
	}
}

func WithDatabase(name string) Option {
	return func(o *settings) {
		o.database = name
	}
}

func WithConnectTimeout(timeout time.Duration) Option {
	return func(o *settings) {
		o.connectTimeout = timeout
	}
}

// Database is a connected client bound to one database.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewFromEnv connects using environment variables under prefix.
func NewFromEnv(prefix string, opts ...Option) (*Database, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing mongo config: %w", err)
	}
	return newDatabase(cfg, opts...)
}

// NewTestDB connects to uri and uses the named database.
func NewTestDB(uri string, database string, opts ...Option) (*Database, error) {
	cfg := Options{
		URI:            uri,
		Database:       database,
		ConnectTimeout: 5 * time.Second,
	}
	return newDatabase(cfg, opts...)
}

func newDatabase(cfg Options, opts ...Option) (*Database, error) {
	o := &settings{
		uri:            cfg.URI,
		database:       cfg.Database,
		connectTimeout: cfg.ConnectTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.connectTimeout <= 0 {
		o.connectTimeout = 10 * time.Second
	}
	if o.database == "" {
		return nil, errors.New("mongo database name is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(o.uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	o.logger.Info("mongo connected", "database", o.database)

	return &Database{
		client: client,
		db:     client.Database(o.database),
	}, nil
}

// Collection returns a handle to the named collection.
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Drop removes the whole database. Tests use it for cleanup.
func (d *Database) Drop(ctx context.Context) error {
	return d.db.Drop(ctx)
}

// Close disconnects the client.
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// StatusCheck returns nil if it can successfully talk to the primary.
func (d *Database) StatusCheck(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}
	return d.client.Ping(ctx, readpref.Primary())
}

// ParseObjectID converts a hex id. Malformed ids report ErrDBNotFound since
// no document can carry them.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("object id %q: %w", id, ErrDBNotFound)
	}
	return oid, nil
}
