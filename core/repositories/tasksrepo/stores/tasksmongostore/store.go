// Package tasksmongostore persists tasks as MongoDB documents. Ids are the
// hex form of the document ObjectID.
package tasksmongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/mongodb"
	"github.com/jrazmi/tasktracker/sdk/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type document struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	DueDate   *time.Time         `bson:"dueDate,omitempty"`
	Completed bool               `bson:"completed"`
}

func (d document) toTask() tasksrepo.Task {
	t := tasksrepo.Task{
		TaskID:    d.ID.Hex(),
		Title:     d.Title,
		Completed: d.Completed,
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		t.DueDate = &due
	}
	return t
}

type Store struct {
	log  *logger.Logger
	coll *mongo.Collection
}

func NewStore(log *logger.Logger, db *mongodb.Database, collection string) *Store {
	return &Store{
		log:  log,
		coll: db.Collection(collection),
	}
}

// List returns documents sorted by _id, which follows insertion order.
func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	tasks := make([]tasksrepo.Task, len(docs))
	for i, d := range docs {
		tasks[i] = d.toTask()
	}
	return tasks, nil
}

func (s *Store) Get(ctx context.Context, taskID string) (tasksrepo.Task, error) {
	oid, err := mongodb.ParseObjectID(taskID)
	if err != nil {
		return tasksrepo.Task{}, notFound("get", taskID)
	}

	var doc document
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return tasksrepo.Task{}, handleError("get", taskID, err)
	}
	return doc.toTask(), nil
}

func (s *Store) Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	doc := document{
		ID:      primitive.NewObjectID(),
		Title:   input.Title,
		DueDate: input.DueDate,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return tasksrepo.Task{}, fmt.Errorf("insert: %w", err)
	}
	return doc.toTask(), nil
}

func (s *Store) Update(ctx context.Context, taskID string, input tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	if input.IsEmpty() {
		return s.Get(ctx, taskID)
	}

	oid, err := mongodb.ParseObjectID(taskID)
	if err != nil {
		return tasksrepo.Task{}, notFound("update", taskID)
	}

	set := bson.M{}
	unset := bson.M{}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Completed != nil {
		set["completed"] = *input.Completed
	}
	if input.SetDueDate {
		if input.DueDate == nil {
			unset["dueDate"] = ""
		} else {
			set["dueDate"] = *input.DueDate
		}
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc document
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return tasksrepo.Task{}, handleError("update", taskID, err)
	}
	return doc.toTask(), nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	oid, err := mongodb.ParseObjectID(taskID)
	if err != nil {
		return notFound("delete", taskID)
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %q: %w", taskID, err)
	}
	if res.DeletedCount == 0 {
		return notFound("delete", taskID)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

func notFound(op string, taskID string) error {
	return fmt.Errorf("%s %q: %w", op, taskID, tasksrepo.ErrNotFound)
}

func handleError(op string, taskID string, err error) error {
	if errors.Is(err, mongodb.ErrDBNotFound) {
		return notFound(op, taskID)
	}
	return fmt.Errorf("%s %q: %w", op, taskID, err)
}
