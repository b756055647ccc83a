package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/todoapp/todo-backend/internal/model"
)

// TodoRepository is the persistence contract over the todos collection.
// FindByID returns (nil, nil) when no document has the given id; only
// store failures are reported as errors.
type TodoRepository interface {
	// FindAllByPosition returns every todo sorted ascending by position,
	// with id as the tie-break.
	FindAllByPosition(ctx context.Context) ([]model.Todo, error)

	// FindAll returns every todo in no particular order.
	FindAll(ctx context.Context) ([]model.Todo, error)

	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Todo, error)

	// Save inserts the todo when its id is zero, assigning a fresh id,
	// and otherwise replaces the document with the same id. The
	// persisted form is returned.
	Save(ctx context.Context, todo *model.Todo) (*model.Todo, error)

	// Delete removes the todo by id. Removing an absent todo is a no-op.
	Delete(ctx context.Context, todo *model.Todo) error

	DeleteAll(ctx context.Context) error
}
