package model

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when an id references no persisted todo.
var ErrNotFound = errors.New("todo not found")

// Todo is a single to-do list item. Position defines the total order
// of the list; smaller values appear first.
type Todo struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Done      bool               `json:"done" bson:"done"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
	Position  int                `json:"position" bson:"position"`
}

// PositionUpdate is one element of a bulk reorder request. Any other
// fields sent by the client are ignored.
type PositionUpdate struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}
