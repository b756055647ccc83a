package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/todoapp/todo-backend/internal/model"
)

const collectionName = "todos"

// Connect dials the MongoDB deployment at uri and verifies the
// connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// MongoTodoRepository implements TodoRepository over the todos
// collection.
type MongoTodoRepository struct {
	coll *mongo.Collection
}

func NewMongoTodoRepository(db *mongo.Database) *MongoTodoRepository {
	return &MongoTodoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoTodoRepository) FindAllByPosition(ctx context.Context) ([]model.Todo, error) {
	sort := bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}}
	return r.find(ctx, options.Find().SetSort(sort))
}

func (r *MongoTodoRepository) FindAll(ctx context.Context) ([]model.Todo, error) {
	return r.find(ctx)
}

func (r *MongoTodoRepository) find(ctx context.Context, opts ...*options.FindOptions) ([]model.Todo, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, opts...)
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	todos := []model.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	return todos, nil
}

func (r *MongoTodoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Todo, error) {
	var todo model.Todo
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&todo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find todo %s: %w", id.Hex(), err)
	}
	return &todo, nil
}

func (r *MongoTodoRepository) Save(ctx context.Context, todo *model.Todo) (*model.Todo, error) {
	if todo.ID.IsZero() {
		todo.ID = primitive.NewObjectID()
		if _, err := r.coll.InsertOne(ctx, todo); err != nil {
			return nil, fmt.Errorf("insert todo: %w", err)
		}
		return todo, nil
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": todo.ID}, todo, opts); err != nil {
		return nil, fmt.Errorf("replace todo %s: %w", todo.ID.Hex(), err)
	}
	return todo, nil
}

func (r *MongoTodoRepository) Delete(ctx context.Context, todo *model.Todo) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": todo.ID}); err != nil {
		return fmt.Errorf("delete todo %s: %w", todo.ID.Hex(), err)
	}
	return nil
}

func (r *MongoTodoRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("delete all todos: %w", err)
	}
	return nil
}
