package storage

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/todoapp/todo-backend/internal/model"
)

// MemoryTodoRepository is an in-memory TodoRepository with the same
// contract as the Mongo implementation. Tests substitute it for the
// real store.
type MemoryTodoRepository struct {
	mu    sync.RWMutex
	todos map[primitive.ObjectID]model.Todo
}

func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{todos: make(map[primitive.ObjectID]model.Todo)}
}

func (r *MemoryTodoRepository) FindAllByPosition(ctx context.Context) ([]model.Todo, error) {
	todos, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(todos, func(i, j int) bool {
		if todos[i].Position != todos[j].Position {
			return todos[i].Position < todos[j].Position
		}
		return todos[i].ID.Hex() < todos[j].ID.Hex()
	})
	return todos, nil
}

func (r *MemoryTodoRepository) FindAll(_ context.Context) ([]model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]model.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		todos = append(todos, t)
	}
	return todos, nil
}

func (r *MemoryTodoRepository) FindByID(_ context.Context, id primitive.ObjectID) (*model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todo, ok := r.todos[id]
	if !ok {
		return nil, nil
	}
	return &todo, nil
}

func (r *MemoryTodoRepository) Save(_ context.Context, todo *model.Todo) (*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if todo.ID.IsZero() {
		todo.ID = primitive.NewObjectID()
	}
	r.todos[todo.ID] = *todo
	return todo, nil
}

func (r *MemoryTodoRepository) Delete(_ context.Context, todo *model.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.todos, todo.ID)
	return nil
}

func (r *MemoryTodoRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.todos = make(map[primitive.ObjectID]model.Todo)
	return nil
}
