package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/todoapp/todo-backend/internal/model"
	"github.com/todoapp/todo-backend/internal/storage"
)

// TodoService holds the domain rules for the todo list: timestamp
// stamping, position assignment on create, and bulk reordering.
type TodoService struct {
	repo storage.TodoRepository
	now  func() time.Time
}

func NewTodoService(repo storage.TodoRepository) *TodoService {
	return &TodoService{
		repo: repo,
		// Mongo stores dates at millisecond precision; truncating here
		// keeps stored and returned timestamps identical.
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// GetAllTodos returns every todo sorted ascending by position.
func (s *TodoService) GetAllTodos(ctx context.Context) ([]model.Todo, error) {
	return s.repo.FindAllByPosition(ctx)
}

// CreateTodo persists a new todo from the draft's title and done flag.
// Any id, timestamps, or position in the draft are ignored: the new
// todo is stamped with the current time and placed at the end of the
// list, one past the highest existing position.
func (s *TodoService) CreateTodo(ctx context.Context, draft model.Todo) (*model.Todo, error) {
	todos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	maxPosition := 0
	for _, t := range todos {
		if t.Position > maxPosition {
			maxPosition = t.Position
		}
	}

	now := s.now()
	todo := model.Todo{
		Title:     draft.Title,
		Done:      draft.Done,
		CreatedAt: now,
		UpdatedAt: now,
		Position:  maxPosition + 1,
	}
	return s.repo.Save(ctx, &todo)
}

// GetTodoByID returns the todo with the given id, or nil when no such
// todo exists. An id that is not valid ObjectID hex also yields nil.
func (s *TodoService) GetTodoByID(ctx context.Context, id string) (*model.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return s.repo.FindByID(ctx, oid)
}

// UpdateTodo overwrites the title and done flag of an existing todo and
// refreshes its updatedAt. Id, createdAt, and position are preserved;
// any other fields in the patch are ignored.
func (s *TodoService) UpdateTodo(ctx context.Context, id string, patch model.Todo) (*model.Todo, error) {
	todo, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	todo.Title = patch.Title
	todo.Done = patch.Done
	todo.UpdatedAt = s.now()
	return s.repo.Save(ctx, todo)
}

// UpdatePositions applies a bulk reorder. Each update is looked up,
// repositioned, and persisted in input order; the updated todos are
// returned in that same order. The batch is not atomic: a failure
// midway leaves earlier updates in place, so callers are expected to
// submit the full set of items they want reordered.
func (s *TodoService) UpdatePositions(ctx context.Context, updates []model.PositionUpdate) ([]model.Todo, error) {
	updated := make([]model.Todo, 0, len(updates))
	for _, u := range updates {
		todo, err := s.findExisting(ctx, u.ID)
		if err != nil {
			return nil, err
		}

		todo.Position = u.Position
		todo.UpdatedAt = s.now()
		saved, err := s.repo.Save(ctx, todo)
		if err != nil {
			return nil, err
		}
		updated = append(updated, *saved)
	}
	return updated, nil
}

// DeleteTodo removes the todo with the given id, failing with
// model.ErrNotFound when no such todo exists.
func (s *TodoService) DeleteTodo(ctx context.Context, id string) error {
	todo, err := s.findExisting(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, todo)
}

// DeleteAllTodos empties the collection. Deleting an already empty
// collection succeeds.
func (s *TodoService) DeleteAllTodos(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func (s *TodoService) findExisting(ctx context.Context, id string) (*model.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("todo %q: %w", id, model.ErrNotFound)
	}
	todo, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, fmt.Errorf("todo %q: %w", id, model.ErrNotFound)
	}
	return todo, nil
}
