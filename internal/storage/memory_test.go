package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/todoapp/todo-backend/internal/model"
)

func TestMemorySaveInsertsAndReplaces(t *testing.T) {
	repo := NewMemoryTodoRepository()
	ctx := context.Background()

	todo := &model.Todo{Title: "a", Position: 1}
	saved, err := repo.Save(ctx, todo)
	require.NoError(t, err)
	assert.False(t, saved.ID.IsZero())

	saved.Title = "a'"
	replaced, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, replaced.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a'", all[0].Title)
}

func TestMemoryFindByID(t *testing.T) {
	repo := NewMemoryTodoRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, &model.Todo{Title: "a"})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved.Title, got.Title)

	missing, err := repo.FindByID(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryFindAllByPosition(t *testing.T) {
	repo := NewMemoryTodoRepository()
	ctx := context.Background()

	for _, pos := range []int{3, 1, 2} {
		_, err := repo.Save(ctx, &model.Todo{Title: "t", Position: pos})
		require.NoError(t, err)
	}

	todos, err := repo.FindAllByPosition(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{todos[0].Position, todos[1].Position, todos[2].Position})
}

func TestMemoryFindAllByPositionTieBreaksOnID(t *testing.T) {
	repo := NewMemoryTodoRepository()
	ctx := context.Background()

	lo, err := primitive.ObjectIDFromHex("111111111111111111111111")
	require.NoError(t, err)
	hi, err := primitive.ObjectIDFromHex("222222222222222222222222")
	require.NoError(t, err)

	// Duplicate positions happen under concurrent creates; enumeration
	// stays deterministic via the id tie-break.
	_, err = repo.Save(ctx, &model.Todo{ID: hi, Title: "second", Position: 1})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &model.Todo{ID: lo, Title: "first", Position: 1})
	require.NoError(t, err)

	todos, err := repo.FindAllByPosition(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, lo, todos[0].ID)
	assert.Equal(t, hi, todos[1].ID)
}

func TestMemoryDelete(t *testing.T) {
	repo := NewMemoryTodoRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, &model.Todo{Title: "a"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved))

	// Deleting an absent todo is a no-op.
	require.NoError(t, repo.Delete(ctx, saved))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryDeleteAll(t *testing.T) {
	repo := NewMemoryTodoRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, &model.Todo{Title: "a"})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &model.Todo{Title: "b"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteAll(ctx))
	require.NoError(t, repo.DeleteAll(ctx))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemorySaveCopies(t *testing.T) {
	repo := NewMemoryTodoRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, &model.Todo{Title: "a", UpdatedAt: time.Now()})
	require.NoError(t, err)

	// Mutating the returned value must not leak into the store.
	saved.Title = "mutated"

	got, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.Title)
}
