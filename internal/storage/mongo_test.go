package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/todoapp/todo-backend/internal/model"
)

// setupMongo connects to the deployment named by MONGO_TEST_URI and
// returns a repository over a clean todos collection. Skipped when the
// variable is unset so the suite runs without a database.
func setupMongo(t *testing.T) *MongoTodoRepository {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := Connect(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	})

	repo := NewMongoTodoRepository(client.Database("todo_test"))
	require.NoError(t, repo.DeleteAll(ctx))
	return repo
}

func TestMongoSaveAndFind(t *testing.T) {
	repo := setupMongo(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	saved, err := repo.Save(ctx, &model.Todo{
		Title:     "a",
		CreatedAt: now,
		UpdatedAt: now,
		Position:  1,
	})
	require.NoError(t, err)
	assert.False(t, saved.ID.IsZero())

	got, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "a", got.Title)
	assert.True(t, got.CreatedAt.Equal(now))

	got.Title = "a'"
	_, err = repo.Save(ctx, got)
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a'", all[0].Title)
}

func TestMongoFindByIDMissing(t *testing.T) {
	repo := setupMongo(t)
	ctx := context.Background()

	got, err := repo.FindByID(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMongoFindAllByPosition(t *testing.T) {
	repo := setupMongo(t)
	ctx := context.Background()

	for _, pos := range []int{2, 3, 1} {
		_, err := repo.Save(ctx, &model.Todo{Title: "t", Position: pos})
		require.NoError(t, err)
	}

	todos, err := repo.FindAllByPosition(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{todos[0].Position, todos[1].Position, todos[2].Position})
}

func TestMongoDelete(t *testing.T) {
	repo := setupMongo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, &model.Todo{Title: "a"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved))
	require.NoError(t, repo.Delete(ctx, saved))

	got, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
