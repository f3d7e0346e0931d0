package postgres_test

import (
	"context"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/storage"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTask(t *testing.T, owner domain.Identifier, title string) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(domain.NewTaskParams{Title: title, Description: title + " details", OwnerID: owner})
	require.NoError(t, err)

	return task
}

func requireSameTask(t *testing.T, want, got *domain.Task) {
	t.Helper()

	require.NotNil(t, got)
	w, g := want.Record(), got.Record()
	require.True(t, w.ID.Equals(g.ID))
	require.True(t, w.OwnerID.Equals(g.OwnerID))
	require.Equal(t, w.Title, g.Title)
	require.Equal(t, w.Description, g.Description)
	require.Equal(t, w.Completed, g.Completed)
	require.True(t, w.CreatedAt.Equal(g.CreatedAt), "created_at: want %s got %s", w.CreatedAt, g.CreatedAt)
	require.True(t, w.UpdatedAt.Equal(g.UpdatedAt), "updated_at: want %s got %s", w.UpdatedAt, g.UpdatedAt)
}

func TestPgSQL_Tasks(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	alice := domain.NewIdentifier()
	bob := domain.NewIdentifier()

	t1 := newTask(t, alice, "first")
	t2 := newTask(t, bob, "second")
	t3 := newTask(t, alice, "third")

	for _, task := range []*domain.Task{t1, t2, t3} {
		stored, err := pgSQL.StoreTask(ctx, task)
		require.NoError(t, err)
		requireSameTask(t, task, stored)
	}

	t.Run("find by id", func(t *testing.T) {
		got, err := pgSQL.TaskByID(ctx, t2.ID())
		require.NoError(t, err)
		requireSameTask(t, t2, got)

		got, err = pgSQL.TaskByID(ctx, domain.NewIdentifier())
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("owner tasks in creation order", func(t *testing.T) {
		got, err := pgSQL.OwnerTasks(ctx, alice)
		require.NoError(t, err)
		require.Len(t, got, 2)
		requireSameTask(t, t1, got[0])
		requireSameTask(t, t3, got[1])

		got, err = pgSQL.OwnerTasks(ctx, domain.NewIdentifier())
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("all tasks", func(t *testing.T) {
		got, err := pgSQL.AllTasks(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		requireSameTask(t, t2, got[1])
	})

	t.Run("ownership", func(t *testing.T) {
		ok, err := pgSQL.IsTaskOwner(ctx, t1.ID(), alice)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = pgSQL.IsTaskOwner(ctx, t1.ID(), bob)
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = pgSQL.IsTaskOwner(ctx, domain.NewIdentifier(), alice)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("update", func(t *testing.T) {
		t1.UpdateTitle("first, renamed")
		t1.MarkCompleted()

		updated, err := pgSQL.UpdateTask(ctx, t1)
		require.NoError(t, err)
		requireSameTask(t, t1, updated)

		got, err := pgSQL.TaskByID(ctx, t1.ID())
		require.NoError(t, err)
		requireSameTask(t, t1, got)
	})

	t.Run("update unknown task", func(t *testing.T) {
		_, err := pgSQL.UpdateTask(ctx, newTask(t, alice, "ghost"))
		require.ErrorIs(t, err, storage.ErrRecordNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, pgSQL.DeleteTask(ctx, t3.ID()))
		require.NoError(t, pgSQL.DeleteTask(ctx, t3.ID()))

		got, err := pgSQL.TaskByID(ctx, t3.ID())
		require.NoError(t, err)
		require.Nil(t, got)

		ok, err := pgSQL.IsTaskOwner(ctx, t3.ID(), alice)
		require.NoError(t, err)
		require.False(t, ok)
	})
}
