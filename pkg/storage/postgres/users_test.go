package postgres_test

import (
	"context"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/serrors"
	"taskmanager/pkg/storage"
	"testing"

	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, email string) *domain.User {
	t.Helper()

	e, err := domain.NewEmail(email)
	require.NoError(t, err)

	return domain.NewUser(domain.NewUserParams{Username: "user", Email: e, Password: "hash"})
}

func TestPgSQL_Users(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	user := newUser(t, "alice@example.com")

	stored, err := pgSQL.StoreUser(ctx, user)
	require.NoError(t, err)
	require.True(t, user.ID().Equals(stored.ID()))
	require.True(t, user.CreatedAt().Equal(stored.CreatedAt()))

	t.Run("find by email", func(t *testing.T) {
		got, err := pgSQL.UserByEmail(ctx, user.Email())
		require.NoError(t, err)
		require.NotNil(t, got)
		require.True(t, user.ID().Equals(got.ID()))
		require.Equal(t, "user", got.Username())
		require.Equal(t, "hash", got.Password())

		other, err := domain.NewEmail("nobody@example.com")
		require.NoError(t, err)
		got, err = pgSQL.UserByEmail(ctx, other)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("duplicate email is rejected by the index", func(t *testing.T) {
		_, err := pgSQL.StoreUser(ctx, newUser(t, "alice@example.com"))
		require.ErrorIs(t, err, domain.ErrUserEmailExists)
		require.ErrorIs(t, err, serrors.ErrConflict)
	})

	t.Run("update", func(t *testing.T) {
		user.UpdateUsername("alice")
		user.UpdatePassword("new-hash")

		updated, err := pgSQL.UpdateUser(ctx, user)
		require.NoError(t, err)
		require.Equal(t, "alice", updated.Username())
		require.Equal(t, "new-hash", updated.Password())
		require.True(t, user.UpdatedAt().Equal(updated.UpdatedAt()))
	})

	t.Run("update onto a taken email", func(t *testing.T) {
		bob := newUser(t, "bob@example.com")
		_, err := pgSQL.StoreUser(ctx, bob)
		require.NoError(t, err)

		bob.UpdateEmail(user.Email())
		_, err = pgSQL.UpdateUser(ctx, bob)
		require.ErrorIs(t, err, domain.ErrUserEmailExists)
	})

	t.Run("update unknown user", func(t *testing.T) {
		_, err := pgSQL.UpdateUser(ctx, newUser(t, "ghost@example.com"))
		require.ErrorIs(t, err, storage.ErrRecordNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, pgSQL.DeleteUser(ctx, user.ID()))
		require.NoError(t, pgSQL.DeleteUser(ctx, user.ID()))

		got, err := pgSQL.UserByEmail(ctx, user.Email())
		require.NoError(t, err)
		require.Nil(t, got)
	})
}
