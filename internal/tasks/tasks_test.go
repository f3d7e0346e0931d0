package tasks_test

import (
	"context"
	"errors"
	"taskmanager/internal/tasks"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/storage"
	"taskmanager/pkg/storage/memory"
	"testing"

	mockstorage "taskmanager/pkg/storage/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*mockstorage.MockTaskStorage, tasks.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockTaskStorage(ctrl)

	return st, tasks.New(st)
}

func storedTask(t *testing.T, owner domain.Identifier) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(domain.NewTaskParams{Title: "Buy milk", Description: "2 liters", OwnerID: owner})
	require.NoError(t, err)

	return task
}

func ptr[T any](v T) *T { return &v }

func TestService_CreateTask(t *testing.T) {
	st, s := newTestService(t)
	owner := domain.NewIdentifier()

	st.EXPECT().StoreTask(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, task *domain.Task) (*domain.Task, error) {
			require.Equal(t, "Buy milk", task.Title())
			require.False(t, task.Completed())
			require.True(t, owner.Equals(task.OwnerID()))

			return task, nil
		},
	)

	task, err := s.CreateTask(context.Background(), tasks.CreateTaskRequest{Title: "Buy milk", OwnerID: owner})
	require.NoError(t, err)
	require.Equal(t, "Buy milk", task.Title())
	require.Empty(t, task.Description())
	require.False(t, task.Completed())
}

func TestService_CreateTask_ReturnsPersistedTask(t *testing.T) {
	st, s := newTestService(t)
	owner := domain.NewIdentifier()
	persisted := storedTask(t, owner)

	st.EXPECT().StoreTask(gomock.Any(), gomock.Any()).Return(persisted, nil)

	task, err := s.CreateTask(context.Background(), tasks.CreateTaskRequest{Title: "x", OwnerID: owner})
	require.NoError(t, err)
	require.Same(t, persisted, task)
}

func TestService_CreateTask_Errors(t *testing.T) {
	t.Run("missing owner never reaches storage", func(t *testing.T) {
		_, s := newTestService(t)

		_, err := s.CreateTask(context.Background(), tasks.CreateTaskRequest{Title: "x"})
		require.ErrorIs(t, err, domain.ErrEmptyIdentifier)
	})

	t.Run("storage error is returned as is", func(t *testing.T) {
		st, s := newTestService(t)
		boom := errors.New("db down")
		st.EXPECT().StoreTask(gomock.Any(), gomock.Any()).Return(nil, boom)

		_, err := s.CreateTask(context.Background(), tasks.CreateTaskRequest{OwnerID: domain.NewIdentifier()})
		require.Equal(t, boom, err)
	})
}

func TestService_GetTaskByID(t *testing.T) {
	ctx := context.Background()
	owner := domain.NewIdentifier()

	t.Run("owner gets the task", func(t *testing.T) {
		st, s := newTestService(t)
		task := storedTask(t, owner)

		gomock.InOrder(
			st.EXPECT().TaskByID(gomock.Any(), task.ID()).Return(task, nil),
			st.EXPECT().IsTaskOwner(gomock.Any(), task.ID(), owner).Return(true, nil),
		)

		got, err := s.GetTaskByID(ctx, owner, task.ID().String())
		require.NoError(t, err)
		require.Same(t, task, got)
	})

	t.Run("other user is denied", func(t *testing.T) {
		st, s := newTestService(t)
		task := storedTask(t, owner)
		other := domain.NewIdentifier()

		gomock.InOrder(
			st.EXPECT().TaskByID(gomock.Any(), task.ID()).Return(task, nil),
			st.EXPECT().IsTaskOwner(gomock.Any(), task.ID(), other).Return(false, nil),
		)

		_, err := s.GetTaskByID(ctx, other, task.ID().String())
		require.ErrorIs(t, err, domain.ErrAccessDenied)
		require.NotContains(t, err.Error(), task.ID().String())
		require.NotContains(t, err.Error(), other.String())
	})

	t.Run("missing task is not found and ownership is never checked", func(t *testing.T) {
		st, s := newTestService(t)
		id := domain.NewIdentifier()

		st.EXPECT().TaskByID(gomock.Any(), id).Return(nil, nil)
		st.EXPECT().IsTaskOwner(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := s.GetTaskByID(ctx, domain.NewIdentifier(), id.String())
		require.ErrorIs(t, err, domain.ErrTaskNotFound)
		require.EqualError(t, err, "task with ID "+id.String()+" not found")
	})

	t.Run("empty id", func(t *testing.T) {
		_, s := newTestService(t)

		_, err := s.GetTaskByID(ctx, owner, "")
		require.ErrorIs(t, err, domain.ErrEmptyIdentifier)
	})

	t.Run("ownership lookup error is returned as is", func(t *testing.T) {
		st, s := newTestService(t)
		task := storedTask(t, owner)
		boom := errors.New("db down")

		st.EXPECT().TaskByID(gomock.Any(), task.ID()).Return(task, nil)
		st.EXPECT().IsTaskOwner(gomock.Any(), task.ID(), owner).Return(false, boom)

		_, err := s.GetTaskByID(ctx, owner, task.ID().String())
		require.Equal(t, boom, err)
	})
}

func TestService_GetTasks(t *testing.T) {
	st, s := newTestService(t)
	owner := domain.NewIdentifier()
	list := []*domain.Task{storedTask(t, owner), storedTask(t, owner)}

	st.EXPECT().OwnerTasks(gomock.Any(), owner).Return(list, nil)

	got, err := s.GetTasks(context.Background(), owner)
	require.NoError(t, err)
	require.Equal(t, list, got, "order is passed through")
}

func TestService_UpdateTask(t *testing.T) {
	ctx := context.Background()
	owner := domain.NewIdentifier()

	t.Run("only completed", func(t *testing.T) {
		st, s := newTestService(t)
		task := storedTask(t, owner)
		before := task.UpdatedAt()

		gomock.InOrder(
			st.EXPECT().TaskByID(gomock.Any(), task.ID()).Return(task, nil),
			st.EXPECT().IsTaskOwner(gomock.Any(), task.ID(), owner).Return(true, nil),
			st.EXPECT().UpdateTask(gomock.Any(), task).DoAndReturn(
				func(_ context.Context, task *domain.Task) (*domain.Task, error) {
					return task, nil
				},
			),
		)

		got, err := s.UpdateTask(ctx, tasks.UpdateTaskRequest{
			ID:          task.ID().String(),
			RequesterID: owner,
			Completed:   ptr(true),
		})
		require.NoError(t, err)
		require.True(t, got.Completed())
		require.Equal(t, "Buy milk", got.Title())
		require.Equal(t, "2 liters", got.Description())
		require.True(t, got.UpdatedAt().After(before))
	})

	t.Run("all fields", func(t *testing.T) {
		st, s := newTestService(t)
		task := storedTask(t, owner)
		task.MarkCompleted()

		st.EXPECT().TaskByID(gomock.Any(), task.ID()).Return(task, nil)
		st.EXPECT().IsTaskOwner(gomock.Any(), task.ID(), owner).Return(true, nil)
		st.EXPECT().UpdateTask(gomock.Any(), task).Return(task, nil)

		got, err := s.UpdateTask(ctx, tasks.UpdateTaskRequest{
			ID:          task.ID().String(),
			RequesterID: owner,
			Title:       ptr(""),
			Description: ptr("skimmed"),
			Completed:   ptr(false),
		})
		require.NoError(t, err)
		require.Empty(t, got.Title())
		require.Equal(t, "skimmed", got.Description())
		require.False(t, got.Completed())
	})

	t.Run("returns what storage returns", func(t *testing.T) {
		st, s := newTestService(t)
		task := storedTask(t, owner)
		persisted := storedTask(t, owner)

		st.EXPECT().TaskByID(gomock.Any(), task.ID()).Return(task, nil)
		st.EXPECT().IsTaskOwner(gomock.Any(), task.ID(), owner).Return(true, nil)
		st.EXPECT().UpdateTask(gomock.Any(), task).Return(persisted, nil)

		got, err := s.UpdateTask(ctx, tasks.UpdateTaskRequest{ID: task.ID().String(), RequesterID: owner})
		require.NoError(t, err)
		require.Same(t, persisted, got)
	})

	t.Run("not owner", func(t *testing.T) {
		st, s := newTestService(t)
		task := storedTask(t, owner)
		other := domain.NewIdentifier()

		st.EXPECT().TaskByID(gomock.Any(), task.ID()).Return(task, nil)
		st.EXPECT().IsTaskOwner(gomock.Any(), task.ID(), other).Return(false, nil)
		st.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).Times(0)

		_, err := s.UpdateTask(ctx, tasks.UpdateTaskRequest{
			ID:          task.ID().String(),
			RequesterID: other,
			Title:       ptr("hijacked"),
		})
		require.ErrorIs(t, err, domain.ErrAccessDenied)
		require.Equal(t, "Buy milk", task.Title(), "nothing is applied before authorization")
	})

	t.Run("missing task", func(t *testing.T) {
		st, s := newTestService(t)
		id := domain.NewIdentifier()

		st.EXPECT().TaskByID(gomock.Any(), id).Return(nil, nil)

		_, err := s.UpdateTask(ctx, tasks.UpdateTaskRequest{ID: id.String(), RequesterID: owner})
		require.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("task vanished before update", func(t *testing.T) {
		st, s := newTestService(t)
		task := storedTask(t, owner)

		st.EXPECT().TaskByID(gomock.Any(), task.ID()).Return(task, nil)
		st.EXPECT().IsTaskOwner(gomock.Any(), task.ID(), owner).Return(true, nil)
		st.EXPECT().UpdateTask(gomock.Any(), task).Return(nil, storage.ErrRecordNotFound)

		_, err := s.UpdateTask(ctx, tasks.UpdateTaskRequest{ID: task.ID().String(), RequesterID: owner})
		require.ErrorIs(t, err, storage.ErrRecordNotFound)
	})
}

func TestService_DeleteTask(t *testing.T) {
	ctx := context.Background()
	owner := domain.NewIdentifier()

	t.Run("owner deletes", func(t *testing.T) {
		st, s := newTestService(t)
		task := storedTask(t, owner)

		gomock.InOrder(
			st.EXPECT().TaskByID(gomock.Any(), task.ID()).Return(task, nil),
			st.EXPECT().IsTaskOwner(gomock.Any(), task.ID(), owner).Return(true, nil),
			st.EXPECT().DeleteTask(gomock.Any(), task.ID()).Return(nil),
		)

		require.NoError(t, s.DeleteTask(ctx, owner, task.ID().String()))
	})

	t.Run("missing task is not silently ignored", func(t *testing.T) {
		st, s := newTestService(t)
		id := domain.NewIdentifier()

		st.EXPECT().TaskByID(gomock.Any(), id).Return(nil, nil)
		st.EXPECT().DeleteTask(gomock.Any(), gomock.Any()).Times(0)

		err := s.DeleteTask(ctx, owner, id.String())
		require.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("not owner", func(t *testing.T) {
		st, s := newTestService(t)
		task := storedTask(t, owner)
		other := domain.NewIdentifier()

		st.EXPECT().TaskByID(gomock.Any(), task.ID()).Return(task, nil)
		st.EXPECT().IsTaskOwner(gomock.Any(), task.ID(), other).Return(false, nil)
		st.EXPECT().DeleteTask(gomock.Any(), gomock.Any()).Times(0)

		err := s.DeleteTask(ctx, other, task.ID().String())
		require.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}

func TestService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	s := tasks.New(memory.New())
	u1 := domain.NewIdentifier()
	u2 := domain.NewIdentifier()

	task, err := s.CreateTask(ctx, tasks.CreateTaskRequest{Title: "Buy milk", OwnerID: u1})
	require.NoError(t, err)
	require.False(t, task.Completed())
	require.True(t, u1.Equals(task.OwnerID()))

	got, err := s.GetTaskByID(ctx, u1, task.ID().String())
	require.NoError(t, err)
	require.Equal(t, task.Record(), got.Record())

	_, err = s.GetTaskByID(ctx, u2, task.ID().String())
	require.ErrorIs(t, err, domain.ErrAccessDenied)

	list, err := s.GetTasks(ctx, u1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = s.GetTasks(ctx, u2)
	require.NoError(t, err)
	require.Empty(t, list)

	updated, err := s.UpdateTask(ctx, tasks.UpdateTaskRequest{
		ID:          task.ID().String(),
		RequesterID: u1,
		Completed:   ptr(true),
	})
	require.NoError(t, err)
	require.True(t, updated.Completed())
	require.Equal(t, "Buy milk", updated.Title())

	require.NoError(t, s.DeleteTask(ctx, u1, task.ID().String()))

	_, err = s.GetTaskByID(ctx, u1, task.ID().String())
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	err = s.DeleteTask(ctx, u1, task.ID().String())
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}
