// Package storage defines the persistence ports the use cases rely on. Each
// backend (in-memory, PostgreSQL) lives in a subpackage and implements the
// same interfaces, so use cases never know which one they are talking to.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"taskmanager/pkg/domain"
)

// TaskStorage persists tasks.
type TaskStorage interface {
	// StoreTask inserts a new task and returns it as persisted.
	StoreTask(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// TaskByID returns the task with the given id, or nil and no error when
	// there is none.
	TaskByID(ctx context.Context, id domain.Identifier) (*domain.Task, error)
	// OwnerTasks returns every task owned by ownerID in creation order. An
	// owner without tasks gets an empty slice.
	OwnerTasks(ctx context.Context, ownerID domain.Identifier) ([]*domain.Task, error)
	// AllTasks returns every task in creation order.
	AllTasks(ctx context.Context) ([]*domain.Task, error)
	// UpdateTask replaces a stored task with the given state. It fails with
	// ErrRecordNotFound when the task does not exist.
	UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// DeleteTask removes a task. Deleting an unknown id is not an error.
	DeleteTask(ctx context.Context, id domain.Identifier) error
	// IsTaskOwner reports whether taskID exists and is owned by userID.
	IsTaskOwner(ctx context.Context, taskID, userID domain.Identifier) (bool, error)
}

// UserStorage persists users.
type UserStorage interface {
	// StoreUser inserts a new user and returns it as persisted.
	StoreUser(ctx context.Context, user *domain.User) (*domain.User, error)
	// UserByEmail returns the user registered with email, or nil and no error
	// when there is none. The match is exact.
	UserByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	// UpdateUser replaces a stored user with the given state. It fails with
	// ErrRecordNotFound when the user does not exist.
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	// DeleteUser removes a user. Deleting an unknown id is not an error.
	DeleteUser(ctx context.Context, id domain.Identifier) error
}

// AllStorage is a composite interface that includes all domain-specific
// storage capabilities required by the application.
type AllStorage interface {
	TaskStorage
	UserStorage
}

// Storage is a storage handle with lifecycle management.
type Storage interface {
	AllStorage

	// Close releases any resources held by the storage implementation (e.g. the
	// underlying connection pool). After Close, the instance should not be used.
	Close() error
}
