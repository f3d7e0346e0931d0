package tasks

import (
	"context"
	"taskmanager/pkg/domain"
)

// CreateTaskRequest holds the input of Service.CreateTask. An empty
// Description means the task has none.
type CreateTaskRequest struct {
	Title       string
	Description string
	OwnerID     domain.Identifier
}

// UpdateTaskRequest holds the input of Service.UpdateTask. Nil fields are left
// untouched.
type UpdateTaskRequest struct {
	ID          string
	RequesterID domain.Identifier
	Title       *string
	Description *string
	Completed   *bool
}

// Service exposes the task use cases. Every operation that reads or changes
// an existing task is restricted to the task's owner.
//
//go:generate mockgen -package mocktasks -source=interface.go -destination=mock/mocktasks.go *
type Service interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.Task, error)
	GetTaskByID(ctx context.Context, requesterID domain.Identifier, id string) (*domain.Task, error)
	GetTasks(ctx context.Context, requesterID domain.Identifier) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, requesterID domain.Identifier, id string) error
}
