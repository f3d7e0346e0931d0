// Package tasks implements the task use cases on top of the storage ports.
// Storage errors are returned to the caller untouched; the only errors this
// package creates are domain errors.
package tasks

import (
	"context"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/storage"

	"go.uber.org/zap"
)

// service is the concrete implementation of the Service interface.
type service struct {
	storage storage.TaskStorage
}

// New creates a task Service backed by the provided storage.
func New(storage storage.TaskStorage) Service {
	return &service{
		storage: storage,
	}
}

// CreateTask creates an incomplete task for req.OwnerID. Creation needs no
// authorization: the requester always owns what they create.
func (s service) CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	task, err := domain.NewTask(domain.NewTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		return nil, err
	}

	stored, err := s.storage.StoreTask(ctx, task)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "task created",
		zap.Stringer("task_id", stored.ID()),
		zap.Stringer("owner_id", stored.OwnerID()))

	return stored, nil
}

func (s service) GetTaskByID(ctx context.Context, requesterID domain.Identifier, id string) (*domain.Task, error) {
	return s.ownedTask(ctx, requesterID, id)
}

// GetTasks returns the requester's tasks in the order storage yields them.
func (s service) GetTasks(ctx context.Context, requesterID domain.Identifier) ([]*domain.Task, error) {
	return s.storage.OwnerTasks(ctx, requesterID)
}

// UpdateTask applies the non-nil fields of req to an owned task and persists
// it. The task returned is the one storage reports after the update.
func (s service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.ownedTask(ctx, req.RequesterID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.UpdateTitle(*req.Title)
	}
	if req.Description != nil {
		task.UpdateDescription(*req.Description)
	}
	if req.Completed != nil {
		if *req.Completed {
			task.MarkCompleted()
		} else {
			task.MarkIncomplete()
		}
	}

	updated, err := s.storage.UpdateTask(ctx, task)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "task updated", zap.Stringer("task_id", updated.ID()))

	return updated, nil
}

// DeleteTask removes an owned task. Unlike storage, deleting an unknown id
// fails with a TaskNotFound error.
func (s service) DeleteTask(ctx context.Context, requesterID domain.Identifier, id string) error {
	task, err := s.ownedTask(ctx, requesterID, id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteTask(ctx, task.ID()); err != nil {
		return err
	}

	logger.Debug(ctx, "task deleted", zap.Stringer("task_id", task.ID()))

	return nil
}

// ownedTask loads a task and checks that requesterID owns it. Existence is
// checked first, so a missing task is always reported as not found whoever
// asks for it.
func (s service) ownedTask(ctx context.Context, requesterID domain.Identifier, rawID string) (*domain.Task, error) {
	id, err := domain.ParseIdentifier(rawID)
	if err != nil {
		return nil, err
	}

	task, err := s.storage.TaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.NewTaskNotFoundError(id)
	}

	owner, err := s.storage.IsTaskOwner(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if !owner {
		logger.Info(ctx, "task access denied",
			zap.Stringer("task_id", id),
			zap.Stringer("requester_id", requesterID))

		return nil, domain.NewAccessDeniedError()
	}

	return task, nil
}
