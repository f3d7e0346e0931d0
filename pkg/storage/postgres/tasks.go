package postgres

import (
	"context"
	"fmt"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/storage"

	"github.com/doug-martin/goqu/v9"
)

const (
	tasksTable = "tasks"
)

func (p *PgSQL) StoreTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	var row PgTask
	row.FromDomain(task)

	var result PgTask
	if _, err := p.Builder.Insert(tasksTable).
		Rows(row).
		Returning(&PgTask{}).
		Executor().ScanStructContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store task into pg: %w", err)
	}

	return result.ToDomain()
}

func (p *PgSQL) TaskByID(ctx context.Context, id domain.Identifier) (*domain.Task, error) {
	var row PgTask
	found, err := p.Builder.From(tasksTable).
		Where(goqu.I("id").Eq(id.String())).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch task by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// OwnerTasks returns the owner's tasks ordered by insertion.
func (p *PgSQL) OwnerTasks(ctx context.Context, ownerID domain.Identifier) ([]*domain.Task, error) {
	var rows []PgTask
	if err := p.Builder.From(tasksTable).
		Where(goqu.I("owner_id").Eq(ownerID.String())).
		Order(goqu.I("seq").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch owner tasks from pg: %w", err)
	}

	return pgTasksToDomain(rows)
}

func (p *PgSQL) AllTasks(ctx context.Context) ([]*domain.Task, error) {
	var rows []PgTask
	if err := p.Builder.From(tasksTable).
		Order(goqu.I("seq").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch tasks from pg: %w", err)
	}

	return pgTasksToDomain(rows)
}

// UpdateTask overwrites the mutable columns of a task. The id, owner and
// creation time are never touched.
func (p *PgSQL) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	var row PgTask
	row.FromDomain(task)

	var result PgTask
	found, err := p.Builder.Update(tasksTable).
		Set(row).
		Where(goqu.I("id").Eq(row.ID)).
		Returning(&PgTask{}).
		Executor().ScanStructContext(ctx, &result)
	if err != nil {
		return nil, fmt.Errorf("could not update task in pg: %w", err)
	}
	if !found {
		return nil, storage.ErrRecordNotFound
	}

	return result.ToDomain()
}

func (p *PgSQL) DeleteTask(ctx context.Context, id domain.Identifier) error {
	if _, err := p.Builder.Delete(tasksTable).
		Where(goqu.I("id").Eq(id.String())).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not delete task in pg: %w", err)
	}

	return nil
}

func (p *PgSQL) IsTaskOwner(ctx context.Context, taskID, userID domain.Identifier) (bool, error) {
	var id string
	found, err := p.Builder.From(tasksTable).
		Select("id").
		Where(
			goqu.I("id").Eq(taskID.String()),
			goqu.I("owner_id").Eq(userID.String()),
		).
		Limit(1).
		Executor().ScanValContext(ctx, &id)
	if err != nil {
		return false, fmt.Errorf("could not check task owner: %w", err)
	}

	return found, nil
}
