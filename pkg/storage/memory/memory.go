// Package memory provides an in-process implementation of storage.Storage.
// It is meant for tests and for running the service without a database;
// nothing survives a restart.
package memory

import (
	"context"
	"slices"
	"sync"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/storage"
)

// Memory keeps snapshots of entities rather than the entities themselves, so
// a caller mutating a returned *domain.Task never changes what is stored.
type Memory struct {
	mu sync.RWMutex

	tasks     map[string]domain.TaskRecord
	taskOrder []string

	users      map[string]domain.UserRecord
	userEmails map[string]string
}

var _ storage.Storage = (*Memory)(nil)

// New creates an empty in-memory storage.
func New() *Memory {
	return &Memory{
		tasks:      make(map[string]domain.TaskRecord),
		users:      make(map[string]domain.UserRecord),
		userEmails: make(map[string]string),
	}
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

// StoreTask inserts task, replacing any task with the same id.
func (m *Memory) StoreTask(_ context.Context, task *domain.Task) (*domain.Task, error) {
	rec := task.Record()

	m.mu.Lock()
	defer m.mu.Unlock()

	key := rec.ID.String()
	if _, ok := m.tasks[key]; !ok {
		m.taskOrder = append(m.taskOrder, key)
	}
	m.tasks[key] = rec

	return domain.TaskFromStorage(rec)
}

func (m *Memory) TaskByID(_ context.Context, id domain.Identifier) (*domain.Task, error) {
	m.mu.RLock()
	rec, ok := m.tasks[id.String()]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	return domain.TaskFromStorage(rec)
}

func (m *Memory) OwnerTasks(_ context.Context, ownerID domain.Identifier) ([]*domain.Task, error) {
	return m.tasksWhere(func(rec domain.TaskRecord) bool {
		return rec.OwnerID.Equals(ownerID)
	})
}

func (m *Memory) AllTasks(_ context.Context) ([]*domain.Task, error) {
	return m.tasksWhere(func(domain.TaskRecord) bool { return true })
}

func (m *Memory) UpdateTask(_ context.Context, task *domain.Task) (*domain.Task, error) {
	rec := task.Record()

	m.mu.Lock()
	defer m.mu.Unlock()

	key := rec.ID.String()
	if _, ok := m.tasks[key]; !ok {
		return nil, storage.ErrRecordNotFound
	}
	m.tasks[key] = rec

	return domain.TaskFromStorage(rec)
}

func (m *Memory) DeleteTask(_ context.Context, id domain.Identifier) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := id.String()
	if _, ok := m.tasks[key]; !ok {
		return nil
	}

	delete(m.tasks, key)
	m.taskOrder = slices.DeleteFunc(m.taskOrder, func(k string) bool { return k == key })

	return nil
}

func (m *Memory) IsTaskOwner(_ context.Context, taskID, userID domain.Identifier) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.tasks[taskID.String()]
	if !ok {
		return false, nil
	}

	return rec.OwnerID.Equals(userID), nil
}

func (m *Memory) tasksWhere(match func(domain.TaskRecord) bool) ([]*domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Task, 0)
	for _, key := range m.taskOrder {
		rec := m.tasks[key]
		if !match(rec) {
			continue
		}

		task, err := domain.TaskFromStorage(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}

	return out, nil
}

// StoreUser inserts user, replacing any user with the same id. It fails with
// a UserEmailExists error when another user holds the email.
func (m *Memory) StoreUser(_ context.Context, user *domain.User) (*domain.User, error) {
	rec := user.Record()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.putUser(rec); err != nil {
		return nil, err
	}

	return domain.UserFromStorage(rec), nil
}

func (m *Memory) UserByEmail(_ context.Context, email domain.Email) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.userEmails[email.String()]
	if !ok {
		return nil, nil
	}

	return domain.UserFromStorage(m.users[id]), nil
}

func (m *Memory) UpdateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	rec := user.Record()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[rec.ID.String()]; !ok {
		return nil, storage.ErrRecordNotFound
	}
	if err := m.putUser(rec); err != nil {
		return nil, err
	}

	return domain.UserFromStorage(rec), nil
}

func (m *Memory) DeleteUser(_ context.Context, id domain.Identifier) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dropUser(id.String())

	return nil
}

// putUser must be called with mu held.
func (m *Memory) putUser(rec domain.UserRecord) error {
	key := rec.ID.String()
	if owner, ok := m.userEmails[rec.Email.String()]; ok && owner != key {
		return domain.NewUserEmailExistsError(rec.Email)
	}

	m.dropUser(key)
	m.users[key] = rec
	m.userEmails[rec.Email.String()] = key

	return nil
}

// dropUser must be called with mu held.
func (m *Memory) dropUser(key string) {
	prev, ok := m.users[key]
	if !ok {
		return
	}

	delete(m.users, key)
	if m.userEmails[prev.Email.String()] == key {
		delete(m.userEmails, prev.Email.String())
	}
}
