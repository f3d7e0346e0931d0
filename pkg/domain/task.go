package domain

import "time"

// NewTaskParams holds what a caller supplies when creating a task. An empty
// Description means the task has none.
type NewTaskParams struct {
	Title       string
	Description string
	Completed   bool
	OwnerID     Identifier
}

// TaskRecord is the flat form of a Task as it is kept in storage. Zero ID
// and zero timestamps mean "not supplied"; OwnerID is always required.
type TaskRecord struct {
	ID          Identifier
	Title       string
	Description string
	Completed   bool
	OwnerID     Identifier
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Task is a unit of work owned by exactly one user. The owner is fixed at
// construction; there is no way to change it afterwards.
type Task struct {
	state TaskRecord
}

// NewTask creates a task with a fresh id. CreatedAt and UpdatedAt are equal.
// A zero OwnerID fails with ErrEmptyIdentifier.
func NewTask(params NewTaskParams) (*Task, error) {
	if params.OwnerID.IsZero() {
		return nil, newValidationError(ReasonEmptyIdentifier)
	}

	ts := now()

	return &Task{state: TaskRecord{
		ID:          NewIdentifier(),
		Title:       params.Title,
		Description: params.Description,
		Completed:   params.Completed,
		OwnerID:     params.OwnerID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}}, nil
}

// TaskFromStorage rebuilds a task from a stored record, generating the id
// and timestamps when the record lacks them.
func TaskFromStorage(rec TaskRecord) (*Task, error) {
	if rec.OwnerID.IsZero() {
		return nil, newValidationError(ReasonEmptyIdentifier)
	}
	if rec.ID.IsZero() {
		rec.ID = NewIdentifier()
	}
	rec.CreatedAt = orNow(rec.CreatedAt)
	rec.UpdatedAt = orNow(rec.UpdatedAt)

	return &Task{state: rec}, nil
}

func (t *Task) ID() Identifier       { return t.state.ID }
func (t *Task) Title() string        { return t.state.Title }
func (t *Task) Description() string  { return t.state.Description }
func (t *Task) Completed() bool      { return t.state.Completed }
func (t *Task) OwnerID() Identifier  { return t.state.OwnerID }
func (t *Task) CreatedAt() time.Time { return t.state.CreatedAt }
func (t *Task) UpdatedAt() time.Time { return t.state.UpdatedAt }

// UpdateTitle replaces the title and touches UpdatedAt. Empty titles are allowed.
func (t *Task) UpdateTitle(title string) {
	t.state.Title = title
	t.touch()
}

// UpdateDescription replaces the description and touches UpdatedAt.
func (t *Task) UpdateDescription(description string) {
	t.state.Description = description
	t.touch()
}

// MarkCompleted sets Completed and touches UpdatedAt.
func (t *Task) MarkCompleted() {
	t.state.Completed = true
	t.touch()
}

// MarkIncomplete clears Completed and touches UpdatedAt.
func (t *Task) MarkIncomplete() {
	t.state.Completed = false
	t.touch()
}

// Record returns a copy of the task's state for persistence.
func (t *Task) Record() TaskRecord { return t.state }

func (t *Task) touch() { t.state.UpdatedAt = touch(t.state.UpdatedAt) }
