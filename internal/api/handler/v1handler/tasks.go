package v1handler

import (
	"net/http"
	"taskmanager/internal/tasks"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/serrors"
	"time"

	"github.com/go-chi/chi/v5"
)

type createTaskRequest struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=10000"`
}

type updateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	Completed   *bool   `json:"completed"`
}

// Task is the public representation of a domain.Task.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskList wraps a list of tasks.
type TaskList struct {
	Items []Task `json:"items"`
}

func DomainTaskToV1(in *domain.Task) Task {
	return Task{
		ID:          in.ID().String(),
		Title:       in.Title(),
		Description: in.Description(),
		Completed:   in.Completed(),
		OwnerID:     in.OwnerID().String(),
		CreatedAt:   in.CreatedAt(),
		UpdatedAt:   in.UpdatedAt(),
	}
}

// requester returns the authenticated user id. Routes behind RequireBearer
// always have one.
func requester(r *http.Request) (domain.Identifier, error) {
	id, ok := UserIDFromContext(r.Context())
	if !ok {
		return domain.Identifier{}, serrors.KindOnly(serrors.ErrUnauthorized)
	}

	return id, nil
}

// ListTasks handles GET /v1/tasks.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := requester(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	list, err := h.deps.Tasks.GetTasks(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	out := TaskList{Items: make([]Task, 0, len(list))}
	for _, t := range list {
		out.Items = append(out.Items, DomainTaskToV1(t))
	}

	writeJSON(r.Context(), w, http.StatusOK, out)
}

// CreateTask handles POST /v1/tasks.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, err := requester(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	var body createTaskRequest
	if err := h.decode(w, r, &body); err != nil {
		h.writeError(w, r, err)

		return
	}

	task, err := h.deps.Tasks.CreateTask(r.Context(), tasks.CreateTaskRequest{
		Title:       body.Title,
		Description: body.Description,
		OwnerID:     userID,
	})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusCreated, DomainTaskToV1(task))
}

// GetTask handles GET /v1/tasks/{id}.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, err := requester(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	task, err := h.deps.Tasks.GetTaskByID(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, DomainTaskToV1(task))
}

// UpdateTask handles PATCH /v1/tasks/{id}.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, err := requester(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	var body updateTaskRequest
	if err := h.decode(w, r, &body); err != nil {
		h.writeError(w, r, err)

		return
	}

	task, err := h.deps.Tasks.UpdateTask(r.Context(), tasks.UpdateTaskRequest{
		ID:          chi.URLParam(r, "id"),
		RequesterID: userID,
		Title:       body.Title,
		Description: body.Description,
		Completed:   body.Completed,
	})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, DomainTaskToV1(task))
}

// DeleteTask handles DELETE /v1/tasks/{id}.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, err := requester(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	if err := h.deps.Tasks.DeleteTask(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
