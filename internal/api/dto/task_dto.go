package dto

import (
	"time"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// CreateTaskRequest payload.
type CreateTaskRequest struct {
	ProjectID    string     `json:"project_id"`
	AssignedToID *string    `json:"assigned_to_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"due_date"`
}

// UpdateTaskRequest carries a partial update.
type UpdateTaskRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	Priority     *string    `json:"priority"`
	DueDate      *time.Time `json:"due_date"`
	HoursLogged  *float64   `json:"hours_logged"`
	AssignedToID *string    `json:"assigned_to_id"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateTaskRequest) ToPatch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:        r.Title,
		Description:  r.Description,
		DueDate:      r.DueDate,
		HoursLogged:  r.HoursLogged,
		AssignedToID: r.AssignedToID,
	}
	if r.Status != nil {
		status := domain.TaskStatus(*r.Status)
		patch.Status = &status
	}
	if r.Priority != nil {
		priority := domain.TaskPriority(*r.Priority)
		patch.Priority = &priority
	}
	return patch
}

// TaskResponse representation.
type TaskResponse struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"project_id"`
	AssignedToID *string    `json:"assigned_to_id"`
	AssignedByID string     `json:"assigned_by_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"due_date"`
	HoursLogged  float64    `json:"hours_logged"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewTaskResponse maps a domain task.
func NewTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		AssignedToID: t.AssignedToID,
		AssignedByID: t.AssignedByID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		DueDate:      t.DueDate,
		HoursLogged:  t.HoursLogged,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// NewTaskResponses maps a slice of domain tasks.
func NewTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}
