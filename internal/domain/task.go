package domain

import "time"

// TaskStatus enumerates task lifecycle states.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
)

// TaskPriority enumerates urgency levels.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// Task is a unit of project work assigned to an account.
type Task struct {
	ID           string
	ProjectID    string
	AssignedToID *string
	AssignedByID string
	Title        string
	Description  string
	Status       TaskStatus
	Priority     TaskPriority
	DueDate      *time.Time
	HoursLogged  float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaskPatch carries a partial task update.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	Priority     *TaskPriority
	DueDate      *time.Time
	HoursLogged  *float64
	AssignedToID *string
}

// Apply copies the present fields onto the task.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.HoursLogged != nil {
		t.HoursLogged = *p.HoursLogged
	}
	if p.AssignedToID != nil {
		t.AssignedToID = p.AssignedToID
	}
}
