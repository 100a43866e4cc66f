package domain

import "time"

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// Project groups tasks under a managing account.
type Project struct {
	ID          string
	Name        string
	Description string
	ManagerID   *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      ProjectStatus
	TaskCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectPatch carries a partial project update.
type ProjectPatch struct {
	Name        *string
	Description *string
	ManagerID   *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *ProjectStatus
}

// Apply copies the present fields onto the project.
func (p ProjectPatch) Apply(pr *Project) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.ManagerID != nil {
		pr.ManagerID = p.ManagerID
	}
	if p.StartDate != nil {
		pr.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		pr.EndDate = p.EndDate
	}
	if p.Status != nil {
		pr.Status = *p.Status
	}
}
