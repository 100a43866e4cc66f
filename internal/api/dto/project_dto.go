package dto

import (
	"time"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ManagerID   *string    `json:"manager_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `json:"status"`
}

// UpdateProjectRequest carries a partial update.
type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	ManagerID   *string    `json:"manager_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      *string    `json:"status"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateProjectRequest) ToPatch() domain.ProjectPatch {
	patch := domain.ProjectPatch{
		Name:        r.Name,
		Description: r.Description,
		ManagerID:   r.ManagerID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
	if r.Status != nil {
		status := domain.ProjectStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// ProjectResponse representation. TaskCount is computed by the store with
// an eager join, so listing projects never triggers per-row task loads.
type ProjectResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ManagerID   *string    `json:"manager_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `json:"status"`
	TaskCount   int        `json:"task_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewProjectResponse maps a domain project.
func NewProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ManagerID:   p.ManagerID,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      string(p.Status),
		TaskCount:   p.TaskCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProjectResponses maps a slice of domain projects.
func NewProjectResponses(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}
