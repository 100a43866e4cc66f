package dto

import (
	"time"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// CreateDepartmentRequest payload.
type CreateDepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateDepartmentRequest carries a partial update.
type UpdateDepartmentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateDepartmentRequest) ToPatch() domain.DepartmentPatch {
	return domain.DepartmentPatch{Name: r.Name, Description: r.Description}
}

// DepartmentResponse representation.
type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDepartmentResponse maps a domain department.
func NewDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// NewDepartmentResponses maps a slice of domain departments.
func NewDepartmentResponses(departments []domain.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(departments))
	for i := range departments {
		out = append(out, NewDepartmentResponse(&departments[i]))
	}
	return out
}
