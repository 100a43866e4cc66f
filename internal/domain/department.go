package domain

import "time"

// Department represents a high-level organizational unit.
type Department struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DepartmentPatch carries a partial department update.
type DepartmentPatch struct {
	Name        *string
	Description *string
}

// Apply copies the present fields onto the department.
func (p DepartmentPatch) Apply(d *Department) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
}
