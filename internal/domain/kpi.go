package domain

import "time"

// KpiStatus enumerates KPI lifecycle states.
type KpiStatus string

const (
	KpiStatusPending     KpiStatus = "PENDING"
	KpiStatusInProgress  KpiStatus = "IN_PROGRESS"
	KpiStatusAchieved    KpiStatus = "ACHIEVED"
	KpiStatusNotAchieved KpiStatus = "NOT_ACHIEVED"
)

// Kpi tracks a performance indicator assigned to an employee.
type Kpi struct {
	ID            string
	EmployeeID    string
	AssignedByID  string
	Title         string
	Description   string
	TargetValue   string
	AchievedValue string
	Status        KpiStatus
	DueDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// KpiPatch carries a partial KPI update.
type KpiPatch struct {
	Title         *string
	Description   *string
	TargetValue   *string
	AchievedValue *string
	Status        *KpiStatus
	DueDate       *time.Time
}

// Apply copies the present fields onto the KPI.
func (p KpiPatch) Apply(k *Kpi) {
	if p.Title != nil {
		k.Title = *p.Title
	}
	if p.Description != nil {
		k.Description = *p.Description
	}
	if p.TargetValue != nil {
		k.TargetValue = *p.TargetValue
	}
	if p.AchievedValue != nil {
		k.AchievedValue = *p.AchievedValue
	}
	if p.Status != nil {
		k.Status = *p.Status
	}
	if p.DueDate != nil {
		k.DueDate = p.DueDate
	}
}
