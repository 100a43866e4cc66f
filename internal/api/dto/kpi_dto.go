package dto

import (
	"time"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// CreateKpiRequest payload.
type CreateKpiRequest struct {
	EmployeeID  string     `json:"employee_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TargetValue string     `json:"target_value"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateKpiRequest carries a partial update.
type UpdateKpiRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	TargetValue   *string    `json:"target_value"`
	AchievedValue *string    `json:"achieved_value"`
	Status        *string    `json:"status"`
	DueDate       *time.Time `json:"due_date"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateKpiRequest) ToPatch() domain.KpiPatch {
	patch := domain.KpiPatch{
		Title:         r.Title,
		Description:   r.Description,
		TargetValue:   r.TargetValue,
		AchievedValue: r.AchievedValue,
		DueDate:       r.DueDate,
	}
	if r.Status != nil {
		status := domain.KpiStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// KpiResponse representation.
type KpiResponse struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employee_id"`
	AssignedByID  string     `json:"assigned_by_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	TargetValue   string     `json:"target_value"`
	AchievedValue string     `json:"achieved_value"`
	Status        string     `json:"status"`
	DueDate       *time.Time `json:"due_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewKpiResponse maps a domain KPI.
func NewKpiResponse(k *domain.Kpi) KpiResponse {
	return KpiResponse{
		ID:            k.ID,
		EmployeeID:    k.EmployeeID,
		AssignedByID:  k.AssignedByID,
		Title:         k.Title,
		Description:   k.Description,
		TargetValue:   k.TargetValue,
		AchievedValue: k.AchievedValue,
		Status:        string(k.Status),
		DueDate:       k.DueDate,
		CreatedAt:     k.CreatedAt,
		UpdatedAt:     k.UpdatedAt,
	}
}

// NewKpiResponses maps a slice of domain KPIs.
func NewKpiResponses(kpis []domain.Kpi) []KpiResponse {
	out := make([]KpiResponse, 0, len(kpis))
	for i := range kpis {
		out = append(out, NewKpiResponse(&kpis[i]))
	}
	return out
}
