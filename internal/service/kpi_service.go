package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/workforce-service/internal/authz"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/events"
	"github.com/spec-kit/workforce-service/internal/repository"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// KpiService coordinates KPI workflows.
type KpiService struct {
	kpis       repository.KpiRepository
	accounts   repository.AccountRepository
	gate       *authz.Gate
	dispatcher events.Dispatcher
}

// KpiCreateInput describes the KPI creation payload.
type KpiCreateInput struct {
	EmployeeID  string
	Title       string
	Description string
	TargetValue string
	DueDate     *time.Time
}

// NewKpiService constructs the service.
func NewKpiService(kpis repository.KpiRepository, accounts repository.AccountRepository, gate *authz.Gate, dispatcher events.Dispatcher) *KpiService {
	return &KpiService{kpis: kpis, accounts: accounts, gate: gate, dispatcher: dispatcher}
}

// CreateKpi assigns a new KPI to an employee. The caller is recorded as
// the assigner.
func (s *KpiService) CreateKpi(ctx context.Context, p *authz.Principal, input KpiCreateInput) (*domain.Kpi, error) {
	if err := s.gate.Guard(ctx, p, authz.OpCreate, authz.KindKpi, nil); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("kpi title is required", nil)
	}
	if _, err := s.accounts.GetByID(ctx, input.EmployeeID); err != nil {
		return nil, mapNoRows(err, "employee")
	}
	kpi := &domain.Kpi{
		EmployeeID:   input.EmployeeID,
		AssignedByID: p.ID,
		Title:        title,
		Description:  input.Description,
		TargetValue:  input.TargetValue,
		Status:       domain.KpiStatusPending,
		DueDate:      input.DueDate,
	}
	if err := s.kpis.Create(ctx, kpi); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventKpiChanged, p.ID, "CREATE", "Kpi", kpi.ID, "kpi "+kpi.Title+" assigned")
	return kpi, nil
}

// GetKpi fetches one KPI within the caller's scope.
func (s *KpiService) GetKpi(ctx context.Context, p *authz.Principal, id string) (*domain.Kpi, error) {
	kpi, err := s.kpis.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "kpi")
	}
	if err := s.gate.Guard(ctx, p, authz.OpView, authz.KindKpi, kpiRef(kpi)); err != nil {
		return nil, err
	}
	return kpi, nil
}

// ListKpis returns the KPIs visible to the caller: everything for an
// admin, own KPIs otherwise.
func (s *KpiService) ListKpis(ctx context.Context, p *authz.Principal) ([]domain.Kpi, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindKpi, nil); err != nil {
		return nil, err
	}
	if s.gate.Scope().ListScope(p, authz.KindKpi) == authz.ScopeAll {
		return s.kpis.List(ctx)
	}
	return s.kpis.ListByEmployee(ctx, p.ID)
}

// ListMyKpis returns the caller's own KPIs.
func (s *KpiService) ListMyKpis(ctx context.Context, p *authz.Principal) ([]domain.Kpi, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindKpi, nil); err != nil {
		return nil, err
	}
	return s.kpis.ListByEmployee(ctx, p.ID)
}

// ListEmployeeKpis returns one employee's KPIs, narrowed to the caller's
// visible set. A caller outside the employee's scope gets Forbidden, not
// an empty list, so the denial is observable.
func (s *KpiService) ListEmployeeKpis(ctx context.Context, p *authz.Principal, employeeID string) ([]domain.Kpi, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindKpi, nil); err != nil {
		return nil, err
	}
	if _, err := s.accounts.GetByID(ctx, employeeID); err != nil {
		return nil, mapNoRows(err, "employee")
	}
	ok, err := s.gate.Scope().CanAccess(ctx, p, authz.KindKpi, authz.RecordRef{SubjectID: employeeID})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewForbidden("record out of scope")
	}
	return s.kpis.ListByEmployee(ctx, employeeID)
}

// UpdateKpi applies a partial update within the caller's scope.
func (s *KpiService) UpdateKpi(ctx context.Context, p *authz.Principal, id string, patch domain.KpiPatch) (*domain.Kpi, error) {
	kpi, err := s.kpis.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "kpi")
	}
	if err := s.gate.Guard(ctx, p, authz.OpUpdate, authz.KindKpi, kpiRef(kpi)); err != nil {
		return nil, err
	}
	if patch.Status != nil && !validKpiStatus(*patch.Status) {
		return nil, apperrors.NewValidationError("unknown kpi status", map[string]any{"status": *patch.Status})
	}
	patch.Apply(kpi)
	if err := s.kpis.Update(ctx, kpi); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventKpiChanged, p.ID, "UPDATE", "Kpi", kpi.ID, "")
	return kpi, nil
}

func validKpiStatus(status domain.KpiStatus) bool {
	switch status {
	case domain.KpiStatusPending, domain.KpiStatusInProgress, domain.KpiStatusAchieved, domain.KpiStatusNotAchieved:
		return true
	}
	return false
}

// DeleteKpi removes a KPI.
func (s *KpiService) DeleteKpi(ctx context.Context, p *authz.Principal, id string) error {
	if err := s.gate.Authorize(ctx, p, authz.OpDelete, authz.KindKpi, id); err != nil {
		return err
	}
	if err := s.kpis.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.dispatcher, events.EventKpiChanged, p.ID, "DELETE", "Kpi", id, "")
	return nil
}
