package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workforce-service/internal/authz"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/events"
	"github.com/spec-kit/workforce-service/internal/repository"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// DepartmentService coordinates department administration.
type DepartmentService struct {
	departments repository.DepartmentRepository
	gate        *authz.Gate
	dispatcher  events.Dispatcher
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository, gate *authz.Gate, dispatcher events.Dispatcher) *DepartmentService {
	return &DepartmentService{departments: departments, gate: gate, dispatcher: dispatcher}
}

// CreateDepartment registers a new department with a unique name.
func (s *DepartmentService) CreateDepartment(ctx context.Context, p *authz.Principal, name, description string) (*domain.Department, error) {
	if err := s.gate.Guard(ctx, p, authz.OpCreate, authz.KindDepartment, nil); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("department name is required", nil)
	}
	if err := s.ensureNameFree(ctx, name); err != nil {
		return nil, err
	}
	dept := &domain.Department{Name: name, Description: description}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventDepartmentChanged, p.ID, "CREATE", "Department", dept.ID, "department "+dept.Name+" created")
	return dept, nil
}

// GetDepartment fetches one department.
func (s *DepartmentService) GetDepartment(ctx context.Context, p *authz.Principal, id string) (*domain.Department, error) {
	if err := s.gate.Guard(ctx, p, authz.OpView, authz.KindDepartment, nil); err != nil {
		return nil, err
	}
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "department")
	}
	return dept, nil
}

// ListDepartments returns every department; departments carry no
// per-record ownership so all roles see the full list.
func (s *DepartmentService) ListDepartments(ctx context.Context, p *authz.Principal) ([]domain.Department, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindDepartment, nil); err != nil {
		return nil, err
	}
	return s.departments.List(ctx)
}

// UpdateDepartment applies a partial update.
func (s *DepartmentService) UpdateDepartment(ctx context.Context, p *authz.Principal, id string, patch domain.DepartmentPatch) (*domain.Department, error) {
	if err := s.gate.Guard(ctx, p, authz.OpUpdate, authz.KindDepartment, nil); err != nil {
		return nil, err
	}
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "department")
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("department name is required", nil)
		}
		if trimmed != dept.Name {
			if err := s.ensureNameFree(ctx, trimmed); err != nil {
				return nil, err
			}
		}
		patch.Name = &trimmed
	}
	patch.Apply(dept)
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventDepartmentChanged, p.ID, "UPDATE", "Department", dept.ID, "")
	return dept, nil
}

// DeleteDepartment removes a department.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, p *authz.Principal, id string) error {
	if err := s.gate.Guard(ctx, p, authz.OpDelete, authz.KindDepartment, nil); err != nil {
		return err
	}
	if _, err := s.departments.GetByID(ctx, id); err != nil {
		return mapNoRows(err, "department")
	}
	if err := s.departments.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.dispatcher, events.EventDepartmentChanged, p.ID, "DELETE", "Department", id, "")
	return nil
}

func (s *DepartmentService) ensureNameFree(ctx context.Context, name string) error {
	_, err := s.departments.GetByName(ctx, name)
	if err == nil {
		return apperrors.NewConflict("department name already exists", map[string]any{"name": name})
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}
