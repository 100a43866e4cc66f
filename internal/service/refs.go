package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workforce-service/internal/authz"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/repository"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// recordSource resolves the ownership chain of any guarded record for the
// authorization gate. Unknown ids surface as NotFound.
type recordSource struct {
	accounts    repository.AccountRepository
	departments repository.DepartmentRepository
	projects    repository.ProjectRepository
	tasks       repository.TaskRepository
	kpis        repository.KpiRepository
	leaves      repository.LeaveRequestRepository
	reviews     repository.PerformanceReviewRepository
}

// RecordSourceDependencies bundles the repositories behind ref resolution.
type RecordSourceDependencies struct {
	AccountRepo    repository.AccountRepository
	DepartmentRepo repository.DepartmentRepository
	ProjectRepo    repository.ProjectRepository
	TaskRepo       repository.TaskRepository
	KpiRepo        repository.KpiRepository
	LeaveRepo      repository.LeaveRequestRepository
	ReviewRepo     repository.PerformanceReviewRepository
}

// NewRecordSource builds the gate's RefResolver.
func NewRecordSource(deps RecordSourceDependencies) authz.RefResolver {
	return &recordSource{
		accounts:    deps.AccountRepo,
		departments: deps.DepartmentRepo,
		projects:    deps.ProjectRepo,
		tasks:       deps.TaskRepo,
		kpis:        deps.KpiRepo,
		leaves:      deps.LeaveRepo,
		reviews:     deps.ReviewRepo,
	}
}

func (s *recordSource) ResolveRef(ctx context.Context, kind authz.Kind, id string) (*authz.RecordRef, error) {
	switch kind {
	case authz.KindAccount:
		account, err := s.accounts.GetByID(ctx, id)
		if err != nil {
			return nil, mapNoRows(err, "account")
		}
		return accountRef(account), nil
	case authz.KindDepartment:
		dept, err := s.departments.GetByID(ctx, id)
		if err != nil {
			return nil, mapNoRows(err, "department")
		}
		return &authz.RecordRef{ID: dept.ID}, nil
	case authz.KindProject:
		project, err := s.projects.GetByID(ctx, id)
		if err != nil {
			return nil, mapNoRows(err, "project")
		}
		return projectRef(project), nil
	case authz.KindTask:
		task, err := s.tasks.GetByID(ctx, id)
		if err != nil {
			return nil, mapNoRows(err, "task")
		}
		return taskRef(task), nil
	case authz.KindKpi:
		kpi, err := s.kpis.GetByID(ctx, id)
		if err != nil {
			return nil, mapNoRows(err, "kpi")
		}
		return kpiRef(kpi), nil
	case authz.KindLeaveRequest:
		lr, err := s.leaves.GetByID(ctx, id)
		if err != nil {
			return nil, mapNoRows(err, "leave request")
		}
		return leaveRequestRef(ctx, s.accounts, lr)
	case authz.KindPerformanceReview:
		review, err := s.reviews.GetByID(ctx, id)
		if err != nil {
			return nil, mapNoRows(err, "performance review")
		}
		return reviewRef(review), nil
	}
	return nil, apperrors.NewNotFound(string(kind), nil)
}

// leaveRequestRef builds a request's ownership chain by loading the
// requesting account's reporting manager. A request whose account has
// since disappeared keeps an empty manager id so only admins reach it.
func leaveRequestRef(ctx context.Context, accounts repository.AccountRepository, lr *domain.LeaveRequest) (*authz.RecordRef, error) {
	ref := &authz.RecordRef{ID: lr.ID, SubjectID: lr.AccountID}
	account, err := accounts.GetByID(ctx, lr.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ref, nil
		}
		return nil, err
	}
	ref.ManagerID = deref(account.ReportingManagerID)
	return ref, nil
}

func accountRef(a *domain.Account) *authz.RecordRef {
	return &authz.RecordRef{ID: a.ID, SubjectID: a.ID, ManagerID: deref(a.ReportingManagerID)}
}

func projectRef(p *domain.Project) *authz.RecordRef {
	return &authz.RecordRef{ID: p.ID, SubjectID: deref(p.ManagerID)}
}

func taskRef(t *domain.Task) *authz.RecordRef {
	return &authz.RecordRef{ID: t.ID, SubjectID: deref(t.AssignedToID), ActorID: t.AssignedByID}
}

func kpiRef(k *domain.Kpi) *authz.RecordRef {
	return &authz.RecordRef{ID: k.ID, SubjectID: k.EmployeeID, ActorID: k.AssignedByID}
}

func reviewRef(r *domain.PerformanceReview) *authz.RecordRef {
	return &authz.RecordRef{ID: r.ID, SubjectID: r.EmployeeID, ActorID: r.ReviewerID}
}

func mapNoRows(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
