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

// ProjectService coordinates project workflows.
type ProjectService struct {
	projects   repository.ProjectRepository
	tasks      repository.TaskRepository
	accounts   repository.AccountRepository
	gate       *authz.Gate
	dispatcher events.Dispatcher
}

// ProjectDependencies bundles collaborators for the project service.
type ProjectDependencies struct {
	ProjectRepo repository.ProjectRepository
	TaskRepo    repository.TaskRepository
	AccountRepo repository.AccountRepository
	Gate        *authz.Gate
	Dispatcher  events.Dispatcher
}

// ProjectCreateInput describes the project creation payload.
type ProjectCreateInput struct {
	Name        string
	Description string
	ManagerID   *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      domain.ProjectStatus
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{
		projects:   deps.ProjectRepo,
		tasks:      deps.TaskRepo,
		accounts:   deps.AccountRepo,
		gate:       deps.Gate,
		dispatcher: deps.Dispatcher,
	}
}

// CreateProject registers a new project. When no manager is named the
// caller becomes the manager.
func (s *ProjectService) CreateProject(ctx context.Context, p *authz.Principal, input ProjectCreateInput) (*domain.Project, error) {
	if err := s.gate.Guard(ctx, p, authz.OpCreate, authz.KindProject, nil); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("project name is required", nil)
	}
	managerID := input.ManagerID
	if managerID == nil {
		managerID = &p.ID
	}
	if _, err := s.accounts.GetByID(ctx, *managerID); err != nil {
		return nil, mapNoRows(err, "manager")
	}
	status := input.Status
	if status == "" {
		status = domain.ProjectStatusActive
	}
	if !validProjectStatus(status) {
		return nil, apperrors.NewValidationError("unknown project status", map[string]any{"status": status})
	}
	project := &domain.Project{
		Name:        name,
		Description: input.Description,
		ManagerID:   managerID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      status,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventProjectChanged, p.ID, "CREATE", "Project", project.ID, "project "+project.Name+" created")
	return project, nil
}

// GetProject fetches one project within the caller's scope.
func (s *ProjectService) GetProject(ctx context.Context, p *authz.Principal, id string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "project")
	}
	if err := s.gate.Guard(ctx, p, authz.OpView, authz.KindProject, projectRef(project)); err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects returns the projects visible to the caller: everything for
// an admin, managed projects for a manager, assigned projects otherwise.
func (s *ProjectService) ListProjects(ctx context.Context, p *authz.Principal) ([]domain.Project, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindProject, nil); err != nil {
		return nil, err
	}
	switch s.gate.Scope().ListScope(p, authz.KindProject) {
	case authz.ScopeAll:
		return s.projects.List(ctx)
	case authz.ScopeTeam:
		return s.projects.ListByManager(ctx, p.ID)
	case authz.ScopeAssigned:
		return s.listAssigned(ctx, p.ID)
	}
	return []domain.Project{}, nil
}

// ListManagedProjects returns projects the caller manages.
func (s *ProjectService) ListManagedProjects(ctx context.Context, p *authz.Principal) ([]domain.Project, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindProject, nil); err != nil {
		return nil, err
	}
	return s.projects.ListByManager(ctx, p.ID)
}

// ListAssignedProjects returns the deduplicated set of projects holding at
// least one task assigned to the caller.
func (s *ProjectService) ListAssignedProjects(ctx context.Context, p *authz.Principal) ([]domain.Project, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindProject, nil); err != nil {
		return nil, err
	}
	return s.listAssigned(ctx, p.ID)
}

func (s *ProjectService) listAssigned(ctx context.Context, accountID string) ([]domain.Project, error) {
	ids, err := s.tasks.AssignedProjectIDs(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Project{}, nil
	}
	return s.projects.ListByIDs(ctx, ids)
}

// UpdateProject applies a partial update within the caller's scope.
func (s *ProjectService) UpdateProject(ctx context.Context, p *authz.Principal, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "project")
	}
	if err := s.gate.Guard(ctx, p, authz.OpUpdate, authz.KindProject, projectRef(project)); err != nil {
		return nil, err
	}
	if patch.Status != nil && !validProjectStatus(*patch.Status) {
		return nil, apperrors.NewValidationError("unknown project status", map[string]any{"status": *patch.Status})
	}
	if patch.ManagerID != nil {
		if _, err := s.accounts.GetByID(ctx, *patch.ManagerID); err != nil {
			return nil, mapNoRows(err, "manager")
		}
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("project name is required", nil)
		}
		patch.Name = &trimmed
	}
	patch.Apply(project)
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventProjectChanged, p.ID, "UPDATE", "Project", project.ID, "")
	return project, nil
}

func validProjectStatus(status domain.ProjectStatus) bool {
	switch status {
	case domain.ProjectStatusActive, domain.ProjectStatusCompleted, domain.ProjectStatusOnHold, domain.ProjectStatusCancelled:
		return true
	}
	return false
}

// DeleteProject removes a project.
func (s *ProjectService) DeleteProject(ctx context.Context, p *authz.Principal, id string) error {
	if err := s.gate.Authorize(ctx, p, authz.OpDelete, authz.KindProject, id); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.dispatcher, events.EventProjectChanged, p.ID, "DELETE", "Project", id, "")
	return nil
}
