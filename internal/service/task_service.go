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

// TaskService coordinates task workflows.
type TaskService struct {
	tasks      repository.TaskRepository
	projects   repository.ProjectRepository
	accounts   repository.AccountRepository
	gate       *authz.Gate
	fields     authz.FieldRestrictionPolicy
	dispatcher events.Dispatcher
}

// TaskDependencies bundles collaborators for the task service.
type TaskDependencies struct {
	TaskRepo    repository.TaskRepository
	ProjectRepo repository.ProjectRepository
	AccountRepo repository.AccountRepository
	Gate        *authz.Gate
	Dispatcher  events.Dispatcher
}

// TaskCreateInput describes the task creation payload.
type TaskCreateInput struct {
	ProjectID    string
	AssignedToID *string
	Title        string
	Description  string
	Priority     domain.TaskPriority
	DueDate      *time.Time
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		projects:   deps.ProjectRepo,
		accounts:   deps.AccountRepo,
		gate:       deps.Gate,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTask registers a new task under a project. The caller is recorded
// as the assigner.
func (s *TaskService) CreateTask(ctx context.Context, p *authz.Principal, input TaskCreateInput) (*domain.Task, error) {
	if err := s.gate.Guard(ctx, p, authz.OpCreate, authz.KindTask, nil); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("task title is required", nil)
	}
	if _, err := s.projects.GetByID(ctx, input.ProjectID); err != nil {
		return nil, mapNoRows(err, "project")
	}
	if input.AssignedToID != nil {
		if _, err := s.accounts.GetByID(ctx, *input.AssignedToID); err != nil {
			return nil, mapNoRows(err, "assignee")
		}
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !validTaskPriority(priority) {
		return nil, apperrors.NewValidationError("unknown task priority", map[string]any{"priority": priority})
	}
	task := &domain.Task{
		ProjectID:    input.ProjectID,
		AssignedToID: input.AssignedToID,
		AssignedByID: p.ID,
		Title:        title,
		Description:  input.Description,
		Status:       domain.TaskStatusTodo,
		Priority:     priority,
		DueDate:      input.DueDate,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventTaskChanged, p.ID, "CREATE", "Task", task.ID, "task "+task.Title+" created")
	return task, nil
}

// GetTask fetches one task within the caller's scope.
func (s *TaskService) GetTask(ctx context.Context, p *authz.Principal, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "task")
	}
	if err := s.gate.Guard(ctx, p, authz.OpView, authz.KindTask, taskRef(task)); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns the tasks visible to the caller: everything for an
// admin, own assignments otherwise.
func (s *TaskService) ListTasks(ctx context.Context, p *authz.Principal) ([]domain.Task, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindTask, nil); err != nil {
		return nil, err
	}
	if s.gate.Scope().ListScope(p, authz.KindTask) == authz.ScopeAll {
		return s.tasks.List(ctx)
	}
	return s.tasks.ListByAssignee(ctx, p.ID)
}

// ListMyTasks returns tasks assigned to the caller.
func (s *TaskService) ListMyTasks(ctx context.Context, p *authz.Principal) ([]domain.Task, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindTask, nil); err != nil {
		return nil, err
	}
	return s.tasks.ListByAssignee(ctx, p.ID)
}

// ListProjectTasks returns a project's tasks, narrowed to the caller's
// visible set.
func (s *TaskService) ListProjectTasks(ctx context.Context, p *authz.Principal, projectID string) ([]domain.Task, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindTask, nil); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, mapNoRows(err, "project")
	}
	all, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.Task, 0, len(all))
	for i := range all {
		ok, err := s.gate.Scope().CanAccess(ctx, p, authz.KindTask, *taskRef(&all[i]))
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, all[i])
		}
	}
	return visible, nil
}

// UpdateTask applies a partial update within the caller's scope. A plain
// assignee's payload is narrowed to status and hours logged before the
// write; the remaining fields still apply instead of the call failing.
func (s *TaskService) UpdateTask(ctx context.Context, p *authz.Principal, id string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "task")
	}
	if err := s.gate.Guard(ctx, p, authz.OpUpdate, authz.KindTask, taskRef(task)); err != nil {
		return nil, err
	}
	patch = s.fields.SanitizeTaskPatch(p, task.AssignedByID, patch)
	if patch.Status != nil && !validTaskStatus(*patch.Status) {
		return nil, apperrors.NewValidationError("unknown task status", map[string]any{"status": *patch.Status})
	}
	if patch.Priority != nil && !validTaskPriority(*patch.Priority) {
		return nil, apperrors.NewValidationError("unknown task priority", map[string]any{"priority": *patch.Priority})
	}
	if patch.HoursLogged != nil && *patch.HoursLogged < 0 {
		return nil, apperrors.NewValidationError("hours logged cannot be negative", map[string]any{"hours_logged": *patch.HoursLogged})
	}
	if patch.AssignedToID != nil {
		if _, err := s.accounts.GetByID(ctx, *patch.AssignedToID); err != nil {
			return nil, mapNoRows(err, "assignee")
		}
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("task title is required", nil)
		}
		patch.Title = &trimmed
	}
	patch.Apply(task)
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventTaskChanged, p.ID, "UPDATE", "Task", task.ID, "")
	return task, nil
}

func validTaskStatus(status domain.TaskStatus) bool {
	switch status {
	case domain.TaskStatusTodo, domain.TaskStatusInProgress, domain.TaskStatusDone, domain.TaskStatusBlocked:
		return true
	}
	return false
}

func validTaskPriority(priority domain.TaskPriority) bool {
	switch priority {
	case domain.TaskPriorityLow, domain.TaskPriorityMedium, domain.TaskPriorityHigh:
		return true
	}
	return false
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, p *authz.Principal, id string) error {
	if err := s.gate.Authorize(ctx, p, authz.OpDelete, authz.KindTask, id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.dispatcher, events.EventTaskChanged, p.ID, "DELETE", "Task", id, "")
	return nil
}
