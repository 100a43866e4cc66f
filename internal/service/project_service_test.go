package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/workforce-service/internal/domain"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

func newProjectService(e *env) *ProjectService {
	return NewProjectService(ProjectDependencies{
		ProjectRepo: e.projects,
		TaskRepo:    e.tasks,
		AccountRepo: e.accounts,
		Gate:        e.gate,
	})
}

func TestCreateProjectDefaultsManagerToCaller(t *testing.T) {
	e := newEnv()
	svc := newProjectService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	employee := e.addAccount("e1", domain.RoleEmployee, &manager.ID)

	project, err := svc.CreateProject(context.Background(), asPrincipal(manager), ProjectCreateInput{Name: "apollo"})
	require.NoError(t, err)
	require.NotNil(t, project.ManagerID)
	assert.Equal(t, manager.ID, *project.ManagerID)
	assert.Equal(t, domain.ProjectStatusActive, project.Status)

	_, err = svc.CreateProject(context.Background(), asPrincipal(employee), ProjectCreateInput{Name: "shadow"})
	assert.True(t, apperrors.HasCode(err, "FORBIDDEN"))
}

func TestListProjectsAssignedScope(t *testing.T) {
	e := newEnv()
	svc := newProjectService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	employee := e.addAccount("e1", domain.RoleEmployee, &manager.ID)

	assigned, err := svc.CreateProject(context.Background(), asPrincipal(manager), ProjectCreateInput{Name: "apollo"})
	require.NoError(t, err)
	_, err = svc.CreateProject(context.Background(), asPrincipal(manager), ProjectCreateInput{Name: "gemini"})
	require.NoError(t, err)

	task := &domain.Task{ProjectID: assigned.ID, AssignedToID: &employee.ID, AssignedByID: manager.ID, Title: "t", Status: domain.TaskStatusTodo}
	require.NoError(t, e.tasks.Create(context.Background(), task))

	visible, err := svc.ListProjects(context.Background(), asPrincipal(employee))
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, assigned.ID, visible[0].ID)

	managed, err := svc.ListProjects(context.Background(), asPrincipal(manager))
	require.NoError(t, err)
	assert.Len(t, managed, 2)
}

func TestGetProjectScope(t *testing.T) {
	e := newEnv()
	svc := newProjectService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	other := e.addAccount("m2", domain.RoleManager, nil)
	employee := e.addAccount("e1", domain.RoleEmployee, &manager.ID)

	project, err := svc.CreateProject(context.Background(), asPrincipal(manager), ProjectCreateInput{Name: "apollo"})
	require.NoError(t, err)

	_, err = svc.GetProject(context.Background(), asPrincipal(other), project.ID)
	assert.True(t, apperrors.HasCode(err, "FORBIDDEN"))

	// the employee gains visibility once a task in it is theirs
	_, err = svc.GetProject(context.Background(), asPrincipal(employee), project.ID)
	assert.True(t, apperrors.HasCode(err, "FORBIDDEN"))

	task := &domain.Task{ProjectID: project.ID, AssignedToID: &employee.ID, AssignedByID: manager.ID, Title: "t", Status: domain.TaskStatusTodo}
	require.NoError(t, e.tasks.Create(context.Background(), task))

	got, err := svc.GetProject(context.Background(), asPrincipal(employee), project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)
}

func TestUpdateProjectManagerOnly(t *testing.T) {
	e := newEnv()
	svc := newProjectService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	project, err := svc.CreateProject(context.Background(), asPrincipal(manager), ProjectCreateInput{Name: "apollo"})
	require.NoError(t, err)

	completed := domain.ProjectStatusCompleted
	updated, err := svc.UpdateProject(context.Background(), asPrincipal(manager), project.ID, domain.ProjectPatch{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusCompleted, updated.Status)

	_, err = svc.UpdateProject(context.Background(), asPrincipal(manager), "missing", domain.ProjectPatch{Status: &completed})
	assert.True(t, apperrors.HasCode(err, "NOT_FOUND"))
}

func TestDeleteProjectAdminOnly(t *testing.T) {
	e := newEnv()
	svc := newProjectService(e)
	admin := e.addAccount("root", domain.RoleAdmin, nil)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	project, err := svc.CreateProject(context.Background(), asPrincipal(manager), ProjectCreateInput{Name: "apollo"})
	require.NoError(t, err)

	err = svc.DeleteProject(context.Background(), asPrincipal(manager), project.ID)
	assert.True(t, apperrors.HasCode(err, "FORBIDDEN"))

	require.NoError(t, svc.DeleteProject(context.Background(), asPrincipal(admin), project.ID))
	_, err = svc.GetProject(context.Background(), asPrincipal(admin), project.ID)
	assert.True(t, apperrors.HasCode(err, "NOT_FOUND"))
}

func TestProjectStatusValidated(t *testing.T) {
	e := newEnv()
	svc := newProjectService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)

	_, err := svc.CreateProject(context.Background(), asPrincipal(manager), ProjectCreateInput{
		Name:   "phoenix",
		Status: domain.ProjectStatus("SHIPPED"),
	})
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))

	project, err := svc.CreateProject(context.Background(), asPrincipal(manager), ProjectCreateInput{Name: "phoenix"})
	require.NoError(t, err)

	bogus := domain.ProjectStatus("SHIPPED")
	_, err = svc.UpdateProject(context.Background(), asPrincipal(manager), project.ID, domain.ProjectPatch{Status: &bogus})
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))

	stored, err := e.projects.GetByID(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusActive, stored.Status)
}
