package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/workforce-service/internal/domain"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

func newTaskService(e *env) *TaskService {
	return NewTaskService(TaskDependencies{
		TaskRepo:    e.tasks,
		ProjectRepo: e.projects,
		AccountRepo: e.accounts,
		Gate:        e.gate,
	})
}

func addProject(e *env, managerID *string) *domain.Project {
	project := &domain.Project{Name: "apollo", ManagerID: managerID, Status: domain.ProjectStatusActive}
	_ = e.projects.Create(context.Background(), project)
	return project
}

func TestCreateTaskRecordsAssigner(t *testing.T) {
	e := newEnv()
	svc := newTaskService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	employee := e.addAccount("e1", domain.RoleEmployee, &manager.ID)
	project := addProject(e, &manager.ID)

	task, err := svc.CreateTask(context.Background(), asPrincipal(manager), TaskCreateInput{
		ProjectID:    project.ID,
		AssignedToID: &employee.ID,
		Title:        "wire the ingestion job",
	})
	require.NoError(t, err)
	assert.Equal(t, manager.ID, task.AssignedByID)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)
	assert.Equal(t, domain.TaskPriorityMedium, task.Priority)

	_, err = svc.CreateTask(context.Background(), asPrincipal(manager), TaskCreateInput{
		ProjectID: "missing",
		Title:     "orphan",
	})
	assert.True(t, apperrors.HasCode(err, "NOT_FOUND"))
}

func TestUpdateTaskAssigneePayloadIsNarrowed(t *testing.T) {
	e := newEnv()
	svc := newTaskService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	employee := e.addAccount("e1", domain.RoleEmployee, &manager.ID)
	project := addProject(e, &manager.ID)

	task, err := svc.CreateTask(context.Background(), asPrincipal(manager), TaskCreateInput{
		ProjectID:    project.ID,
		AssignedToID: &employee.ID,
		Title:        "wire the ingestion job",
	})
	require.NoError(t, err)

	title := "renamed by assignee"
	inProgress := domain.TaskStatusInProgress
	hours := 3.5
	updated, err := svc.UpdateTask(context.Background(), asPrincipal(employee), task.ID, domain.TaskPatch{
		Title:       &title,
		Status:      &inProgress,
		HoursLogged: &hours,
	})
	require.NoError(t, err)
	assert.Equal(t, "wire the ingestion job", updated.Title)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Status)
	assert.Equal(t, 3.5, updated.HoursLogged)
}

func TestUpdateTaskAdminKeepsFullPayload(t *testing.T) {
	e := newEnv()
	svc := newTaskService(e)
	admin := e.addAccount("root", domain.RoleAdmin, nil)
	employee := e.addAccount("e1", domain.RoleEmployee, nil)
	project := addProject(e, nil)

	task, err := svc.CreateTask(context.Background(), asPrincipal(admin), TaskCreateInput{
		ProjectID:    project.ID,
		AssignedToID: &employee.ID,
		Title:        "initial title",
	})
	require.NoError(t, err)

	title := "retitled"
	updated, err := svc.UpdateTask(context.Background(), asPrincipal(admin), task.ID, domain.TaskPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "retitled", updated.Title)
}

func TestGetTaskVisibleToAssigneeOnly(t *testing.T) {
	e := newEnv()
	svc := newTaskService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	employee := e.addAccount("e1", domain.RoleEmployee, &manager.ID)
	other := e.addAccount("e2", domain.RoleEmployee, &manager.ID)
	project := addProject(e, &manager.ID)

	task, err := svc.CreateTask(context.Background(), asPrincipal(manager), TaskCreateInput{
		ProjectID:    project.ID,
		AssignedToID: &employee.ID,
		Title:        "wire the ingestion job",
	})
	require.NoError(t, err)

	got, err := svc.GetTask(context.Background(), asPrincipal(employee), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	_, err = svc.GetTask(context.Background(), asPrincipal(other), task.ID)
	assert.True(t, apperrors.HasCode(err, "FORBIDDEN"))
}

func TestListProjectTasksNarrowedPerRecord(t *testing.T) {
	e := newEnv()
	svc := newTaskService(e)
	admin := e.addAccount("root", domain.RoleAdmin, nil)
	e1 := e.addAccount("e1", domain.RoleEmployee, nil)
	e2 := e.addAccount("e2", domain.RoleEmployee, nil)
	project := addProject(e, nil)

	t1, err := svc.CreateTask(context.Background(), asPrincipal(admin), TaskCreateInput{
		ProjectID: project.ID, AssignedToID: &e1.ID, Title: "one",
	})
	require.NoError(t, err)
	_, err = svc.CreateTask(context.Background(), asPrincipal(admin), TaskCreateInput{
		ProjectID: project.ID, AssignedToID: &e2.ID, Title: "two",
	})
	require.NoError(t, err)

	all, err := svc.ListProjectTasks(context.Background(), asPrincipal(admin), project.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListProjectTasks(context.Background(), asPrincipal(e1), project.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, t1.ID, mine[0].ID)
}

func TestUpdateTaskRejectsUnknownLifecycleValues(t *testing.T) {
	e := newEnv()
	svc := newTaskService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	employee := e.addAccount("e1", domain.RoleEmployee, &manager.ID)
	project := addProject(e, &manager.ID)

	task, err := svc.CreateTask(context.Background(), asPrincipal(manager), TaskCreateInput{
		ProjectID:    project.ID,
		AssignedToID: &employee.ID,
		Title:        "triage the backlog",
	})
	require.NoError(t, err)

	bogusStatus := domain.TaskStatus("BANANA")
	_, err = svc.UpdateTask(context.Background(), asPrincipal(employee), task.ID, domain.TaskPatch{Status: &bogusStatus})
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))

	bogusPriority := domain.TaskPriority("URGENT")
	_, err = svc.UpdateTask(context.Background(), asPrincipal(manager), task.ID, domain.TaskPatch{Priority: &bogusPriority})
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))

	negative := -2.5
	_, err = svc.UpdateTask(context.Background(), asPrincipal(employee), task.ID, domain.TaskPatch{HoursLogged: &negative})
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))

	stored, err := e.tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusTodo, stored.Status)
	assert.Equal(t, domain.TaskPriorityMedium, stored.Priority)
}

func TestCreateTaskRejectsUnknownPriority(t *testing.T) {
	e := newEnv()
	svc := newTaskService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	project := addProject(e, &manager.ID)

	_, err := svc.CreateTask(context.Background(), asPrincipal(manager), TaskCreateInput{
		ProjectID: project.ID,
		Title:     "size the rollout",
		Priority:  domain.TaskPriority("SEVERE"),
	})
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))
}
