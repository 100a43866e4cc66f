package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/workforce-service/internal/domain"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

func newDepartmentService(e *env) *DepartmentService {
	return NewDepartmentService(e.departments, e.gate, nil)
}

func TestCreateDepartmentUniqueName(t *testing.T) {
	e := newEnv()
	svc := newDepartmentService(e)
	admin := e.addAccount("root", domain.RoleAdmin, nil)
	employee := e.addAccount("e1", domain.RoleEmployee, nil)

	dept, err := svc.CreateDepartment(context.Background(), asPrincipal(admin), "Engineering", "builds things")
	require.NoError(t, err)
	assert.NotEmpty(t, dept.ID)

	_, err = svc.CreateDepartment(context.Background(), asPrincipal(admin), "Engineering", "again")
	assert.True(t, apperrors.HasCode(err, "CONFLICT"))

	_, err = svc.CreateDepartment(context.Background(), asPrincipal(admin), "  ", "")
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))

	_, err = svc.CreateDepartment(context.Background(), asPrincipal(employee), "Shadow", "")
	assert.True(t, apperrors.HasCode(err, "FORBIDDEN"))
}

func TestListDepartmentsVisibleToEveryRole(t *testing.T) {
	e := newEnv()
	svc := newDepartmentService(e)
	admin := e.addAccount("root", domain.RoleAdmin, nil)
	user := e.addAccount("u1", domain.RoleUser, nil)

	_, err := svc.CreateDepartment(context.Background(), asPrincipal(admin), "Engineering", "")
	require.NoError(t, err)
	_, err = svc.CreateDepartment(context.Background(), asPrincipal(admin), "Sales", "")
	require.NoError(t, err)

	all, err := svc.ListDepartments(context.Background(), asPrincipal(user))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateDepartmentRenameCollision(t *testing.T) {
	e := newEnv()
	svc := newDepartmentService(e)
	admin := e.addAccount("root", domain.RoleAdmin, nil)

	eng, err := svc.CreateDepartment(context.Background(), asPrincipal(admin), "Engineering", "")
	require.NoError(t, err)
	_, err = svc.CreateDepartment(context.Background(), asPrincipal(admin), "Sales", "")
	require.NoError(t, err)

	sales := "Sales"
	_, err = svc.UpdateDepartment(context.Background(), asPrincipal(admin), eng.ID, domain.DepartmentPatch{Name: &sales})
	assert.True(t, apperrors.HasCode(err, "CONFLICT"))

	// renaming to its own name is a no-op, not a collision
	same := "Engineering"
	updated, err := svc.UpdateDepartment(context.Background(), asPrincipal(admin), eng.ID, domain.DepartmentPatch{Name: &same})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", updated.Name)
}

func TestDeleteDepartment(t *testing.T) {
	e := newEnv()
	svc := newDepartmentService(e)
	admin := e.addAccount("root", domain.RoleAdmin, nil)

	dept, err := svc.CreateDepartment(context.Background(), asPrincipal(admin), "Engineering", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDepartment(context.Background(), asPrincipal(admin), dept.ID))
	err = svc.DeleteDepartment(context.Background(), asPrincipal(admin), dept.ID)
	assert.True(t, apperrors.HasCode(err, "NOT_FOUND"))
}
