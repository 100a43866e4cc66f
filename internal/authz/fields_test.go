package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/workforce-service/internal/domain"
)

func TestSanitizeAccountPatchStripsPrivilegedFieldsOnSelfUpdate(t *testing.T) {
	var policy FieldRestrictionPolicy
	role := domain.RoleAdmin
	active := false
	email := "new@example.com"
	patch := domain.AccountPatch{Email: &email, Role: &role, Active: &active}

	for _, r := range []domain.Role{domain.RoleManager, domain.RoleEmployee, domain.RoleUser} {
		got := policy.SanitizeAccountPatch(&Principal{ID: "e1", Role: r, Active: true}, "e1", patch)
		assert.Nil(t, got.Role, "role %s", r)
		assert.Nil(t, got.Active, "role %s", r)
		assert.Equal(t, &email, got.Email, "benign fields survive for %s", r)
	}
}

func TestSanitizeAccountPatchKeepsFieldsForAdminSelf(t *testing.T) {
	var policy FieldRestrictionPolicy
	role := domain.RoleManager
	active := false
	patch := domain.AccountPatch{Role: &role, Active: &active}

	got := policy.SanitizeAccountPatch(&Principal{ID: "a1", Role: domain.RoleAdmin, Active: true}, "a1", patch)
	assert.Equal(t, &role, got.Role)
	assert.Equal(t, &active, got.Active)
}

func TestSanitizeAccountPatchLeavesOtherTargetsAlone(t *testing.T) {
	var policy FieldRestrictionPolicy
	role := domain.RoleManager
	patch := domain.AccountPatch{Role: &role}

	// Updating someone else is not the self-service path; the gate's
	// allow-list decides whether it happens at all.
	got := policy.SanitizeAccountPatch(&Principal{ID: "a1", Role: domain.RoleAdmin, Active: true}, "e1", patch)
	assert.Equal(t, &role, got.Role)
}

func TestSanitizeTaskPatchNarrowsPlainAssignee(t *testing.T) {
	var policy FieldRestrictionPolicy
	title := "renamed"
	status := domain.TaskStatusDone
	hours := 4.5
	other := "e2"
	patch := domain.TaskPatch{Title: &title, Status: &status, HoursLogged: &hours, AssignedToID: &other}

	got := policy.SanitizeTaskPatch(&Principal{ID: "e1", Role: domain.RoleEmployee, Active: true}, "m1", patch)
	assert.Nil(t, got.Title)
	assert.Nil(t, got.AssignedToID)
	assert.Equal(t, &status, got.Status)
	assert.Equal(t, &hours, got.HoursLogged)
}

func TestSanitizeTaskPatchFullPayloadForManagersAndAssigner(t *testing.T) {
	var policy FieldRestrictionPolicy
	title := "renamed"
	patch := domain.TaskPatch{Title: &title}

	for _, p := range []*Principal{
		{ID: "root", Role: domain.RoleAdmin, Active: true},
		{ID: "m1", Role: domain.RoleManager, Active: true},
		{ID: "e9", Role: domain.RoleEmployee, Active: true}, // the assigner
	} {
		got := policy.SanitizeTaskPatch(p, "e9", patch)
		assert.Equal(t, &title, got.Title, "principal %s", p.ID)
	}
}
