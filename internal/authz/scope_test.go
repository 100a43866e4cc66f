package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/workforce-service/internal/domain"
)

type stubAssignments struct {
	// project id -> account ids with at least one task assigned
	assigned map[string][]string
}

func (s *stubAssignments) HasAssignedTask(_ context.Context, projectID, accountID string) (bool, error) {
	for _, id := range s.assigned[projectID] {
		if id == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubAssignments) AssignedProjectIDs(_ context.Context, accountID string) ([]string, error) {
	var out []string
	for projectID, ids := range s.assigned {
		for _, id := range ids {
			if id == accountID {
				out = append(out, projectID)
				break
			}
		}
	}
	return out, nil
}

func principal(id string, role domain.Role) *Principal {
	return &Principal{ID: id, Role: role, Active: true}
}

func TestListScopeAdminAlwaysUnrestricted(t *testing.T) {
	policy := NewScopePolicy(&stubAssignments{})
	for _, kind := range Kinds() {
		assert.Equal(t, ScopeAll, policy.ListScope(principal("a1", domain.RoleAdmin), kind), "kind %s", kind)
	}
}

func TestListScopePerKind(t *testing.T) {
	policy := NewScopePolicy(&stubAssignments{})
	manager := principal("m1", domain.RoleManager)
	employee := principal("e1", domain.RoleEmployee)
	user := principal("u1", domain.RoleUser)

	cases := []struct {
		kind     Kind
		manager  ScopeLevel
		employee ScopeLevel
	}{
		{KindAccount, ScopeTeam, ScopeSelf},
		{KindLeaveRequest, ScopeTeam, ScopeSelf},
		{KindProject, ScopeTeam, ScopeAssigned},
		{KindTask, ScopeSelf, ScopeSelf},
		{KindKpi, ScopeSelf, ScopeSelf},
		{KindPerformanceReview, ScopeSelf, ScopeSelf},
		{KindDepartment, ScopeAll, ScopeAll},
		{KindAuditLog, ScopeNone, ScopeNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.manager, policy.ListScope(manager, tc.kind), "manager %s", tc.kind)
		assert.Equal(t, tc.employee, policy.ListScope(employee, tc.kind), "employee %s", tc.kind)
		// USER has no broader visibility than EMPLOYEE anywhere.
		assert.Equal(t, tc.employee, policy.ListScope(user, tc.kind), "user %s", tc.kind)
	}
}

// Visibility must grow monotonically with the role hierarchy: nothing an
// employee can see is hidden from a manager over the same records, and
// nothing a manager can see is hidden from an admin.
func TestCanAccessMonotonicAcrossRoles(t *testing.T) {
	ctx := context.Background()
	policy := NewScopePolicy(&stubAssignments{})
	ref := RecordRef{ID: "r1", SubjectID: "e1", ManagerID: "m1"}

	for _, kind := range []Kind{KindAccount, KindLeaveRequest} {
		self, err := policy.CanAccess(ctx, principal("e1", domain.RoleEmployee), kind, ref)
		require.NoError(t, err)
		mgr, err := policy.CanAccess(ctx, principal("m1", domain.RoleManager), kind, ref)
		require.NoError(t, err)
		admin, err := policy.CanAccess(ctx, principal("root", domain.RoleAdmin), kind, ref)
		require.NoError(t, err)
		assert.True(t, self, "subject sees own record for %s", kind)
		assert.True(t, mgr, "direct manager sees report record for %s", kind)
		assert.True(t, admin, "admin sees everything for %s", kind)
	}
}

func TestCanAccessAccountScope(t *testing.T) {
	ctx := context.Background()
	policy := NewScopePolicy(&stubAssignments{})

	e1 := RecordRef{ID: "e1", SubjectID: "e1", ManagerID: "m1"}
	e2 := RecordRef{ID: "e2", SubjectID: "e2", ManagerID: "m2"}

	// Manager sees self and direct reports only; the relation is one
	// level deep, never transitive.
	ok, err := policy.CanAccess(ctx, principal("m1", domain.RoleManager), KindAccount, e1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = policy.CanAccess(ctx, principal("m1", domain.RoleManager), KindAccount, e2)
	require.NoError(t, err)
	assert.False(t, ok)

	// An employee never sees a peer, regardless of any manager field.
	ok, err = policy.CanAccess(ctx, principal("e2", domain.RoleEmployee), KindAccount, e1)
	require.NoError(t, err)
	assert.False(t, ok)

	// Being someone's manager grants no peer visibility by role name.
	ok, err = policy.CanAccess(ctx, principal("m2", domain.RoleManager), KindAccount, e1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanAccessProjectScope(t *testing.T) {
	ctx := context.Background()
	policy := NewScopePolicy(&stubAssignments{assigned: map[string][]string{
		"p1": {"e1"},
	}})

	p1 := RecordRef{ID: "p1", SubjectID: "m1"}

	ok, err := policy.CanAccess(ctx, principal("m1", domain.RoleManager), KindProject, p1)
	require.NoError(t, err)
	assert.True(t, ok, "manager accesses managed project")

	ok, err = policy.CanAccess(ctx, principal("m2", domain.RoleManager), KindProject, p1)
	require.NoError(t, err)
	assert.False(t, ok, "manager does not access another manager's project")

	ok, err = policy.CanAccess(ctx, principal("e1", domain.RoleEmployee), KindProject, p1)
	require.NoError(t, err)
	assert.True(t, ok, "assignee accesses project through task assignment")

	ok, err = policy.CanAccess(ctx, principal("e2", domain.RoleEmployee), KindProject, p1)
	require.NoError(t, err)
	assert.False(t, ok, "unassigned employee does not access project")
}

func TestCanAccessTaskAndKpiSelfOnly(t *testing.T) {
	ctx := context.Background()
	policy := NewScopePolicy(&stubAssignments{})
	ref := RecordRef{ID: "t1", SubjectID: "e1", ActorID: "m1"}

	for _, kind := range []Kind{KindTask, KindKpi} {
		ok, err := policy.CanAccess(ctx, principal("e1", domain.RoleEmployee), kind, ref)
		require.NoError(t, err)
		assert.True(t, ok, "%s subject", kind)

		// The assigner relationship grants no read scope here, and
		// neither does the manager role.
		ok, err = policy.CanAccess(ctx, principal("m1", domain.RoleManager), kind, ref)
		require.NoError(t, err)
		assert.False(t, ok, "%s actor", kind)
	}
}

func TestCanAccessReviewActor(t *testing.T) {
	ctx := context.Background()
	policy := NewScopePolicy(&stubAssignments{})
	ref := RecordRef{ID: "r1", SubjectID: "e1", ActorID: "m1"}

	ok, err := policy.CanAccess(ctx, principal("e1", domain.RoleEmployee), KindPerformanceReview, ref)
	require.NoError(t, err)
	assert.True(t, ok, "reviewed employee")

	ok, err = policy.CanAccess(ctx, principal("m1", domain.RoleManager), KindPerformanceReview, ref)
	require.NoError(t, err)
	assert.True(t, ok, "reviewer keeps access to authored review")

	ok, err = policy.CanAccess(ctx, principal("m2", domain.RoleManager), KindPerformanceReview, ref)
	require.NoError(t, err)
	assert.False(t, ok, "unrelated manager")
}

func TestCanAccessAuditLogDeniedBelowAdmin(t *testing.T) {
	ctx := context.Background()
	policy := NewScopePolicy(&stubAssignments{})
	ref := RecordRef{ID: "l1", SubjectID: "e1"}

	for _, role := range []domain.Role{domain.RoleManager, domain.RoleEmployee, domain.RoleUser} {
		ok, err := policy.CanAccess(ctx, principal("e1", role), KindAuditLog, ref)
		require.NoError(t, err)
		assert.False(t, ok, "role %s", role)
	}
	ok, err := policy.CanAccess(ctx, principal("root", domain.RoleAdmin), KindAuditLog, ref)
	require.NoError(t, err)
	assert.True(t, ok)
}
