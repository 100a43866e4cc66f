package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/workforce-service/internal/domain"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

func newAccountService(e *env) *AccountService {
	return NewAccountService(AccountDependencies{
		AccountRepo:    e.accounts,
		DepartmentRepo: e.departments,
		Gate:           e.gate,
		BcryptCost:     bcrypt.MinCost,
	})
}

func TestCreateAccountAdminOnly(t *testing.T) {
	e := newEnv()
	svc := newAccountService(e)
	admin := e.addAccount("admin", domain.RoleAdmin, nil)
	manager := e.addAccount("m1", domain.RoleManager, nil)

	input := AccountCreateInput{
		Username: "newhire",
		Email:    "newhire@example.com",
		Password: "secret",
		Role:     domain.RoleEmployee,
	}

	_, err := svc.CreateAccount(context.Background(), asPrincipal(manager), input)
	assert.True(t, apperrors.HasCode(err, "FORBIDDEN"))

	created, err := svc.CreateAccount(context.Background(), asPrincipal(admin), input)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Active)
	assert.NotEqual(t, "secret", created.PasswordHash)
}

func TestCreateAccountDuplicateUsername(t *testing.T) {
	e := newEnv()
	svc := newAccountService(e)
	admin := e.addAccount("admin", domain.RoleAdmin, nil)
	e.addAccount("taken", domain.RoleEmployee, nil)

	_, err := svc.CreateAccount(context.Background(), asPrincipal(admin), AccountCreateInput{
		Username: "taken",
		Email:    "other@example.com",
		Password: "secret",
		Role:     domain.RoleEmployee,
	})
	assert.True(t, apperrors.HasCode(err, "CONFLICT"))
}

func TestUpdateMyProfileStripsRoleAndActive(t *testing.T) {
	e := newEnv()
	svc := newAccountService(e)
	employee := e.addAccount("e1", domain.RoleEmployee, nil)

	admin := domain.RoleAdmin
	inactive := false
	email := "renamed@example.com"
	updated, err := svc.UpdateMyProfile(context.Background(), asPrincipal(employee), domain.AccountPatch{
		Email:  &email,
		Role:   &admin,
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", updated.Email)
	assert.Equal(t, domain.RoleEmployee, updated.Role)
	assert.True(t, updated.Active)
}

func TestListAccountsManagerSeesSelfAndReports(t *testing.T) {
	e := newEnv()
	svc := newAccountService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	report := e.addAccount("e1", domain.RoleEmployee, &manager.ID)
	e.addAccount("e2", domain.RoleEmployee, nil)

	accounts, err := svc.ListAccounts(context.Background(), asPrincipal(manager))
	require.NoError(t, err)
	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{manager.ID, report.ID}, ids)
}

func TestListTeamMembers(t *testing.T) {
	e := newEnv()
	svc := newAccountService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	report := e.addAccount("e1", domain.RoleEmployee, &manager.ID)
	employee := e.addAccount("e2", domain.RoleEmployee, nil)

	team, err := svc.ListTeamMembers(context.Background(), asPrincipal(manager))
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, report.ID, team[0].ID)

	// a manager with no reports gets an empty list, not an error
	lonely := e.addAccount("m2", domain.RoleManager, nil)
	team, err = svc.ListTeamMembers(context.Background(), asPrincipal(lonely))
	require.NoError(t, err)
	assert.Empty(t, team)

	// an employee cannot enumerate anyone
	_, err = svc.ListTeamMembers(context.Background(), asPrincipal(employee))
	assert.True(t, apperrors.HasCode(err, "FORBIDDEN"))
}

func TestGetAccountScope(t *testing.T) {
	e := newEnv()
	svc := newAccountService(e)
	manager := e.addAccount("m1", domain.RoleManager, nil)
	report := e.addAccount("e1", domain.RoleEmployee, &manager.ID)
	stranger := e.addAccount("e2", domain.RoleEmployee, nil)

	got, err := svc.GetAccount(context.Background(), asPrincipal(manager), report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)

	_, err = svc.GetAccount(context.Background(), asPrincipal(manager), stranger.ID)
	assert.True(t, apperrors.HasCode(err, "FORBIDDEN"))

	_, err = svc.GetAccount(context.Background(), asPrincipal(report), manager.ID)
	assert.True(t, apperrors.HasCode(err, "FORBIDDEN"))

	_, err = svc.GetAccount(context.Background(), asPrincipal(manager), "missing")
	assert.True(t, apperrors.HasCode(err, "NOT_FOUND"))
}

func TestUpdateAccountRejectsReportingCycle(t *testing.T) {
	e := newEnv()
	svc := newAccountService(e)
	admin := e.addAccount("admin", domain.RoleAdmin, nil)
	a := e.addAccount("a", domain.RoleManager, nil)
	b := e.addAccount("b", domain.RoleManager, &a.ID)
	c := e.addAccount("c", domain.RoleManager, &b.ID)

	_, err := svc.UpdateAccount(context.Background(), asPrincipal(admin), a.ID, domain.AccountPatch{
		ReportingManagerID: &c.ID,
	})
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))

	// pointing at an unrelated manager is fine
	d := e.addAccount("d", domain.RoleManager, nil)
	updated, err := svc.UpdateAccount(context.Background(), asPrincipal(admin), a.ID, domain.AccountPatch{
		ReportingManagerID: &d.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, d.ID, *updated.ReportingManagerID)
}

func TestSetAccountActive(t *testing.T) {
	e := newEnv()
	svc := newAccountService(e)
	admin := e.addAccount("admin", domain.RoleAdmin, nil)
	employee := e.addAccount("e1", domain.RoleEmployee, nil)

	updated, err := svc.SetAccountActive(context.Background(), asPrincipal(admin), employee.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Active)

	// a deactivated principal is rejected outright
	_, err = svc.ListAccounts(context.Background(), asPrincipal(updated))
	assert.True(t, apperrors.HasCode(err, "UNAUTHORIZED"))
}

func TestChangeMyPassword(t *testing.T) {
	e := newEnv()
	svc := newAccountService(e)
	admin := e.addAccount("admin", domain.RoleAdmin, nil)

	account, err := svc.CreateAccount(context.Background(), asPrincipal(admin), AccountCreateInput{
		Username: "e1",
		Email:    "e1@corp.example.com",
		Password: "old-password",
		Role:     domain.RoleEmployee,
	})
	require.NoError(t, err)

	err = svc.ChangeMyPassword(context.Background(), asPrincipal(account), "wrong", "new-password")
	assert.True(t, apperrors.HasCode(err, "UNAUTHORIZED"))

	err = svc.ChangeMyPassword(context.Background(), asPrincipal(account), "old-password", "new-password")
	assert.NoError(t, err)
}

func TestPasswordLengthEnforced(t *testing.T) {
	e := newEnv()
	svc := newAccountService(e)
	admin := e.addAccount("admin", domain.RoleAdmin, nil)

	_, err := svc.CreateAccount(context.Background(), asPrincipal(admin), AccountCreateInput{
		Username: "newhire",
		Email:    "newhire@example.com",
		Password: "tiny",
		Role:     domain.RoleEmployee,
	})
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))

	account, err := svc.CreateAccount(context.Background(), asPrincipal(admin), AccountCreateInput{
		Username: "newhire",
		Email:    "newhire@example.com",
		Password: "secret",
		Role:     domain.RoleEmployee,
	})
	require.NoError(t, err)

	err = svc.ChangeMyPassword(context.Background(), asPrincipal(account), "secret", "tiny")
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))

	err = svc.ResetPassword(context.Background(), asPrincipal(admin), account.ID, "tiny")
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))
}
