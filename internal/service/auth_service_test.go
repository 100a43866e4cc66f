package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/workforce-service/internal/auth"
	"github.com/spec-kit/workforce-service/internal/config"
	"github.com/spec-kit/workforce-service/internal/domain"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

func newAuthService(e *env) *AuthService {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 30
	return NewAuthService(cfg, e.accounts, nil)
}

func seedLogin(t *testing.T, e *env, username, password string, active bool) *domain.Account {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	account := &domain.Account{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         domain.RoleEmployee,
		Active:       active,
	}
	require.NoError(t, e.accounts.Create(context.Background(), account))
	return account
}

func TestLoginIssuesParsableToken(t *testing.T) {
	e := newEnv()
	svc := newAuthService(e)
	seeded := seedLogin(t, e, "e1", "hunter2", true)

	account, token, exp, err := svc.Login(context.Background(), "e1", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, account.ID)
	assert.False(t, exp.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, claims.AccountID)
	assert.Equal(t, domain.RoleEmployee, claims.Role)
}

func TestLoginDoesNotRevealWhichCredentialFailed(t *testing.T) {
	e := newEnv()
	svc := newAuthService(e)
	seedLogin(t, e, "e1", "hunter2", true)

	_, _, _, badUser := svc.Login(context.Background(), "ghost", "hunter2")
	_, _, _, badPass := svc.Login(context.Background(), "e1", "wrong")

	assert.True(t, apperrors.HasCode(badUser, "UNAUTHORIZED"))
	assert.True(t, apperrors.HasCode(badPass, "UNAUTHORIZED"))
	assert.Equal(t, badUser.Error(), badPass.Error())
}

func TestLoginDeactivatedAccount(t *testing.T) {
	e := newEnv()
	svc := newAuthService(e)
	seedLogin(t, e, "e1", "hunter2", false)

	_, _, _, err := svc.Login(context.Background(), "e1", "hunter2")
	assert.True(t, apperrors.HasCode(err, "UNAUTHORIZED"))
}
