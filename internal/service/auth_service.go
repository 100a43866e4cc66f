package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workforce-service/internal/auth"
	"github.com/spec-kit/workforce-service/internal/config"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/events"
	"github.com/spec-kit/workforce-service/internal/repository"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// AuthService coordinates the login flow.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg *config.Config, accounts repository.AccountRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		accounts:   accounts,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: dispatcher,
	}
}

// TokenManager exposes the manager used for issuing and parsing tokens.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates by username and issues an access token. Unknown
// usernames and wrong passwords share one error so the response does not
// reveal which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if !account.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("account is deactivated")
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	publish(ctx, s.dispatcher, events.EventLoginSucceeded, account.ID, "LOGIN", "Account", account.ID, "")
	return account, token, exp, nil
}

// Logout records the end of a session in the audit trail. Tokens are
// stateless, so the token itself stays valid until it expires.
func (s *AuthService) Logout(ctx context.Context, accountID string) {
	publish(ctx, s.dispatcher, events.EventLogoutRecorded, accountID, "LOGOUT", "Account", accountID, "")
}
