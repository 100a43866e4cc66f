package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workforce-service/internal/auth"
	"github.com/spec-kit/workforce-service/internal/authz"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/events"
	"github.com/spec-kit/workforce-service/internal/repository"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// AccountService coordinates account lifecycle and profile workflows.
type AccountService struct {
	accounts    repository.AccountRepository
	departments repository.DepartmentRepository
	gate        *authz.Gate
	fields      authz.FieldRestrictionPolicy
	dispatcher  events.Dispatcher
	bcryptCost  int
}

// AccountDependencies bundles collaborators for the account service.
type AccountDependencies struct {
	AccountRepo    repository.AccountRepository
	DepartmentRepo repository.DepartmentRepository
	Gate           *authz.Gate
	Dispatcher     events.Dispatcher
	BcryptCost     int
}

// AccountCreateInput describes the account creation payload.
type AccountCreateInput struct {
	Username              string
	Email                 string
	Password              string
	Role                  domain.Role
	FirstName             string
	LastName              string
	PhoneNumber           string
	Address               string
	DateOfBirth           *time.Time
	HireDate              *time.Time
	Designation           string
	DepartmentID          *string
	ReportingManagerID    *string
	EmergencyContactName  string
	EmergencyContactPhone string
}

// NewAccountService constructs the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	return &AccountService{
		accounts:    deps.AccountRepo,
		departments: deps.DepartmentRepo,
		gate:        deps.Gate,
		dispatcher:  deps.Dispatcher,
		bcryptCost:  deps.BcryptCost,
	}
}

// CreateAccount registers a new account.
func (s *AccountService) CreateAccount(ctx context.Context, p *authz.Principal, input AccountCreateInput) (*domain.Account, error) {
	if err := s.gate.Guard(ctx, p, authz.OpCreate, authz.KindAccount, nil); err != nil {
		return nil, err
	}
	if _, ok := domain.ParseRole(string(input.Role)); !ok {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	if err := s.ensureUsernameFree(ctx, input.Username); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}
	if err := s.ensureDepartmentExists(ctx, input.DepartmentID); err != nil {
		return nil, err
	}
	if err := s.ensureManagerExists(ctx, input.ReportingManagerID); err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	account := &domain.Account{
		Username:              input.Username,
		Email:                 input.Email,
		PasswordHash:          hash,
		Role:                  input.Role,
		FirstName:             input.FirstName,
		LastName:              input.LastName,
		PhoneNumber:           input.PhoneNumber,
		Address:               input.Address,
		DateOfBirth:           input.DateOfBirth,
		HireDate:              input.HireDate,
		Designation:           input.Designation,
		DepartmentID:          input.DepartmentID,
		ReportingManagerID:    input.ReportingManagerID,
		EmergencyContactName:  input.EmergencyContactName,
		EmergencyContactPhone: input.EmergencyContactPhone,
		Active:                true,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventAccountCreated, p.ID, "CREATE", "Account", account.ID, "account "+account.Username+" created")
	return account, nil
}

// GetAccount fetches one account within the caller's scope.
func (s *AccountService) GetAccount(ctx context.Context, p *authz.Principal, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "account")
	}
	if err := s.gate.Guard(ctx, p, authz.OpView, authz.KindAccount, accountRef(account)); err != nil {
		return nil, err
	}
	return account, nil
}

// GetMyProfile returns the caller's own account.
func (s *AccountService) GetMyProfile(ctx context.Context, p *authz.Principal) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, p.ID)
	if err != nil {
		return nil, mapNoRows(err, "account")
	}
	return account, nil
}

// ListAccounts returns the accounts visible to the caller: everything for
// an admin, the caller plus direct reports for a manager.
func (s *AccountService) ListAccounts(ctx context.Context, p *authz.Principal) ([]domain.Account, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindAccount, nil); err != nil {
		return nil, err
	}
	switch s.gate.Scope().ListScope(p, authz.KindAccount) {
	case authz.ScopeAll:
		return s.accounts.List(ctx)
	case authz.ScopeTeam:
		self, err := s.accounts.GetByID(ctx, p.ID)
		if err != nil {
			return nil, mapNoRows(err, "account")
		}
		reports, err := s.accounts.ListByManager(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		return append([]domain.Account{*self}, reports...), nil
	}
	return []domain.Account{}, nil
}

// ListTeamMembers returns the caller's direct reports. A manager with no
// reports gets an empty list, not an error.
func (s *AccountService) ListTeamMembers(ctx context.Context, p *authz.Principal) ([]domain.Account, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindAccount, nil); err != nil {
		return nil, err
	}
	return s.accounts.ListByManager(ctx, p.ID)
}

// ListAccountsByRole returns role-filtered accounts, narrowed to the
// caller's visible set.
func (s *AccountService) ListAccountsByRole(ctx context.Context, p *authz.Principal, role domain.Role) ([]domain.Account, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindAccount, nil); err != nil {
		return nil, err
	}
	if _, ok := domain.ParseRole(string(role)); !ok {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	all, err := s.accounts.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.Account, 0, len(all))
	for i := range all {
		ok, err := s.gate.Scope().CanAccess(ctx, p, authz.KindAccount, *accountRef(&all[i]))
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, all[i])
		}
	}
	return visible, nil
}

// UpdateAccount applies an administrative partial update to any account.
func (s *AccountService) UpdateAccount(ctx context.Context, p *authz.Principal, id string, patch domain.AccountPatch) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "account")
	}
	if err := s.gate.Guard(ctx, p, authz.OpUpdate, authz.KindAccount, accountRef(account)); err != nil {
		return nil, err
	}
	if err := s.applyAccountPatch(ctx, account, patch); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventAccountUpdated, p.ID, "UPDATE", "Account", account.ID, "")
	return account, nil
}

// UpdateMyProfile applies a self-service partial update. Role and active
// are stripped from the payload before anything is written, so the call
// succeeds with the remaining fields instead of being rejected.
func (s *AccountService) UpdateMyProfile(ctx context.Context, p *authz.Principal, patch domain.AccountPatch) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, p.ID)
	if err != nil {
		return nil, mapNoRows(err, "account")
	}
	if err := s.gate.Guard(ctx, p, authz.OpUpdateSelf, authz.KindAccount, accountRef(account)); err != nil {
		return nil, err
	}
	patch = s.fields.SanitizeAccountPatch(p, account.ID, patch)
	if err := s.applyAccountPatch(ctx, account, patch); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventAccountUpdated, p.ID, "UPDATE_SELF", "Account", account.ID, "")
	return account, nil
}

// SetAccountActive flips the active flag on an account.
func (s *AccountService) SetAccountActive(ctx context.Context, p *authz.Principal, id string, active bool) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "account")
	}
	if err := s.gate.Guard(ctx, p, authz.OpUpdate, authz.KindAccount, accountRef(account)); err != nil {
		return nil, err
	}
	account.Active = active
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	action := "DEACTIVATE"
	if active {
		action = "ACTIVATE"
	}
	publish(ctx, s.dispatcher, events.EventAccountUpdated, p.ID, action, "Account", account.ID, "")
	return account, nil
}

// DeleteAccount removes an account.
func (s *AccountService) DeleteAccount(ctx context.Context, p *authz.Principal, id string) error {
	if err := s.gate.Authorize(ctx, p, authz.OpDelete, authz.KindAccount, id); err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.dispatcher, events.EventAccountDeleted, p.ID, "DELETE", "Account", id, "")
	return nil
}

// ResetPassword sets a new password on any account, administratively.
func (s *AccountService) ResetPassword(ctx context.Context, p *authz.Principal, id, newPassword string) error {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return mapNoRows(err, "account")
	}
	if err := s.gate.Guard(ctx, p, authz.OpUpdate, authz.KindAccount, accountRef(account)); err != nil {
		return err
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}
	publish(ctx, s.dispatcher, events.EventPasswordChanged, p.ID, "RESET_PASSWORD", "Account", account.ID, "")
	return nil
}

// ChangeMyPassword rotates the caller's password after verifying the
// current one.
func (s *AccountService) ChangeMyPassword(ctx context.Context, p *authz.Principal, currentPassword, newPassword string) error {
	account, err := s.accounts.GetByID(ctx, p.ID)
	if err != nil {
		return mapNoRows(err, "account")
	}
	if err := auth.ComparePassword(account.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password does not match")
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}
	publish(ctx, s.dispatcher, events.EventPasswordChanged, p.ID, "CHANGE_PASSWORD", "Account", account.ID, "")
	return nil
}

// applyAccountPatch validates referenced records, checks the reporting
// chain stays acyclic, and persists the patched account.
func (s *AccountService) applyAccountPatch(ctx context.Context, account *domain.Account, patch domain.AccountPatch) error {
	if patch.Role != nil {
		if _, ok := domain.ParseRole(string(*patch.Role)); !ok {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": *patch.Role})
		}
	}
	if patch.Email != nil && *patch.Email != account.Email {
		if err := s.ensureEmailFree(ctx, *patch.Email); err != nil {
			return err
		}
	}
	if patch.DepartmentID != nil {
		if err := s.ensureDepartmentExists(ctx, patch.DepartmentID); err != nil {
			return err
		}
	}
	if patch.ReportingManagerID != nil {
		if err := s.ensureManagerExists(ctx, patch.ReportingManagerID); err != nil {
			return err
		}
		if err := s.ensureAcyclicReporting(ctx, account.ID, patch.ReportingManagerID); err != nil {
			return err
		}
	}
	patch.Apply(account)
	return s.accounts.Update(ctx, account)
}

// ensureAcyclicReporting walks the proposed reporting chain upward and
// rejects the write when the chain would loop back to the account.
func (s *AccountService) ensureAcyclicReporting(ctx context.Context, accountID string, managerID *string) error {
	seen := map[string]bool{accountID: true}
	cur := managerID
	for cur != nil {
		if seen[*cur] {
			return apperrors.NewValidationError("reporting chain would form a cycle", map[string]any{"reporting_manager_id": *managerID})
		}
		seen[*cur] = true
		next, err := s.accounts.GetByID(ctx, *cur)
		if err != nil {
			return mapNoRows(err, "reporting manager")
		}
		cur = next.ReportingManagerID
	}
	return nil
}

func (s *AccountService) ensureUsernameFree(ctx context.Context, username string) error {
	_, err := s.accounts.GetByUsername(ctx, username)
	if err == nil {
		return apperrors.NewConflict("username already taken", map[string]any{"username": username})
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}

func (s *AccountService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.accounts.GetByEmail(ctx, email)
	if err == nil {
		return apperrors.NewConflict("email already registered", map[string]any{"email": email})
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}

func (s *AccountService) ensureDepartmentExists(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	if _, err := s.departments.GetByID(ctx, *id); err != nil {
		return mapNoRows(err, "department")
	}
	return nil
}

func (s *AccountService) ensureManagerExists(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	if _, err := s.accounts.GetByID(ctx, *id); err != nil {
		return mapNoRows(err, "reporting manager")
	}
	return nil
}
