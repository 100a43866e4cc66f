package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
	ListByManager(ctx context.Context, managerID string) ([]domain.Account, error)
	Delete(ctx context.Context, id string) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `
        id, username, email, password_hash, role, first_name, last_name,
        phone_number, address, date_of_birth, hire_date, designation,
        department_id, reporting_manager_id, emergency_contact_name,
        emergency_contact_phone, active, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.Role,
		&a.FirstName,
		&a.LastName,
		&a.PhoneNumber,
		&a.Address,
		&a.DateOfBirth,
		&a.HireDate,
		&a.Designation,
		&a.DepartmentID,
		&a.ReportingManagerID,
		&a.EmergencyContactName,
		&a.EmergencyContactPhone,
		&a.Active,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	accounts := make([]domain.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (
            username, email, password_hash, role, first_name, last_name,
            phone_number, address, date_of_birth, hire_date, designation,
            department_id, reporting_manager_id, emergency_contact_name,
            emergency_contact_phone, active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.FirstName,
		account.LastName,
		account.PhoneNumber,
		account.Address,
		account.DateOfBirth,
		account.HireDate,
		account.Designation,
		account.DepartmentID,
		account.ReportingManagerID,
		account.EmergencyContactName,
		account.EmergencyContactPhone,
		account.Active,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts SET
            username=$1, email=$2, password_hash=$3, role=$4, first_name=$5,
            last_name=$6, phone_number=$7, address=$8, date_of_birth=$9,
            hire_date=$10, designation=$11, department_id=$12,
            reporting_manager_id=$13, emergency_contact_name=$14,
            emergency_contact_phone=$15, active=$16, updated_at=NOW()
        WHERE id=$17`

	cmd, err := r.pool.Exec(ctx, query,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.FirstName,
		account.LastName,
		account.PhoneNumber,
		account.Address,
		account.DateOfBirth,
		account.HireDate,
		account.Designation,
		account.DepartmentID,
		account.ReportingManagerID,
		account.EmergencyContactName,
		account.EmergencyContactPhone,
		account.Active,
		account.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id=$1`
	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username=$1`
	return scanAccount(r.pool.QueryRow(ctx, query, username))
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email=$1`
	return scanAccount(r.pool.QueryRow(ctx, query, email))
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectAccounts(rows)
}

func (r *accountRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE role=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	return collectAccounts(rows)
}

func (r *accountRepository) ListByManager(ctx context.Context, managerID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE reporting_manager_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	return collectAccounts(rows)
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
