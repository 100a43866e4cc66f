package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// KpiRepository defines persistence access for KPIs.
type KpiRepository interface {
	Create(ctx context.Context, kpi *domain.Kpi) error
	Update(ctx context.Context, kpi *domain.Kpi) error
	GetByID(ctx context.Context, id string) (*domain.Kpi, error)
	List(ctx context.Context) ([]domain.Kpi, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.Kpi, error)
	Delete(ctx context.Context, id string) error
}

type kpiRepository struct {
	pool *pgxpool.Pool
}

// NewKpiRepository returns a Postgres-backed implementation.
func NewKpiRepository(pool *pgxpool.Pool) KpiRepository {
	return &kpiRepository{pool: pool}
}

const kpiColumns = `
        id, employee_id, assigned_by_id, title, description, target_value,
        achieved_value, status, due_date, created_at, updated_at`

func scanKpi(row pgx.Row) (*domain.Kpi, error) {
	var k domain.Kpi
	if err := row.Scan(
		&k.ID,
		&k.EmployeeID,
		&k.AssignedByID,
		&k.Title,
		&k.Description,
		&k.TargetValue,
		&k.AchievedValue,
		&k.Status,
		&k.DueDate,
		&k.CreatedAt,
		&k.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &k, nil
}

func collectKpis(rows pgx.Rows) ([]domain.Kpi, error) {
	defer rows.Close()
	kpis := make([]domain.Kpi, 0)
	for rows.Next() {
		k, err := scanKpi(rows)
		if err != nil {
			return nil, err
		}
		kpis = append(kpis, *k)
	}
	return kpis, rows.Err()
}

func (r *kpiRepository) Create(ctx context.Context, kpi *domain.Kpi) error {
	const query = `
        INSERT INTO kpis (employee_id, assigned_by_id, title, description,
            target_value, achieved_value, status, due_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		kpi.EmployeeID,
		kpi.AssignedByID,
		kpi.Title,
		kpi.Description,
		kpi.TargetValue,
		kpi.AchievedValue,
		kpi.Status,
		kpi.DueDate,
	).Scan(&kpi.ID, &kpi.CreatedAt, &kpi.UpdatedAt)
}

func (r *kpiRepository) Update(ctx context.Context, kpi *domain.Kpi) error {
	const query = `
        UPDATE kpis SET title=$1, description=$2, target_value=$3,
            achieved_value=$4, status=$5, due_date=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		kpi.Title,
		kpi.Description,
		kpi.TargetValue,
		kpi.AchievedValue,
		kpi.Status,
		kpi.DueDate,
		kpi.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *kpiRepository) GetByID(ctx context.Context, id string) (*domain.Kpi, error) {
	query := `SELECT ` + kpiColumns + ` FROM kpis WHERE id=$1`
	return scanKpi(r.pool.QueryRow(ctx, query, id))
}

func (r *kpiRepository) List(ctx context.Context) ([]domain.Kpi, error) {
	query := `SELECT ` + kpiColumns + ` FROM kpis ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectKpis(rows)
}

func (r *kpiRepository) ListByEmployee(ctx context.Context, employeeID string) ([]domain.Kpi, error) {
	query := `SELECT ` + kpiColumns + ` FROM kpis WHERE employee_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	return collectKpis(rows)
}

func (r *kpiRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM kpis WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
