package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// ProjectRepository defines persistence access for projects. Task counts
// are computed eagerly in the queries so responses never depend on lazy
// relationship loading.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListByManager(ctx context.Context, managerID string) ([]domain.Project, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository returns a Postgres-backed implementation.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

const projectSelect = `
        SELECT p.id, p.name, p.description, p.manager_id, p.start_date,
               p.end_date, p.status, COUNT(t.id), p.created_at, p.updated_at
        FROM projects p
        LEFT JOIN tasks t ON t.project_id = p.id`

const projectGroup = ` GROUP BY p.id`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.ManagerID,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.TaskCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProjects(rows pgx.Rows) ([]domain.Project, error) {
	defer rows.Close()
	projects := make([]domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (name, description, manager_id, start_date, end_date, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.ManagerID,
		project.StartDate,
		project.EndDate,
		project.Status,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET name=$1, description=$2, manager_id=$3,
            start_date=$4, end_date=$5, status=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		project.Name,
		project.Description,
		project.ManagerID,
		project.StartDate,
		project.EndDate,
		project.Status,
		project.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := projectSelect + ` WHERE p.id=$1` + projectGroup
	return scanProject(r.pool.QueryRow(ctx, query, id))
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	query := projectSelect + projectGroup + ` ORDER BY p.created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func (r *projectRepository) ListByManager(ctx context.Context, managerID string) ([]domain.Project, error) {
	query := projectSelect + ` WHERE p.manager_id=$1` + projectGroup + ` ORDER BY p.created_at`
	rows, err := r.pool.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func (r *projectRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Project, error) {
	if len(ids) == 0 {
		return []domain.Project{}, nil
	}
	query := projectSelect + ` WHERE p.id = ANY($1)` + projectGroup + ` ORDER BY p.created_at`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
