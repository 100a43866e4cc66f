package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// TaskRepository defines persistence access for tasks, including the
// assignment join used by the scoping layer.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	ListByAssignee(ctx context.Context, accountID string) ([]domain.Task, error)
	HasAssignedTask(ctx context.Context, projectID, accountID string) (bool, error)
	AssignedProjectIDs(ctx context.Context, accountID string) ([]string, error)
	Delete(ctx context.Context, id string) error
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `
        id, project_id, assigned_to_id, assigned_by_id, title, description,
        status, priority, due_date, hours_logged, created_at, updated_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.AssignedToID,
		&t.AssignedByID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.HoursLogged,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	defer rows.Close()
	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (project_id, assigned_to_id, assigned_by_id, title,
            description, status, priority, due_date, hours_logged)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		task.ProjectID,
		task.AssignedToID,
		task.AssignedByID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.HoursLogged,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET assigned_to_id=$1, title=$2, description=$3,
            status=$4, priority=$5, due_date=$6, hours_logged=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		task.AssignedToID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.HoursLogged,
		task.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id=$1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *taskRepository) ListByAssignee(ctx context.Context, accountID string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *taskRepository) HasAssignedTask(ctx context.Context, projectID, accountID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM tasks WHERE project_id=$1 AND assigned_to_id=$2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, projectID, accountID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *taskRepository) AssignedProjectIDs(ctx context.Context, accountID string) ([]string, error) {
	const query = `
        SELECT DISTINCT project_id FROM tasks WHERE assigned_to_id=$1`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
