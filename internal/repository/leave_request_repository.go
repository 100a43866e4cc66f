package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// LeaveRequestRepository defines persistence access for leave requests.
type LeaveRequestRepository interface {
	Create(ctx context.Context, lr *domain.LeaveRequest) error
	Update(ctx context.Context, lr *domain.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	List(ctx context.Context) ([]domain.LeaveRequest, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.LeaveRequest, error)
	ListByReportingManager(ctx context.Context, managerID string) ([]domain.LeaveRequest, error)
}

type leaveRequestRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveRequestRepository returns a Postgres-backed implementation.
func NewLeaveRequestRepository(pool *pgxpool.Pool) LeaveRequestRepository {
	return &leaveRequestRepository{pool: pool}
}

const leaveColumns = `
        lr.id, lr.account_id, lr.request_type, lr.description, lr.start_date,
        lr.end_date, lr.status, lr.reviewed_by_id, lr.review_comment,
        lr.created_at, lr.updated_at`

func scanLeaveRequest(row pgx.Row) (*domain.LeaveRequest, error) {
	var lr domain.LeaveRequest
	if err := row.Scan(
		&lr.ID,
		&lr.AccountID,
		&lr.RequestType,
		&lr.Description,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Status,
		&lr.ReviewedByID,
		&lr.ReviewComment,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &lr, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]domain.LeaveRequest, error) {
	defer rows.Close()
	requests := make([]domain.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *lr)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepository) Create(ctx context.Context, lr *domain.LeaveRequest) error {
	const query = `
        INSERT INTO leave_requests (account_id, request_type, description,
            start_date, end_date, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		lr.AccountID,
		lr.RequestType,
		lr.Description,
		lr.StartDate,
		lr.EndDate,
		lr.Status,
	).Scan(&lr.ID, &lr.CreatedAt, &lr.UpdatedAt)
}

func (r *leaveRequestRepository) Update(ctx context.Context, lr *domain.LeaveRequest) error {
	const query = `
        UPDATE leave_requests SET status=$1, reviewed_by_id=$2,
            review_comment=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		lr.Status,
		lr.ReviewedByID,
		lr.ReviewComment,
		lr.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests lr WHERE lr.id=$1`
	return scanLeaveRequest(r.pool.QueryRow(ctx, query, id))
}

func (r *leaveRequestRepository) List(ctx context.Context) ([]domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests lr ORDER BY lr.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests lr WHERE lr.account_id=$1 ORDER BY lr.created_at DESC`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepository) ListByReportingManager(ctx context.Context, managerID string) ([]domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + `
        FROM leave_requests lr
        JOIN accounts a ON a.id = lr.account_id
        WHERE a.reporting_manager_id=$1
        ORDER BY lr.created_at DESC`

	rows, err := r.pool.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}
