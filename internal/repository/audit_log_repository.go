package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// AuditLogRepository defines append-only persistence for audit records.
type AuditLogRepository interface {
	Insert(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context) ([]domain.AuditLog, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository returns a Postgres-backed implementation.
func NewAuditLogRepository(pool *pgxpool.Pool) AuditLogRepository {
	return &auditLogRepository{pool: pool}
}

func (r *auditLogRepository) Insert(ctx context.Context, log *domain.AuditLog) error {
	const query = `
        INSERT INTO audit_logs (account_id, action, entity_name, entity_id, details, ip_address)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		log.AccountID,
		log.Action,
		log.EntityName,
		log.EntityID,
		log.Details,
		log.IPAddress,
	).Scan(&log.ID, &log.CreatedAt)
}

func collectAuditLogs(rows pgx.Rows) ([]domain.AuditLog, error) {
	defer rows.Close()
	logs := make([]domain.AuditLog, 0)
	for rows.Next() {
		var l domain.AuditLog
		if err := rows.Scan(
			&l.ID,
			&l.AccountID,
			&l.Action,
			&l.EntityName,
			&l.EntityID,
			&l.Details,
			&l.IPAddress,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *auditLogRepository) List(ctx context.Context) ([]domain.AuditLog, error) {
	const query = `
        SELECT id, account_id, action, entity_name, entity_id, details,
               ip_address, created_at
        FROM audit_logs ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectAuditLogs(rows)
}

func (r *auditLogRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.AuditLog, error) {
	const query = `
        SELECT id, account_id, action, entity_name, entity_id, details,
               ip_address, created_at
        FROM audit_logs WHERE account_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	return collectAuditLogs(rows)
}
