package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// PerformanceReviewRepository defines persistence access for reviews.
type PerformanceReviewRepository interface {
	Create(ctx context.Context, review *domain.PerformanceReview) error
	Update(ctx context.Context, review *domain.PerformanceReview) error
	GetByID(ctx context.Context, id string) (*domain.PerformanceReview, error)
	List(ctx context.Context) ([]domain.PerformanceReview, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.PerformanceReview, error)
	Delete(ctx context.Context, id string) error
}

type performanceReviewRepository struct {
	pool *pgxpool.Pool
}

// NewPerformanceReviewRepository returns a Postgres-backed implementation.
func NewPerformanceReviewRepository(pool *pgxpool.Pool) PerformanceReviewRepository {
	return &performanceReviewRepository{pool: pool}
}

const reviewColumns = `
        id, employee_id, reviewer_id, cycle_name, self_appraisal,
        manager_feedback, rating, status, increment_recommended,
        created_at, updated_at`

func scanReview(row pgx.Row) (*domain.PerformanceReview, error) {
	var rv domain.PerformanceReview
	if err := row.Scan(
		&rv.ID,
		&rv.EmployeeID,
		&rv.ReviewerID,
		&rv.CycleName,
		&rv.SelfAppraisal,
		&rv.ManagerFeedback,
		&rv.Rating,
		&rv.Status,
		&rv.IncrementRecommended,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rv, nil
}

func collectReviews(rows pgx.Rows) ([]domain.PerformanceReview, error) {
	defer rows.Close()
	reviews := make([]domain.PerformanceReview, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}

func (r *performanceReviewRepository) Create(ctx context.Context, review *domain.PerformanceReview) error {
	const query = `
        INSERT INTO performance_reviews (employee_id, reviewer_id, cycle_name,
            self_appraisal, manager_feedback, rating, status, increment_recommended)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		review.EmployeeID,
		review.ReviewerID,
		review.CycleName,
		review.SelfAppraisal,
		review.ManagerFeedback,
		review.Rating,
		review.Status,
		review.IncrementRecommended,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *performanceReviewRepository) Update(ctx context.Context, review *domain.PerformanceReview) error {
	const query = `
        UPDATE performance_reviews SET cycle_name=$1, self_appraisal=$2,
            manager_feedback=$3, rating=$4, status=$5,
            increment_recommended=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		review.CycleName,
		review.SelfAppraisal,
		review.ManagerFeedback,
		review.Rating,
		review.Status,
		review.IncrementRecommended,
		review.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *performanceReviewRepository) GetByID(ctx context.Context, id string) (*domain.PerformanceReview, error) {
	query := `SELECT ` + reviewColumns + ` FROM performance_reviews WHERE id=$1`
	return scanReview(r.pool.QueryRow(ctx, query, id))
}

func (r *performanceReviewRepository) List(ctx context.Context) ([]domain.PerformanceReview, error) {
	query := `SELECT ` + reviewColumns + ` FROM performance_reviews ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

func (r *performanceReviewRepository) ListByEmployee(ctx context.Context, employeeID string) ([]domain.PerformanceReview, error) {
	query := `SELECT ` + reviewColumns + ` FROM performance_reviews WHERE employee_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

func (r *performanceReviewRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM performance_reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
