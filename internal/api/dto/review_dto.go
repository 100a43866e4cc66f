package dto

import (
	"time"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// CreateReviewRequest payload.
type CreateReviewRequest struct {
	EmployeeID string `json:"employee_id"`
	CycleName  string `json:"cycle_name"`
}

// UpdateReviewRequest carries the reviewer's partial update.
type UpdateReviewRequest struct {
	CycleName            *string  `json:"cycle_name"`
	ManagerFeedback      *string  `json:"manager_feedback"`
	Rating               *int     `json:"rating"`
	Status               *string  `json:"status"`
	IncrementRecommended *float64 `json:"increment_recommended"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateReviewRequest) ToPatch() domain.ReviewPatch {
	patch := domain.ReviewPatch{
		CycleName:            r.CycleName,
		ManagerFeedback:      r.ManagerFeedback,
		Rating:               r.Rating,
		IncrementRecommended: r.IncrementRecommended,
	}
	if r.Status != nil {
		status := domain.ReviewStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// SelfAppraisalRequest payload for the reviewed employee's submission.
type SelfAppraisalRequest struct {
	SelfAppraisal string `json:"self_appraisal"`
}

// ReviewResponse representation.
type ReviewResponse struct {
	ID                   string    `json:"id"`
	EmployeeID           string    `json:"employee_id"`
	ReviewerID           string    `json:"reviewer_id"`
	CycleName            string    `json:"cycle_name"`
	SelfAppraisal        string    `json:"self_appraisal"`
	ManagerFeedback      string    `json:"manager_feedback"`
	Rating               *int      `json:"rating"`
	Status               string    `json:"status"`
	IncrementRecommended *float64  `json:"increment_recommended"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NewReviewResponse maps a domain review.
func NewReviewResponse(r *domain.PerformanceReview) ReviewResponse {
	return ReviewResponse{
		ID:                   r.ID,
		EmployeeID:           r.EmployeeID,
		ReviewerID:           r.ReviewerID,
		CycleName:            r.CycleName,
		SelfAppraisal:        r.SelfAppraisal,
		ManagerFeedback:      r.ManagerFeedback,
		Rating:               r.Rating,
		Status:               string(r.Status),
		IncrementRecommended: r.IncrementRecommended,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// NewReviewResponses maps a slice of domain reviews.
func NewReviewResponses(reviews []domain.PerformanceReview) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, NewReviewResponse(&reviews[i]))
	}
	return out
}
