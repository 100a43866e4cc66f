package domain

import "time"

// ReviewStatus enumerates performance review states. APPROVED is terminal.
type ReviewStatus string

const (
	ReviewStatusDraft     ReviewStatus = "DRAFT"
	ReviewStatusSubmitted ReviewStatus = "SUBMITTED"
	ReviewStatusReviewed  ReviewStatus = "REVIEWED"
	ReviewStatusApproved  ReviewStatus = "APPROVED"
)

// Terminal reports whether no further transition is defined from s.
func (s ReviewStatus) Terminal() bool {
	return s == ReviewStatusApproved
}

// PerformanceReview captures one appraisal cycle for an employee.
type PerformanceReview struct {
	ID                   string
	EmployeeID           string
	ReviewerID           string
	CycleName            string
	SelfAppraisal        string
	ManagerFeedback      string
	Rating               *int
	Status               ReviewStatus
	IncrementRecommended *float64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ReviewPatch carries a partial review update made by the reviewer.
type ReviewPatch struct {
	CycleName            *string
	ManagerFeedback      *string
	Rating               *int
	Status               *ReviewStatus
	IncrementRecommended *float64
}

// Apply copies the present fields onto the review.
func (p ReviewPatch) Apply(r *PerformanceReview) {
	if p.CycleName != nil {
		r.CycleName = *p.CycleName
	}
	if p.ManagerFeedback != nil {
		r.ManagerFeedback = *p.ManagerFeedback
	}
	if p.Rating != nil {
		r.Rating = p.Rating
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.IncrementRecommended != nil {
		r.IncrementRecommended = p.IncrementRecommended
	}
}
