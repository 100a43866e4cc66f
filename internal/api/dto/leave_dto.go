package dto

import (
	"time"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// SubmitLeaveRequestRequest payload.
type SubmitLeaveRequestRequest struct {
	RequestType string     `json:"request_type"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// ReviewLeaveRequestRequest payload for the approve/reject decision.
type ReviewLeaveRequestRequest struct {
	Status        string `json:"status"`
	ReviewComment string `json:"review_comment"`
}

// LeaveRequestResponse representation.
type LeaveRequestResponse struct {
	ID            string     `json:"id"`
	AccountID     string     `json:"account_id"`
	RequestType   string     `json:"request_type"`
	Description   string     `json:"description"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Status        string     `json:"status"`
	ReviewedByID  *string    `json:"reviewed_by_id"`
	ReviewComment string     `json:"review_comment"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewLeaveRequestResponse maps a domain leave request.
func NewLeaveRequestResponse(lr *domain.LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:            lr.ID,
		AccountID:     lr.AccountID,
		RequestType:   string(lr.RequestType),
		Description:   lr.Description,
		StartDate:     lr.StartDate,
		EndDate:       lr.EndDate,
		Status:        string(lr.Status),
		ReviewedByID:  lr.ReviewedByID,
		ReviewComment: lr.ReviewComment,
		CreatedAt:     lr.CreatedAt,
		UpdatedAt:     lr.UpdatedAt,
	}
}

// NewLeaveRequestResponses maps a slice of domain leave requests.
func NewLeaveRequestResponses(requests []domain.LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, NewLeaveRequestResponse(&requests[i]))
	}
	return out
}
