package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/workforce-service/internal/authz"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/events"
	"github.com/spec-kit/workforce-service/internal/repository"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// LeaveService coordinates leave request submission and review.
type LeaveService struct {
	leaves     repository.LeaveRequestRepository
	accounts   repository.AccountRepository
	gate       *authz.Gate
	dispatcher events.Dispatcher
}

// LeaveSubmitInput describes the submission payload.
type LeaveSubmitInput struct {
	RequestType domain.LeaveType
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

// NewLeaveService constructs the service.
func NewLeaveService(leaves repository.LeaveRequestRepository, accounts repository.AccountRepository, gate *authz.Gate, dispatcher events.Dispatcher) *LeaveService {
	return &LeaveService{leaves: leaves, accounts: accounts, gate: gate, dispatcher: dispatcher}
}

// SubmitLeaveRequest files a new request for the caller. Requests always
// start pending.
func (s *LeaveService) SubmitLeaveRequest(ctx context.Context, p *authz.Principal, input LeaveSubmitInput) (*domain.LeaveRequest, error) {
	if err := s.gate.Guard(ctx, p, authz.OpCreate, authz.KindLeaveRequest, nil); err != nil {
		return nil, err
	}
	if !validLeaveType(input.RequestType) {
		return nil, apperrors.NewValidationError("unknown request type", map[string]any{"request_type": input.RequestType})
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description is required", nil)
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, apperrors.NewValidationError("end date precedes start date", nil)
	}
	lr := &domain.LeaveRequest{
		AccountID:   p.ID,
		RequestType: input.RequestType,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      domain.LeaveStatusPending,
	}
	if err := s.leaves.Create(ctx, lr); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventLeaveSubmitted, p.ID, "SUBMIT", "LeaveRequest", lr.ID, string(lr.RequestType)+" request submitted")
	return lr, nil
}

// GetLeaveRequest fetches one request within the caller's scope.
func (s *LeaveService) GetLeaveRequest(ctx context.Context, p *authz.Principal, id string) (*domain.LeaveRequest, error) {
	lr, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "leave request")
	}
	ref, err := leaveRequestRef(ctx, s.accounts, lr)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Guard(ctx, p, authz.OpView, authz.KindLeaveRequest, ref); err != nil {
		return nil, err
	}
	return lr, nil
}

// ListMyLeaveRequests returns the caller's own requests.
func (s *LeaveService) ListMyLeaveRequests(ctx context.Context, p *authz.Principal) ([]domain.LeaveRequest, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindLeaveRequest, nil); err != nil {
		return nil, err
	}
	return s.leaves.ListByAccount(ctx, p.ID)
}

// ListLeaveRequests returns the requests visible to the caller: everything
// for an admin, direct reports plus own for a manager, own otherwise.
func (s *LeaveService) ListLeaveRequests(ctx context.Context, p *authz.Principal) ([]domain.LeaveRequest, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindLeaveRequest, nil); err != nil {
		return nil, err
	}
	switch s.gate.Scope().ListScope(p, authz.KindLeaveRequest) {
	case authz.ScopeAll:
		return s.leaves.List(ctx)
	case authz.ScopeTeam:
		team, err := s.leaves.ListByReportingManager(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		own, err := s.leaves.ListByAccount(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		return append(own, team...), nil
	}
	return s.leaves.ListByAccount(ctx, p.ID)
}

// ListTeamLeaveRequests returns pending-review requests from the caller's
// direct reports. Callers without team visibility get Forbidden.
func (s *LeaveService) ListTeamLeaveRequests(ctx context.Context, p *authz.Principal) ([]domain.LeaveRequest, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindLeaveRequest, nil); err != nil {
		return nil, err
	}
	switch s.gate.Scope().ListScope(p, authz.KindLeaveRequest) {
	case authz.ScopeAll, authz.ScopeTeam:
		return s.leaves.ListByReportingManager(ctx, p.ID)
	}
	return nil, apperrors.NewForbidden("team visibility required")
}

// ReviewLeaveRequest approves or rejects a pending request. A request
// already in a terminal status cannot be reviewed again.
func (s *LeaveService) ReviewLeaveRequest(ctx context.Context, p *authz.Principal, id string, status domain.LeaveStatus, comment string) (*domain.LeaveRequest, error) {
	lr, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "leave request")
	}
	ref, err := leaveRequestRef(ctx, s.accounts, lr)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Guard(ctx, p, authz.OpReview, authz.KindLeaveRequest, ref); err != nil {
		return nil, err
	}
	if status != domain.LeaveStatusApproved && status != domain.LeaveStatusRejected {
		return nil, apperrors.NewValidationError("review status must be APPROVED or REJECTED", map[string]any{"status": status})
	}
	if lr.Status.Terminal() {
		return nil, apperrors.NewValidationError("request already reviewed", map[string]any{"status": lr.Status})
	}
	lr.Status = status
	lr.ReviewedByID = &p.ID
	lr.ReviewComment = comment
	if err := s.leaves.Update(ctx, lr); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventLeaveReviewed, p.ID, string(status), "LeaveRequest", lr.ID, comment)
	return lr, nil
}

func validLeaveType(t domain.LeaveType) bool {
	switch t {
	case domain.LeaveTypeLeave, domain.LeaveTypeWFH, domain.LeaveTypeReimbursement, domain.LeaveTypeHRRequest:
		return true
	}
	return false
}
