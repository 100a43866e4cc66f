package service

import (
	"context"
	"strings"

	"github.com/spec-kit/workforce-service/internal/authz"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/events"
	"github.com/spec-kit/workforce-service/internal/repository"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// ReviewService coordinates the performance review cycle.
type ReviewService struct {
	reviews    repository.PerformanceReviewRepository
	accounts   repository.AccountRepository
	gate       *authz.Gate
	dispatcher events.Dispatcher
}

// ReviewCreateInput describes the review creation payload.
type ReviewCreateInput struct {
	EmployeeID string
	CycleName  string
}

// NewReviewService constructs the service.
func NewReviewService(reviews repository.PerformanceReviewRepository, accounts repository.AccountRepository, gate *authz.Gate, dispatcher events.Dispatcher) *ReviewService {
	return &ReviewService{reviews: reviews, accounts: accounts, gate: gate, dispatcher: dispatcher}
}

// CreateReview opens a new review cycle for an employee. The caller
// becomes the reviewer and the review starts as a draft.
func (s *ReviewService) CreateReview(ctx context.Context, p *authz.Principal, input ReviewCreateInput) (*domain.PerformanceReview, error) {
	if err := s.gate.Guard(ctx, p, authz.OpCreate, authz.KindPerformanceReview, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.CycleName) == "" {
		return nil, apperrors.NewValidationError("cycle name is required", nil)
	}
	if _, err := s.accounts.GetByID(ctx, input.EmployeeID); err != nil {
		return nil, mapNoRows(err, "employee")
	}
	review := &domain.PerformanceReview{
		EmployeeID: input.EmployeeID,
		ReviewerID: p.ID,
		CycleName:  input.CycleName,
		Status:     domain.ReviewStatusDraft,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventReviewChanged, p.ID, "CREATE", "PerformanceReview", review.ID, "cycle "+review.CycleName+" opened")
	return review, nil
}

// GetReview fetches one review within the caller's scope.
func (s *ReviewService) GetReview(ctx context.Context, p *authz.Principal, id string) (*domain.PerformanceReview, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "performance review")
	}
	if err := s.gate.Guard(ctx, p, authz.OpView, authz.KindPerformanceReview, reviewRef(review)); err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews returns the reviews visible to the caller: everything for
// an admin, own reviews otherwise.
func (s *ReviewService) ListReviews(ctx context.Context, p *authz.Principal) ([]domain.PerformanceReview, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindPerformanceReview, nil); err != nil {
		return nil, err
	}
	if s.gate.Scope().ListScope(p, authz.KindPerformanceReview) == authz.ScopeAll {
		return s.reviews.List(ctx)
	}
	return s.reviews.ListByEmployee(ctx, p.ID)
}

// ListMyReviews returns reviews about the caller.
func (s *ReviewService) ListMyReviews(ctx context.Context, p *authz.Principal) ([]domain.PerformanceReview, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindPerformanceReview, nil); err != nil {
		return nil, err
	}
	return s.reviews.ListByEmployee(ctx, p.ID)
}

// ListEmployeeReviews returns one employee's reviews, narrowed to the
// caller's visible set.
func (s *ReviewService) ListEmployeeReviews(ctx context.Context, p *authz.Principal, employeeID string) ([]domain.PerformanceReview, error) {
	if err := s.gate.Guard(ctx, p, authz.OpList, authz.KindPerformanceReview, nil); err != nil {
		return nil, err
	}
	if _, err := s.accounts.GetByID(ctx, employeeID); err != nil {
		return nil, mapNoRows(err, "employee")
	}
	all, err := s.reviews.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.PerformanceReview, 0, len(all))
	for i := range all {
		ok, err := s.gate.Scope().CanAccess(ctx, p, authz.KindPerformanceReview, *reviewRef(&all[i]))
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, all[i])
		}
	}
	return visible, nil
}

// UpdateReview applies the reviewer's partial update. A review already
// approved is terminal and rejects further edits.
func (s *ReviewService) UpdateReview(ctx context.Context, p *authz.Principal, id string, patch domain.ReviewPatch) (*domain.PerformanceReview, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "performance review")
	}
	if err := s.gate.Guard(ctx, p, authz.OpUpdate, authz.KindPerformanceReview, reviewRef(review)); err != nil {
		return nil, err
	}
	if review.Status.Terminal() {
		return nil, apperrors.NewValidationError("review already approved", map[string]any{"status": review.Status})
	}
	if patch.Status != nil && !validReviewStatus(*patch.Status) {
		return nil, apperrors.NewValidationError("unknown review status", map[string]any{"status": *patch.Status})
	}
	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 5) {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{"rating": *patch.Rating})
	}
	patch.Apply(review)
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventReviewChanged, p.ID, "UPDATE", "PerformanceReview", review.ID, "")
	return review, nil
}

// SubmitSelfAppraisal records the reviewed employee's self-assessment and
// moves the review from draft to submitted. Only the reviewed employee may
// submit, and only while the review is still a draft.
func (s *ReviewService) SubmitSelfAppraisal(ctx context.Context, p *authz.Principal, id, appraisal string) (*domain.PerformanceReview, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "performance review")
	}
	if err := s.gate.Guard(ctx, p, authz.OpUpdateSelf, authz.KindPerformanceReview, reviewRef(review)); err != nil {
		return nil, err
	}
	if review.EmployeeID != p.ID {
		return nil, apperrors.NewForbidden("only the reviewed employee may submit a self-appraisal")
	}
	if review.Status != domain.ReviewStatusDraft {
		return nil, apperrors.NewValidationError("self-appraisal can only be submitted from draft", map[string]any{"status": review.Status})
	}
	review.SelfAppraisal = appraisal
	review.Status = domain.ReviewStatusSubmitted
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, events.EventReviewChanged, p.ID, "SUBMIT_SELF_APPRAISAL", "PerformanceReview", review.ID, "")
	return review, nil
}

// DeleteReview removes a review.
func (s *ReviewService) DeleteReview(ctx context.Context, p *authz.Principal, id string) error {
	if err := s.gate.Authorize(ctx, p, authz.OpDelete, authz.KindPerformanceReview, id); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.dispatcher, events.EventReviewChanged, p.ID, "DELETE", "PerformanceReview", id, "")
	return nil
}

func validReviewStatus(status domain.ReviewStatus) bool {
	switch status {
	case domain.ReviewStatusDraft, domain.ReviewStatusSubmitted, domain.ReviewStatusReviewed, domain.ReviewStatusApproved:
		return true
	}
	return false
}
