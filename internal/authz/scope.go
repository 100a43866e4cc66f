package authz

import (
	"context"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// RecordRef identifies the ownership chain of a single record. SubjectID
// is the account the record is about: the account itself, a project's
// manager, a task's assignee, a KPI's or review's employee, a leave
// request's author. ManagerID is the subject's reporting manager, empty
// when none is set. ActorID is the account that authored the record where
// authorship carries standing of its own, such as a review's reviewer.
type RecordRef struct {
	ID        string
	SubjectID string
	ManagerID string
	ActorID   string
}

// ProjectAssignments answers project membership through task assignment.
// The join is performed explicitly by the scoping layer so visibility
// never depends on incidental relationship loading.
type ProjectAssignments interface {
	HasAssignedTask(ctx context.Context, projectID, accountID string) (bool, error)
	AssignedProjectIDs(ctx context.Context, accountID string) ([]string, error)
}

// ScopeLevel names the breadth of a principal's visibility over an entity
// type, used by the service layer to pick the scoped store query.
type ScopeLevel int

const (
	// ScopeNone grants no list visibility.
	ScopeNone ScopeLevel = iota
	// ScopeSelf covers records whose subject is the principal.
	ScopeSelf
	// ScopeAssigned covers projects holding at least one task assigned to
	// the principal, deduplicated.
	ScopeAssigned
	// ScopeTeam covers the principal plus accounts reporting directly to
	// the principal (one level, not transitive).
	ScopeTeam
	// ScopeAll is unrestricted.
	ScopeAll
)

// ScopePolicy evaluates record visibility per role. Scoping is always a
// predicate over a foreign-key relationship, never a comparison of role
// names against business data.
type ScopePolicy struct {
	assignments ProjectAssignments
}

// NewScopePolicy builds the policy around the assignment join.
func NewScopePolicy(assignments ProjectAssignments) *ScopePolicy {
	return &ScopePolicy{assignments: assignments}
}

// ListScope reports the visibility breadth for listing records of kind.
// ADMIN short-circuits before any narrower rule is evaluated.
func (s *ScopePolicy) ListScope(p *Principal, kind Kind) ScopeLevel {
	if p.Role == domain.RoleAdmin {
		return ScopeAll
	}
	switch kind {
	case KindAccount, KindLeaveRequest:
		if p.Role == domain.RoleManager {
			return ScopeTeam
		}
		return ScopeSelf
	case KindProject:
		if p.Role == domain.RoleManager {
			return ScopeTeam
		}
		return ScopeAssigned
	case KindTask, KindKpi, KindPerformanceReview:
		// No team-wide scope is defined for these kinds; managers see
		// their own records like everyone else.
		return ScopeSelf
	case KindDepartment:
		// Departments carry no per-record ownership.
		return ScopeAll
	case KindAuditLog:
		return ScopeNone
	}
	return ScopeNone
}

// CanAccess reports whether the principal may see or act on the record
// identified by ref. The ADMIN unrestricted rule always wins before the
// manager and self filters.
func (s *ScopePolicy) CanAccess(ctx context.Context, p *Principal, kind Kind, ref RecordRef) (bool, error) {
	if p.Role == domain.RoleAdmin {
		return true, nil
	}
	switch kind {
	case KindAccount, KindLeaveRequest:
		if ref.SubjectID == p.ID {
			return true, nil
		}
		return p.Role == domain.RoleManager && ref.ManagerID == p.ID, nil
	case KindDepartment:
		return true, nil
	case KindProject:
		if p.Role == domain.RoleManager {
			return ref.SubjectID == p.ID, nil
		}
		return s.assignments.HasAssignedTask(ctx, ref.ID, p.ID)
	case KindTask, KindKpi:
		return ref.SubjectID == p.ID, nil
	case KindPerformanceReview:
		// The reviewer keeps access to reviews they authored so the
		// review can be moved through its states after submission.
		return ref.SubjectID == p.ID || ref.ActorID == p.ID, nil
	case KindAuditLog:
		return false, nil
	}
	return false, nil
}
